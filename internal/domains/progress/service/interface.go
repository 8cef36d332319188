package service

import (
	"context"

	bookmodel "bookrealm-backend/internal/domains/book/model"
	chaptermodel "bookrealm-backend/internal/domains/chapter/model"
	"bookrealm-backend/internal/domains/progress/model"
)

// BookResolver is the slice of the book repository the progress paths
// need. Satisfied by book/repository.
type BookResolver interface {
	GetBySlug(ctx context.Context, slug string) (*bookmodel.Book, error)
}

// ChapterResolver is satisfied by chapter/repository.
type ChapterResolver interface {
	GetByID(ctx context.Context, id int64) (*chaptermodel.Chapter, error)
}

type ServiceInterface interface {
	// Start records the reader's first bookmark in a book; a second
	// Start for the same book is a Conflict.
	Start(ctx context.Context, userID int64, bookSlug string, req model.SaveProgressRequest) (*model.Progress, error)

	// Advance moves an existing bookmark to a new chapter/position.
	Advance(ctx context.Context, userID int64, bookSlug string, req model.SaveProgressRequest) (*model.Progress, error)

	// Get returns the reader's current bookmark in the book.
	Get(ctx context.Context, userID int64, bookSlug string) (*model.Progress, error)
}
