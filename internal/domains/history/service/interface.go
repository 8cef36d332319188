package service

import (
	"context"

	bookmodel "bookrealm-backend/internal/domains/book/model"
)

// BookResolver is satisfied by book/repository.
type BookResolver interface {
	GetBySlug(ctx context.Context, slug string) (*bookmodel.Book, error)
}

type ServiceInterface interface {
	// Track records that the user opened a book and prunes the history
	// past its cap.
	Track(ctx context.Context, userID int64, bookSlug string) error

	List(ctx context.Context, userID int64) ([]bookmodel.Book, error)
	Delete(ctx context.Context, userID int64, bookSlug string) error
}
