package service

import (
	"context"

	"bookrealm-backend/internal/domains/chapter/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, ownerID int64, bookSlug string, req model.CreateChapterRequest) (*model.Chapter, error)
	Update(ctx context.Context, ownerID, chapterID int64, req model.UpdateChapterRequest) (*model.Chapter, error)
	Delete(ctx context.Context, ownerID, chapterID int64) error

	// Read path. Drafts (of either the chapter or its book) are only
	// visible to the book's author.
	Get(ctx context.Context, viewerID, chapterID int64) (*model.Chapter, error)
	ListByBookSlug(ctx context.Context, viewerID int64, bookSlug string) ([]model.Chapter, error)
}
