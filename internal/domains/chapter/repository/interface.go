package repository

import (
	"context"

	"bookrealm-backend/internal/domains/chapter/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, chapter *model.Chapter) error
	GetByID(ctx context.Context, id int64) (*model.Chapter, error)

	// GetOwned resolves a chapter whose owning book belongs to ownerID
	// and is not in the trash.
	GetOwned(ctx context.Context, ownerID, chapterID int64) (*model.Chapter, error)

	ListByBook(ctx context.Context, bookID int64, publishedOnly bool) ([]model.Chapter, error)

	// CountPublishedForBook backs the book publish guard and the
	// unpublish cascade.
	CountPublishedForBook(ctx context.Context, bookID int64) (int, error)

	Update(ctx context.Context, chapter *model.Chapter) error
	Delete(ctx context.Context, id int64) error
}
