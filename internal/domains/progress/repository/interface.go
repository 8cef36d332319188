package repository

import (
	"context"

	"bookrealm-backend/internal/domains/progress/model"
)

type RepositoryInterface interface {
	// Create inserts the reader's first bookmark for a book; a second
	// insert for the same pair fails with ErrDuplicateProgress.
	Create(ctx context.Context, progress *model.Progress) error

	// Update moves an existing bookmark to a new chapter/position.
	Update(ctx context.Context, progress *model.Progress) error

	GetByUserAndBook(ctx context.Context, userID, bookID int64) (*model.Progress, error)
}
