package repository

import (
	"context"

	categorymodel "bookrealm-backend/internal/domains/category/model"
)

type RepositoryInterface interface {
	// CreateBatch inserts all pairs or none; any pair that already
	// exists fails the batch with ErrAlreadyInterested.
	CreateBatch(ctx context.Context, userID int64, categoryIDs []int64) error

	Delete(ctx context.Context, userID, categoryID int64) error

	// ListByUser returns the interest categories themselves for
	// display; CategoryIDsForUser feeds the recommendation selector.
	ListByUser(ctx context.Context, userID int64) ([]categorymodel.Category, error)
	CategoryIDsForUser(ctx context.Context, userID int64) ([]int64, error)
}
