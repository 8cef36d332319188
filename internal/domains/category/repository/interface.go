package repository

import (
	"context"

	"bookrealm-backend/internal/domains/category/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetByTitle(ctx context.Context, title string) (*model.Category, error)
	// List returns all categories ordered by priority descending.
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) error

	// Priority adjustments are single atomic statements; decrement
	// floors at zero.
	IncreasePriority(ctx context.Context, id int64) error
	DecreasePriority(ctx context.Context, id int64) error
}
