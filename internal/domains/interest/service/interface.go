package service

import (
	"context"

	categorymodel "bookrealm-backend/internal/domains/category/model"
	"bookrealm-backend/internal/domains/interest/model"
)

// CategoryChecker is satisfied by category/service.
type CategoryChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type ServiceInterface interface {
	Add(ctx context.Context, userID int64, req model.AddInterestsRequest) error
	ListByUser(ctx context.Context, userID int64) ([]categorymodel.Category, error)
	Delete(ctx context.Context, userID, categoryID int64) error
}
