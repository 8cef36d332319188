package service

import (
	"context"

	"bookrealm-backend/internal/domains/category/model"
)

// UploadedIcon is the decoded multipart upload the handler passes down.
type UploadedIcon struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ServiceInterface interface {
	Create(ctx context.Context, icon *UploadedIcon, req model.CreateCategoryRequest) (*model.Category, error)
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id int64, icon *UploadedIcon, req model.UpdateCategoryRequest) (*model.Category, error)
	Remove(ctx context.Context, id int64) (*model.Category, error)

	// Weighting is advisory bookkeeping: callers treat failures as
	// non-fatal and the service only logs them.
	IncreasePriority(ctx context.Context, id int64)
	DecreasePriority(ctx context.Context, id int64)
}
