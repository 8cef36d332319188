package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookrealm-backend/internal/domains/category/model"
	"bookrealm-backend/internal/domains/category/repository"
	"bookrealm-backend/internal/infrastructure/storage"
)

const iconFolder = "category-icons"

type CategoryService struct {
	repo   repository.RepositoryInterface
	images storage.ImageStore
}

func NewService(repo repository.RepositoryInterface, images storage.ImageStore) ServiceInterface {
	return &CategoryService{
		repo:   repo,
		images: images,
	}
}

func (s *CategoryService) Create(ctx context.Context, icon *UploadedIcon, req model.CreateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Fast-fail duplicate check; the unique constraint on title is the
	// real enforcement.
	existing, err := s.repo.GetByTitle(ctx, req.Title)
	if err != nil && !errors.Is(err, model.ErrCategoryNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, model.ErrDuplicateCategory
	}

	var iconURL *string
	if icon != nil {
		url, err := s.images.Store(ctx, iconFolder, icon.Filename, icon.Data, icon.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to store icon: %w", err)
		}
		iconURL = &url
	}

	now := time.Now()
	category := &model.Category{
		Title:     req.Title,
		Icon:      iconURL,
		Priority:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CategoryService) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, model.ErrCategoryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id int64, icon *UploadedIcon, req model.UpdateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if icon != nil {
		url, err := s.images.Store(ctx, iconFolder, icon.Filename, icon.Data, icon.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to store icon: %w", err)
		}

		// Old icon is unreferenced once the new URL is in place;
		// delete failures are tolerated (it may already be gone).
		if category.Icon != nil {
			if err := s.images.Delete(ctx, *category.Icon); err != nil {
				log.Warn().Err(err).Str("icon", *category.Icon).Msg("Failed to delete old category icon")
			}
		}
		category.Icon = &url
	}

	if req.Title != nil {
		category.Title = *req.Title
	}
	category.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Remove(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if category.Icon != nil {
		if err := s.images.Delete(ctx, *category.Icon); err != nil {
			log.Warn().Err(err).Str("icon", *category.Icon).Msg("Failed to delete category icon")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return category, nil
}

// IncreasePriority bumps the category's popularity weight. Best-effort:
// the counter is an ordering aid, never a reason to fail a book write.
func (s *CategoryService) IncreasePriority(ctx context.Context, id int64) {
	if err := s.repo.IncreasePriority(ctx, id); err != nil {
		log.Warn().Err(err).Int64("category_id", id).Msg("Failed to increase category priority")
	}
}

func (s *CategoryService) DecreasePriority(ctx context.Context, id int64) {
	if err := s.repo.DecreasePriority(ctx, id); err != nil {
		log.Warn().Err(err).Int64("category_id", id).Msg("Failed to decrease category priority")
	}
}
