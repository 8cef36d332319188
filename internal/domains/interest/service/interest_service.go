package service

import (
	"context"
	"fmt"

	categorymodel "bookrealm-backend/internal/domains/category/model"
	"bookrealm-backend/internal/domains/interest/model"
	"bookrealm-backend/internal/domains/interest/repository"
)

type InterestService struct {
	repo       repository.RepositoryInterface
	categories CategoryChecker
}

func NewService(repo repository.RepositoryInterface, categories CategoryChecker) ServiceInterface {
	return &InterestService{
		repo:       repo,
		categories: categories,
	}
}

// Add appends categories to the user's interests. Every id is validated
// before anything is written; a duplicate, in the request or against
// existing interests, rejects the whole batch.
func (s *InterestService) Add(ctx context.Context, userID int64, req model.AddInterestsRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	seen := make(map[int64]bool, len(req.CategoryIDs))
	for _, id := range req.CategoryIDs {
		if seen[id] {
			return fmt.Errorf("%w: category %d", model.ErrAlreadyInterested, id)
		}
		seen[id] = true

		exists, err := s.categories.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %d", categorymodel.ErrCategoryNotFound, id)
		}
	}

	return s.repo.CreateBatch(ctx, userID, req.CategoryIDs)
}

func (s *InterestService) ListByUser(ctx context.Context, userID int64) ([]categorymodel.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *InterestService) Delete(ctx context.Context, userID, categoryID int64) error {
	return s.repo.Delete(ctx, userID, categoryID)
}
