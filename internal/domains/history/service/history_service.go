package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	bookmodel "bookrealm-backend/internal/domains/book/model"
	"bookrealm-backend/internal/domains/history/repository"
)

type HistoryService struct {
	repo  repository.RepositoryInterface
	books BookResolver
	cap   int
}

func NewService(repo repository.RepositoryInterface, books BookResolver, cap int) ServiceInterface {
	return &HistoryService{
		repo:  repo,
		books: books,
		cap:   cap,
	}
}

func (s *HistoryService) Track(ctx context.Context, userID int64, bookSlug string) error {
	book, err := s.books.GetBySlug(ctx, bookSlug)
	if err != nil {
		return err
	}
	if book.Status != bookmodel.StatusPublished && book.UserID != userID {
		return bookmodel.ErrBookNotFound
	}

	if err := s.repo.Upsert(ctx, userID, book.ID, time.Now()); err != nil {
		return err
	}

	// The cap is housekeeping; a failed prune must not fail the read
	// that triggered it.
	if err := s.repo.PruneOldest(ctx, userID, s.cap); err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("Failed to prune reading history")
	}
	return nil
}

func (s *HistoryService) List(ctx context.Context, userID int64) ([]bookmodel.Book, error) {
	return s.repo.ListBooksByUser(ctx, userID)
}

func (s *HistoryService) Delete(ctx context.Context, userID int64, bookSlug string) error {
	book, err := s.books.GetBySlug(ctx, bookSlug)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, book.ID)
}
