package service

import (
	"context"
	"time"

	bookmodel "bookrealm-backend/internal/domains/book/model"
	"bookrealm-backend/internal/domains/favorite/model"
	"bookrealm-backend/internal/domains/favorite/repository"
	"bookrealm-backend/internal/events"
)

type FavoriteService struct {
	repo  repository.RepositoryInterface
	books BookResolver
	bus   *events.Bus
}

func NewService(repo repository.RepositoryInterface, books BookResolver, bus *events.Bus) ServiceInterface {
	return &FavoriteService{
		repo:  repo,
		books: books,
		bus:   bus,
	}
}

// Add favorites a published book for the user. The stored row is the
// source of truth; the book's favorite_count is a projection updated by
// the event handler, so a reader may briefly see a stale count.
func (s *FavoriteService) Add(ctx context.Context, userID int64, bookSlug string) error {
	book, err := s.books.GetBySlug(ctx, bookSlug)
	if err != nil {
		return err
	}
	if book.Status != bookmodel.StatusPublished {
		return bookmodel.ErrBookNotFound
	}

	favorite := &model.Favorite{
		UserID:    userID,
		BookID:    book.ID,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, favorite); err != nil {
		return err
	}

	s.bus.Emit(events.NewEvent(events.FavoriteCreated, book.ID))
	return nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID int64, bookSlug string) error {
	book, err := s.books.GetBySlug(ctx, bookSlug)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, book.ID); err != nil {
		return err
	}

	s.bus.Emit(events.NewEvent(events.FavoriteDeleted, book.ID))
	return nil
}

func (s *FavoriteService) ListByUser(ctx context.Context, userID int64, page bookmodel.Page) ([]bookmodel.Book, bookmodel.PageMeta, error) {
	page = page.Normalized()

	books, total, err := s.repo.ListBooksByUser(ctx, userID, page)
	if err != nil {
		return nil, bookmodel.PageMeta{}, err
	}
	return books, bookmodel.NewPageMeta(total, page), nil
}
