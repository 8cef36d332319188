package service

import (
	"context"

	bookmodel "bookrealm-backend/internal/domains/book/model"
)

// BookResolver is the slice of the book repository the favorite write
// path needs. Satisfied by book/repository.
type BookResolver interface {
	GetBySlug(ctx context.Context, slug string) (*bookmodel.Book, error)
}

// CounterStore is where the projector applies count deltas. Satisfied
// by book/repository; both operations are atomic in storage and the
// decrement floors at zero.
type CounterStore interface {
	IncrementFavoriteCount(ctx context.Context, bookID int64) error
	DecrementFavoriteCount(ctx context.Context, bookID int64) error
}

type ServiceInterface interface {
	Add(ctx context.Context, userID int64, bookSlug string) error
	Remove(ctx context.Context, userID int64, bookSlug string) error
	ListByUser(ctx context.Context, userID int64, page bookmodel.Page) ([]bookmodel.Book, bookmodel.PageMeta, error)
}
