package repository

import (
	"context"
	"time"

	bookmodel "bookrealm-backend/internal/domains/book/model"
)

type RepositoryInterface interface {
	// Upsert records a read, bumping the timestamp if the pair exists.
	Upsert(ctx context.Context, userID, bookID int64, at time.Time) error

	// PruneOldest drops the user's entries beyond the newest `cap`.
	PruneOldest(ctx context.Context, userID int64, cap int) error

	Delete(ctx context.Context, userID, bookID int64) error

	// DeleteByBook purges the book from every user's history; the
	// unpublish invalidator calls it.
	DeleteByBook(ctx context.Context, bookID int64) error

	// ListBooksByUser returns the recently read books, newest first.
	ListBooksByUser(ctx context.Context, userID int64) ([]bookmodel.Book, error)
}
