package repository

import (
	"context"

	bookmodel "bookrealm-backend/internal/domains/book/model"
	"bookrealm-backend/internal/domains/favorite/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, favorite *model.Favorite) error
	Delete(ctx context.Context, userID, bookID int64) error

	// IsFavorite and FavoritedSet back the per-viewer annotation on
	// the book read models.
	IsFavorite(ctx context.Context, userID, bookID int64) (bool, error)
	FavoritedSet(ctx context.Context, userID int64, bookIDs []int64) (map[int64]bool, error)

	// ListBooksByUser returns the user's favorited books, most recently
	// favorited first, with the total favorite count for pagination.
	ListBooksByUser(ctx context.Context, userID int64, page bookmodel.Page) ([]bookmodel.Book, int, error)
}
