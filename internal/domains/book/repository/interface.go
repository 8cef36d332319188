package repository

import (
	"context"
	"time"

	"bookrealm-backend/internal/domains/book/model"
)

// SearchTier selects the match predicate for one pass of the tiered
// search. The service walks the tiers in order and stops at the first
// one that yields results.
type SearchTier int

const (
	// TierNone applies no search predicate; filters and sort only.
	TierNone SearchTier = iota
	TierTitle
	TierKeywords
	TierDescription
)

type RepositoryInterface interface {
	Create(ctx context.Context, book *model.Book) error

	// GetByID and GetBySlug resolve active (non-deleted) books only.
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	GetBySlug(ctx context.Context, slug string) (*model.Book, error)

	// GetOwned resolves an active book by slug, owner-scoped; a foreign
	// or missing book is ErrBookNotFound either way.
	GetOwned(ctx context.Context, ownerID int64, slug string) (*model.Book, error)

	// SlugInUse reports whether another active book already holds the
	// slug. excludeID skips the book being updated (0 = exclude none).
	SlugInUse(ctx context.Context, slug string, excludeID int64) (bool, error)

	Update(ctx context.Context, book *model.Book) error

	// SetStatus flips the publish state only. The chapter cascade uses
	// it so a guard-driven unpublish cannot clobber concurrent edits.
	SetStatus(ctx context.Context, id int64, status string) error

	// MarkDeleted moves an active book to the trash; Restore brings a
	// trashed book back, clearing the trash columns.
	MarkDeleted(ctx context.Context, id int64, deletedAt, purgeAt time.Time, expiryDays int) error
	Restore(ctx context.Context, id int64) error

	// Trash access, always owner-scoped.
	GetTrashed(ctx context.Context, ownerID int64, slug string) (*model.Book, error)
	ListTrashed(ctx context.Context, ownerID int64) ([]model.Book, error)

	// ListDeleted returns every soft-deleted book across all owners;
	// the sweep job uses it to refresh countdowns and find expired rows.
	ListDeleted(ctx context.Context) ([]model.Book, error)
	UpdateExpiryDays(ctx context.Context, id int64, days int) error

	HardDelete(ctx context.Context, id int64) error

	// Favorite-count projection. Atomic in storage; decrement floors
	// at zero.
	IncrementFavoriteCount(ctx context.Context, bookID int64) error
	DecrementFavoriteCount(ctx context.Context, bookID int64) error

	// Search lists published books matching one tier's predicate plus
	// the filter's category/owner constraints, sorted and paginated.
	// Returns the page of items and the total match count.
	Search(ctx context.Context, tier SearchTier, filter model.ListFilter, page model.Page) ([]model.Book, int, error)

	// Selector queries, published books only.
	ListByCategoryIDs(ctx context.Context, categoryIDs []int64, page model.Page) ([]model.Book, int, error)
	ListPopular(ctx context.Context, page model.Page) ([]model.Book, int, error)
	ListRelated(ctx context.Context, anchor *model.Book, page model.Page) ([]model.Book, int, error)

	// ListByOwner returns the author's own books regardless of status.
	ListByOwner(ctx context.Context, ownerID int64, includeDeleted bool, page model.Page) ([]model.Book, int, error)
}
