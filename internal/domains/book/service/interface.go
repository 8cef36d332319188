package service

import (
	"context"

	"github.com/hibiken/asynq"

	"bookrealm-backend/internal/domains/book/model"
)

// UploadedImage is the decoded multipart cover upload.
type UploadedImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ChapterCounter is the slice of the chapter repository the publish
// guard needs. Satisfied by chapter/repository.
type ChapterCounter interface {
	CountPublishedForBook(ctx context.Context, bookID int64) (int, error)
}

// FavoriteChecker resolves per-viewer favorite flags for read models.
// Satisfied by favorite/repository.
type FavoriteChecker interface {
	IsFavorite(ctx context.Context, userID, bookID int64) (bool, error)
	FavoritedSet(ctx context.Context, userID int64, bookIDs []int64) (map[int64]bool, error)
}

// InterestLookup feeds the recommendation selector. Satisfied by
// interest/repository.
type InterestLookup interface {
	CategoryIDsForUser(ctx context.Context, userID int64) ([]int64, error)
}

// CategoryDirectory covers the category interactions on the book write
// path: existence checks before persisting a reference, and best-effort
// priority weighting afterwards. Satisfied by category/service.
type CategoryDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
	IncreasePriority(ctx context.Context, id int64)
	DecreasePriority(ctx context.Context, id int64)
}

// TaskEnqueuer matches asynq.Client for the tasks the service defers
// to the worker.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type ServiceInterface interface {
	// Write path. Item operations are slug-addressed, matching the
	// public URLs.
	Create(ctx context.Context, ownerID int64, cover *UploadedImage, req model.CreateBookRequest) (*model.Book, error)
	Update(ctx context.Context, ownerID int64, slug string, cover *UploadedImage, req model.UpdateBookRequest) (*model.Book, error)

	// Trash lifecycle.
	SoftDelete(ctx context.Context, ownerID int64, slug string) (*model.Book, error)
	Restore(ctx context.Context, ownerID int64, slugs []string) error
	Remove(ctx context.Context, ownerID int64, slugs []string) error
	ListTrashed(ctx context.Context, ownerID int64) ([]model.Book, error)
	SweepTrash(ctx context.Context) error

	// Read path.
	ListPublished(ctx context.Context, viewerID int64, filter model.ListFilter, page model.Page) ([]model.Book, model.PageMeta, error)
	ListMine(ctx context.Context, ownerID int64, includeDeleted bool, page model.Page) ([]model.Book, model.PageMeta, error)
	GetBySlug(ctx context.Context, viewerID int64, slug string) (*model.Book, error)

	// Selectors.
	GetRecommended(ctx context.Context, viewerID int64, page model.Page) ([]model.Book, model.PageMeta, error)
	GetPopular(ctx context.Context, viewerID int64, page model.Page) ([]model.Book, model.PageMeta, error)
	GetRelated(ctx context.Context, viewerID int64, anchorSlug string, page model.Page) ([]model.Book, model.PageMeta, error)
}
