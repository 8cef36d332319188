package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookrealm-backend/internal/domains/book/model"
	"bookrealm-backend/internal/domains/book/repository"
	"bookrealm-backend/internal/events"
	"bookrealm-backend/internal/infrastructure/storage"
	"bookrealm-backend/internal/shared"
	"bookrealm-backend/internal/shared/utils"
	"bookrealm-backend/pkg/cache"
)

const (
	coverFolder      = "book-covers"
	listCachePattern = "books:list:*"
)

// BookService owns the book write path, the trash lifecycle and the
// read selectors (query and recommendation methods live in their own
// files on the same struct).
type BookService struct {
	repo       repository.RepositoryInterface
	chapters   ChapterCounter
	categories CategoryDirectory
	favorites  FavoriteChecker
	interests  InterestLookup
	images     storage.ImageStore
	cache      cache.Cache
	bus        *events.Bus
	queue      TaskEnqueuer

	trashRetentionDays int
}

func NewService(
	repo repository.RepositoryInterface,
	chapters ChapterCounter,
	categories CategoryDirectory,
	favorites FavoriteChecker,
	interests InterestLookup,
	images storage.ImageStore,
	cacheStore cache.Cache,
	bus *events.Bus,
	queue TaskEnqueuer,
	trashRetentionDays int,
) ServiceInterface {
	return &BookService{
		repo:               repo,
		chapters:           chapters,
		categories:         categories,
		favorites:          favorites,
		interests:          interests,
		images:             images,
		cache:              cacheStore,
		bus:                bus,
		queue:              queue,
		trashRetentionDays: trashRetentionDays,
	}
}

func (s *BookService) Create(ctx context.Context, ownerID int64, cover *UploadedImage, req model.CreateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// All guards run before any write: a rejected create leaves no
	// stored image and no row behind.
	slug := utils.BookSlug(req.Title, ownerID)
	inUse, err := s.repo.SlugInUse(ctx, slug, 0)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, model.ErrDuplicateTitle
	}

	categoryExists, err := s.categories.Exists(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !categoryExists {
		return nil, model.ErrCategoryNotFound
	}

	var coverURL *string
	if cover != nil {
		url, err := s.images.Store(ctx, coverFolder, cover.Filename, cover.Data, cover.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to store cover image: %w", err)
		}
		coverURL = &url
	}

	keywords := req.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	now := time.Now()
	book := &model.Book{
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		Keywords:    keywords,
		CoverURL:    coverURL,
		Status:      model.StatusDraft,
		UserID:      ownerID,
		CategoryID:  &req.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The unique index on slug backstops the check above under races.
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	s.categories.IncreasePriority(ctx, req.CategoryID)
	s.invalidateListCache(ctx)
	return book, nil
}

func (s *BookService) Update(ctx context.Context, ownerID int64, slug string, cover *UploadedImage, req model.UpdateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book, err := s.repo.GetOwned(ctx, ownerID, slug)
	if err != nil {
		return nil, err
	}
	wasPublished := book.Status == model.StatusPublished
	oldCategoryID := book.CategoryID

	if req.Title != nil && *req.Title != book.Title {
		// The slug follows the title; uniqueness is re-checked against
		// everyone but this book.
		newSlug := utils.BookSlug(*req.Title, ownerID)
		inUse, err := s.repo.SlugInUse(ctx, newSlug, book.ID)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, model.ErrDuplicateTitle
		}
		book.Title = *req.Title
		book.Slug = newSlug
	}

	if req.Description != nil {
		book.Description = req.Description
	}
	if req.Keywords != nil {
		book.Keywords = req.Keywords
	}

	if req.CategoryID != nil && (book.CategoryID == nil || *book.CategoryID != *req.CategoryID) {
		exists, err := s.categories.Exists(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, model.ErrCategoryNotFound
		}
		book.CategoryID = req.CategoryID
	}

	if req.Status != nil && *req.Status != book.Status {
		if *req.Status == model.StatusPublished {
			published, err := s.chapters.CountPublishedForBook(ctx, book.ID)
			if err != nil {
				return nil, err
			}
			if published == 0 {
				return nil, model.ErrNoPublishedChapters
			}
		}
		book.Status = *req.Status
	}

	var oldCover *string
	if cover != nil {
		url, err := s.images.Store(ctx, coverFolder, cover.Filename, cover.Data, cover.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to store cover image: %w", err)
		}
		oldCover = book.CoverURL
		book.CoverURL = &url
	}

	book.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	// Side effects only after the row is saved.
	if oldCover != nil {
		s.enqueueDeleteImage(ctx, *oldCover)
	}
	if req.CategoryID != nil && (oldCategoryID == nil || *oldCategoryID != *req.CategoryID) {
		if oldCategoryID != nil {
			s.categories.DecreasePriority(ctx, *oldCategoryID)
		}
		s.categories.IncreasePriority(ctx, *req.CategoryID)
	}
	if wasPublished && book.Status == model.StatusDraft {
		s.bus.Emit(events.NewEvent(events.BookUnpublished, book.ID))
	}

	s.invalidateListCache(ctx)
	return book, nil
}

func (s *BookService) SoftDelete(ctx context.Context, ownerID int64, slug string) (*model.Book, error) {
	book, err := s.repo.GetOwned(ctx, ownerID, slug)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	purgeAt := now.Add(time.Duration(s.trashRetentionDays) * 24 * time.Hour)
	if err := s.repo.MarkDeleted(ctx, book.ID, now, purgeAt, s.trashRetentionDays); err != nil {
		return nil, err
	}

	if book.Status == model.StatusPublished {
		s.bus.Emit(events.NewEvent(events.BookUnpublished, book.ID))
	}

	book.Status = model.StatusDraft
	book.DeletedAt = &now
	book.PurgeAt = &purgeAt
	days := s.trashRetentionDays
	book.ExpiryDays = &days
	book.UpdatedAt = now

	s.invalidateListCache(ctx)
	return book, nil
}

// Restore brings a batch of trashed books back. The batch is atomic in
// intent: every slug is resolved before the first row is touched, and
// one unknown slug rejects the whole request.
func (s *BookService) Restore(ctx context.Context, ownerID int64, slugs []string) error {
	books := make([]*model.Book, 0, len(slugs))
	for _, slug := range slugs {
		book, err := s.repo.GetTrashed(ctx, ownerID, slug)
		if errors.Is(err, model.ErrBookNotFound) {
			return fmt.Errorf("%w: %s", model.ErrBookNotFound, slug)
		}
		if err != nil {
			return err
		}
		books = append(books, book)
	}

	// Restored books come back as drafts regardless of their status
	// before deletion; the author republishes explicitly.
	for _, book := range books {
		if err := s.repo.Restore(ctx, book.ID); err != nil {
			return err
		}
	}

	s.invalidateListCache(ctx)
	return nil
}

// Remove permanently deletes trashed books. Resolution failures reject
// the batch up front; cleanup side effects per book are best-effort.
func (s *BookService) Remove(ctx context.Context, ownerID int64, slugs []string) error {
	books := make([]*model.Book, 0, len(slugs))
	for _, slug := range slugs {
		book, err := s.repo.GetTrashed(ctx, ownerID, slug)
		if errors.Is(err, model.ErrBookNotFound) {
			// Distinguish "still active" from "does not exist" so the
			// caller learns to soft-delete first.
			if active, aerr := s.repo.GetBySlug(ctx, slug); aerr == nil && active.UserID == ownerID {
				return fmt.Errorf("%w: %s", model.ErrBookNotInTrash, slug)
			}
			return fmt.Errorf("%w: %s", model.ErrBookNotFound, slug)
		}
		if err != nil {
			return err
		}
		books = append(books, book)
	}

	for _, book := range books {
		if book.CoverURL != nil {
			s.enqueueDeleteImage(ctx, *book.CoverURL)
		}
		if err := s.repo.HardDelete(ctx, book.ID); err != nil {
			return err
		}
		if book.CategoryID != nil {
			s.categories.DecreasePriority(ctx, *book.CategoryID)
		}
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *BookService) ListTrashed(ctx context.Context, ownerID int64) ([]model.Book, error) {
	books, err := s.repo.ListTrashed(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range books {
		days := books[i].DaysUntilPurge(now)
		books[i].ExpiryDays = &days
	}
	return books, nil
}

// SweepTrash refreshes the purge countdown on every trashed book and
// permanently removes the ones past their window. Runs daily from the
// scheduler; individual failures are logged so one bad row cannot stall
// the sweep.
func (s *BookService) SweepTrash(ctx context.Context) error {
	books, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	purged, refreshed := 0, 0
	for i := range books {
		book := &books[i]
		if book.PurgeAt != nil && !now.Before(*book.PurgeAt) {
			if book.CoverURL != nil {
				s.enqueueDeleteImage(ctx, *book.CoverURL)
			}
			if err := s.repo.HardDelete(ctx, book.ID); err != nil {
				log.Error().Err(err).Int64("book_id", book.ID).Msg("Failed to purge expired book")
				continue
			}
			if book.CategoryID != nil {
				s.categories.DecreasePriority(ctx, *book.CategoryID)
			}
			purged++
			continue
		}

		days := book.DaysUntilPurge(now)
		if book.ExpiryDays == nil || *book.ExpiryDays != days {
			if err := s.repo.UpdateExpiryDays(ctx, book.ID, days); err != nil {
				log.Error().Err(err).Int64("book_id", book.ID).Msg("Failed to update expiry days")
				continue
			}
			refreshed++
		}
	}

	log.Info().
		Int("purged", purged).
		Int("refreshed", refreshed).
		Int("trashed_total", len(books)).
		Msg("Trash sweep completed")

	if purged > 0 {
		s.invalidateListCache(ctx)
	}
	return nil
}

// enqueueDeleteImage defers cover removal to the worker so a slow or
// unavailable object store never extends a request.
func (s *BookService) enqueueDeleteImage(ctx context.Context, url string) {
	payload, err := json.Marshal(shared.DeleteImagePayload{URL: url})
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal delete image payload")
		return
	}

	task := asynq.NewTask(shared.TypeDeleteBookImage, payload)
	if _, err := s.queue.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueBook),
		asynq.MaxRetry(2),
	); err != nil {
		log.Error().Err(err).Str("url", url).Msg("Failed to enqueue delete image task")
	}
}

func (s *BookService) invalidateListCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, listCachePattern); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate book list cache")
	}
}
