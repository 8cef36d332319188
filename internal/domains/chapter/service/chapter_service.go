package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	bookmodel "bookrealm-backend/internal/domains/book/model"
	bookrepo "bookrealm-backend/internal/domains/book/repository"
	"bookrealm-backend/internal/domains/chapter/model"
	"bookrealm-backend/internal/domains/chapter/repository"
	"bookrealm-backend/internal/events"
	"bookrealm-backend/pkg/cache"
)

const listCachePattern = "books:list:*"

type ChapterService struct {
	repo  repository.RepositoryInterface
	books bookrepo.RepositoryInterface
	bus   *events.Bus
	cache cache.Cache
}

func NewService(
	repo repository.RepositoryInterface,
	books bookrepo.RepositoryInterface,
	bus *events.Bus,
	cacheStore cache.Cache,
) ServiceInterface {
	return &ChapterService{
		repo:  repo,
		books: books,
		bus:   bus,
		cache: cacheStore,
	}
}

func (s *ChapterService) Create(ctx context.Context, ownerID int64, bookSlug string, req model.CreateChapterRequest) (*model.Chapter, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book, err := s.books.GetOwned(ctx, ownerID, bookSlug)
	if err != nil {
		return nil, err
	}

	status := model.StatusDraft
	if req.Status != nil {
		status = *req.Status
	}

	now := time.Now()
	chapter := &model.Chapter{
		BookID:    book.ID,
		Title:     req.Title,
		Content:   req.Content,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *ChapterService) Update(ctx context.Context, ownerID, chapterID int64, req model.UpdateChapterRequest) (*model.Chapter, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	chapter, err := s.repo.GetOwned(ctx, ownerID, chapterID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		chapter.Title = *req.Title
	}
	if req.Content != nil {
		chapter.Content = req.Content
	}
	statusChanged := false
	if req.Status != nil && *req.Status != chapter.Status {
		chapter.Status = *req.Status
		statusChanged = true
	}

	chapter.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, chapter); err != nil {
		return nil, err
	}

	// Unpublishing the last published chapter pulls the book back to
	// draft. The chapter write itself is already committed; the
	// cascade is bookkeeping on top of it.
	if statusChanged && chapter.Status == model.StatusDraft {
		s.syncBookPublishState(ctx, chapter.BookID)
	}
	return chapter, nil
}

func (s *ChapterService) Delete(ctx context.Context, ownerID, chapterID int64) error {
	chapter, err := s.repo.GetOwned(ctx, ownerID, chapterID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, chapter.ID); err != nil {
		return err
	}

	if chapter.Status == model.StatusPublished {
		s.syncBookPublishState(ctx, chapter.BookID)
	}
	return nil
}

func (s *ChapterService) Get(ctx context.Context, viewerID, chapterID int64) (*model.Chapter, error) {
	chapter, err := s.repo.GetByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	book, err := s.books.GetByID(ctx, chapter.BookID)
	if err != nil {
		if errors.Is(err, bookmodel.ErrBookNotFound) {
			// Book in the trash: its chapters are unreachable.
			return nil, model.ErrChapterNotFound
		}
		return nil, err
	}

	isOwner := book.UserID == viewerID
	if !isOwner && (book.Status != bookmodel.StatusPublished || chapter.Status != model.StatusPublished) {
		return nil, model.ErrChapterNotFound
	}
	return chapter, nil
}

func (s *ChapterService) ListByBookSlug(ctx context.Context, viewerID int64, bookSlug string) ([]model.Chapter, error) {
	book, err := s.books.GetBySlug(ctx, bookSlug)
	if err != nil {
		if errors.Is(err, bookmodel.ErrBookNotFound) {
			return nil, model.ErrChapterNotFound
		}
		return nil, err
	}

	isOwner := book.UserID == viewerID
	if !isOwner && book.Status != bookmodel.StatusPublished {
		return nil, model.ErrChapterNotFound
	}
	return s.repo.ListByBook(ctx, book.ID, !isOwner)
}

// syncBookPublishState enforces the invariant that a published book has
// at least one published chapter. Idempotent: a book already in draft
// is left alone, so concurrent cascades converge. Failures are logged,
// never surfaced; the triggering chapter write has already succeeded.
func (s *ChapterService) syncBookPublishState(ctx context.Context, bookID int64) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		log.Warn().Err(err).Int64("book_id", bookID).Msg("Publish-state sync: book lookup failed")
		return
	}
	if book.Status != bookmodel.StatusPublished {
		return
	}

	published, err := s.repo.CountPublishedForBook(ctx, bookID)
	if err != nil {
		log.Warn().Err(err).Int64("book_id", bookID).Msg("Publish-state sync: chapter count failed")
		return
	}
	if published > 0 {
		return
	}

	if err := s.books.SetStatus(ctx, bookID, bookmodel.StatusDraft); err != nil {
		log.Error().Err(err).Int64("book_id", bookID).Msg("Publish-state sync: failed to unpublish book")
		return
	}

	log.Info().Int64("book_id", bookID).Msg("Book unpublished: last published chapter removed")
	s.bus.Emit(events.NewEvent(events.BookUnpublished, bookID))

	if err := s.cache.DeletePattern(ctx, listCachePattern); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate book list cache")
	}
}
