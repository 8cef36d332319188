package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"bookrealm-backend/internal/domains/book/model"
	"bookrealm-backend/internal/domains/book/repository"
)

const listCacheTTL = 5 * time.Minute

// cachedList is the redis representation of one list page.
type cachedList struct {
	Items []model.Book   `json:"items"`
	Meta  model.PageMeta `json:"meta"`
}

// ListPublished is the public catalogue listing: tiered search, filters,
// sort and pagination, cached per request shape and viewer.
func (s *BookService) ListPublished(ctx context.Context, viewerID int64, filter model.ListFilter, page model.Page) ([]model.Book, model.PageMeta, error) {
	if err := filter.Validate(); err != nil {
		return nil, model.PageMeta{}, err
	}
	page = page.Normalized()

	cacheKey := model.ListCacheKey(filter, page, viewerID)
	var cached cachedList
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		log.Warn().Err(err).Msg("Book list cache read failed")
	} else if found {
		return cached.Items, cached.Meta, nil
	}

	books, total, err := s.searchTiered(ctx, filter, page)
	if err != nil {
		return nil, model.PageMeta{}, err
	}

	s.annotateFavorites(ctx, viewerID, books)
	meta := model.NewPageMeta(total, page)

	if err := s.cache.Set(ctx, cacheKey, cachedList{Items: books, Meta: meta}, listCacheTTL); err != nil {
		log.Warn().Err(err).Msg("Book list cache write failed")
	}
	return books, meta, nil
}

// searchTiered walks the match tiers in order of strictness: title
// first, then keywords, then description. A tier is only consulted when
// every stricter tier came back empty, so one request never mixes
// results of different relevance.
func (s *BookService) searchTiered(ctx context.Context, filter model.ListFilter, page model.Page) ([]model.Book, int, error) {
	if filter.Search == "" {
		return s.repo.Search(ctx, repository.TierNone, filter, page)
	}

	tiers := []repository.SearchTier{
		repository.TierTitle,
		repository.TierKeywords,
		repository.TierDescription,
	}
	for _, tier := range tiers {
		books, total, err := s.repo.Search(ctx, tier, filter, page)
		if err != nil {
			return nil, 0, err
		}
		if total > 0 {
			return books, total, nil
		}
	}
	return nil, 0, nil
}

// ListMine returns the author's own books, drafts included, optionally
// with the trash.
func (s *BookService) ListMine(ctx context.Context, ownerID int64, includeDeleted bool, page model.Page) ([]model.Book, model.PageMeta, error) {
	page = page.Normalized()

	books, total, err := s.repo.ListByOwner(ctx, ownerID, includeDeleted, page)
	if err != nil {
		return nil, model.PageMeta{}, err
	}

	now := time.Now()
	for i := range books {
		if books[i].IsDeleted() {
			days := books[i].DaysUntilPurge(now)
			books[i].ExpiryDays = &days
		}
	}
	return books, model.NewPageMeta(total, page), nil
}

// GetBySlug resolves one book for display. Drafts are only visible to
// their author; everyone else gets NotFound rather than a hint that the
// slug exists.
func (s *BookService) GetBySlug(ctx context.Context, viewerID int64, slug string) (*model.Book, error) {
	book, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if book.Status != model.StatusPublished && book.UserID != viewerID {
		return nil, model.ErrBookNotFound
	}

	if viewerID != 0 {
		fav, err := s.favorites.IsFavorite(ctx, viewerID, book.ID)
		if err != nil {
			log.Warn().Err(err).Int64("book_id", book.ID).Msg("Favorite lookup failed")
		} else {
			book.IsFavorite = fav
		}
	}
	return book, nil
}

// annotateFavorites fills the per-viewer IsFavorite flag on a page of
// books. Annotation only: failures are logged and the page is served
// without flags.
func (s *BookService) annotateFavorites(ctx context.Context, viewerID int64, books []model.Book) {
	if viewerID == 0 || len(books) == 0 {
		return
	}

	ids := make([]int64, len(books))
	for i := range books {
		ids[i] = books[i].ID
	}

	favorited, err := s.favorites.FavoritedSet(ctx, viewerID, ids)
	if err != nil {
		log.Warn().Err(err).Int64("viewer_id", viewerID).Msg("Favorite set lookup failed")
		return
	}
	for i := range books {
		books[i].IsFavorite = favorited[books[i].ID]
	}
}
