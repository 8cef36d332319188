package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"bookrealm-backend/internal/domains/book/model"
	"bookrealm-backend/internal/domains/book/repository"
)

// GetRecommended selects books from the viewer's interested categories.
// Anonymous viewers, viewers without interests, and empty category
// matches all fall back to the newest published books, so the endpoint
// never returns an empty shelf while the catalogue has content.
func (s *BookService) GetRecommended(ctx context.Context, viewerID int64, page model.Page) ([]model.Book, model.PageMeta, error) {
	page = page.Normalized()

	if viewerID != 0 {
		categoryIDs, err := s.interests.CategoryIDsForUser(ctx, viewerID)
		if err != nil {
			log.Warn().Err(err).Int64("viewer_id", viewerID).Msg("Interest lookup failed, serving fallback")
		} else if len(categoryIDs) > 0 {
			books, total, err := s.repo.ListByCategoryIDs(ctx, categoryIDs, page)
			if err != nil {
				return nil, model.PageMeta{}, err
			}
			if total > 0 {
				s.annotateFavorites(ctx, viewerID, books)
				return books, model.NewPageMeta(total, page), nil
			}
		}
	}

	filter := model.ListFilter{Sort: model.SortNewest}
	books, total, err := s.repo.Search(ctx, repository.TierNone, filter, page)
	if err != nil {
		return nil, model.PageMeta{}, err
	}

	s.annotateFavorites(ctx, viewerID, books)
	return books, model.NewPageMeta(total, page), nil
}

// GetPopular lists published books by favorite count.
func (s *BookService) GetPopular(ctx context.Context, viewerID int64, page model.Page) ([]model.Book, model.PageMeta, error) {
	page = page.Normalized()

	books, total, err := s.repo.ListPopular(ctx, page)
	if err != nil {
		return nil, model.PageMeta{}, err
	}

	s.annotateFavorites(ctx, viewerID, books)
	return books, model.NewPageMeta(total, page), nil
}

// GetRelated lists books sharing the anchor's category or overlapping
// its keywords. The anchor naturally matches its own predicate, so it
// is stripped after the query and the total adjusted with it.
func (s *BookService) GetRelated(ctx context.Context, viewerID int64, anchorSlug string, page model.Page) ([]model.Book, model.PageMeta, error) {
	page = page.Normalized()

	anchor, err := s.repo.GetBySlug(ctx, anchorSlug)
	if err != nil {
		return nil, model.PageMeta{}, err
	}

	books, total, err := s.repo.ListRelated(ctx, anchor, page)
	if err != nil {
		return nil, model.PageMeta{}, err
	}

	filtered := books[:0]
	anchorOnPage := false
	for _, book := range books {
		if book.ID == anchor.ID {
			anchorOnPage = true
			continue
		}
		filtered = append(filtered, book)
	}
	// The anchor counts towards the repository total whether or not it
	// landed on this page.
	if total > 0 && (anchorOnPage || anchorMatchesPredicate(anchor)) {
		total--
	}

	s.annotateFavorites(ctx, viewerID, filtered)
	return filtered, model.NewPageMeta(total, page), nil
}

// anchorMatchesPredicate reports whether the anchor would match its own
// related-books query, which is the case whenever the query had any
// predicate at all and the anchor is published.
func anchorMatchesPredicate(anchor *model.Book) bool {
	if anchor.Status != model.StatusPublished {
		return false
	}
	return anchor.CategoryID != nil || len(anchor.Keywords) > 0
}
