package service

import (
	"context"
	"time"

	bookmodel "bookrealm-backend/internal/domains/book/model"
	chaptermodel "bookrealm-backend/internal/domains/chapter/model"
	"bookrealm-backend/internal/domains/progress/model"
	"bookrealm-backend/internal/domains/progress/repository"
)

type ProgressService struct {
	repo     repository.RepositoryInterface
	books    BookResolver
	chapters ChapterResolver
}

func NewService(repo repository.RepositoryInterface, books BookResolver, chapters ChapterResolver) ServiceInterface {
	return &ProgressService{
		repo:     repo,
		books:    books,
		chapters: chapters,
	}
}

func (s *ProgressService) Start(ctx context.Context, userID int64, bookSlug string, req model.SaveProgressRequest) (*model.Progress, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book, chapter, err := s.resolve(ctx, userID, bookSlug, req.ChapterID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	progress := &model.Progress{
		UserID:    userID,
		BookID:    book.ID,
		ChapterID: chapter.ID,
		Position:  req.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *ProgressService) Advance(ctx context.Context, userID int64, bookSlug string, req model.SaveProgressRequest) (*model.Progress, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book, chapter, err := s.resolve(ctx, userID, bookSlug, req.ChapterID)
	if err != nil {
		return nil, err
	}

	progress, err := s.repo.GetByUserAndBook(ctx, userID, book.ID)
	if err != nil {
		return nil, err
	}

	progress.ChapterID = chapter.ID
	progress.Position = req.Position
	progress.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *ProgressService) Get(ctx context.Context, userID int64, bookSlug string) (*model.Progress, error) {
	book, err := s.books.GetBySlug(ctx, bookSlug)
	if err != nil {
		return nil, err
	}
	if book.Status != bookmodel.StatusPublished && book.UserID != userID {
		return nil, bookmodel.ErrBookNotFound
	}
	return s.repo.GetByUserAndBook(ctx, userID, book.ID)
}

// resolve checks that the book is visible to the reader and that the
// chapter is a readable chapter of that book. Drafts of either are only
// visible to the book's author; a chapter from another book is reported
// as NotFound, not as a validation error, so existence is not leaked.
func (s *ProgressService) resolve(ctx context.Context, userID int64, bookSlug string, chapterID int64) (*bookmodel.Book, *chaptermodel.Chapter, error) {
	book, err := s.books.GetBySlug(ctx, bookSlug)
	if err != nil {
		return nil, nil, err
	}

	isOwner := book.UserID == userID
	if !isOwner && book.Status != bookmodel.StatusPublished {
		return nil, nil, bookmodel.ErrBookNotFound
	}

	chapter, err := s.chapters.GetByID(ctx, chapterID)
	if err != nil {
		return nil, nil, err
	}
	if chapter.BookID != book.ID {
		return nil, nil, chaptermodel.ErrChapterNotFound
	}
	if !isOwner && chapter.Status != chaptermodel.StatusPublished {
		return nil, nil, chaptermodel.ErrChapterNotFound
	}
	return book, chapter, nil
}
