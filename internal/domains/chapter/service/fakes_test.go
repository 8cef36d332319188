package service

import (
	"context"
	"sync"
	"time"

	bookmodel "bookrealm-backend/internal/domains/book/model"
	bookrepo "bookrealm-backend/internal/domains/book/repository"
	"bookrealm-backend/internal/domains/chapter/model"
)

type fakeChapterRepo struct {
	mu       sync.Mutex
	nextID   int64
	chapters map[int64]*model.Chapter

	// ownerOf maps book id to owner id so GetOwned can enforce
	// ownership without a real join.
	ownerOf map[int64]int64

	trashedBooks map[int64]bool
}

func newFakeChapterRepo() *fakeChapterRepo {
	return &fakeChapterRepo{
		chapters:     make(map[int64]*model.Chapter),
		ownerOf:      make(map[int64]int64),
		trashedBooks: make(map[int64]bool),
	}
}

func (r *fakeChapterRepo) seed(ch model.Chapter) *model.Chapter {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ch.ID = r.nextID
	r.chapters[ch.ID] = &ch
	return &ch
}

func (r *fakeChapterRepo) Create(_ context.Context, chapter *model.Chapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	chapter.ID = r.nextID
	stored := *chapter
	r.chapters[chapter.ID] = &stored
	return nil
}

func (r *fakeChapterRepo) GetByID(_ context.Context, id int64) (*model.Chapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch, ok := r.chapters[id]
	if !ok {
		return nil, model.ErrChapterNotFound
	}
	out := *ch
	return &out, nil
}

func (r *fakeChapterRepo) GetOwned(_ context.Context, ownerID, chapterID int64) (*model.Chapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch, ok := r.chapters[chapterID]
	if !ok || r.ownerOf[ch.BookID] != ownerID || r.trashedBooks[ch.BookID] {
		return nil, model.ErrChapterNotFound
	}
	out := *ch
	return &out, nil
}

func (r *fakeChapterRepo) ListByBook(_ context.Context, bookID int64, publishedOnly bool) ([]model.Chapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Chapter
	for _, ch := range r.chapters {
		if ch.BookID != bookID {
			continue
		}
		if publishedOnly && ch.Status != model.StatusPublished {
			continue
		}
		out = append(out, *ch)
	}
	return out, nil
}

func (r *fakeChapterRepo) CountPublishedForBook(_ context.Context, bookID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, ch := range r.chapters {
		if ch.BookID == bookID && ch.Status == model.StatusPublished {
			count++
		}
	}
	return count, nil
}

func (r *fakeChapterRepo) Update(_ context.Context, chapter *model.Chapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chapters[chapter.ID]; !ok {
		return model.ErrChapterNotFound
	}
	stored := *chapter
	r.chapters[chapter.ID] = &stored
	return nil
}

func (r *fakeChapterRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chapters[id]; !ok {
		return model.ErrChapterNotFound
	}
	delete(r.chapters, id)
	return nil
}

// fakeBookStore covers the handful of book repository methods the
// chapter service touches. The embedded interface panics on anything
// else, which is exactly what a test should do.
type fakeBookStore struct {
	bookrepo.RepositoryInterface

	mu    sync.Mutex
	books map[int64]*bookmodel.Book

	statusWrites []int64
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{books: make(map[int64]*bookmodel.Book)}
}

func (s *fakeBookStore) seed(b bookmodel.Book) *bookmodel.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := b
	s.books[b.ID] = &stored
	return &stored
}

func (s *fakeBookStore) GetByID(_ context.Context, id int64) (*bookmodel.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[id]
	if !ok || b.DeletedAt != nil {
		return nil, bookmodel.ErrBookNotFound
	}
	out := *b
	return &out, nil
}

func (s *fakeBookStore) GetBySlug(_ context.Context, slug string) (*bookmodel.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.Slug == slug && b.DeletedAt == nil {
			out := *b
			return &out, nil
		}
	}
	return nil, bookmodel.ErrBookNotFound
}

func (s *fakeBookStore) GetOwned(_ context.Context, ownerID int64, slug string) (*bookmodel.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.Slug == slug && b.UserID == ownerID && b.DeletedAt == nil {
			out := *b
			return &out, nil
		}
	}
	return nil, bookmodel.ErrBookNotFound
}

func (s *fakeBookStore) SetStatus(_ context.Context, id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[id]
	if !ok {
		return bookmodel.ErrBookNotFound
	}
	b.Status = status
	s.statusWrites = append(s.statusWrites, id)
	return nil
}

func (s *fakeBookStore) statusOf(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books[id].Status
}

type noopCache struct {
	mu       sync.Mutex
	patterns []string
}

func (c *noopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (c *noopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (c *noopCache) Delete(context.Context, ...string) error { return nil }

func (c *noopCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns = append(c.patterns, pattern)
	return nil
}

func (c *noopCache) Ping(context.Context) error { return nil }
