package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/hibiken/asynq"

	"bookrealm-backend/internal/domains/book/model"
	"bookrealm-backend/internal/domains/book/repository"
)

// fakeBookRepo keeps books in a map for the write-path tests and serves
// canned pages for the selector queries.
type fakeBookRepo struct {
	mu     sync.Mutex
	nextID int64
	books  map[int64]*model.Book

	searchCalls   []repository.SearchTier
	searchResults map[repository.SearchTier]fakePage
	lastFilter    model.ListFilter

	byCategory fakePage
	popular    fakePage
	related    fakePage
}

type fakePage struct {
	items []model.Book
	total int
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{
		books:         make(map[int64]*model.Book),
		searchResults: make(map[repository.SearchTier]fakePage),
	}
}

func (f *fakeBookRepo) seed(book model.Book) *model.Book {
	f.mu.Lock()
	defer f.mu.Unlock()
	if book.ID == 0 {
		f.nextID++
		book.ID = f.nextID
	} else if book.ID > f.nextID {
		f.nextID = book.ID
	}
	f.books[book.ID] = &book
	return &book
}

func (f *fakeBookRepo) get(id int64) model.Book {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.books[id]
}

func (f *fakeBookRepo) activeSlugHolder(slug string, excludeID int64) *model.Book {
	for _, b := range f.books {
		if b.Slug == slug && b.DeletedAt == nil && b.ID != excludeID {
			return b
		}
	}
	return nil
}

func (f *fakeBookRepo) Create(ctx context.Context, book *model.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.activeSlugHolder(book.Slug, 0) != nil {
		return model.ErrDuplicateTitle
	}
	f.nextID++
	book.ID = f.nextID
	stored := *book
	f.books[book.ID] = &stored
	return nil
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[id]
	if !ok || b.DeletedAt != nil {
		return nil, model.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookRepo) GetBySlug(ctx context.Context, slug string) (*model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b := f.activeSlugHolder(slug, 0); b != nil {
		copied := *b
		return &copied, nil
	}
	return nil, model.ErrBookNotFound
}

func (f *fakeBookRepo) GetOwned(ctx context.Context, ownerID int64, slug string) (*model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b := f.activeSlugHolder(slug, 0); b != nil && b.UserID == ownerID {
		copied := *b
		return &copied, nil
	}
	return nil, model.ErrBookNotFound
}

func (f *fakeBookRepo) SlugInUse(ctx context.Context, slug string, excludeID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activeSlugHolder(slug, excludeID) != nil, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, book *model.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.books[book.ID]; !ok {
		return model.ErrBookNotFound
	}
	if f.activeSlugHolder(book.Slug, book.ID) != nil {
		return model.ErrDuplicateTitle
	}
	stored := *book
	f.books[book.ID] = &stored
	return nil
}

func (f *fakeBookRepo) SetStatus(ctx context.Context, id int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[id]
	if !ok {
		return model.ErrBookNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookRepo) MarkDeleted(ctx context.Context, id int64, deletedAt, purgeAt time.Time, expiryDays int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[id]
	if !ok || b.DeletedAt != nil {
		return model.ErrBookNotFound
	}
	b.DeletedAt = &deletedAt
	b.PurgeAt = &purgeAt
	b.ExpiryDays = &expiryDays
	b.Status = model.StatusDraft
	return nil
}

func (f *fakeBookRepo) Restore(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[id]
	if !ok || b.DeletedAt == nil {
		return model.ErrBookNotFound
	}
	b.DeletedAt = nil
	b.PurgeAt = nil
	b.ExpiryDays = nil
	return nil
}

func (f *fakeBookRepo) GetTrashed(ctx context.Context, ownerID int64, slug string) (*model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.books {
		if b.Slug == slug && b.UserID == ownerID && b.DeletedAt != nil {
			copied := *b
			return &copied, nil
		}
	}
	return nil, model.ErrBookNotFound
}

func (f *fakeBookRepo) ListTrashed(ctx context.Context, ownerID int64) ([]model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Book
	for _, b := range f.books {
		if b.UserID == ownerID && b.DeletedAt != nil {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookRepo) ListDeleted(ctx context.Context) ([]model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Book
	for _, b := range f.books {
		if b.DeletedAt != nil {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookRepo) UpdateExpiryDays(ctx context.Context, id int64, days int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.books[id]; ok {
		b.ExpiryDays = &days
	}
	return nil
}

func (f *fakeBookRepo) HardDelete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

func (f *fakeBookRepo) IncrementFavoriteCount(ctx context.Context, bookID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.books[bookID]; ok {
		b.FavoriteCount++
	}
	return nil
}

func (f *fakeBookRepo) DecrementFavoriteCount(ctx context.Context, bookID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.books[bookID]; ok && b.FavoriteCount > 0 {
		b.FavoriteCount--
	}
	return nil
}

func (f *fakeBookRepo) Search(ctx context.Context, tier repository.SearchTier, filter model.ListFilter, page model.Page) ([]model.Book, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls = append(f.searchCalls, tier)
	f.lastFilter = filter
	result := f.searchResults[tier]
	return result.items, result.total, nil
}

func (f *fakeBookRepo) ListByCategoryIDs(ctx context.Context, categoryIDs []int64, page model.Page) ([]model.Book, int, error) {
	return f.byCategory.items, f.byCategory.total, nil
}

func (f *fakeBookRepo) ListPopular(ctx context.Context, page model.Page) ([]model.Book, int, error) {
	return f.popular.items, f.popular.total, nil
}

func (f *fakeBookRepo) ListRelated(ctx context.Context, anchor *model.Book, page model.Page) ([]model.Book, int, error) {
	return f.related.items, f.related.total, nil
}

func (f *fakeBookRepo) ListByOwner(ctx context.Context, ownerID int64, includeDeleted bool, page model.Page) ([]model.Book, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Book
	for _, b := range f.books {
		if b.UserID != ownerID {
			continue
		}
		if b.DeletedAt != nil && !includeDeleted {
			continue
		}
		out = append(out, *b)
	}
	return out, len(out), nil
}

type fakeChapterCounter struct {
	published map[int64]int
}

func (f *fakeChapterCounter) CountPublishedForBook(ctx context.Context, bookID int64) (int, error) {
	return f.published[bookID], nil
}

type fakeCategoryDirectory struct {
	mu        sync.Mutex
	existing  map[int64]bool
	increased []int64
	decreased []int64
}

func (f *fakeCategoryDirectory) Exists(ctx context.Context, id int64) (bool, error) {
	return f.existing[id], nil
}

func (f *fakeCategoryDirectory) IncreasePriority(ctx context.Context, id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.increased = append(f.increased, id)
}

func (f *fakeCategoryDirectory) DecreasePriority(ctx context.Context, id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decreased = append(f.decreased, id)
}

type fakeFavoriteChecker struct {
	favorited map[int64]bool
}

func (f *fakeFavoriteChecker) IsFavorite(ctx context.Context, userID, bookID int64) (bool, error) {
	return f.favorited[bookID], nil
}

func (f *fakeFavoriteChecker) FavoritedSet(ctx context.Context, userID int64, bookIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool)
	for _, id := range bookIDs {
		if f.favorited[id] {
			out[id] = true
		}
	}
	return out, nil
}

type fakeInterestLookup struct {
	ids []int64
}

func (f *fakeInterestLookup) CategoryIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	return f.ids, nil
}

type fakeImageStore struct {
	mu        sync.Mutex
	stored    []string
	deleted   []string
	failStore bool
}

func (f *fakeImageStore) Store(ctx context.Context, folder, filename string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failStore {
		return "", errStoreFailed
	}
	url := "https://img.test/" + folder + "/" + filename
	f.stored = append(f.stored, url)
	return url, nil
}

func (f *fakeImageStore) Delete(ctx context.Context, objectURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, objectURL)
	return nil
}

var errStoreFailed = &storeError{}

type storeError struct{}

func (*storeError) Error() string { return "store failed" }

// memoryCache implements pkg/cache.Cache for tests.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *memoryCache) Ping(ctx context.Context) error { return nil }

func (m *memoryCache) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func (f *fakeEnqueuer) taskTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, t := range f.tasks {
		out = append(out, t.Type())
	}
	return out
}
