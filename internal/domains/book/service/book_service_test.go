package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookrealm-backend/internal/domains/book/model"
	"bookrealm-backend/internal/events"
	"bookrealm-backend/internal/shared"
)

type testEnv struct {
	svc        ServiceInterface
	repo       *fakeBookRepo
	chapters   *fakeChapterCounter
	categories *fakeCategoryDirectory
	favorites  *fakeFavoriteChecker
	interests  *fakeInterestLookup
	images     *fakeImageStore
	cache      *memoryCache
	bus        *events.Bus
	queue      *fakeEnqueuer
}

func newTestEnv() *testEnv {
	env := &testEnv{
		repo:       newFakeBookRepo(),
		chapters:   &fakeChapterCounter{published: map[int64]int{}},
		categories: &fakeCategoryDirectory{existing: map[int64]bool{1: true, 2: true}},
		favorites:  &fakeFavoriteChecker{favorited: map[int64]bool{}},
		interests:  &fakeInterestLookup{},
		images:     &fakeImageStore{},
		cache:      newMemoryCache(),
		bus:        events.NewBus(),
		queue:      &fakeEnqueuer{},
	}
	env.svc = NewService(
		env.repo, env.chapters, env.categories, env.favorites, env.interests,
		env.images, env.cache, env.bus, env.queue, 30,
	)
	return env
}

// capturedEvents subscribes to an event name and collects deliveries.
func capturedEvents(bus *events.Bus, name string) func() []events.Event {
	var mu sync.Mutex
	var got []events.Event
	bus.Subscribe(name, func(ctx context.Context, ev events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, ev)
		return nil
	})
	return func() []events.Event {
		bus.Drain()
		mu.Lock()
		defer mu.Unlock()
		return got
	}
}

func ptr[T any](v T) *T { return &v }

func TestCreateBook(t *testing.T) {
	env := newTestEnv()

	book, err := env.svc.Create(context.Background(), 7, nil, model.CreateBookRequest{
		Title:      "Dragon Tale",
		CategoryID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "dragon-tale-7", book.Slug)
	assert.Equal(t, model.StatusDraft, book.Status)
	assert.Equal(t, int64(7), book.UserID)
	assert.NotZero(t, book.ID)
	assert.Equal(t, []int64{1}, env.categories.increased)
}

func TestCreateBookDuplicateTitle(t *testing.T) {
	env := newTestEnv()
	env.repo.seed(model.Book{Title: "Dragon Tale", Slug: "dragon-tale-7", UserID: 7})

	_, err := env.svc.Create(context.Background(), 7, nil, model.CreateBookRequest{
		Title:      "Dragon Tale",
		CategoryID: 1,
	})
	assert.ErrorIs(t, err, model.ErrDuplicateTitle)

	// Same title under a different owner derives a different slug.
	_, err = env.svc.Create(context.Background(), 8, nil, model.CreateBookRequest{
		Title:      "Dragon Tale",
		CategoryID: 1,
	})
	assert.NoError(t, err)
}

func TestCreateBookTrashedSlugIsReusable(t *testing.T) {
	env := newTestEnv()
	now := time.Now()
	env.repo.seed(model.Book{Title: "Dragon Tale", Slug: "dragon-tale-7", UserID: 7, DeletedAt: &now})

	_, err := env.svc.Create(context.Background(), 7, nil, model.CreateBookRequest{
		Title:      "Dragon Tale",
		CategoryID: 1,
	})
	assert.NoError(t, err)
}

func TestCreateBookUnknownCategory(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Create(context.Background(), 7, nil, model.CreateBookRequest{
		Title:      "Dragon Tale",
		CategoryID: 99,
	})
	assert.ErrorIs(t, err, model.ErrCategoryNotFound)
	assert.Empty(t, env.categories.increased)
}

func TestCreateBookCoverStoreFailureAborts(t *testing.T) {
	env := newTestEnv()
	env.images.failStore = true

	_, err := env.svc.Create(context.Background(), 7, &UploadedImage{Filename: "c.png"}, model.CreateBookRequest{
		Title:      "Dragon Tale",
		CategoryID: 1,
	})
	require.Error(t, err)
	assert.Empty(t, env.repo.books)
}

func TestUpdatePublishRequiresPublishedChapter(t *testing.T) {
	env := newTestEnv()
	seeded := env.repo.seed(model.Book{Title: "Dragon Tale", Slug: "dragon-tale-7", UserID: 7, Status: model.StatusDraft})

	_, err := env.svc.Update(context.Background(), 7, "dragon-tale-7", nil, model.UpdateBookRequest{
		Title:  ptr("Dragon Saga"),
		Status: ptr(model.StatusPublished),
	})
	assert.ErrorIs(t, err, model.ErrNoPublishedChapters)

	// The guard rejects before anything persists: title included.
	stored := env.repo.get(seeded.ID)
	assert.Equal(t, "Dragon Tale", stored.Title)
	assert.Equal(t, model.StatusDraft, stored.Status)
}

func TestUpdatePublishSucceedsWithPublishedChapter(t *testing.T) {
	env := newTestEnv()
	seeded := env.repo.seed(model.Book{Title: "Dragon Tale", Slug: "dragon-tale-7", UserID: 7, Status: model.StatusDraft})
	env.chapters.published[seeded.ID] = 2

	book, err := env.svc.Update(context.Background(), 7, "dragon-tale-7", nil, model.UpdateBookRequest{
		Status: ptr(model.StatusPublished),
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, book.Status)
}

func TestUpdateTitleRederivesSlug(t *testing.T) {
	env := newTestEnv()
	env.repo.seed(model.Book{Title: "Dragon Tale", Slug: "dragon-tale-7", UserID: 7, Status: model.StatusDraft})

	book, err := env.svc.Update(context.Background(), 7, "dragon-tale-7", nil, model.UpdateBookRequest{
		Title: ptr("Phoenix Song"),
	})
	require.NoError(t, err)
	assert.Equal(t, "phoenix-song-7", book.Slug)
}

func TestUpdateTitleSlugConflict(t *testing.T) {
	env := newTestEnv()
	env.repo.seed(model.Book{Title: "Phoenix Song", Slug: "phoenix-song-7", UserID: 7})
	env.repo.seed(model.Book{Title: "Dragon Tale", Slug: "dragon-tale-7", UserID: 7})

	_, err := env.svc.Update(context.Background(), 7, "dragon-tale-7", nil, model.UpdateBookRequest{
		Title: ptr("Phoenix Song"),
	})
	assert.ErrorIs(t, err, model.ErrDuplicateTitle)
}

func TestUpdateForeignBookIsNotFound(t *testing.T) {
	env := newTestEnv()
	env.repo.seed(model.Book{Title: "Dragon Tale", Slug: "dragon-tale-7", UserID: 7})

	_, err := env.svc.Update(context.Background(), 8, "dragon-tale-7", nil, model.UpdateBookRequest{
		Title: ptr("Stolen"),
	})
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestUpdateExplicitUnpublishEmitsEvent(t *testing.T) {
	env := newTestEnv()
	got := capturedEvents(env.bus, events.BookUnpublished)
	seeded := env.repo.seed(model.Book{Title: "Dragon Tale", Slug: "dragon-tale-7", UserID: 7, Status: model.StatusPublished})

	book, err := env.svc.Update(context.Background(), 7, "dragon-tale-7", nil, model.UpdateBookRequest{
		Status: ptr(model.StatusDraft),
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, book.Status)

	evs := got()
	require.Len(t, evs, 1)
	assert.Equal(t, seeded.ID, evs[0].BookID)
}

func TestUpdateCategorySwapAdjustsPriorities(t *testing.T) {
	env := newTestEnv()
	env.repo.seed(model.Book{Title: "Dragon Tale", Slug: "dragon-tale-7", UserID: 7, CategoryID: ptr(int64(1))})

	_, err := env.svc.Update(context.Background(), 7, "dragon-tale-7", nil, model.UpdateBookRequest{
		CategoryID: ptr(int64(2)),
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, env.categories.decreased)
	assert.Equal(t, []int64{2}, env.categories.increased)
}

func TestUpdateCoverReplacementEnqueuesCleanup(t *testing.T) {
	env := newTestEnv()
	env.repo.seed(model.Book{Title: "Dragon Tale", Slug: "dragon-tale-7", UserID: 7, CoverURL: ptr("https://img.test/book-covers/old.png")})

	_, err := env.svc.Update(context.Background(), 7, "dragon-tale-7", &UploadedImage{Filename: "new.png"}, model.UpdateBookRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{shared.TypeDeleteBookImage}, env.queue.taskTypes())
}

func TestSoftDelete(t *testing.T) {
	env := newTestEnv()
	got := capturedEvents(env.bus, events.BookUnpublished)
	seeded := env.repo.seed(model.Book{Title: "Dragon Tale", Slug: "dragon-tale-7", UserID: 7, Status: model.StatusPublished})

	book, err := env.svc.SoftDelete(context.Background(), 7, "dragon-tale-7")
	require.NoError(t, err)

	assert.Equal(t, model.StatusDraft, book.Status)
	require.NotNil(t, book.DeletedAt)
	require.NotNil(t, book.PurgeAt)
	require.NotNil(t, book.ExpiryDays)
	assert.Equal(t, 30, *book.ExpiryDays)
	assert.WithinDuration(t, book.DeletedAt.Add(30*24*time.Hour), *book.PurgeAt, time.Second)

	// Gone from the active set, present in the trash.
	_, err = env.repo.GetBySlug(context.Background(), "dragon-tale-7")
	assert.ErrorIs(t, err, model.ErrBookNotFound)
	_, err = env.repo.GetTrashed(context.Background(), 7, "dragon-tale-7")
	assert.NoError(t, err)

	evs := got()
	require.Len(t, evs, 1)
	assert.Equal(t, seeded.ID, evs[0].BookID)
}

func TestSoftDeleteDraftEmitsNothing(t *testing.T) {
	env := newTestEnv()
	got := capturedEvents(env.bus, events.BookUnpublished)
	env.repo.seed(model.Book{Title: "Dragon Tale", Slug: "dragon-tale-7", UserID: 7, Status: model.StatusDraft})

	_, err := env.svc.SoftDelete(context.Background(), 7, "dragon-tale-7")
	require.NoError(t, err)
	assert.Empty(t, got())
}

func trashedBook(title, slug string, ownerID int64) model.Book {
	now := time.Now()
	purge := now.Add(30 * 24 * time.Hour)
	days := 30
	return model.Book{
		Title: title, Slug: slug, UserID: ownerID, Status: model.StatusDraft,
		DeletedAt: &now, PurgeAt: &purge, ExpiryDays: &days,
	}
}

func TestRestoreBatchIsAllOrNothing(t *testing.T) {
	env := newTestEnv()
	a := env.repo.seed(trashedBook("A", "a-7", 7))
	b := env.repo.seed(trashedBook("B", "b-7", 7))

	err := env.svc.Restore(context.Background(), 7, []string{"a-7", "b-7", "ghost-7"})
	require.ErrorIs(t, err, model.ErrBookNotFound)
	assert.Contains(t, err.Error(), "ghost-7")

	// Nothing was restored.
	assert.NotNil(t, env.repo.get(a.ID).DeletedAt)
	assert.NotNil(t, env.repo.get(b.ID).DeletedAt)
}

func TestRestoreClearsTrashStateButStaysDraft(t *testing.T) {
	env := newTestEnv()
	a := env.repo.seed(trashedBook("A", "a-7", 7))

	require.NoError(t, env.svc.Restore(context.Background(), 7, []string{"a-7"}))

	stored := env.repo.get(a.ID)
	assert.Nil(t, stored.DeletedAt)
	assert.Nil(t, stored.PurgeAt)
	assert.Nil(t, stored.ExpiryDays)
	assert.Equal(t, model.StatusDraft, stored.Status)
}

func TestRestoreIgnoresForeignTrash(t *testing.T) {
	env := newTestEnv()
	env.repo.seed(trashedBook("A", "a-7", 7))

	err := env.svc.Restore(context.Background(), 8, []string{"a-7"})
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestRemoveRequiresTrash(t *testing.T) {
	env := newTestEnv()
	env.repo.seed(model.Book{Title: "Active", Slug: "active-7", UserID: 7})

	err := env.svc.Remove(context.Background(), 7, []string{"active-7"})
	require.ErrorIs(t, err, model.ErrBookNotInTrash)
	assert.Contains(t, err.Error(), "active-7")
}

func TestRemoveHardDeletesAndCleansUp(t *testing.T) {
	env := newTestEnv()
	book := trashedBook("A", "a-7", 7)
	book.CoverURL = ptr("https://img.test/book-covers/a.png")
	book.CategoryID = ptr(int64(1))
	seeded := env.repo.seed(book)

	require.NoError(t, env.svc.Remove(context.Background(), 7, []string{"a-7"}))

	env.repo.mu.Lock()
	_, exists := env.repo.books[seeded.ID]
	env.repo.mu.Unlock()
	assert.False(t, exists)
	assert.Equal(t, []string{shared.TypeDeleteBookImage}, env.queue.taskTypes())
	assert.Equal(t, []int64{1}, env.categories.decreased)
}

func TestSweepTrash(t *testing.T) {
	env := newTestEnv()

	expired := trashedBook("Old", "old-7", 7)
	past := time.Now().Add(-time.Hour)
	expired.PurgeAt = &past
	expired.CoverURL = ptr("https://img.test/book-covers/old.png")
	expiredSeeded := env.repo.seed(expired)

	fresh := trashedBook("Fresh", "fresh-7", 7)
	staleDays := 30
	fresh.ExpiryDays = &staleDays
	halfway := time.Now().Add(15 * 24 * time.Hour)
	fresh.PurgeAt = &halfway
	freshSeeded := env.repo.seed(fresh)

	require.NoError(t, env.svc.SweepTrash(context.Background()))

	env.repo.mu.Lock()
	_, expiredExists := env.repo.books[expiredSeeded.ID]
	env.repo.mu.Unlock()
	assert.False(t, expiredExists, "expired book should be purged")
	assert.Equal(t, []string{shared.TypeDeleteBookImage}, env.queue.taskTypes())

	stored := env.repo.get(freshSeeded.ID)
	require.NotNil(t, stored.ExpiryDays)
	assert.Equal(t, 15, *stored.ExpiryDays, "countdown should be refreshed")
}

func TestListTrashedRecomputesCountdown(t *testing.T) {
	env := newTestEnv()
	book := trashedBook("A", "a-7", 7)
	halfDay := time.Now().Add(12 * time.Hour)
	book.PurgeAt = &halfDay
	env.repo.seed(book)

	books, err := env.svc.ListTrashed(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.NotNil(t, books[0].ExpiryDays)
	assert.Equal(t, 1, *books[0].ExpiryDays)
}
