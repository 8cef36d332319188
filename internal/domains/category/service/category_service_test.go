package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookrealm-backend/internal/domains/category/model"
)

type fakeCategoryRepo struct {
	mu         sync.Mutex
	nextID     int64
	categories map[int64]*model.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[int64]*model.Category)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	category.ID = r.nextID
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, model.ErrCategoryNotFound
	}
	out := *c
	return &out, nil
}

func (r *fakeCategoryRepo) GetByTitle(_ context.Context, title string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Title == title {
			out := *c
			return &out, nil
		}
	}
	return nil, model.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return model.ErrCategoryNotFound
	}
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return model.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) IncreasePriority(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return model.ErrCategoryNotFound
	}
	c.Priority++
	return nil
}

func (r *fakeCategoryRepo) DecreasePriority(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return model.ErrCategoryNotFound
	}
	if c.Priority > 0 {
		c.Priority--
	}
	return nil
}

type fakeImageStore struct {
	mu      sync.Mutex
	stored  []string
	deleted []string
}

func (f *fakeImageStore) Store(_ context.Context, folder, filename string, _ []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	url := fmt.Sprintf("https://cdn.test/%s/%s", folder, filename)
	f.stored = append(f.stored, url)
	return url, nil
}

func (f *fakeImageStore) Delete(_ context.Context, objectURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, objectURL)
	return nil
}

func newTestService() (*fakeCategoryRepo, *fakeImageStore, ServiceInterface) {
	repo := newFakeCategoryRepo()
	images := &fakeImageStore{}
	return repo, images, NewService(repo, images)
}

func ptr[T any](v T) *T { return &v }

func TestCreateCategory(t *testing.T) {
	_, images, svc := newTestService()

	category, err := svc.Create(context.Background(),
		&UploadedIcon{Filename: "fantasy.png", ContentType: "image/png", Data: []byte{1}},
		model.CreateCategoryRequest{Title: "Fantasy"})
	require.NoError(t, err)

	assert.NotZero(t, category.ID)
	assert.Zero(t, category.Priority)
	require.NotNil(t, category.Icon)
	assert.Equal(t, images.stored[0], *category.Icon)
}

func TestCreateCategoryDuplicateTitle(t *testing.T) {
	_, _, svc := newTestService()
	_, err := svc.Create(context.Background(), nil, model.CreateCategoryRequest{Title: "Fantasy"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), nil, model.CreateCategoryRequest{Title: "Fantasy"})
	assert.ErrorIs(t, err, model.ErrDuplicateCategory)
}

func TestCreateCategoryRejectsEmptyTitle(t *testing.T) {
	_, _, svc := newTestService()
	_, err := svc.Create(context.Background(), nil, model.CreateCategoryRequest{})
	assert.Error(t, err)
}

func TestUpdateCategoryReplacesIcon(t *testing.T) {
	_, images, svc := newTestService()
	created, err := svc.Create(context.Background(),
		&UploadedIcon{Filename: "old.png", ContentType: "image/png", Data: []byte{1}},
		model.CreateCategoryRequest{Title: "Fantasy"})
	require.NoError(t, err)
	oldIcon := *created.Icon

	updated, err := svc.Update(context.Background(), created.ID,
		&UploadedIcon{Filename: "new.png", ContentType: "image/png", Data: []byte{2}},
		model.UpdateCategoryRequest{Title: ptr("High Fantasy")})
	require.NoError(t, err)

	assert.Equal(t, "High Fantasy", updated.Title)
	assert.NotEqual(t, oldIcon, *updated.Icon)
	assert.Contains(t, images.deleted, oldIcon)
}

func TestRemoveCategoryDeletesIcon(t *testing.T) {
	repo, images, svc := newTestService()
	created, err := svc.Create(context.Background(),
		&UploadedIcon{Filename: "fantasy.png", ContentType: "image/png", Data: []byte{1}},
		model.CreateCategoryRequest{Title: "Fantasy"})
	require.NoError(t, err)

	removed, err := svc.Remove(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)
	assert.Contains(t, images.deleted, *created.Icon)

	_, err = repo.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, model.ErrCategoryNotFound)
}

func TestExists(t *testing.T) {
	_, _, svc := newTestService()
	created, err := svc.Create(context.Background(), nil, model.CreateCategoryRequest{Title: "Fantasy"})
	require.NoError(t, err)

	ok, err := svc.Exists(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPriorityAdjustmentsFloorAtZero(t *testing.T) {
	repo, _, svc := newTestService()
	created, err := svc.Create(context.Background(), nil, model.CreateCategoryRequest{Title: "Fantasy"})
	require.NoError(t, err)

	svc.IncreasePriority(context.Background(), created.ID)
	svc.IncreasePriority(context.Background(), created.ID)
	svc.DecreasePriority(context.Background(), created.ID)
	svc.DecreasePriority(context.Background(), created.ID)
	svc.DecreasePriority(context.Background(), created.ID)

	got, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Priority)
}
