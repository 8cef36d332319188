package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	categorymodel "bookrealm-backend/internal/domains/category/model"
	"bookrealm-backend/internal/domains/interest/model"
)

type interestKey struct{ userID, categoryID int64 }

type fakeInterestRepo struct {
	mu   sync.Mutex
	rows map[interestKey]bool
}

func newFakeInterestRepo() *fakeInterestRepo {
	return &fakeInterestRepo{rows: make(map[interestKey]bool)}
}

func (r *fakeInterestRepo) CreateBatch(_ context.Context, userID int64, categoryIDs []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range categoryIDs {
		if r.rows[interestKey{userID, id}] {
			return fmt.Errorf("%w: category %d", model.ErrAlreadyInterested, id)
		}
	}
	for _, id := range categoryIDs {
		r.rows[interestKey{userID, id}] = true
	}
	return nil
}

func (r *fakeInterestRepo) Delete(_ context.Context, userID, categoryID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := interestKey{userID, categoryID}
	if !r.rows[key] {
		return model.ErrInterestNotFound
	}
	delete(r.rows, key)
	return nil
}

func (r *fakeInterestRepo) ListByUser(_ context.Context, userID int64) ([]categorymodel.Category, error) {
	ids, _ := r.CategoryIDsForUser(context.Background(), userID)
	out := make([]categorymodel.Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, categorymodel.Category{ID: id})
	}
	return out, nil
}

func (r *fakeInterestRepo) CategoryIDsForUser(_ context.Context, userID int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for k := range r.rows {
		if k.userID == userID {
			ids = append(ids, k.categoryID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type fakeCategoryChecker struct {
	existing map[int64]bool
}

func (f *fakeCategoryChecker) Exists(_ context.Context, id int64) (bool, error) {
	return f.existing[id], nil
}

func newTestService() (*fakeInterestRepo, ServiceInterface) {
	repo := newFakeInterestRepo()
	svc := NewService(repo, &fakeCategoryChecker{existing: map[int64]bool{1: true, 2: true, 3: true}})
	return repo, svc
}

func TestAddInterests(t *testing.T) {
	repo, svc := newTestService()

	require.NoError(t, svc.Add(context.Background(), 9, model.AddInterestsRequest{CategoryIDs: []int64{1, 3}}))

	ids, err := repo.CategoryIDsForUser(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestAddInterestsRejectsEmptyRequest(t *testing.T) {
	_, svc := newTestService()
	assert.Error(t, svc.Add(context.Background(), 9, model.AddInterestsRequest{}))
}

func TestAddInterestsUnknownCategory(t *testing.T) {
	repo, svc := newTestService()

	err := svc.Add(context.Background(), 9, model.AddInterestsRequest{CategoryIDs: []int64{1, 99}})
	assert.ErrorIs(t, err, categorymodel.ErrCategoryNotFound)

	// Validation happens before any write: the valid id is not stored.
	ids, _ := repo.CategoryIDsForUser(context.Background(), 9)
	assert.Empty(t, ids)
}

func TestAddInterestsDuplicateInRequest(t *testing.T) {
	_, svc := newTestService()

	err := svc.Add(context.Background(), 9, model.AddInterestsRequest{CategoryIDs: []int64{2, 2}})
	assert.ErrorIs(t, err, model.ErrAlreadyInterested)
}

func TestAddInterestsDuplicateAgainstExisting(t *testing.T) {
	repo, svc := newTestService()
	require.NoError(t, svc.Add(context.Background(), 9, model.AddInterestsRequest{CategoryIDs: []int64{1}}))

	err := svc.Add(context.Background(), 9, model.AddInterestsRequest{CategoryIDs: []int64{2, 1}})
	assert.ErrorIs(t, err, model.ErrAlreadyInterested)

	// All-or-nothing: the fresh id was rolled back with the batch.
	ids, _ := repo.CategoryIDsForUser(context.Background(), 9)
	assert.Equal(t, []int64{1}, ids)
}

func TestDeleteInterest(t *testing.T) {
	repo, svc := newTestService()
	require.NoError(t, svc.Add(context.Background(), 9, model.AddInterestsRequest{CategoryIDs: []int64{1}}))

	require.NoError(t, svc.Delete(context.Background(), 9, 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 9, 1), model.ErrInterestNotFound)

	ids, _ := repo.CategoryIDsForUser(context.Background(), 9)
	assert.Empty(t, ids)
}
