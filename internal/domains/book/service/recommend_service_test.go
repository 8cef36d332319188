package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookrealm-backend/internal/domains/book/model"
	"bookrealm-backend/internal/domains/book/repository"
)

func TestRecommendedUsesInterestedCategories(t *testing.T) {
	env := newTestEnv()
	env.interests.ids = []int64{2}
	env.repo.byCategory = fakePage{
		items: []model.Book{published(1, "Fantasy Pick", "fantasy-pick-1")},
		total: 1,
	}

	books, meta, err := env.svc.GetRecommended(context.Background(), 9, model.Page{})
	require.NoError(t, err)

	require.Len(t, books, 1)
	assert.Equal(t, "fantasy-pick-1", books[0].Slug)
	assert.Equal(t, 1, meta.TotalItems)
	assert.Empty(t, env.repo.searchCalls, "fallback must not run when interests match")
}

func TestRecommendedFallsBackForAnonymous(t *testing.T) {
	env := newTestEnv()
	env.repo.searchResults[repository.TierNone] = fakePage{
		items: []model.Book{published(1, "Newest", "newest-1")},
		total: 1,
	}

	books, _, err := env.svc.GetRecommended(context.Background(), 0, model.Page{})
	require.NoError(t, err)

	require.Len(t, books, 1)
	assert.Equal(t, []repository.SearchTier{repository.TierNone}, env.repo.searchCalls)
	assert.Equal(t, model.SortNewest, env.repo.lastFilter.Sort)
}

func TestRecommendedFallsBackWhenInterestsMatchNothing(t *testing.T) {
	env := newTestEnv()
	env.interests.ids = []int64{2}
	env.repo.byCategory = fakePage{}
	env.repo.searchResults[repository.TierNone] = fakePage{
		items: []model.Book{published(3, "Newest", "newest-1")},
		total: 1,
	}

	books, _, err := env.svc.GetRecommended(context.Background(), 9, model.Page{})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "newest-1", books[0].Slug)
}

func TestPopular(t *testing.T) {
	env := newTestEnv()
	env.favorites.favorited[2] = true
	env.repo.popular = fakePage{
		items: []model.Book{published(2, "Hit", "hit-1"), published(3, "Also", "also-1")},
		total: 2,
	}

	books, meta, err := env.svc.GetPopular(context.Background(), 9, model.Page{})
	require.NoError(t, err)

	require.Len(t, books, 2)
	assert.Equal(t, 2, meta.TotalItems)
	assert.True(t, books[0].IsFavorite)
	assert.False(t, books[1].IsFavorite)
}

func TestRelatedExcludesAnchor(t *testing.T) {
	env := newTestEnv()
	anchor := published(0, "Dragon Tale", "dragon-tale-1")
	anchor.CategoryID = ptr(int64(2))
	seeded := env.repo.seed(anchor)

	env.repo.related = fakePage{
		items: []model.Book{
			*seeded,
			published(10, "Wyrm Lore", "wyrm-lore-2"),
			published(11, "Drake Diary", "drake-diary-3"),
		},
		total: 3,
	}

	books, meta, err := env.svc.GetRelated(context.Background(), 0, "dragon-tale-1", model.Page{})
	require.NoError(t, err)

	require.Len(t, books, 2)
	for _, b := range books {
		assert.NotEqual(t, seeded.ID, b.ID)
	}
	// The anchor is subtracted from the total as well.
	assert.Equal(t, 2, meta.TotalItems)
}

func TestRelatedAnchorOffPageStillAdjustsTotal(t *testing.T) {
	env := newTestEnv()
	anchor := published(0, "Dragon Tale", "dragon-tale-1")
	anchor.Keywords = []string{"dragons"}
	env.repo.seed(anchor)

	// The anchor matches the predicate but landed on another page.
	env.repo.related = fakePage{
		items: []model.Book{published(10, "Wyrm Lore", "wyrm-lore-2")},
		total: 5,
	}

	books, meta, err := env.svc.GetRelated(context.Background(), 0, "dragon-tale-1", model.Page{})
	require.NoError(t, err)
	assert.Len(t, books, 1)
	assert.Equal(t, 4, meta.TotalItems)
}

func TestRelatedUnknownAnchor(t *testing.T) {
	env := newTestEnv()
	_, _, err := env.svc.GetRelated(context.Background(), 0, "ghost-1", model.Page{})
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}
