package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curately/curately/internal/domain/entity"
	"github.com/curately/curately/internal/usecase"
	usecasecontract "github.com/curately/curately/internal/usecase/contract"
	"github.com/curately/curately/internal/usecase/mocks"
)

func newRecommendFixture(t *testing.T) (*usecase.RecommendationUsecase, *mocks.MockCounterStore, *mocks.MockCurationRepository) {
	t.Helper()
	counter := mocks.NewMockCounterStore()
	curations := mocks.NewMockCurationRepository()
	uc := usecase.NewRecommendationUsecase(counter, curations, mocks.NewNopLogger(), mocks.NewMockConfig())
	return uc, counter, curations
}

func ids(curations []entity.Curation) []string {
	out := make([]string, len(curations))
	for i, c := range curations {
		out[i] = c.ID
	}
	return out
}

func TestRecommendSeedNotFound(t *testing.T) {
	uc, _, _ := newRecommendFixture(t)

	_, err := uc.Recommend(context.Background(), "missing", usecasecontract.SortByViews, "")
	assert.ErrorIs(t, err, usecase.ErrCurationNotFound)
}

func TestRecommendRejectsUnknownSortType(t *testing.T) {
	uc, _, curations := newRecommendFixture(t)
	curations.Put(entity.Curation{ID: "1", IsPublic: true})

	_, err := uc.Recommend(context.Background(), "1", "newest", "")
	assert.Error(t, err)
}

func TestRecommendByViewsOrdersWithTieBreak(t *testing.T) {
	uc, counter, curations := newRecommendFixture(t)
	for _, id := range []string{"1", "2", "3", "4"} {
		curations.Put(entity.Curation{ID: id, IsPublic: true})
	}
	counter.SetScore("curation:view_count", "2", 50)
	counter.SetScore("curation:view_count", "3", 50)
	counter.SetScore("curation:view_count", "4", 30)

	result, err := uc.Recommend(context.Background(), "1", usecasecontract.SortByViews, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "4"}, ids(result),
		"equal scores must be broken by ascending id")
}

func TestRecommendExcludesSeed(t *testing.T) {
	uc, counter, curations := newRecommendFixture(t)
	for _, id := range []string{"1", "2"} {
		curations.Put(entity.Curation{ID: id, IsPublic: true})
	}
	counter.SetScore("curation:view_count", "1", 99)
	counter.SetScore("curation:view_count", "2", 10)

	result, err := uc.Recommend(context.Background(), "1", usecasecontract.SortByViews, "")
	require.NoError(t, err)
	assert.NotContains(t, ids(result), "1")
	assert.Equal(t, []string{"2"}, ids(result))
}

func TestRecommendExcludesActorOwned(t *testing.T) {
	uc, counter, curations := newRecommendFixture(t)
	curations.Put(entity.Curation{ID: "1", IsPublic: true})
	curations.Put(entity.Curation{ID: "2", OwnerID: "actor-7", IsPublic: true})
	curations.Put(entity.Curation{ID: "3", IsPublic: true})
	counter.SetScore("curation:view_count", "2", 50)
	counter.SetScore("curation:view_count", "3", 40)

	result, err := uc.Recommend(context.Background(), "1", usecasecontract.SortByViews, "actor-7")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, ids(result))
}

func TestRecommendCombinedBlendsSignals(t *testing.T) {
	uc, counter, curations := newRecommendFixture(t)
	for _, id := range []string{"1", "a", "b"} {
		curations.Put(entity.Curation{ID: id, IsPublic: true})
	}
	// a: 10 views, no likes -> combined 10. b: 0 views, 4 likes -> combined 12.
	counter.SetScore("curation:view_count", "a", 10)
	counter.SetScore("curation:like_count", "b", 4)

	result, err := uc.Recommend(context.Background(), "1", usecasecontract.SortByCombined, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(result))
}

func TestRecommendIncludesTagSimilarCandidates(t *testing.T) {
	uc, counter, curations := newRecommendFixture(t)
	curations.Put(entity.Curation{ID: "1", IsPublic: true, Tags: []string{"go", "redis", "mongo", "gin"}})
	curations.Put(entity.Curation{ID: "2", IsPublic: true})
	curations.Put(entity.Curation{ID: "7", IsPublic: true, Tags: []string{"go", "redis", "mongo"}})
	curations.Put(entity.Curation{ID: "8", IsPublic: true, Tags: []string{"go"}})
	counter.SetScore("curation:view_count", "2", 50)

	result, err := uc.Recommend(context.Background(), "1", usecasecontract.SortByViews, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "7"}, ids(result),
		"three shared tags qualify a curation even with no live score; one shared tag does not")
}

func TestRecommendSamplesLooselyTaggedWhenNoneQualify(t *testing.T) {
	uc, _, curations := newRecommendFixture(t)
	curations.Put(entity.Curation{ID: "1", IsPublic: true, Tags: []string{"go", "redis", "mongo"}})
	curations.Put(entity.Curation{ID: "8", IsPublic: true, Tags: []string{"go"}})

	result, err := uc.Recommend(context.Background(), "1", usecasecontract.SortByViews, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"8"}, ids(result),
		"with no strongly similar curation, loosely tagged ones are sampled as candidates")
}

func TestRecommendCacheHitSkipsRanking(t *testing.T) {
	uc, counter, curations := newRecommendFixture(t)
	for _, id := range []string{"1", "8", "9"} {
		curations.Put(entity.Curation{ID: id, IsPublic: true})
	}
	require.NoError(t, counter.Set(context.Background(), "curation:recommend:1", "9,8", 0))
	// Ranking reads would fail; a cache hit must never reach them.
	counter.FailOps["SortedSetReverseRange"] = true

	result, err := uc.Recommend(context.Background(), "1", usecasecontract.SortByViews, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"9", "8"}, ids(result), "cached order must be preserved")
}

func TestRecommendWritesCache(t *testing.T) {
	uc, counter, curations := newRecommendFixture(t)
	for _, id := range []string{"1", "2"} {
		curations.Put(entity.Curation{ID: id, IsPublic: true})
	}
	counter.SetScore("curation:view_count", "2", 5)

	_, err := uc.Recommend(context.Background(), "1", usecasecontract.SortByViews, "")
	require.NoError(t, err)

	cached, ok, err := counter.Get(context.Background(), "curation:recommend:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", cached)
}

func TestRecommendFallsBackToDurableWhenEmpty(t *testing.T) {
	uc, _, curations := newRecommendFixture(t)
	curations.Put(entity.Curation{ID: "1", IsPublic: true})
	curations.Put(entity.Curation{ID: "5", IsPublic: true, ViewCount: 100})
	curations.Put(entity.Curation{ID: "6", IsPublic: true, ViewCount: 80})

	result, err := uc.Recommend(context.Background(), "1", usecasecontract.SortByViews, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "6"}, ids(result))
}

func TestRecommendSucceedsWithCounterStoreDown(t *testing.T) {
	uc, counter, curations := newRecommendFixture(t)
	curations.Put(entity.Curation{ID: "1", IsPublic: true})
	curations.Put(entity.Curation{ID: "5", IsPublic: true, LikeCount: 9})
	curations.Put(entity.Curation{ID: "6", IsPublic: true, LikeCount: 3})
	counter.Down = true

	result, err := uc.Recommend(context.Background(), "1", usecasecontract.SortByLikes, "")
	require.NoError(t, err, "the counter store is an optimization, not a dependency")
	assert.Equal(t, []string{"5", "6"}, ids(result))
}

func TestTrendingUsesWindowThenFallback(t *testing.T) {
	uc, counter, curations := newRecommendFixture(t)
	curations.Put(entity.Curation{ID: "a", IsPublic: true, ViewCount: 1})
	curations.Put(entity.Curation{ID: "b", IsPublic: true, ViewCount: 999})
	counter.SetScore("curation:trending:24h", "a", 50)
	counter.SetScore("curation:trending:24h", "b", 10)

	result, err := uc.Trending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(result), "window scores outrank durable counts")

	// Empty window: durable view counts decide.
	require.NoError(t, counter.SortedSetRemove(context.Background(), "curation:trending:24h", "a"))
	require.NoError(t, counter.SortedSetRemove(context.Background(), "curation:trending:24h", "b"))
	result, err = uc.Trending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(result))
}
