package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curately/curately/internal/domain/entity"
	"github.com/curately/curately/internal/usecase"
	"github.com/curately/curately/internal/usecase/mocks"
)

func newEngagementFixture(t *testing.T) (*usecase.EngagementUsecase, *mocks.MockCounterStore, *mocks.MockCurationRepository) {
	t.Helper()
	counter := mocks.NewMockCounterStore()
	curations := mocks.NewMockCurationRepository()
	curations.Put(entity.Curation{ID: "cur-1", Title: "Go links", OwnerID: "owner-1", IsPublic: true})
	members := mocks.NewMockMemberRepository("member-100", "member-200")
	uc := usecase.NewEngagementUsecase(counter, curations, members, mocks.NewNopLogger(), mocks.NewMockConfig())
	return uc, counter, curations
}

func TestRegisterViewCountsOncePerWindow(t *testing.T) {
	uc, counter, _ := newEngagementFixture(t)
	ctx := context.Background()

	require.NoError(t, uc.RegisterView(ctx, "cur-1", "1.2.3.4"))
	require.NoError(t, uc.RegisterView(ctx, "cur-1", "1.2.3.4"))

	assert.Equal(t, float64(1), counter.ZScoreOf("curation:view_count", "cur-1"))
	assert.Equal(t, float64(1), counter.ZScoreOf("curation:trending:24h", "cur-1"))
}

func TestRegisterViewCountsDistinctClients(t *testing.T) {
	uc, counter, _ := newEngagementFixture(t)
	ctx := context.Background()

	require.NoError(t, uc.RegisterView(ctx, "cur-1", "1.2.3.4"))
	require.NoError(t, uc.RegisterView(ctx, "cur-1", "5.6.7.8"))

	assert.Equal(t, float64(2), counter.ZScoreOf("curation:view_count", "cur-1"))
}

func TestRegisterViewRequiresIdentity(t *testing.T) {
	uc, _, _ := newEngagementFixture(t)

	assert.Error(t, uc.RegisterView(context.Background(), "cur-1", ""))
}

func TestRegisterViewStoreDownIsTransient(t *testing.T) {
	uc, counter, _ := newEngagementFixture(t)
	counter.Down = true

	err := uc.RegisterView(context.Background(), "cur-1", "1.2.3.4")
	require.Error(t, err)
	assert.True(t, usecase.IsTransient(err))

	counter.Down = false
	assert.Equal(t, float64(0), counter.ZScoreOf("curation:view_count", "cur-1"))
}

func TestToggleLikeRoundTrip(t *testing.T) {
	uc, counter, _ := newEngagementFixture(t)
	ctx := context.Background()

	liked, err := uc.ToggleLike(ctx, "cur-1", "member-100")
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := uc.LiveLikeCount(ctx, "cur-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, float64(1), counter.ZScoreOf("curation:like_count", "cur-1"))

	liked, err = uc.ToggleLike(ctx, "cur-1", "member-100")
	require.NoError(t, err)
	assert.False(t, liked)

	count, err = uc.LiveLikeCount(ctx, "cur-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, float64(0), counter.ZScoreOf("curation:like_count", "cur-1"))
}

func TestToggleLikeParity(t *testing.T) {
	uc, _, _ := newEngagementFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := uc.ToggleLike(ctx, "cur-1", "member-100")
		require.NoError(t, err)
	}
	liked, err := uc.IsLiked(ctx, "cur-1", "member-100")
	require.NoError(t, err)
	assert.True(t, liked, "odd number of toggles must leave the curation liked")

	_, err = uc.ToggleLike(ctx, "cur-1", "member-100")
	require.NoError(t, err)
	liked, err = uc.IsLiked(ctx, "cur-1", "member-100")
	require.NoError(t, err)
	assert.False(t, liked, "even number of toggles must restore the original state")
}

func TestToggleLikeConcurrentSameMember(t *testing.T) {
	uc, _, _ := newEngagementFixture(t)
	ctx := context.Background()

	const toggles = 100 // even total, so the final state must be unliked
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < toggles/4; j++ {
				_, err := uc.ToggleLike(ctx, "cur-1", "member-100")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	count, err := uc.LiveLikeCount(ctx, "cur-1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, int64(0))
	assert.LessOrEqual(t, count, int64(1), "a single member can never appear twice in a like set")
	assert.Equal(t, int64(0), count)
}

func TestToggleLikeUnknownCuration(t *testing.T) {
	uc, _, _ := newEngagementFixture(t)

	_, err := uc.ToggleLike(context.Background(), "missing", "member-100")
	assert.ErrorIs(t, err, usecase.ErrCurationNotFound)
}

func TestToggleLikeUnknownMember(t *testing.T) {
	uc, _, _ := newEngagementFixture(t)

	_, err := uc.ToggleLike(context.Background(), "cur-1", "ghost")
	assert.ErrorIs(t, err, usecase.ErrMemberNotFound)
}

func TestToggleLikeStoreDownIsTransient(t *testing.T) {
	uc, counter, _ := newEngagementFixture(t)
	counter.FailOps["AtomicToggle"] = true

	_, err := uc.ToggleLike(context.Background(), "cur-1", "member-100")
	require.Error(t, err)
	assert.True(t, usecase.IsTransient(err))
}

func TestLiveViewCountAddsPendingToDurable(t *testing.T) {
	uc, counter, curations := newEngagementFixture(t)
	curations.Put(entity.Curation{ID: "cur-2", IsPublic: true, ViewCount: 10})
	counter.SetScore("curation:view_count", "cur-2", 5)

	live, err := uc.LiveViewCount(context.Background(), "cur-2")
	require.NoError(t, err)
	assert.Equal(t, int64(15), live)
}

func TestLikedCurationsFollowsToggles(t *testing.T) {
	uc, _, curations := newEngagementFixture(t)
	ctx := context.Background()
	curations.Put(entity.Curation{ID: "cur-2", Title: "More links", OwnerID: "owner-1", IsPublic: true})

	_, err := uc.ToggleLike(ctx, "cur-1", "member-100")
	require.NoError(t, err)
	_, err = uc.ToggleLike(ctx, "cur-2", "member-100")
	require.NoError(t, err)

	liked, err := uc.LikedCurations(ctx, "member-100")
	require.NoError(t, err)
	assert.Equal(t, []string{"cur-1", "cur-2"}, ids(liked))

	// Unliking removes the curation from the member's list.
	_, err = uc.ToggleLike(ctx, "cur-1", "member-100")
	require.NoError(t, err)
	liked, err = uc.LikedCurations(ctx, "member-100")
	require.NoError(t, err)
	assert.Equal(t, []string{"cur-2"}, ids(liked))
}

func TestLikedCurationsEmptyWithoutLikes(t *testing.T) {
	uc, _, _ := newEngagementFixture(t)

	liked, err := uc.LikedCurations(context.Background(), "member-200")
	require.NoError(t, err)
	assert.Empty(t, liked)
}

func TestLikedCurationsStoreDownIsTransient(t *testing.T) {
	uc, counter, _ := newEngagementFixture(t)
	counter.Down = true

	_, err := uc.LikedCurations(context.Background(), "member-100")
	require.Error(t, err)
	assert.True(t, usecase.IsTransient(err))
}
