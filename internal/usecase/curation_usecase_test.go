package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curately/curately/internal/domain/entity"
	"github.com/curately/curately/internal/usecase"
	"github.com/curately/curately/internal/usecase/mocks"
)

type curationFixture struct {
	uc        *usecase.CurationUsecase
	counter   *mocks.MockCounterStore
	curations *mocks.MockCurationRepository
	likes     *mocks.MockLikeRepository
}

func newCurationFixture(t *testing.T) *curationFixture {
	t.Helper()
	counter := mocks.NewMockCounterStore()
	curations := mocks.NewMockCurationRepository()
	likes := mocks.NewMockLikeRepository()
	members := mocks.NewMockMemberRepository("member-100")
	engagement := usecase.NewEngagementUsecase(counter, curations, members, mocks.NewNopLogger(), mocks.NewMockConfig())
	uc := usecase.NewCurationUsecase(curations, likes, counter, engagement,
		mocks.NewMockUUIDGenerator(), mocks.NewNopLogger())
	return &curationFixture{uc: uc, counter: counter, curations: curations, likes: likes}
}

func TestCreateCurationStartsWithZeroCounters(t *testing.T) {
	f := newCurationFixture(t)

	curation, err := f.uc.CreateCuration(context.Background(), "Go reading list", "owner-1", true, []string{"go", "links"})
	require.NoError(t, err)
	assert.NotEmpty(t, curation.ID)
	assert.Equal(t, int64(0), curation.ViewCount)
	assert.Equal(t, int64(0), curation.LikeCount)

	stored, err := f.curations.GetCurationByID(context.Background(), curation.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go reading list", stored.Title)
}

func TestCreateCurationValidatesInput(t *testing.T) {
	f := newCurationFixture(t)

	_, err := f.uc.CreateCuration(context.Background(), "", "owner-1", true, nil)
	assert.Error(t, err)
	_, err = f.uc.CreateCuration(context.Background(), "title", "", true, nil)
	assert.Error(t, err)
}

func TestGetCurationDetailCountsViewAndOverlaysLiveCounters(t *testing.T) {
	f := newCurationFixture(t)
	ctx := context.Background()
	f.curations.Put(entity.Curation{ID: "cur-1", IsPublic: true, ViewCount: 10})
	require.NoError(t, f.counter.SetAdd(ctx, "curation_like:cur-1", "member-100"))

	detail, err := f.uc.GetCurationDetail(ctx, "cur-1", "1.2.3.4", "member-100")
	require.NoError(t, err)
	assert.Equal(t, int64(11), detail.Curation.ViewCount, "durable 10 + this counted view")
	assert.Equal(t, int64(1), detail.Curation.LikeCount)
	assert.True(t, detail.IsLiked)

	// Same client again within the window: no further view counted.
	detail, err = f.uc.GetCurationDetail(ctx, "cur-1", "1.2.3.4", "")
	require.NoError(t, err)
	assert.Equal(t, int64(11), detail.Curation.ViewCount)
	assert.False(t, detail.IsLiked)
}

func TestGetCurationDetailNotFound(t *testing.T) {
	f := newCurationFixture(t)

	_, err := f.uc.GetCurationDetail(context.Background(), "missing", "1.2.3.4", "")
	assert.ErrorIs(t, err, usecase.ErrCurationNotFound)
}

func TestDeleteCurationRequiresOwner(t *testing.T) {
	f := newCurationFixture(t)
	f.curations.Put(entity.Curation{ID: "cur-1", OwnerID: "owner-1", IsPublic: true})

	err := f.uc.DeleteCuration(context.Background(), "cur-1", "someone-else")
	assert.ErrorIs(t, err, usecase.ErrNotOwner)
}

func TestDeleteCurationCascadesCacheKeys(t *testing.T) {
	f := newCurationFixture(t)
	ctx := context.Background()
	f.curations.Put(entity.Curation{ID: "cur-1", OwnerID: "owner-1", IsPublic: true})

	require.NoError(t, f.counter.SetAdd(ctx, "curation_like:cur-1", "member-100"))
	_, err := f.counter.SetIfAbsent(ctx, "curation:view:cur-1:1.2.3.4", "true", 0)
	require.NoError(t, err)
	f.counter.SetScore("curation:view_count", "cur-1", 4)
	f.counter.SetScore("curation:like_count", "cur-1", 1)
	require.NoError(t, f.counter.Set(ctx, "curation:recommend:cur-1", "x,y", 0))
	require.NoError(t, f.counter.SetAdd(ctx, "member_liked:member-100", "cur-1"))
	require.NoError(t, f.counter.SetAdd(ctx, "member_liked:member-100", "cur-9"))

	require.NoError(t, f.uc.DeleteCuration(ctx, "cur-1", "owner-1"))

	_, err = f.curations.GetCurationByID(ctx, "cur-1")
	assert.ErrorIs(t, err, usecase.ErrCurationNotFound)

	size, err := f.counter.SetSize(ctx, "curation_like:cur-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)
	markers, err := f.counter.Keys(ctx, "curation:view:cur-1:*")
	require.NoError(t, err)
	assert.Empty(t, markers)
	_, ok, err := f.counter.Get(ctx, "curation:recommend:cur-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, float64(0), f.counter.ZScoreOf("curation:view_count", "cur-1"))
	assert.Equal(t, float64(0), f.counter.ZScoreOf("curation:like_count", "cur-1"))

	gone, err := f.counter.SetIsMember(ctx, "member_liked:member-100", "cur-1")
	require.NoError(t, err)
	assert.False(t, gone, "deleted curation must leave member liked-sets")
	kept, err := f.counter.SetIsMember(ctx, "member_liked:member-100", "cur-9")
	require.NoError(t, err)
	assert.True(t, kept, "unrelated liked entries survive the cascade")
}
