package mocks

import (
	"context"
	"errors"

	"github.com/curately/curately/internal/domain/entity"
	"github.com/curately/curately/internal/usecase"
	usecasecontract "github.com/curately/curately/internal/usecase/contract"
)

// MockRecommendationUsecase is a mock implementation of the recommendation usecase
type MockRecommendationUsecase struct {
	// Control mock behavior
	SeedMissing         bool
	ShouldFailTrending  bool
	ShouldFailRecommend bool

	// Captured arguments
	LastSortType string
	LastActorID  string

	// Return values
	MockCurations []entity.Curation
}

var _ usecasecontract.IRecommendationUseCase = (*MockRecommendationUsecase)(nil)

func NewMockRecommendationUsecase() *MockRecommendationUsecase {
	return &MockRecommendationUsecase{
		MockCurations: []entity.Curation{
			{ID: "rec-1", Title: "First pick", IsPublic: true},
			{ID: "rec-2", Title: "Second pick", IsPublic: true},
		},
	}
}

func (m *MockRecommendationUsecase) Recommend(ctx context.Context, seedID, sortType, actorID string) ([]entity.Curation, error) {
	m.LastSortType = sortType
	m.LastActorID = actorID
	if m.SeedMissing {
		return nil, usecase.ErrCurationNotFound
	}
	if m.ShouldFailRecommend {
		return nil, errors.New("recommendation failed")
	}
	return m.MockCurations, nil
}

func (m *MockRecommendationUsecase) Trending(ctx context.Context) ([]entity.Curation, error) {
	if m.ShouldFailTrending {
		return nil, errors.New("trending failed")
	}
	return m.MockCurations, nil
}
