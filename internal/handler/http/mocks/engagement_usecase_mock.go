package mocks

import (
	"context"
	"errors"

	"github.com/curately/curately/internal/domain/entity"
	"github.com/curately/curately/internal/usecase"
	usecasecontract "github.com/curately/curately/internal/usecase/contract"
)

// MockEngagementUsecase is a mock implementation of the engagement usecase
type MockEngagementUsecase struct {
	// Control mock behavior
	ShouldFailRegisterView bool
	ShouldFailToggleLike   bool
	CurationMissing        bool
	StoreUnavailable       bool

	// Return values
	MockLiked          bool
	MockLikeCount      int64
	MockViewCount      int64
	MockLikedCurations []entity.Curation
}

var _ usecasecontract.IEngagementUseCase = (*MockEngagementUsecase)(nil)

func NewMockEngagementUsecase() *MockEngagementUsecase {
	return &MockEngagementUsecase{
		MockLiked:     true,
		MockLikeCount: 7,
		MockViewCount: 42,
		MockLikedCurations: []entity.Curation{
			{ID: "liked-1", Title: "Liked pick", IsPublic: true},
		},
	}
}

func (m *MockEngagementUsecase) fail() error {
	if m.CurationMissing {
		return usecase.ErrCurationNotFound
	}
	if m.StoreUnavailable {
		return &usecase.TransientError{Op: "mock", Err: errors.New("store down")}
	}
	return nil
}

func (m *MockEngagementUsecase) RegisterView(ctx context.Context, curationID, clientID string) error {
	if m.ShouldFailRegisterView {
		return errors.New("view registration failed")
	}
	return m.fail()
}

func (m *MockEngagementUsecase) ToggleLike(ctx context.Context, curationID, memberID string) (bool, error) {
	if m.ShouldFailToggleLike {
		return false, errors.New("like toggle failed")
	}
	if err := m.fail(); err != nil {
		return false, err
	}
	return m.MockLiked, nil
}

func (m *MockEngagementUsecase) IsLiked(ctx context.Context, curationID, memberID string) (bool, error) {
	if err := m.fail(); err != nil {
		return false, err
	}
	return m.MockLiked, nil
}

func (m *MockEngagementUsecase) LiveLikeCount(ctx context.Context, curationID string) (int64, error) {
	if err := m.fail(); err != nil {
		return 0, err
	}
	return m.MockLikeCount, nil
}

func (m *MockEngagementUsecase) LiveViewCount(ctx context.Context, curationID string) (int64, error) {
	if err := m.fail(); err != nil {
		return 0, err
	}
	return m.MockViewCount, nil
}

func (m *MockEngagementUsecase) LikedCurations(ctx context.Context, memberID string) ([]entity.Curation, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	return m.MockLikedCurations, nil
}
