package usecasecontract

import (
	"context"

	"github.com/curately/curately/internal/domain/entity"
)

// Sort strategies accepted by Recommend.
const (
	SortByViews    = "views"
	SortByLikes    = "likes"
	SortByCombined = "combined"
)

// IRecommendationUseCase computes ranked related-curation lists.
type IRecommendationUseCase interface {
	// Recommend returns curations related to the seed, ordered by the chosen
	// strategy. actorID may be empty; when set, curations owned by the actor
	// are excluded. Results never include the seed itself.
	Recommend(ctx context.Context, seedID, sortType, actorID string) ([]entity.Curation, error)
	// Trending returns the top curations of the rolling 24h view window,
	// falling back to durable view counts when the window is empty.
	Trending(ctx context.Context) ([]entity.Curation, error)
}
