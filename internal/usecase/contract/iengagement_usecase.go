package usecasecontract

import (
	"context"

	"github.com/curately/curately/internal/domain/entity"
)

// IEngagementUseCase records view and like signals against the counter store.
type IEngagementUseCase interface {
	// RegisterView counts a view for the curation at most once per client
	// per dedupe window. A repeat view within the window is a silent no-op.
	RegisterView(ctx context.Context, curationID, clientID string) error
	// ToggleLike flips the member's like on the curation and reports whether
	// the member likes it afterwards.
	ToggleLike(ctx context.Context, curationID, memberID string) (bool, error)
	IsLiked(ctx context.Context, curationID, memberID string) (bool, error)
	LiveLikeCount(ctx context.Context, curationID string) (int64, error)
	LiveViewCount(ctx context.Context, curationID string) (int64, error)
	// LikedCurations lists the curations the member currently likes,
	// resolved from the member's liked-set.
	LikedCurations(ctx context.Context, memberID string) ([]entity.Curation, error)
}
