package contract

import (
	"context"

	"github.com/curately/curately/internal/domain/entity"
)

// ILikeRepository defines the interface for durable like-relation persistence.
// SaveLike must be idempotent per (curation, member) pair so the
// reconciliation job can re-run without creating duplicate rows.
type ILikeRepository interface {
	SaveLike(ctx context.Context, like *entity.Like) error
	LikeExists(ctx context.Context, curationID, memberID string) (bool, error)
	DeleteLikesByCurationID(ctx context.Context, curationID string) error
}
