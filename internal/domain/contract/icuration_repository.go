package contract

import (
	"context"

	"github.com/curately/curately/internal/domain/entity"
)

// ICurationRepository defines the interface for curation persistence.
type ICurationRepository interface {
	GetCurationByID(ctx context.Context, id string) (*entity.Curation, error)
	GetCurationsByIDs(ctx context.Context, ids []string) ([]entity.Curation, error)
	GetCurationsByOwnerID(ctx context.Context, ownerID string) ([]entity.Curation, error)
	// GetCurationsByTags returns up to n public curations sharing at least
	// one of the given tags, ordered by ascending id.
	GetCurationsByTags(ctx context.Context, tags []string, n int) ([]entity.Curation, error)
	CreateCuration(ctx context.Context, curation *entity.Curation) error
	UpdateCuration(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteCuration(ctx context.Context, id string) error
	// GetTopByViewCount returns up to n curations ordered by view_count
	// descending, ties broken by ascending id.
	GetTopByViewCount(ctx context.Context, n int) ([]entity.Curation, error)
	// GetTopByLikeCount returns up to n curations ordered by like_count
	// descending, ties broken by ascending id.
	GetTopByLikeCount(ctx context.Context, n int) ([]entity.Curation, error)
}
