package usecasecontract

import (
	"context"

	"github.com/curately/curately/internal/domain/entity"
)

// CurationDetail is a curation overlaid with the live counters and the
// requesting member's like state.
type CurationDetail struct {
	Curation entity.Curation `json:"curation"`
	IsLiked  bool            `json:"is_liked"`
}

// ICurationUseCase covers the curation lifecycle this service owns: creation,
// detail reads (which count a view) and deletion with cache-key cascade.
type ICurationUseCase interface {
	CreateCuration(ctx context.Context, title, ownerID string, isPublic bool, tags []string) (*entity.Curation, error)
	// GetCurationDetail resolves the curation, registers a deduped view for
	// the client and overlays the live counters. memberID may be empty.
	GetCurationDetail(ctx context.Context, id, clientID, memberID string) (*CurationDetail, error)
	DeleteCuration(ctx context.Context, id, actorID string) error
}
