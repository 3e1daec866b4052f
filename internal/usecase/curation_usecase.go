package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/curately/curately/internal/domain/contract"
	"github.com/curately/curately/internal/domain/entity"
	usecasecontract "github.com/curately/curately/internal/usecase/contract"
)

// CurationUsecase owns the curation lifecycle pieces this service is
// responsible for. Detail reads route through the engagement engine so every
// read is a (deduped) counted view; deletion cascades all counter-store keys
// belonging to the curation.
type CurationUsecase struct {
	curationRepo contract.ICurationRepository
	likeRepo     contract.ILikeRepository
	counter      contract.ICounterStore
	engagement   usecasecontract.IEngagementUseCase
	uuidgen      contract.IUUIDGenerator
	logger       usecasecontract.IAppLogger
}

// NewCurationUsecase creates and returns a new CurationUsecase instance.
func NewCurationUsecase(
	curationRepo contract.ICurationRepository,
	likeRepo contract.ILikeRepository,
	counter contract.ICounterStore,
	engagement usecasecontract.IEngagementUseCase,
	uuidgen contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *CurationUsecase {
	return &CurationUsecase{
		curationRepo: curationRepo,
		likeRepo:     likeRepo,
		counter:      counter,
		engagement:   engagement,
		uuidgen:      uuidgen,
		logger:       logger,
	}
}

var _ usecasecontract.ICurationUseCase = (*CurationUsecase)(nil)

// CreateCuration persists a new curation with zeroed counters.
func (u *CurationUsecase) CreateCuration(ctx context.Context, title, ownerID string, isPublic bool, tags []string) (*entity.Curation, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}
	if ownerID == "" {
		return nil, errors.New("owner id is required")
	}
	now := time.Now()
	curation := &entity.Curation{
		ID:        u.uuidgen.NewUUID(),
		Title:     title,
		OwnerID:   ownerID,
		IsPublic:  isPublic,
		Tags:      tags,
		ViewCount: 0,
		LikeCount: 0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.curationRepo.CreateCuration(ctx, curation); err != nil {
		return nil, fmt.Errorf("failed to create curation: %w", err)
	}
	return curation, nil
}

// GetCurationDetail resolves the curation, registers a deduped view for the
// client and overlays the live counters on the durable record. A transient
// counting failure does not fail the read.
func (u *CurationUsecase) GetCurationDetail(ctx context.Context, id, clientID, memberID string) (*usecasecontract.CurationDetail, error) {
	curation, err := u.curationRepo.GetCurationByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCurationNotFound) {
			return nil, ErrCurationNotFound
		}
		return nil, fmt.Errorf("failed to load curation %s: %w", id, err)
	}

	if clientID != "" {
		if err := u.engagement.RegisterView(ctx, id, clientID); err != nil {
			u.logger.Warnf("view not counted for curation %s: %v", id, err)
		}
	}

	if live, err := u.engagement.LiveViewCount(ctx, id); err == nil {
		curation.ViewCount = live
	} else {
		u.logger.Warnf("live view count unavailable for curation %s: %v", id, err)
	}
	if likes, err := u.engagement.LiveLikeCount(ctx, id); err == nil {
		curation.LikeCount = likes
	} else {
		u.logger.Warnf("live like count unavailable for curation %s: %v", id, err)
	}

	detail := &usecasecontract.CurationDetail{Curation: *curation}
	if memberID != "" {
		liked, err := u.engagement.IsLiked(ctx, id, memberID)
		if err != nil {
			u.logger.Warnf("like state unavailable for curation %s: %v", id, err)
		}
		detail.IsLiked = liked
	}
	return detail, nil
}

// DeleteCuration removes the curation, its durable like relations and every
// counter-store key derived from it: dedupe markers, the like set, ranking
// entries and the cached recommendation list.
func (u *CurationUsecase) DeleteCuration(ctx context.Context, id, actorID string) error {
	curation, err := u.curationRepo.GetCurationByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCurationNotFound) {
			return ErrCurationNotFound
		}
		return fmt.Errorf("failed to load curation %s: %w", id, err)
	}
	if curation.OwnerID != actorID {
		return ErrNotOwner
	}

	if err := u.curationRepo.DeleteCuration(ctx, id); err != nil {
		return fmt.Errorf("failed to delete curation %s: %w", id, err)
	}
	if err := u.likeRepo.DeleteLikesByCurationID(ctx, id); err != nil {
		u.logger.Errorf("failed to delete like relations for curation %s: %v", id, err)
	}

	u.cascadeCacheKeys(ctx, id)
	return nil
}

func (u *CurationUsecase) cascadeCacheKeys(ctx context.Context, id string) {
	markers, err := u.counter.Keys(ctx, viewMarkerKeyPrefix+id+":*")
	if err != nil {
		u.logger.Warnf("failed to enumerate view markers for curation %s: %v", id, err)
	} else if len(markers) > 0 {
		if err := u.counter.Delete(ctx, markers...); err != nil {
			u.logger.Warnf("failed to delete view markers for curation %s: %v", id, err)
		}
	}

	if err := u.counter.Delete(ctx, likeSetKey(id), recommendKey(id)); err != nil {
		u.logger.Warnf("failed to delete cache keys for curation %s: %v", id, err)
	}
	for _, key := range []string{viewCountKey, likeCountKey, trendingKey, popularKey} {
		if err := u.counter.SortedSetRemove(ctx, key, id); err != nil {
			u.logger.Warnf("failed to remove curation %s from %s: %v", id, key, err)
		}
	}

	// Member liked-sets would otherwise keep referencing the deleted id.
	likedSets, err := u.counter.Keys(ctx, memberLikedPrefix+"*")
	if err != nil {
		u.logger.Warnf("failed to enumerate member liked-sets: %v", err)
		return
	}
	for _, key := range likedSets {
		if err := u.counter.SetRemove(ctx, key, id); err != nil {
			u.logger.Warnf("failed to remove curation %s from %s: %v", id, key, err)
		}
	}
}
