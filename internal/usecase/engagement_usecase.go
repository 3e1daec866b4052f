package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/curately/curately/internal/domain/contract"
	"github.com/curately/curately/internal/domain/entity"
	"github.com/curately/curately/internal/infrastructure/metrics"
	usecasecontract "github.com/curately/curately/internal/usecase/contract"
)

// EngagementUsecase is the view/like counting engine. It records signals in
// the counter store only; the durable store is read for existence checks but
// never written here. Correctness under concurrent requests relies on the
// store's set-if-absent and scripted toggle primitives, not on any
// application-level locking.
type EngagementUsecase struct {
	counter      contract.ICounterStore
	curationRepo contract.ICurationRepository
	memberRepo   contract.IMemberRepository
	logger       usecasecontract.IAppLogger
	dedupTTL     time.Duration
}

// NewEngagementUsecase creates and returns a new EngagementUsecase instance.
func NewEngagementUsecase(
	counter contract.ICounterStore,
	curationRepo contract.ICurationRepository,
	memberRepo contract.IMemberRepository,
	logger usecasecontract.IAppLogger,
	config usecasecontract.IConfigProvider,
) *EngagementUsecase {
	return &EngagementUsecase{
		counter:      counter,
		curationRepo: curationRepo,
		memberRepo:   memberRepo,
		logger:       logger,
		dedupTTL:     config.GetViewDedupTTL(),
	}
}

var _ usecasecontract.IEngagementUseCase = (*EngagementUsecase)(nil)

// RegisterView counts a view for the curation at most once per client per
// dedupe window. The dedupe marker is written with set-if-absent, so under
// concurrent calls for the same (client, curation) pair exactly one caller
// wins and increments the ranking structures.
func (u *EngagementUsecase) RegisterView(ctx context.Context, curationID, clientID string) error {
	if curationID == "" || clientID == "" {
		return errors.New("curation id and client identity are required")
	}

	isNewView, err := u.counter.SetIfAbsent(ctx, viewMarkerKey(curationID, clientID), "true", u.dedupTTL)
	if err != nil {
		return transientErr("register view", err)
	}
	if !isNewView {
		metrics.ViewsDeduplicated.Inc()
		return nil
	}

	if err := u.counter.SortedSetIncrBy(ctx, viewCountKey, curationID, 1); err != nil {
		return transientErr("register view", err)
	}
	if err := u.counter.SortedSetIncrBy(ctx, trendingKey, curationID, 1); err != nil {
		// The main counter is already updated; the trending window is a
		// best-effort secondary signal.
		u.logger.Warnf("failed to update trending window for curation %s: %v", curationID, err)
	} else if err := u.counter.Expire(ctx, trendingKey, 24*time.Hour); err != nil {
		u.logger.Warnf("failed to refresh trending window TTL: %v", err)
	}

	metrics.ViewsCounted.Inc()
	return nil
}

// ToggleLike flips the member's like on the curation via a single atomic
// store-side operation and returns whether the member likes it afterwards.
// The like set is authoritative for the live like count; the like ranking
// structure and the member's liked-set are mirrored best effort.
func (u *EngagementUsecase) ToggleLike(ctx context.Context, curationID, memberID string) (bool, error) {
	if _, err := u.curationRepo.GetCurationByID(ctx, curationID); err != nil {
		if errors.Is(err, ErrCurationNotFound) {
			return false, ErrCurationNotFound
		}
		return false, fmt.Errorf("failed to resolve curation %s: %w", curationID, err)
	}
	exists, err := u.memberRepo.MemberExists(ctx, memberID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve member %s: %w", memberID, err)
	}
	if !exists {
		return false, ErrMemberNotFound
	}

	liked, err := u.counter.AtomicToggle(ctx, likeSetKey(curationID), memberID)
	if err != nil {
		return false, transientErr("toggle like", err)
	}

	if liked {
		metrics.LikeToggles.WithLabelValues("liked").Inc()
		u.mirrorLike(ctx, curationID, memberID, 1)
	} else {
		metrics.LikeToggles.WithLabelValues("unliked").Inc()
		u.mirrorLike(ctx, curationID, memberID, -1)
	}
	return liked, nil
}

// mirrorLike propagates a toggle outcome into the ranking structures and the
// member's liked-set. Failures here leave the like set and the structures
// divergent, which the reconciliation job reports but tolerates.
func (u *EngagementUsecase) mirrorLike(ctx context.Context, curationID, memberID string, delta float64) {
	if err := u.counter.SortedSetIncrBy(ctx, likeCountKey, curationID, delta); err != nil {
		u.logger.Warnf("failed to update like ranking for curation %s: %v", curationID, err)
	}
	if err := u.counter.SortedSetIncrBy(ctx, popularKey, curationID, delta); err != nil {
		u.logger.Warnf("failed to update popular window for curation %s: %v", curationID, err)
	} else if err := u.counter.Expire(ctx, popularKey, 24*time.Hour); err != nil {
		u.logger.Warnf("failed to refresh popular window TTL: %v", err)
	}

	var err error
	if delta > 0 {
		err = u.counter.SetAdd(ctx, memberLikedKey(memberID), curationID)
	} else {
		err = u.counter.SetRemove(ctx, memberLikedKey(memberID), curationID)
	}
	if err != nil {
		u.logger.Warnf("failed to update liked-set for member %s: %v", memberID, err)
	}
}

// IsLiked reports whether the member currently likes the curation.
func (u *EngagementUsecase) IsLiked(ctx context.Context, curationID, memberID string) (bool, error) {
	liked, err := u.counter.SetIsMember(ctx, likeSetKey(curationID), memberID)
	if err != nil {
		return false, transientErr("is liked", err)
	}
	return liked, nil
}

// LiveLikeCount returns the size of the curation's like set, the
// authoritative live like count until the next reconciliation.
func (u *EngagementUsecase) LiveLikeCount(ctx context.Context, curationID string) (int64, error) {
	size, err := u.counter.SetSize(ctx, likeSetKey(curationID))
	if err != nil {
		return 0, transientErr("live like count", err)
	}
	return size, nil
}

// LikedCurations returns the curations the member currently likes, resolved
// from the member's liked-set in ascending id order. Ids that no longer
// resolve to a curation are dropped.
func (u *EngagementUsecase) LikedCurations(ctx context.Context, memberID string) ([]entity.Curation, error) {
	ids, err := u.counter.SetMembers(ctx, memberLikedKey(memberID))
	if err != nil {
		return nil, transientErr("liked curations", err)
	}
	if len(ids) == 0 {
		return []entity.Curation{}, nil
	}
	sort.Strings(ids)
	curations, err := u.curationRepo.GetCurationsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve liked curations: %w", err)
	}
	return curations, nil
}

// LiveViewCount returns the durable view count plus the views accumulated in
// the counter store since the last reconciliation drain.
func (u *EngagementUsecase) LiveViewCount(ctx context.Context, curationID string) (int64, error) {
	curation, err := u.curationRepo.GetCurationByID(ctx, curationID)
	if err != nil {
		if errors.Is(err, ErrCurationNotFound) {
			return 0, ErrCurationNotFound
		}
		return 0, fmt.Errorf("failed to resolve curation %s: %w", curationID, err)
	}
	pending, ok, err := u.counter.SortedSetScore(ctx, viewCountKey, curationID)
	if err != nil {
		return 0, transientErr("live view count", err)
	}
	if !ok {
		return curation.ViewCount, nil
	}
	return curation.ViewCount + int64(pending), nil
}
