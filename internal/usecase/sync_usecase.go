package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/curately/curately/internal/domain/contract"
	"github.com/curately/curately/internal/domain/entity"
	"github.com/curately/curately/internal/infrastructure/metrics"
	usecasecontract "github.com/curately/curately/internal/usecase/contract"
)

// SyncUsecase is the reconciliation job. It folds counter-store state into
// the durable record store on a schedule: like sets become durable like
// relations plus an updated like_count, and the pending view zset is drained
// into view_count. The job takes snapshot reads; toggles and views landing
// during a pass are picked up on the next one.
type SyncUsecase struct {
	counter      contract.ICounterStore
	curationRepo contract.ICurationRepository
	likeRepo     contract.ILikeRepository
	memberRepo   contract.IMemberRepository
	logger       usecasecontract.IAppLogger
	interval     time.Duration
	uuidgen      contract.IUUIDGenerator
}

// NewSyncUsecase creates and returns a new SyncUsecase instance.
func NewSyncUsecase(
	counter contract.ICounterStore,
	curationRepo contract.ICurationRepository,
	likeRepo contract.ILikeRepository,
	memberRepo contract.IMemberRepository,
	uuidgen contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
	config usecasecontract.IConfigProvider,
) *SyncUsecase {
	return &SyncUsecase{
		counter:      counter,
		curationRepo: curationRepo,
		likeRepo:     likeRepo,
		memberRepo:   memberRepo,
		logger:       logger,
		interval:     config.GetSyncInterval(),
		uuidgen:      uuidgen,
	}
}

// Run executes the reconciliation loop until the context is cancelled. The
// scheduler serializes runs: a slow pass delays the next tick rather than
// overlapping with it.
func (u *SyncUsecase) Run(ctx context.Context) {
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			u.SyncAll(ctx)
		}
	}
}

// SyncAll runs both reconciliation passes once.
func (u *SyncUsecase) SyncAll(ctx context.Context) {
	metrics.SyncRuns.Inc()
	if err := u.SyncLikesToDatabase(ctx); err != nil {
		u.logger.Errorf("like reconciliation failed: %v", err)
	}
	if err := u.SyncViewCountsToDatabase(ctx); err != nil {
		u.logger.Errorf("view reconciliation failed: %v", err)
	}
}

// SyncLikesToDatabase enumerates every like set in the counting namespace,
// persists any like relations not yet recorded durably and updates each
// curation's like_count to the current set size. A failure on one curation is
// logged and skipped; the rest of the batch still reconciles. Re-running
// against an already-reconciled curation creates no additional rows because
// relation writes are upserts keyed on (curation, member).
func (u *SyncUsecase) SyncLikesToDatabase(ctx context.Context) error {
	keys, err := u.counter.Keys(ctx, likeSetKeyPrefix+"*")
	if err != nil {
		return transientErr("sync likes", err)
	}

	for _, key := range keys {
		curationID := strings.TrimPrefix(key, likeSetKeyPrefix)
		if curationID == "" || curationID == key {
			u.logger.Warnf("skipping malformed like-set key %q", key)
			continue
		}
		if err := u.syncCurationLikes(ctx, key, curationID); err != nil {
			metrics.SyncItemErrors.Inc()
			u.logger.Errorf("failed to reconcile likes for curation %s: %v", curationID, err)
		}
	}
	return nil
}

func (u *SyncUsecase) syncCurationLikes(ctx context.Context, key, curationID string) error {
	// Resolve the curation before touching durable state so a like-set key
	// with no backing curation cannot leave orphan relation rows.
	if _, err := u.curationRepo.GetCurationByID(ctx, curationID); err != nil {
		return err
	}

	memberIDs, err := u.counter.SetMembers(ctx, key)
	if err != nil {
		return transientErr("read like set", err)
	}

	for _, memberID := range memberIDs {
		recorded, err := u.likeRepo.LikeExists(ctx, curationID, memberID)
		if err != nil {
			return err
		}
		if recorded {
			continue
		}
		exists, err := u.memberRepo.MemberExists(ctx, memberID)
		if err != nil {
			return err
		}
		if !exists {
			u.logger.Warnf("like set %s references unknown member %s", key, memberID)
			continue
		}
		like := &entity.Like{
			ID:         u.uuidgen.NewUUID(),
			CurationID: curationID,
			MemberID:   memberID,
			CreatedAt:  time.Now(),
		}
		if err := u.likeRepo.SaveLike(ctx, like); err != nil {
			return err
		}
	}

	size, err := u.counter.SetSize(ctx, key)
	if err != nil {
		return transientErr("read like set size", err)
	}
	u.checkRankingConsistency(ctx, curationID, size)

	if err := u.curationRepo.UpdateCuration(ctx, curationID, map[string]interface{}{
		"like_count": size,
	}); err != nil {
		return err
	}
	return nil
}

// checkRankingConsistency compares the like set size with the like ranking
// structure. Divergence is tolerated (the set is authoritative) but reported
// so operators can see drift.
func (u *SyncUsecase) checkRankingConsistency(ctx context.Context, curationID string, setSize int64) {
	score, ok, err := u.counter.SortedSetScore(ctx, likeCountKey, curationID)
	if err != nil {
		u.logger.Warnf("failed to read like ranking for curation %s: %v", curationID, err)
		return
	}
	ranked := int64(0)
	if ok {
		ranked = int64(score)
	}
	if ranked != setSize {
		metrics.LikeSetInconsistencies.Inc()
		u.logger.Warningf("like set and ranking diverge for curation %s: set=%d ranking=%d", curationID, setSize, ranked)
	}
}

// SyncViewCountsToDatabase drains the pending view zset: each entry's score
// is added to the curation's durable view_count and the entry is removed, so
// a re-run without new views is a no-op and durable counts only grow.
func (u *SyncUsecase) SyncViewCountsToDatabase(ctx context.Context) error {
	curationIDs, err := u.counter.SortedSetReverseRange(ctx, viewCountKey, 0, -1)
	if err != nil {
		return transientErr("sync views", err)
	}

	for _, curationID := range curationIDs {
		if err := u.syncCurationViews(ctx, curationID); err != nil {
			metrics.SyncItemErrors.Inc()
			u.logger.Errorf("failed to reconcile views for curation %s: %v", curationID, err)
		}
	}
	return nil
}

func (u *SyncUsecase) syncCurationViews(ctx context.Context, curationID string) error {
	pending, ok, err := u.counter.SortedSetScore(ctx, viewCountKey, curationID)
	if err != nil {
		return transientErr("read view score", err)
	}
	if !ok || pending <= 0 {
		return nil
	}

	curation, err := u.curationRepo.GetCurationByID(ctx, curationID)
	if err != nil {
		return err
	}
	if err := u.curationRepo.UpdateCuration(ctx, curationID, map[string]interface{}{
		"view_count": curation.ViewCount + int64(pending),
	}); err != nil {
		return err
	}
	// Clear the processed amount only after the durable write landed. The
	// drain keeps views that arrived between the snapshot read and this
	// write for the next pass and drops the entry once nothing is left, so
	// fully reconciled curations do not linger in the ranking structure.
	if err := u.counter.SortedSetDrain(ctx, viewCountKey, curationID, pending); err != nil {
		return transientErr("clear view score", err)
	}
	return nil
}
