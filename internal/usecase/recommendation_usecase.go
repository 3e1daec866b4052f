package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/curately/curately/internal/domain/contract"
	"github.com/curately/curately/internal/domain/entity"
	"github.com/curately/curately/internal/infrastructure/metrics"
	usecasecontract "github.com/curately/curately/internal/usecase/contract"
)

// rankingWindowSize is how deep each ranking structure is read when building
// the candidate set, mirroring the top-6 windows of the ranking keys.
const rankingWindowSize = 6

// tagOverlapThreshold is the number of shared tags that qualifies a curation
// as similar to the seed. When no curation clears it, up to
// tagSimilarSample loosely related ones are sampled instead.
const (
	tagOverlapThreshold = 3
	tagSimilarSample    = 3
)

// RecommendationUsecase computes ranked related-curation lists. The counter
// store is an optimization here, never a hard dependency: any failure reading
// the ranking structures or the recommendation cache degrades to the durable
// store's top-N queries.
type RecommendationUsecase struct {
	counter      contract.ICounterStore
	curationRepo contract.ICurationRepository
	logger       usecasecontract.IAppLogger
	cacheTTL     time.Duration
	limit        int
	viewWeight   float64
	likeWeight   float64
	trendingN    int
}

// NewRecommendationUsecase creates and returns a new RecommendationUsecase
// instance.
func NewRecommendationUsecase(
	counter contract.ICounterStore,
	curationRepo contract.ICurationRepository,
	logger usecasecontract.IAppLogger,
	config usecasecontract.IConfigProvider,
) *RecommendationUsecase {
	return &RecommendationUsecase{
		counter:      counter,
		curationRepo: curationRepo,
		logger:       logger,
		cacheTTL:     config.GetRecommendCacheTTL(),
		limit:        config.GetRecommendLimit(),
		viewWeight:   config.GetRecommendViewWeight(),
		likeWeight:   config.GetRecommendLikeWeight(),
		trendingN:    config.GetTrendingLimit(),
	}
}

var _ usecasecontract.IRecommendationUseCase = (*RecommendationUsecase)(nil)

// Recommend returns curations related to the seed, ordered by the chosen
// strategy (score descending, ties broken by ascending id). The computed id
// list is cached under the seed's recommendation key; a cache hit skips all
// ranking work and only resolves the stored ids.
func (u *RecommendationUsecase) Recommend(ctx context.Context, seedID, sortType, actorID string) ([]entity.Curation, error) {
	if sortType == "" {
		sortType = usecasecontract.SortByCombined
	}
	switch sortType {
	case usecasecontract.SortByViews, usecasecontract.SortByLikes, usecasecontract.SortByCombined:
	default:
		return nil, fmt.Errorf("unknown sort type %q", sortType)
	}

	seed, err := u.curationRepo.GetCurationByID(ctx, seedID)
	if err != nil {
		if errors.Is(err, ErrCurationNotFound) {
			return nil, ErrCurationNotFound
		}
		return nil, fmt.Errorf("failed to resolve seed curation %s: %w", seedID, err)
	}

	if cached, ok := u.readCachedRecommendation(ctx, seedID); ok {
		metrics.RecommendCacheHits.Inc()
		return u.resolveOrdered(ctx, cached)
	}
	metrics.RecommendCacheMisses.Inc()

	excluded := u.excludedIDs(ctx, seedID, actorID)
	similar := u.tagSimilarIDs(ctx, seed, excluded)
	ranked := u.rankLiveCandidates(ctx, sortType, excluded, similar)

	if len(ranked) == 0 {
		metrics.RecommendFallbacks.Inc()
		return u.recommendFromDurable(ctx, seedID, sortType, excluded)
	}

	if len(ranked) > u.limit {
		ranked = ranked[:u.limit]
	}
	u.writeCachedRecommendation(ctx, seedID, ranked)
	return u.resolveOrdered(ctx, ranked)
}

// readCachedRecommendation returns the cached id list for the seed, if any.
// Cache errors count as misses.
func (u *RecommendationUsecase) readCachedRecommendation(ctx context.Context, seedID string) ([]string, bool) {
	raw, ok, err := u.counter.Get(ctx, recommendKey(seedID))
	if err != nil {
		u.logger.Warnf("recommendation cache read failed for %s: %v", seedID, err)
		return nil, false
	}
	if !ok || raw == "" {
		return nil, false
	}
	ids := make([]string, 0)
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, len(ids) > 0
}

func (u *RecommendationUsecase) writeCachedRecommendation(ctx context.Context, seedID string, ids []string) {
	if len(ids) == 0 {
		return
	}
	if err := u.counter.Set(ctx, recommendKey(seedID), strings.Join(ids, ","), u.cacheTTL); err != nil {
		u.logger.Warnf("recommendation cache write failed for %s: %v", seedID, err)
	}
}

// rankLiveCandidates unions the ranking windows and the extra candidate ids
// into a candidate set, scores each candidate per the strategy and returns
// ids ordered by score descending then id ascending. An unreachable counter
// store with no extra candidates yields an empty slice.
func (u *RecommendationUsecase) rankLiveCandidates(ctx context.Context, sortType string, excluded map[string]bool, extra []string) []string {
	candidates := make(map[string]bool)
	for _, id := range extra {
		if !excluded[id] {
			candidates[id] = true
		}
	}
	for _, key := range []string{trendingKey, popularKey, viewCountKey, likeCountKey} {
		members, err := u.counter.SortedSetReverseRange(ctx, key, 0, rankingWindowSize-1)
		if err != nil {
			u.logger.Warnf("ranking structure %s unavailable: %v", key, err)
			continue
		}
		for _, id := range members {
			if !excluded[id] {
				candidates[id] = true
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	type scored struct {
		id    string
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for id := range candidates {
		ranked = append(ranked, scored{id: id, score: u.scoreCandidate(ctx, id, sortType)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].id < ranked[j].id
	})

	ids := make([]string, len(ranked))
	for i, c := range ranked {
		ids[i] = c.id
	}
	return ids
}

// scoreCandidate reads the live signals for one candidate. Missing scores
// count as zero; the combined strategy blends views and likes with the
// configured weights (views*1 + likes*3 by default).
func (u *RecommendationUsecase) scoreCandidate(ctx context.Context, id, sortType string) float64 {
	views := u.liveScore(ctx, viewCountKey, id)
	likes := u.liveScore(ctx, likeCountKey, id)
	switch sortType {
	case usecasecontract.SortByViews:
		return views
	case usecasecontract.SortByLikes:
		return likes
	default:
		return u.viewWeight*views + u.likeWeight*likes
	}
}

func (u *RecommendationUsecase) liveScore(ctx context.Context, key, id string) float64 {
	score, ok, err := u.counter.SortedSetScore(ctx, key, id)
	if err != nil || !ok {
		return 0
	}
	return score
}

// tagSimilarIDs finds curations related to the seed by tag overlap: sharing
// tagOverlapThreshold or more tags qualifies outright; when nothing clears
// the bar, a small random sample of curations sharing at least one tag keeps
// the recommendation from collapsing to pure popularity. Errors here only
// cost a candidate source.
func (u *RecommendationUsecase) tagSimilarIDs(ctx context.Context, seed *entity.Curation, excluded map[string]bool) []string {
	if len(seed.Tags) == 0 {
		return nil
	}
	pool, err := u.curationRepo.GetCurationsByTags(ctx, seed.Tags, u.limit*2)
	if err != nil {
		u.logger.Warnf("tag lookup failed for curation %s: %v", seed.ID, err)
		return nil
	}

	var similar, loose []string
	for _, c := range pool {
		if excluded[c.ID] {
			continue
		}
		if sharedTags(seed.Tags, c.Tags) >= tagOverlapThreshold {
			similar = append(similar, c.ID)
		} else {
			loose = append(loose, c.ID)
		}
	}
	if len(similar) > 0 {
		return similar
	}
	rand.Shuffle(len(loose), func(i, j int) { loose[i], loose[j] = loose[j], loose[i] })
	if len(loose) > tagSimilarSample {
		loose = loose[:tagSimilarSample]
	}
	return loose
}

func sharedTags(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, tag := range a {
		set[tag] = true
	}
	n := 0
	for _, tag := range b {
		if set[tag] {
			n++
		}
	}
	return n
}

// recommendFromDurable serves a recommendation entirely from the record
// store, used when the ranking structures are empty or unreachable.
func (u *RecommendationUsecase) recommendFromDurable(ctx context.Context, seedID, sortType string, excluded map[string]bool) ([]entity.Curation, error) {
	var (
		top []entity.Curation
		err error
	)
	// Fetch past the limit so exclusions do not shrink the page.
	n := u.limit + len(excluded)
	if sortType == usecasecontract.SortByLikes {
		top, err = u.curationRepo.GetTopByLikeCount(ctx, n)
	} else {
		top, err = u.curationRepo.GetTopByViewCount(ctx, n)
	}
	if err != nil {
		return nil, fmt.Errorf("durable recommendation fallback failed: %w", err)
	}

	result := make([]entity.Curation, 0, u.limit)
	ids := make([]string, 0, u.limit)
	for _, c := range top {
		if excluded[c.ID] {
			continue
		}
		result = append(result, c)
		ids = append(ids, c.ID)
		if len(result) == u.limit {
			break
		}
	}
	u.writeCachedRecommendation(ctx, seedID, ids)
	return result, nil
}

// excludedIDs builds the exclusion set: the seed itself plus, when actor
// context is available, everything the actor owns.
func (u *RecommendationUsecase) excludedIDs(ctx context.Context, seedID, actorID string) map[string]bool {
	excluded := map[string]bool{seedID: true}
	if actorID == "" {
		return excluded
	}
	owned, err := u.curationRepo.GetCurationsByOwnerID(ctx, actorID)
	if err != nil {
		u.logger.Warnf("failed to load curations owned by %s: %v", actorID, err)
		return excluded
	}
	for _, c := range owned {
		excluded[c.ID] = true
	}
	return excluded
}

// resolveOrdered batch-loads the curations and returns them in the order of
// ids, dropping ids that no longer resolve.
func (u *RecommendationUsecase) resolveOrdered(ctx context.Context, ids []string) ([]entity.Curation, error) {
	if len(ids) == 0 {
		return []entity.Curation{}, nil
	}
	curations, err := u.curationRepo.GetCurationsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recommended curations: %w", err)
	}
	byID := make(map[string]entity.Curation, len(curations))
	for _, c := range curations {
		byID[c.ID] = c
	}
	ordered := make([]entity.Curation, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

// Trending returns the top curations of the rolling 24h view window ordered
// by window score, falling back to durable view counts when the window is
// empty or the counter store is unreachable.
func (u *RecommendationUsecase) Trending(ctx context.Context) ([]entity.Curation, error) {
	ids, err := u.counter.SortedSetReverseRange(ctx, trendingKey, 0, int64(u.trendingN-1))
	if err != nil {
		u.logger.Warnf("trending window unavailable: %v", err)
		ids = nil
	}
	if len(ids) == 0 {
		return u.curationRepo.GetTopByViewCount(ctx, u.trendingN)
	}
	return u.resolveOrdered(ctx, ids)
}
