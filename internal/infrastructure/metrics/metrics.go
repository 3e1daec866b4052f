package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the counting engine, reconciliation job and recommendation
// engine. Registered on the default registry and exposed via /metrics.
var (
	ViewsCounted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curately_views_counted_total",
		Help: "Views that won the dedupe marker and were counted.",
	})
	ViewsDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curately_views_deduplicated_total",
		Help: "Views dropped because the client already viewed the curation in the window.",
	})
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curately_like_toggles_total",
		Help: "Like toggles by resulting state.",
	}, []string{"state"})
	SyncRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curately_sync_runs_total",
		Help: "Reconciliation job executions.",
	})
	SyncItemErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curately_sync_item_errors_total",
		Help: "Items skipped by the reconciliation job due to errors.",
	})
	LikeSetInconsistencies = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curately_like_set_inconsistencies_total",
		Help: "Observed divergences between like sets and the like ranking structure.",
	})
	RecommendCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curately_recommend_cache_hits_total",
		Help: "Recommendation requests served from the recommendation cache.",
	})
	RecommendCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curately_recommend_cache_misses_total",
		Help: "Recommendation requests that recomputed the candidate list.",
	})
	RecommendFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curately_recommend_fallbacks_total",
		Help: "Recommendation requests served from the durable store fallback.",
	})
)
