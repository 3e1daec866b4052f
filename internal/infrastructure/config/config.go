package config

import (
	"os"
	"strconv"
	"time"

	usecasecontract "github.com/curately/curately/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	ViewDedupTTL        time.Duration
	SyncInterval        time.Duration
	RecommendCacheTTL   time.Duration
	RecommendLimit      int
	RecommendViewWeight float64
	RecommendLikeWeight float64
	TrendingLimit       int
}

// NewConfig creates a new Config instance, loading values from environment
// variables. The combined recommendation score defaults to views*1 + likes*3.
func NewConfig() usecasecontract.IConfigProvider {
	return &Config{
		ViewDedupTTL:        time.Hour * time.Duration(getEnvAsInt("VIEW_DEDUP_TTL_HOURS", 24)),
		SyncInterval:        time.Minute * time.Duration(getEnvAsInt("SYNC_INTERVAL_MINUTES", 10)),
		RecommendCacheTTL:   time.Minute * time.Duration(getEnvAsInt("RECOMMEND_CACHE_TTL_MINUTES", 30)),
		RecommendLimit:      getEnvAsInt("RECOMMEND_LIMIT", 20),
		RecommendViewWeight: getEnvAsFloat("RECOMMEND_VIEW_WEIGHT", 1),
		RecommendLikeWeight: getEnvAsFloat("RECOMMEND_LIKE_WEIGHT", 3),
		TrendingLimit:       getEnvAsInt("TRENDING_LIMIT", 10),
	}
}

// GetViewDedupTTL returns how long a dedupe marker suppresses repeat views
// from the same client.
func (c *Config) GetViewDedupTTL() time.Duration {
	return c.ViewDedupTTL
}

// GetSyncInterval returns the reconciliation job interval.
func (c *Config) GetSyncInterval() time.Duration {
	return c.SyncInterval
}

// GetRecommendCacheTTL returns how long computed recommendation lists stay
// cached.
func (c *Config) GetRecommendCacheTTL() time.Duration {
	return c.RecommendCacheTTL
}

// GetRecommendLimit returns the maximum size of a recommendation result.
func (c *Config) GetRecommendLimit() int {
	return c.RecommendLimit
}

// GetRecommendViewWeight returns the view weight of the combined score.
func (c *Config) GetRecommendViewWeight() float64 {
	return c.RecommendViewWeight
}

// GetRecommendLikeWeight returns the like weight of the combined score.
func (c *Config) GetRecommendLikeWeight() float64 {
	return c.RecommendLikeWeight
}

// GetTrendingLimit returns the size of the trending listing.
func (c *Config) GetTrendingLimit() int {
	return c.TrendingLimit
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a
// default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as a float or return a
// default value.
func getEnvAsFloat(name string, fallback float64) float64 {
	valueStr := getEnv(name, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}
