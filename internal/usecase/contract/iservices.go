package usecasecontract

import "time"

// IAppLogger defines the interface for application logging.
type IAppLogger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// IConfigProvider exposes the configuration values the usecases depend on.
type IConfigProvider interface {
	GetViewDedupTTL() time.Duration
	GetSyncInterval() time.Duration
	GetRecommendCacheTTL() time.Duration
	GetRecommendLimit() int
	GetRecommendViewWeight() float64
	GetRecommendLikeWeight() float64
	GetTrendingLimit() int
}
