package mocks

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	usecasecontract "github.com/curately/curately/internal/usecase/contract"
)

// NopLogger discards all log output.
type NopLogger struct{}

func NewNopLogger() usecasecontract.IAppLogger { return &NopLogger{} }

func (l *NopLogger) Debugf(format string, args ...interface{})   {}
func (l *NopLogger) Infof(format string, args ...interface{})    {}
func (l *NopLogger) Warnf(format string, args ...interface{})    {}
func (l *NopLogger) Warningf(format string, args ...interface{}) {}
func (l *NopLogger) Errorf(format string, args ...interface{})   {}
func (l *NopLogger) Fatalf(format string, args ...interface{})   {}

// RecordingLogger discards everything except warnings, which it captures so
// tests can assert a warning path fired.
type RecordingLogger struct {
	NopLogger
	mu       sync.Mutex
	Warnings []string
}

func NewRecordingLogger() *RecordingLogger { return &RecordingLogger{} }

func (l *RecordingLogger) Warnf(format string, args ...interface{})    { l.record(format, args...) }
func (l *RecordingLogger) Warningf(format string, args ...interface{}) { l.record(format, args...) }

func (l *RecordingLogger) record(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warnings = append(l.Warnings, fmt.Sprintf(format, args...))
}

// MockConfig is a fixed-value IConfigProvider for tests.
type MockConfig struct {
	DedupTTL   time.Duration
	Interval   time.Duration
	CacheTTL   time.Duration
	Limit      int
	ViewWeight float64
	LikeWeight float64
	TrendingN  int
}

func NewMockConfig() *MockConfig {
	return &MockConfig{
		DedupTTL:   24 * time.Hour,
		Interval:   10 * time.Minute,
		CacheTTL:   30 * time.Minute,
		Limit:      20,
		ViewWeight: 1,
		LikeWeight: 3,
		TrendingN:  10,
	}
}

var _ usecasecontract.IConfigProvider = (*MockConfig)(nil)

func (c *MockConfig) GetViewDedupTTL() time.Duration      { return c.DedupTTL }
func (c *MockConfig) GetSyncInterval() time.Duration      { return c.Interval }
func (c *MockConfig) GetRecommendCacheTTL() time.Duration { return c.CacheTTL }
func (c *MockConfig) GetRecommendLimit() int              { return c.Limit }
func (c *MockConfig) GetRecommendViewWeight() float64     { return c.ViewWeight }
func (c *MockConfig) GetRecommendLikeWeight() float64     { return c.LikeWeight }
func (c *MockConfig) GetTrendingLimit() int               { return c.TrendingN }

// MockUUIDGenerator yields deterministic sequential ids.
type MockUUIDGenerator struct {
	n atomic.Int64
}

func NewMockUUIDGenerator() *MockUUIDGenerator { return &MockUUIDGenerator{} }

func (g *MockUUIDGenerator) NewUUID() string {
	return fmt.Sprintf("uuid-%d", g.n.Add(1))
}
