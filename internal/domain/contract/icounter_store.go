package contract

import (
	"context"
	"time"
)

// ICounterStore is the fast counter store the counting engine, reconciliation
// job and recommendation engine run against. Implementations must provide
// single-operation atomicity for SetIfAbsent and AtomicToggle; every other
// method is a plain read or write. All errors are transient store errors
// unless stated otherwise.
type ICounterStore interface {
	// SetIfAbsent writes key=value with a TTL only when the key does not
	// exist. Returns true when this call created the key.
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	// AtomicToggle flips membership of member in the set at key as a single
	// store-side operation. Returns true when the member was added, false
	// when it was removed.
	AtomicToggle(ctx context.Context, key, member string) (bool, error)

	SetAdd(ctx context.Context, key, member string) error
	SetRemove(ctx context.Context, key, member string) error
	SetMembers(ctx context.Context, key string) ([]string, error)
	SetSize(ctx context.Context, key string) (int64, error)
	SetIsMember(ctx context.Context, key, member string) (bool, error)

	SortedSetIncrBy(ctx context.Context, key, member string, delta float64) error
	// SortedSetReverseRange returns members ordered by descending score,
	// start/stop being zero-based rank bounds (inclusive, -1 for the end).
	SortedSetReverseRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	// SortedSetScore returns the member's score and whether it was present.
	SortedSetScore(ctx context.Context, key, member string) (float64, bool, error)
	SortedSetRemove(ctx context.Context, key, member string) error
	// SortedSetDrain subtracts amount from the member's score and removes the
	// member when the result is zero or below, as a single store-side
	// operation. Increments landing concurrently are never lost.
	SortedSetDrain(ctx context.Context, key, member string, amount float64) error

	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Keys(ctx context.Context, pattern string) ([]string, error)
	Delete(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}
