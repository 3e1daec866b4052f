package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/curately/curately/internal/domain/contract"
)

// toggleScript flips set membership as a single atomic operation. Returning 1
// means the member was added, 0 means it was removed. Running it server-side
// closes the race where two concurrent toggles both observe "absent".
var toggleScript = redis.NewScript(`
if redis.call('SISMEMBER', KEYS[1], ARGV[1]) == 1 then
    redis.call('SREM', KEYS[1], ARGV[1])
    return 0
else
    redis.call('SADD', KEYS[1], ARGV[1])
    return 1
end`)

// drainScript subtracts the processed amount from a zset entry and drops the
// entry once nothing is left. Running it server-side keeps increments that
// land between the caller's snapshot read and the drain.
var drainScript = redis.NewScript(`
local score = redis.call('ZINCRBY', KEYS[1], -ARGV[1], ARGV[2])
if tonumber(score) <= 0 then
    redis.call('ZREM', KEYS[1], ARGV[2])
end
return score`)

// CounterStore is the Redis implementation of the fast counter store.
type CounterStore struct {
	rdb *redis.Client
}

// NewCounterStore creates a CounterStore over an existing Redis client.
func NewCounterStore(rdb *redis.Client) *CounterStore {
	return &CounterStore{rdb: rdb}
}

var _ contract.ICounterStore = (*CounterStore)(nil)

// SetIfAbsent writes key=value with a TTL only when the key does not exist.
func (s *CounterStore) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, key, value, ttl).Result()
}

// AtomicToggle runs the toggle script against the set at key.
func (s *CounterStore) AtomicToggle(ctx context.Context, key, member string) (bool, error) {
	res, err := toggleScript.Run(ctx, s.rdb, []string{key}, member).Int64()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

func (s *CounterStore) SetAdd(ctx context.Context, key, member string) error {
	return s.rdb.SAdd(ctx, key, member).Err()
}

func (s *CounterStore) SetRemove(ctx context.Context, key, member string) error {
	return s.rdb.SRem(ctx, key, member).Err()
}

func (s *CounterStore) SetMembers(ctx context.Context, key string) ([]string, error) {
	return s.rdb.SMembers(ctx, key).Result()
}

func (s *CounterStore) SetSize(ctx context.Context, key string) (int64, error) {
	return s.rdb.SCard(ctx, key).Result()
}

func (s *CounterStore) SetIsMember(ctx context.Context, key, member string) (bool, error) {
	return s.rdb.SIsMember(ctx, key, member).Result()
}

func (s *CounterStore) SortedSetIncrBy(ctx context.Context, key, member string, delta float64) error {
	return s.rdb.ZIncrBy(ctx, key, delta, member).Err()
}

func (s *CounterStore) SortedSetReverseRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return s.rdb.ZRevRange(ctx, key, start, stop).Result()
}

func (s *CounterStore) SortedSetScore(ctx context.Context, key, member string) (float64, bool, error) {
	score, err := s.rdb.ZScore(ctx, key, member).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil
		}
		return 0, false, err
	}
	return score, true, nil
}

func (s *CounterStore) SortedSetRemove(ctx context.Context, key, member string) error {
	return s.rdb.ZRem(ctx, key, member).Err()
}

// SortedSetDrain runs the drain script against the zset at key.
func (s *CounterStore) SortedSetDrain(ctx context.Context, key, member string, amount float64) error {
	return drainScript.Run(ctx, s.rdb, []string{key}, amount, member).Err()
}

func (s *CounterStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

func (s *CounterStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

// Keys enumerates keys matching pattern with the SCAN iterator rather than
// KEYS, so reconciliation passes do not block the store.
func (s *CounterStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, pattern, 1000).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Delete removes keys in pipelined batches.
func (s *CounterStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	pipe := s.rdb.Pipeline()
	for i, key := range keys {
		pipe.Del(ctx, key)
		if (i+1)%200 == 0 {
			if _, err := pipe.Exec(ctx); err != nil {
				return err
			}
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *CounterStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.rdb.Expire(ctx, key, ttl).Err()
}
