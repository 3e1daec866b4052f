package mocks

import (
	"context"
	"errors"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/curately/curately/internal/domain/contract"
)

// ErrStoreDown is returned by every MockCounterStore method while Down is set.
var ErrStoreDown = errors.New("counter store unavailable")

// MockCounterStore is an in-memory counter store for tests. A mutex stands in
// for the store's single-operation atomicity, so concurrent toggle tests
// exercise the same guarantees the Redis implementation provides.
type MockCounterStore struct {
	mu      sync.Mutex
	kv      map[string]kvEntry
	sets    map[string]map[string]bool
	zsets   map[string]map[string]float64
	Down    bool
	FailOps map[string]bool // op name -> fail next calls
}

type kvEntry struct {
	value    string
	deadline time.Time
}

func NewMockCounterStore() *MockCounterStore {
	return &MockCounterStore{
		kv:      make(map[string]kvEntry),
		sets:    make(map[string]map[string]bool),
		zsets:   make(map[string]map[string]float64),
		FailOps: make(map[string]bool),
	}
}

var _ contract.ICounterStore = (*MockCounterStore)(nil)

func (m *MockCounterStore) fail(op string) error {
	if m.Down || m.FailOps[op] {
		return ErrStoreDown
	}
	return nil
}

func (m *MockCounterStore) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SetIfAbsent"); err != nil {
		return false, err
	}
	if e, ok := m.kv[key]; ok && (e.deadline.IsZero() || time.Now().Before(e.deadline)) {
		return false, nil
	}
	m.kv[key] = kvEntry{value: value, deadline: time.Now().Add(ttl)}
	return true, nil
}

func (m *MockCounterStore) AtomicToggle(ctx context.Context, key, member string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("AtomicToggle"); err != nil {
		return false, err
	}
	set, ok := m.sets[key]
	if !ok {
		set = make(map[string]bool)
		m.sets[key] = set
	}
	if set[member] {
		delete(set, member)
		return false, nil
	}
	set[member] = true
	return true, nil
}

func (m *MockCounterStore) SetAdd(ctx context.Context, key, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SetAdd"); err != nil {
		return err
	}
	if m.sets[key] == nil {
		m.sets[key] = make(map[string]bool)
	}
	m.sets[key][member] = true
	return nil
}

func (m *MockCounterStore) SetRemove(ctx context.Context, key, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SetRemove"); err != nil {
		return err
	}
	delete(m.sets[key], member)
	return nil
}

func (m *MockCounterStore) SetMembers(ctx context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SetMembers"); err != nil {
		return nil, err
	}
	members := make([]string, 0, len(m.sets[key]))
	for member := range m.sets[key] {
		members = append(members, member)
	}
	sort.Strings(members)
	return members, nil
}

func (m *MockCounterStore) SetSize(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SetSize"); err != nil {
		return 0, err
	}
	return int64(len(m.sets[key])), nil
}

func (m *MockCounterStore) SetIsMember(ctx context.Context, key, member string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SetIsMember"); err != nil {
		return false, err
	}
	return m.sets[key][member], nil
}

func (m *MockCounterStore) SortedSetIncrBy(ctx context.Context, key, member string, delta float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SortedSetIncrBy"); err != nil {
		return err
	}
	if m.zsets[key] == nil {
		m.zsets[key] = make(map[string]float64)
	}
	m.zsets[key][member] += delta
	return nil
}

// SetScore seeds a ranking structure entry directly.
func (m *MockCounterStore) SetScore(key, member string, score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.zsets[key] == nil {
		m.zsets[key] = make(map[string]float64)
	}
	m.zsets[key][member] = score
}

func (m *MockCounterStore) SortedSetReverseRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SortedSetReverseRange"); err != nil {
		return nil, err
	}
	type entry struct {
		member string
		score  float64
	}
	entries := make([]entry, 0, len(m.zsets[key]))
	for member, score := range m.zsets[key] {
		entries = append(entries, entry{member, score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		// Redis orders equal scores by member lexicographically; ZREVRANGE
		// therefore yields equal-score members in descending member order.
		return entries[i].member > entries[j].member
	})
	if stop < 0 {
		stop = int64(len(entries)) + stop
	}
	var members []string
	for i, e := range entries {
		if int64(i) < start {
			continue
		}
		if int64(i) > stop {
			break
		}
		members = append(members, e.member)
	}
	return members, nil
}

func (m *MockCounterStore) SortedSetScore(ctx context.Context, key, member string) (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SortedSetScore"); err != nil {
		return 0, false, err
	}
	score, ok := m.zsets[key][member]
	return score, ok, nil
}

func (m *MockCounterStore) SortedSetRemove(ctx context.Context, key, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SortedSetRemove"); err != nil {
		return err
	}
	delete(m.zsets[key], member)
	return nil
}

func (m *MockCounterStore) SortedSetDrain(ctx context.Context, key, member string, amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SortedSetDrain"); err != nil {
		return err
	}
	if m.zsets[key] == nil {
		return nil
	}
	score := m.zsets[key][member] - amount
	if score <= 0 {
		delete(m.zsets[key], member)
		return nil
	}
	m.zsets[key][member] = score
	return nil
}

func (m *MockCounterStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Get"); err != nil {
		return "", false, err
	}
	e, ok := m.kv[key]
	if !ok || (!e.deadline.IsZero() && time.Now().After(e.deadline)) {
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *MockCounterStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Set"); err != nil {
		return err
	}
	var deadline time.Time
	if ttl > 0 {
		deadline = time.Now().Add(ttl)
	}
	m.kv[key] = kvEntry{value: value, deadline: deadline}
	return nil
}

func (m *MockCounterStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Keys"); err != nil {
		return nil, err
	}
	var keys []string
	for key := range m.kv {
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	for key := range m.sets {
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MockCounterStore) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Delete"); err != nil {
		return err
	}
	for _, key := range keys {
		delete(m.kv, key)
		delete(m.sets, key)
		delete(m.zsets, key)
	}
	return nil
}

func (m *MockCounterStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fail("Expire")
}

// ZScoreOf is a test helper exposing a ranking entry's current score.
func (m *MockCounterStore) ZScoreOf(key, member string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.zsets[key][member]
}
