package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/curately/curately/internal/domain/contract"
	"github.com/curately/curately/internal/domain/entity"
)

// MockCurationRepository is an in-memory ICurationRepository.
type MockCurationRepository struct {
	mu        sync.Mutex
	Curations map[string]entity.Curation
	FailAll   bool
	// UpdateCalls records the partial updates applied, in order.
	UpdateCalls []map[string]interface{}
}

func NewMockCurationRepository() *MockCurationRepository {
	return &MockCurationRepository{Curations: make(map[string]entity.Curation)}
}

var _ contract.ICurationRepository = (*MockCurationRepository)(nil)

func (m *MockCurationRepository) Put(c entity.Curation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Curations[c.ID] = c
}

func (m *MockCurationRepository) GetCurationByID(ctx context.Context, id string) (*entity.Curation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return nil, fmt.Errorf("curation repository down")
	}
	c, ok := m.Curations[id]
	if !ok {
		return nil, contract.ErrCurationNotFound
	}
	return &c, nil
}

func (m *MockCurationRepository) GetCurationsByIDs(ctx context.Context, ids []string) ([]entity.Curation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return nil, fmt.Errorf("curation repository down")
	}
	var out []entity.Curation
	for _, id := range ids {
		if c, ok := m.Curations[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCurationRepository) GetCurationsByOwnerID(ctx context.Context, ownerID string) ([]entity.Curation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return nil, fmt.Errorf("curation repository down")
	}
	var out []entity.Curation
	for _, c := range m.Curations {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCurationRepository) GetCurationsByTags(ctx context.Context, tags []string, n int) ([]entity.Curation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return nil, fmt.Errorf("curation repository down")
	}
	wanted := make(map[string]bool, len(tags))
	for _, tag := range tags {
		wanted[tag] = true
	}
	var out []entity.Curation
	for _, c := range m.Curations {
		if !c.IsPublic {
			continue
		}
		for _, tag := range c.Tags {
			if wanted[tag] {
				out = append(out, c)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (m *MockCurationRepository) CreateCuration(ctx context.Context, curation *entity.Curation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return fmt.Errorf("curation repository down")
	}
	m.Curations[curation.ID] = *curation
	return nil
}

func (m *MockCurationRepository) UpdateCuration(ctx context.Context, id string, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return fmt.Errorf("curation repository down")
	}
	c, ok := m.Curations[id]
	if !ok {
		return contract.ErrCurationNotFound
	}
	if v, ok := updates["view_count"]; ok {
		c.ViewCount = v.(int64)
	}
	if v, ok := updates["like_count"]; ok {
		c.LikeCount = v.(int64)
	}
	m.Curations[id] = c
	m.UpdateCalls = append(m.UpdateCalls, updates)
	return nil
}

func (m *MockCurationRepository) DeleteCuration(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Curations[id]; !ok {
		return contract.ErrCurationNotFound
	}
	delete(m.Curations, id)
	return nil
}

func (m *MockCurationRepository) GetTopByViewCount(ctx context.Context, n int) ([]entity.Curation, error) {
	return m.topBy(n, func(c entity.Curation) int64 { return c.ViewCount })
}

func (m *MockCurationRepository) GetTopByLikeCount(ctx context.Context, n int) ([]entity.Curation, error) {
	return m.topBy(n, func(c entity.Curation) int64 { return c.LikeCount })
}

func (m *MockCurationRepository) topBy(n int, score func(entity.Curation) int64) ([]entity.Curation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return nil, fmt.Errorf("curation repository down")
	}
	all := make([]entity.Curation, 0, len(m.Curations))
	for _, c := range m.Curations {
		if c.IsPublic {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if score(all[i]) != score(all[j]) {
			return score(all[i]) > score(all[j])
		}
		return all[i].ID < all[j].ID
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// MockLikeRepository is an in-memory ILikeRepository keyed on
// (curation, member), matching the unique-index semantics of the real one.
type MockLikeRepository struct {
	mu        sync.Mutex
	Relations map[string]entity.Like
	SaveCalls int
	FailAll   bool
}

func NewMockLikeRepository() *MockLikeRepository {
	return &MockLikeRepository{Relations: make(map[string]entity.Like)}
}

var _ contract.ILikeRepository = (*MockLikeRepository)(nil)

func relationKey(curationID, memberID string) string {
	return curationID + "|" + memberID
}

func (m *MockLikeRepository) SaveLike(ctx context.Context, like *entity.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return fmt.Errorf("like repository down")
	}
	m.SaveCalls++
	key := relationKey(like.CurationID, like.MemberID)
	if _, ok := m.Relations[key]; !ok {
		m.Relations[key] = *like
	}
	return nil
}

func (m *MockLikeRepository) LikeExists(ctx context.Context, curationID, memberID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return false, fmt.Errorf("like repository down")
	}
	_, ok := m.Relations[relationKey(curationID, memberID)]
	return ok, nil
}

func (m *MockLikeRepository) DeleteLikesByCurationID(ctx context.Context, curationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, rel := range m.Relations {
		if rel.CurationID == curationID {
			delete(m.Relations, key)
		}
	}
	return nil
}

// RelationCount is a test helper counting the durable relations of a
// curation.
func (m *MockLikeRepository) RelationCount(curationID string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, rel := range m.Relations {
		if rel.CurationID == curationID {
			n++
		}
	}
	return n
}

// MockMemberRepository is an in-memory IMemberRepository.
type MockMemberRepository struct {
	mu      sync.Mutex
	Members map[string]bool
}

func NewMockMemberRepository(ids ...string) *MockMemberRepository {
	m := &MockMemberRepository{Members: make(map[string]bool)}
	for _, id := range ids {
		m.Members[id] = true
	}
	return m
}

var _ contract.IMemberRepository = (*MockMemberRepository)(nil)

func (m *MockMemberRepository) MemberExists(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Members[id], nil
}
