package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// MockBinderStore is a mock implementation of BinderStore for testing
type MockBinderStore struct {
	mu    sync.RWMutex
	items map[string]*domain.BinderItem
}

// NewMockBinderStore creates a new MockBinderStore
func NewMockBinderStore() *MockBinderStore {
	return &MockBinderStore{
		items: make(map[string]*domain.BinderItem),
	}
}

func (m *MockBinderStore) Create(ctx context.Context, item *domain.BinderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *MockBinderStore) Get(ctx context.Context, id string) (*domain.BinderItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (m *MockBinderStore) ListByProject(ctx context.Context, projectID string) ([]*domain.BinderItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.BinderItem
	for _, item := range m.items {
		if item.ProjectID == projectID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ParentID != result[j].ParentID {
			return result[i].ParentID < result[j].ParentID
		}
		return result[i].SortOrder < result[j].SortOrder
	})
	return result, nil
}

func (m *MockBinderStore) Update(ctx context.Context, item *domain.BinderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	m.items[item.ID] = item
	return nil
}

func (m *MockBinderStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	// Cascade to descendants
	for {
		removed := false
		for childID, child := range m.items {
			if _, parentExists := m.items[child.ParentID]; child.ParentID != "" && !parentExists {
				delete(m.items, childID)
				removed = true
			}
		}
		if !removed {
			break
		}
	}
	return nil
}
