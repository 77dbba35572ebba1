package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// MockTrashStore is a mock implementation of TrashStore for testing
type MockTrashStore struct {
	mu      sync.RWMutex
	entries map[string]*domain.TrashedSection

	// AddErr, when set, is returned by Add
	AddErr error
}

// NewMockTrashStore creates a new MockTrashStore
func NewMockTrashStore() *MockTrashStore {
	return &MockTrashStore{
		entries: make(map[string]*domain.TrashedSection),
	}
}

func (m *MockTrashStore) Add(ctx context.Context, section *domain.TrashedSection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddErr != nil {
		return m.AddErr
	}
	m.entries[section.ID] = section
	return nil
}

func (m *MockTrashStore) Get(ctx context.Context, id string) (*domain.TrashedSection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

func (m *MockTrashStore) ListByProject(ctx context.Context, projectID string) ([]*domain.TrashedSection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.TrashedSection
	for _, entry := range m.entries {
		if entry.ProjectID == projectID {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DeletedAt.After(result[j].DeletedAt)
	})
	return result, nil
}

func (m *MockTrashStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}
