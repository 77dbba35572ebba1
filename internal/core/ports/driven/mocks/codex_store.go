package mocks

import (
	"context"
	"sync"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// MockCodexStore is a mock implementation of CodexStore for testing
type MockCodexStore struct {
	mu        sync.RWMutex
	entries   map[string]*domain.CodexEntry
	relations map[string]*domain.CodexRelation
}

// NewMockCodexStore creates a new MockCodexStore
func NewMockCodexStore() *MockCodexStore {
	return &MockCodexStore{
		entries:   make(map[string]*domain.CodexEntry),
		relations: make(map[string]*domain.CodexRelation),
	}
}

func (m *MockCodexStore) CreateEntry(ctx context.Context, entry *domain.CodexEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockCodexStore) GetEntry(ctx context.Context, id string) (*domain.CodexEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

func (m *MockCodexStore) ListEntries(ctx context.Context, projectID string, entryType domain.CodexEntryType) ([]*domain.CodexEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.CodexEntry
	for _, entry := range m.entries {
		if entry.ProjectID != projectID {
			continue
		}
		if entryType != "" && entry.Type != entryType {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

func (m *MockCodexStore) UpdateEntry(ctx context.Context, entry *domain.CodexEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return domain.ErrNotFound
	}
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockCodexStore) DeleteEntry(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.entries, id)
	for relID, rel := range m.relations {
		if rel.SourceID == id || rel.TargetID == id {
			delete(m.relations, relID)
		}
	}
	return nil
}

func (m *MockCodexStore) CreateRelation(ctx context.Context, relation *domain.CodexRelation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.relations[relation.ID] = relation
	return nil
}

func (m *MockCodexStore) ListRelations(ctx context.Context, entryID string) ([]*domain.CodexRelation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.CodexRelation
	for _, rel := range m.relations {
		if rel.SourceID == entryID || rel.TargetID == entryID {
			result = append(result, rel)
		}
	}
	return result, nil
}

func (m *MockCodexStore) DeleteRelation(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.relations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.relations, id)
	return nil
}
