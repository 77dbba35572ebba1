package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// MockProjectStore is a mock implementation of ProjectStore for testing
type MockProjectStore struct {
	mu       sync.RWMutex
	projects map[string]*domain.Project

	// UpdateContentErr, when set, is returned by UpdateContent
	UpdateContentErr error
}

// NewMockProjectStore creates a new MockProjectStore
func NewMockProjectStore() *MockProjectStore {
	return &MockProjectStore{
		projects: make(map[string]*domain.Project),
	}
}

func (m *MockProjectStore) Create(ctx context.Context, project *domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[project.ID] = project
	return nil
}

func (m *MockProjectStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	project, ok := m.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return project, nil
}

func (m *MockProjectStore) ListByUser(ctx context.Context, userID string) ([]*domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Project
	for _, project := range m.projects {
		if project.UserID == userID {
			result = append(result, project)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (m *MockProjectStore) Update(ctx context.Context, project *domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[project.ID]; !ok {
		return domain.ErrNotFound
	}
	m.projects[project.ID] = project
	return nil
}

func (m *MockProjectStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m *MockProjectStore) GetContent(ctx context.Context, id string) (*domain.ManuscriptContent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	project, ok := m.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	content := project.Content
	if content == nil {
		content = &domain.Document{}
	}
	return &domain.ManuscriptContent{Content: content, WordCount: project.WordCount}, nil
}

func (m *MockProjectStore) UpdateContent(ctx context.Context, id string, content *domain.Document, wordCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateContentErr != nil {
		return m.UpdateContentErr
	}
	project, ok := m.projects[id]
	if !ok {
		return domain.ErrNotFound
	}
	project.Content = content
	project.WordCount = wordCount
	return nil
}
