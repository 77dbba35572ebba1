package mocks

import (
	"context"

	"github.com/syutarojp/novel-forge/internal/core/domain"
	"github.com/syutarojp/novel-forge/internal/core/ports/driven"
)

// Ensure MockProofreader implements Proofreader
var _ driven.Proofreader = (*MockProofreader)(nil)

// MockProofreader is a mock implementation of Proofreader for testing
type MockProofreader struct {
	// Result is returned by Proofread when Err is nil
	Result *domain.ProofreadingResult
	// Err, when set, is returned by Proofread
	Err error
	// LastText records the most recent Proofread input
	LastText string
}

// NewMockProofreader creates a new MockProofreader
func NewMockProofreader() *MockProofreader {
	return &MockProofreader{
		Result: &domain.ProofreadingResult{},
	}
}

func (m *MockProofreader) Proofread(ctx context.Context, text string) (*domain.ProofreadingResult, error) {
	m.LastText = text
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

func (m *MockProofreader) Model() string {
	return "mock-model"
}

func (m *MockProofreader) Ping(ctx context.Context) error {
	return nil
}
