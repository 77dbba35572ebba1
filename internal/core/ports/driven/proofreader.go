package driven

import (
	"context"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// Proofreader analyses manuscript text and reports issues
type Proofreader interface {
	// Proofread analyses the given text and returns any issues found
	Proofread(ctx context.Context, text string) (*domain.ProofreadingResult, error)

	// Model returns the model identifier in use
	Model() string

	// Ping checks that the upstream service is reachable
	Ping(ctx context.Context) error
}
