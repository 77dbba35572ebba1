package driving

import (
	"context"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// ProofreadReport is the full output of one proofreading pass
type ProofreadReport struct {
	Issues  []domain.LocatedIssue `json:"issues"`
	Summary string                `json:"summary"`
	Model   string                `json:"model"`
}

// ProofreadService runs AI proofreading over a manuscript
type ProofreadService interface {
	// ProofreadProject analyses the whole manuscript of a project
	ProofreadProject(ctx context.Context, userID, projectID string) (*ProofreadReport, error)

	// ProofreadText analyses an arbitrary text fragment
	ProofreadText(ctx context.Context, userID string, text string) (*domain.ProofreadingResult, error)
}
