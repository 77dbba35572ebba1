package driven

import (
	"context"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// ProjectStore persists projects and their manuscript content
type ProjectStore interface {
	// Create persists a new project
	Create(ctx context.Context, project *domain.Project) error

	// Get retrieves a project by ID
	Get(ctx context.Context, id string) (*domain.Project, error)

	// ListByUser retrieves all projects owned by a user, most recently
	// updated first
	ListByUser(ctx context.Context, userID string) ([]*domain.Project, error)

	// Update persists project metadata and settings changes
	Update(ctx context.Context, project *domain.Project) error

	// Delete removes a project and everything under it
	Delete(ctx context.Context, id string) error

	// GetContent retrieves only the manuscript content and word count
	GetContent(ctx context.Context, id string) (*domain.ManuscriptContent, error)

	// UpdateContent persists the manuscript content and word count
	// without touching other columns
	UpdateContent(ctx context.Context, id string, content *domain.Document, wordCount int) error
}
