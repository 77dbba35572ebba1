package driven

import (
	"context"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// TrashStore persists sections removed from a manuscript so they can
// be restored later. A section must be written here before it is
// spliced out of the document.
type TrashStore interface {
	// Add persists a trashed section
	Add(ctx context.Context, section *domain.TrashedSection) error

	// Get retrieves a trashed section by ID
	Get(ctx context.Context, id string) (*domain.TrashedSection, error)

	// ListByProject retrieves all trashed sections for a project,
	// most recently deleted first
	ListByProject(ctx context.Context, projectID string) ([]*domain.TrashedSection, error)

	// Delete removes a trashed section permanently
	Delete(ctx context.Context, id string) error
}
