package driving

import (
	"context"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// ManuscriptService manages the manuscript document of a project:
// loading and saving content, the derived outline, structural section
// operations, and the section trash.
//
// Structural operations that resolve to a no-op return the unchanged
// document rather than an error.
type ManuscriptService interface {
	// GetContent retrieves the manuscript content and word count
	GetContent(ctx context.Context, userID, projectID string) (*domain.ManuscriptContent, error)

	// UpdateContent replaces the manuscript content, recomputing the
	// word count
	UpdateContent(ctx context.Context, userID, projectID string, content *domain.Document) (*domain.ManuscriptContent, error)

	// Outline extracts the nested section outline from the manuscript
	Outline(ctx context.Context, userID, projectID string) ([]*domain.Section, error)

	// MoveSection swaps a section with its nearest same-level sibling
	// in the given direction
	MoveSection(ctx context.Context, userID, projectID string, ordinal int, dir domain.MoveDirection) (*domain.ManuscriptContent, error)

	// SwapSections exchanges two same-level sections
	SwapSections(ctx context.Context, userID, projectID string, a, b int) (*domain.ManuscriptContent, error)

	// ChangeSectionLevel rewrites a section heading's level
	ChangeSectionLevel(ctx context.Context, userID, projectID string, ordinal, level int) (*domain.ManuscriptContent, error)

	// TrashSection moves a section and its subtree into the trash.
	// The trash entry is persisted before the document is modified; a
	// failed trash write aborts the removal.
	TrashSection(ctx context.Context, userID, projectID string, ordinal int) (*domain.ManuscriptContent, error)

	// ListTrash retrieves the trashed sections of a project
	ListTrash(ctx context.Context, userID, projectID string) ([]*domain.TrashedSection, error)

	// RestoreSection appends a trashed section back onto the manuscript
	// and removes it from the trash
	RestoreSection(ctx context.Context, userID, projectID, trashID string) (*domain.ManuscriptContent, error)

	// DeleteTrashEntry permanently discards a trashed section
	DeleteTrashEntry(ctx context.Context, userID, projectID, trashID string) error

	// ImportMarkdown converts markdown source into document nodes and
	// replaces the manuscript content with them
	ImportMarkdown(ctx context.Context, userID, projectID, source string) (*domain.ManuscriptContent, error)
}
