package driven

import (
	"context"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// CodexStore persists codex entries and the relations between them
type CodexStore interface {
	// CreateEntry persists a new codex entry
	CreateEntry(ctx context.Context, entry *domain.CodexEntry) error

	// GetEntry retrieves a codex entry by ID
	GetEntry(ctx context.Context, id string) (*domain.CodexEntry, error)

	// ListEntries retrieves all codex entries for a project, optionally
	// filtered by type. An empty entryType returns every entry.
	ListEntries(ctx context.Context, projectID string, entryType domain.CodexEntryType) ([]*domain.CodexEntry, error)

	// UpdateEntry persists changes to a codex entry
	UpdateEntry(ctx context.Context, entry *domain.CodexEntry) error

	// DeleteEntry removes a codex entry and its relations
	DeleteEntry(ctx context.Context, id string) error

	// CreateRelation persists a relation between two entries
	CreateRelation(ctx context.Context, relation *domain.CodexRelation) error

	// ListRelations retrieves all relations touching an entry
	ListRelations(ctx context.Context, entryID string) ([]*domain.CodexRelation, error)

	// DeleteRelation removes a relation
	DeleteRelation(ctx context.Context, id string) error
}
