package driving

import (
	"context"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// CreateCodexEntryRequest represents a request to create a codex entry
type CreateCodexEntryRequest struct {
	Type        domain.CodexEntryType `json:"type"`
	Name        string                `json:"name"`
	Aliases     []string              `json:"aliases,omitempty"`
	Description *domain.Document      `json:"description,omitempty"`
	Notes       string                `json:"notes,omitempty"`
	Tags        []string              `json:"tags,omitempty"`
	Color       string                `json:"color,omitempty"`
}

// UpdateCodexEntryRequest represents a request to update a codex entry
type UpdateCodexEntryRequest struct {
	Type        *domain.CodexEntryType `json:"type,omitempty"`
	Name        *string                `json:"name,omitempty"`
	Aliases     []string               `json:"aliases,omitempty"`
	Description *domain.Document       `json:"description,omitempty"`
	Notes       *string                `json:"notes,omitempty"`
	Thumbnail   *string                `json:"thumbnail,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	FieldValues map[string]string      `json:"fieldValues,omitempty"`
	Color       *string                `json:"color,omitempty"`
}

// CreateCodexRelationRequest links two codex entries
type CreateCodexRelationRequest struct {
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
	Label    string `json:"label"`
}

// CodexService manages world-building entries and relations
type CodexService interface {
	// CreateEntry creates a new codex entry
	CreateEntry(ctx context.Context, userID, projectID string, req CreateCodexEntryRequest) (*domain.CodexEntry, error)

	// GetEntry retrieves a codex entry
	GetEntry(ctx context.Context, userID, projectID, entryID string) (*domain.CodexEntry, error)

	// ListEntries retrieves codex entries, optionally filtered by type
	ListEntries(ctx context.Context, userID, projectID string, entryType domain.CodexEntryType) ([]*domain.CodexEntry, error)

	// UpdateEntry updates a codex entry's fields
	UpdateEntry(ctx context.Context, userID, projectID, entryID string, req UpdateCodexEntryRequest) (*domain.CodexEntry, error)

	// DeleteEntry removes a codex entry and its relations
	DeleteEntry(ctx context.Context, userID, projectID, entryID string) error

	// CreateRelation links two codex entries
	CreateRelation(ctx context.Context, userID, projectID string, req CreateCodexRelationRequest) (*domain.CodexRelation, error)

	// ListRelations retrieves the relations touching an entry
	ListRelations(ctx context.Context, userID, projectID, entryID string) ([]*domain.CodexRelation, error)

	// DeleteRelation removes a relation
	DeleteRelation(ctx context.Context, userID, projectID, relationID string) error
}
