package driving

import (
	"context"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// CreateBinderItemRequest represents a request to create a binder item
type CreateBinderItemRequest struct {
	ParentID string                `json:"parentId,omitempty"`
	Type     domain.BinderItemType `json:"type"`
	Title    string                `json:"title"`
	// AfterID places the item after an existing sibling; empty appends
	// at the end of the parent's children
	AfterID string `json:"afterId,omitempty"`
}

// UpdateBinderItemRequest represents a request to update a binder item
type UpdateBinderItemRequest struct {
	Title            *string          `json:"title,omitempty"`
	Synopsis         *string          `json:"synopsis,omitempty"`
	Content          *domain.Document `json:"content,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
	LabelID          *string          `json:"labelId,omitempty"`
	StatusID         *string          `json:"statusId,omitempty"`
	IncludeInCompile *bool            `json:"includeInCompile,omitempty"`
}

// MoveBinderItemRequest re-parents or re-orders a binder item
type MoveBinderItemRequest struct {
	ParentID string `json:"parentId,omitempty"`
	AfterID  string `json:"afterId,omitempty"`
}

// BinderService manages the binder tree of a project
type BinderService interface {
	// Create creates a new binder item
	Create(ctx context.Context, userID, projectID string, req CreateBinderItemRequest) (*domain.BinderItem, error)

	// Get retrieves a binder item
	Get(ctx context.Context, userID, projectID, itemID string) (*domain.BinderItem, error)

	// List retrieves all binder items of a project in tree order
	List(ctx context.Context, userID, projectID string) ([]*domain.BinderItem, error)

	// Update updates a binder item's fields
	Update(ctx context.Context, userID, projectID, itemID string, req UpdateBinderItemRequest) (*domain.BinderItem, error)

	// Move re-parents or re-orders a binder item
	Move(ctx context.Context, userID, projectID, itemID string, req MoveBinderItemRequest) (*domain.BinderItem, error)

	// Delete removes a binder item and its descendants
	Delete(ctx context.Context, userID, projectID, itemID string) error
}
