package driven

import (
	"context"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// BinderStore persists the binder tree of a project
type BinderStore interface {
	// Create persists a new binder item
	Create(ctx context.Context, item *domain.BinderItem) error

	// Get retrieves a binder item by ID
	Get(ctx context.Context, id string) (*domain.BinderItem, error)

	// ListByProject retrieves all binder items for a project ordered
	// by sort order
	ListByProject(ctx context.Context, projectID string) ([]*domain.BinderItem, error)

	// Update persists changes to a binder item
	Update(ctx context.Context, item *domain.BinderItem) error

	// Delete removes a binder item and its descendants
	Delete(ctx context.Context, id string) error
}
