package driven

import (
	"context"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// UserStore persists user accounts
type UserStore interface {
	// Create persists a new user
	Create(ctx context.Context, user *domain.User) error

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email address
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Count returns the number of registered users
	Count(ctx context.Context) (int, error)
}
