package driving

import (
	"context"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// SetupRequest creates the first user account
type SetupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// UserService manages user accounts
type UserService interface {
	// Setup creates the initial user; fails once any user exists
	Setup(ctx context.Context, req SetupRequest) (*domain.UserSummary, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.UserSummary, error)

	// NeedsSetup reports whether no user has been created yet
	NeedsSetup(ctx context.Context) (bool, error)
}
