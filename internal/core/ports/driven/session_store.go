package driven

import (
	"context"
	"time"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// SessionStore persists login sessions
type SessionStore interface {
	// Create persists a new session with the given time to live
	Create(ctx context.Context, session *domain.Session, ttl time.Duration) error

	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Delete removes a session
	Delete(ctx context.Context, id string) error

	// DeleteByUser removes all sessions for a user
	DeleteByUser(ctx context.Context, userID string) error
}
