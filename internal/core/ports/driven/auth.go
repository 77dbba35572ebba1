package driven

import (
	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// AuthAdapter handles password hashing and token operations
type AuthAdapter interface {
	// HashPassword creates a secure hash of a password
	HashPassword(password string) (string, error)

	// VerifyPassword checks a password against its hash
	VerifyPassword(password, hash string) bool

	// GenerateToken creates a signed token from claims
	GenerateToken(claims *domain.TokenClaims) (string, error)

	// ParseToken validates a token and extracts its claims
	ParseToken(token string) (*domain.TokenClaims, error)
}
