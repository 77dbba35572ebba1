package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/syutarojp/novel-forge/internal/core/domain"
	"github.com/syutarojp/novel-forge/internal/core/ports/driven"
	"github.com/syutarojp/novel-forge/internal/core/ports/driving"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

// userService implements the UserService interface
type userService struct {
	userStore   driven.UserStore
	authAdapter driven.AuthAdapter
}

// NewUserService creates a new UserService
func NewUserService(userStore driven.UserStore, authAdapter driven.AuthAdapter) driving.UserService {
	return &userService{
		userStore:   userStore,
		authAdapter: authAdapter,
	}
}

// Setup creates the initial user (only works while no user exists)
func (s *userService) Setup(ctx context.Context, req driving.SetupRequest) (*domain.UserSummary, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(req.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}

	count, err := s.userStore.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrForbidden
	}

	passwordHash, err := s.authAdapter.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(req.Name),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	return user.ToSummary(), nil
}

// Get retrieves a user by ID
func (s *userService) Get(ctx context.Context, id string) (*domain.UserSummary, error) {
	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToSummary(), nil
}

// NeedsSetup reports whether no user has been created yet
func (s *userService) NeedsSetup(ctx context.Context) (bool, error) {
	count, err := s.userStore.Count(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
