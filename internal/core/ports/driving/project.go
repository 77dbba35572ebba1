package driving

import (
	"context"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// CreateProjectRequest represents a request to create a new project
type CreateProjectRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	TargetWordCount int    `json:"targetWordCount"`
}

// UpdateProjectRequest represents a request to update project metadata
type UpdateProjectRequest struct {
	Title           *string                 `json:"title,omitempty"`
	Author          *string                 `json:"author,omitempty"`
	Genre           *string                 `json:"genre,omitempty"`
	TargetWordCount *int                    `json:"targetWordCount,omitempty"`
	Settings        *domain.ProjectSettings `json:"settings,omitempty"`
}

// ProjectService manages novel projects
type ProjectService interface {
	// Create creates a new project for the given user
	Create(ctx context.Context, userID string, req CreateProjectRequest) (*domain.Project, error)

	// Get retrieves a project owned by the given user
	Get(ctx context.Context, userID, projectID string) (*domain.Project, error)

	// List retrieves all projects owned by the given user
	List(ctx context.Context, userID string) ([]*domain.Project, error)

	// Update updates project metadata and settings
	Update(ctx context.Context, userID, projectID string, req UpdateProjectRequest) (*domain.Project, error)

	// Delete deletes a project and everything under it
	Delete(ctx context.Context, userID, projectID string) error
}
