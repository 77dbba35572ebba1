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

// Ensure projectService implements ProjectService
var _ driving.ProjectService = (*projectService)(nil)

// projectService implements the ProjectService interface
type projectService struct {
	projects driven.ProjectStore
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects driven.ProjectStore) driving.ProjectService {
	return &projectService{projects: projects}
}

// Create creates a new project for the given user
func (s *projectService) Create(ctx context.Context, userID string, req driving.CreateProjectRequest) (*domain.Project, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	project := &domain.Project{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           title,
		Author:          strings.TrimSpace(req.Author),
		Genre:           strings.TrimSpace(req.Genre),
		TargetWordCount: req.TargetWordCount,
		Content:         &domain.Document{},
		WordCount:       0,
		Settings:        domain.DefaultProjectSettings(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// Get retrieves a project owned by the given user
func (s *projectService) Get(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	return ownedProject(ctx, s.projects, userID, projectID)
}

// List retrieves all projects owned by the given user
func (s *projectService) List(ctx context.Context, userID string) ([]*domain.Project, error) {
	return s.projects.ListByUser(ctx, userID)
}

// Update updates project metadata and settings
func (s *projectService) Update(ctx context.Context, userID, projectID string, req driving.UpdateProjectRequest) (*domain.Project, error) {
	project, err := ownedProject(ctx, s.projects, userID, projectID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidInput
		}
		project.Title = title
	}
	if req.Author != nil {
		project.Author = strings.TrimSpace(*req.Author)
	}
	if req.Genre != nil {
		project.Genre = strings.TrimSpace(*req.Genre)
	}
	if req.TargetWordCount != nil {
		project.TargetWordCount = *req.TargetWordCount
	}
	if req.Settings != nil {
		project.Settings = *req.Settings
	}
	project.UpdatedAt = time.Now()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// Delete deletes a project and everything under it
func (s *projectService) Delete(ctx context.Context, userID, projectID string) error {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return err
	}
	return s.projects.Delete(ctx, projectID)
}

// ownedProject loads a project and checks ownership. A project owned by
// someone else reports not found rather than forbidden, so existence is
// not leaked across accounts.
func ownedProject(ctx context.Context, store driven.ProjectStore, userID, projectID string) (*domain.Project, error) {
	project, err := store.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return project, nil
}
