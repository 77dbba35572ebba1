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

// Ensure codexService implements CodexService
var _ driving.CodexService = (*codexService)(nil)

// codexService implements the CodexService interface
type codexService struct {
	projects driven.ProjectStore
	codex    driven.CodexStore
}

// NewCodexService creates a new CodexService
func NewCodexService(projects driven.ProjectStore, codex driven.CodexStore) driving.CodexService {
	return &codexService{projects: projects, codex: codex}
}

// CreateEntry creates a new codex entry
func (s *codexService) CreateEntry(ctx context.Context, userID, projectID string, req driving.CreateCodexEntryRequest) (*domain.CodexEntry, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}

	if !domain.ValidCodexType(req.Type) {
		return nil, domain.ErrInvalidInput
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	description := req.Description
	if description == nil {
		description = &domain.Document{}
	}

	now := time.Now()
	entry := &domain.CodexEntry{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Type:        req.Type,
		Name:        name,
		Aliases:     req.Aliases,
		Description: description,
		Notes:       req.Notes,
		Tags:        req.Tags,
		FieldValues: map[string]string{},
		Color:       req.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.codex.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// GetEntry retrieves a codex entry
func (s *codexService) GetEntry(ctx context.Context, userID, projectID, entryID string) (*domain.CodexEntry, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	return s.ownedEntry(ctx, projectID, entryID)
}

// ListEntries retrieves codex entries, optionally filtered by type
func (s *codexService) ListEntries(ctx context.Context, userID, projectID string, entryType domain.CodexEntryType) ([]*domain.CodexEntry, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	if entryType != "" && !domain.ValidCodexType(entryType) {
		return nil, domain.ErrInvalidInput
	}
	return s.codex.ListEntries(ctx, projectID, entryType)
}

// UpdateEntry updates a codex entry's fields
func (s *codexService) UpdateEntry(ctx context.Context, userID, projectID, entryID string, req driving.UpdateCodexEntryRequest) (*domain.CodexEntry, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	entry, err := s.ownedEntry(ctx, projectID, entryID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if !domain.ValidCodexType(*req.Type) {
			return nil, domain.ErrInvalidInput
		}
		entry.Type = *req.Type
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		entry.Name = name
	}
	if req.Aliases != nil {
		entry.Aliases = req.Aliases
	}
	if req.Description != nil {
		entry.Description = req.Description
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}
	if req.Thumbnail != nil {
		entry.Thumbnail = *req.Thumbnail
	}
	if req.Tags != nil {
		entry.Tags = req.Tags
	}
	if req.FieldValues != nil {
		entry.FieldValues = req.FieldValues
	}
	if req.Color != nil {
		entry.Color = *req.Color
	}
	entry.UpdatedAt = time.Now()

	if err := s.codex.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// DeleteEntry removes a codex entry and its relations
func (s *codexService) DeleteEntry(ctx context.Context, userID, projectID, entryID string) error {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return err
	}
	if _, err := s.ownedEntry(ctx, projectID, entryID); err != nil {
		return err
	}
	return s.codex.DeleteEntry(ctx, entryID)
}

// CreateRelation links two codex entries
func (s *codexService) CreateRelation(ctx context.Context, userID, projectID string, req driving.CreateCodexRelationRequest) (*domain.CodexRelation, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	if req.SourceID == "" || req.TargetID == "" || req.SourceID == req.TargetID {
		return nil, domain.ErrInvalidInput
	}
	// Both endpoints must live in this project
	if _, err := s.ownedEntry(ctx, projectID, req.SourceID); err != nil {
		return nil, err
	}
	if _, err := s.ownedEntry(ctx, projectID, req.TargetID); err != nil {
		return nil, err
	}

	relation := &domain.CodexRelation{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		SourceID:  req.SourceID,
		TargetID:  req.TargetID,
		Label:     strings.TrimSpace(req.Label),
	}

	if err := s.codex.CreateRelation(ctx, relation); err != nil {
		return nil, err
	}

	return relation, nil
}

// ListRelations retrieves the relations touching an entry
func (s *codexService) ListRelations(ctx context.Context, userID, projectID, entryID string) ([]*domain.CodexRelation, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	if _, err := s.ownedEntry(ctx, projectID, entryID); err != nil {
		return nil, err
	}
	return s.codex.ListRelations(ctx, entryID)
}

// DeleteRelation removes a relation
func (s *codexService) DeleteRelation(ctx context.Context, userID, projectID, relationID string) error {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return err
	}
	return s.codex.DeleteRelation(ctx, relationID)
}

func (s *codexService) ownedEntry(ctx context.Context, projectID, entryID string) (*domain.CodexEntry, error) {
	entry, err := s.codex.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.ProjectID != projectID {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}
