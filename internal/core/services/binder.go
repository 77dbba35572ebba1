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

// Ensure binderService implements BinderService
var _ driving.BinderService = (*binderService)(nil)

// binderService implements the BinderService interface
type binderService struct {
	projects driven.ProjectStore
	binder   driven.BinderStore
}

// NewBinderService creates a new BinderService
func NewBinderService(projects driven.ProjectStore, binder driven.BinderStore) driving.BinderService {
	return &binderService{projects: projects, binder: binder}
}

// Create creates a new binder item
func (s *binderService) Create(ctx context.Context, userID, projectID string, req driving.CreateBinderItemRequest) (*domain.BinderItem, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}

	switch req.Type {
	case domain.BinderFolder, domain.BinderScene, domain.BinderResearch:
	default:
		return nil, domain.ErrInvalidInput
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidInput
	}

	sortOrder, err := s.placement(ctx, projectID, req.ParentID, req.AfterID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := &domain.BinderItem{
		ID:               uuid.NewString(),
		ProjectID:        projectID,
		ParentID:         req.ParentID,
		SortOrder:        sortOrder,
		Type:             req.Type,
		Title:            title,
		Content:          &domain.Document{},
		IncludeInCompile: req.Type != domain.BinderResearch,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.binder.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Get retrieves a binder item
func (s *binderService) Get(ctx context.Context, userID, projectID, itemID string) (*domain.BinderItem, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	return s.ownedItem(ctx, projectID, itemID)
}

// List retrieves all binder items of a project in tree order
func (s *binderService) List(ctx context.Context, userID, projectID string) ([]*domain.BinderItem, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	return s.binder.ListByProject(ctx, projectID)
}

// Update updates a binder item's fields
func (s *binderService) Update(ctx context.Context, userID, projectID, itemID string, req driving.UpdateBinderItemRequest) (*domain.BinderItem, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	item, err := s.ownedItem(ctx, projectID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Title = title
	}
	if req.Synopsis != nil {
		item.Synopsis = *req.Synopsis
	}
	if req.Content != nil {
		item.Content = req.Content
		item.WordCount = domain.DocumentWordCount(*req.Content)
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	if req.LabelID != nil {
		item.LabelID = *req.LabelID
	}
	if req.StatusID != nil {
		item.StatusID = *req.StatusID
	}
	if req.IncludeInCompile != nil {
		item.IncludeInCompile = *req.IncludeInCompile
	}
	item.UpdatedAt = time.Now()

	if err := s.binder.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Move re-parents or re-orders a binder item
func (s *binderService) Move(ctx context.Context, userID, projectID, itemID string, req driving.MoveBinderItemRequest) (*domain.BinderItem, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	item, err := s.ownedItem(ctx, projectID, itemID)
	if err != nil {
		return nil, err
	}

	if req.ParentID == itemID || req.AfterID == itemID {
		return nil, domain.ErrInvalidInput
	}
	if req.ParentID != "" {
		parent, err := s.ownedItem(ctx, projectID, req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.Type != domain.BinderFolder {
			return nil, domain.ErrInvalidInput
		}
	}

	sortOrder, err := s.placement(ctx, projectID, req.ParentID, req.AfterID)
	if err != nil {
		return nil, err
	}

	item.ParentID = req.ParentID
	item.SortOrder = sortOrder
	item.UpdatedAt = time.Now()

	if err := s.binder.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes a binder item and its descendants
func (s *binderService) Delete(ctx context.Context, userID, projectID, itemID string) error {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return err
	}
	if _, err := s.ownedItem(ctx, projectID, itemID); err != nil {
		return err
	}
	return s.binder.Delete(ctx, itemID)
}

func (s *binderService) ownedItem(ctx context.Context, projectID, itemID string) (*domain.BinderItem, error) {
	item, err := s.binder.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.ProjectID != projectID {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// placement computes the fractional sort key for an item placed under
// parentID after sibling afterID. An empty afterID appends after the
// last sibling.
func (s *binderService) placement(ctx context.Context, projectID, parentID, afterID string) (string, error) {
	items, err := s.binder.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}

	var siblings []*domain.BinderItem
	for _, it := range items {
		if it.ParentID == parentID {
			siblings = append(siblings, it)
		}
	}
	if len(siblings) == 0 {
		return domain.DefaultSortOrder, nil
	}

	if afterID == "" {
		return domain.MidSortOrder(siblings[len(siblings)-1].SortOrder, ""), nil
	}

	for i, it := range siblings {
		if it.ID == afterID {
			next := ""
			if i+1 < len(siblings) {
				next = siblings[i+1].SortOrder
			}
			return domain.MidSortOrder(it.SortOrder, next), nil
		}
	}
	return "", domain.ErrNotFound
}
