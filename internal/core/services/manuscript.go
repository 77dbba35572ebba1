package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/syutarojp/novel-forge/internal/core/domain"
	"github.com/syutarojp/novel-forge/internal/core/ports/driven"
	"github.com/syutarojp/novel-forge/internal/core/ports/driving"
	"github.com/syutarojp/novel-forge/internal/markdown"
)

// Ensure manuscriptService implements ManuscriptService
var _ driving.ManuscriptService = (*manuscriptService)(nil)

// manuscriptService implements the ManuscriptService interface.
// Structural operations follow read-mutate-persist: the document is
// loaded fresh, transformed in memory by the domain mutators, and
// written back whole.
type manuscriptService struct {
	projects driven.ProjectStore
	trash    driven.TrashStore
	logger   *slog.Logger
}

// NewManuscriptService creates a new ManuscriptService
func NewManuscriptService(projects driven.ProjectStore, trash driven.TrashStore, logger *slog.Logger) driving.ManuscriptService {
	if logger == nil {
		logger = slog.Default()
	}
	return &manuscriptService{
		projects: projects,
		trash:    trash,
		logger:   logger,
	}
}

// GetContent retrieves the manuscript content and word count
func (s *manuscriptService) GetContent(ctx context.Context, userID, projectID string) (*domain.ManuscriptContent, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	return s.projects.GetContent(ctx, projectID)
}

// UpdateContent replaces the manuscript content, recomputing the word count
func (s *manuscriptService) UpdateContent(ctx context.Context, userID, projectID string, content *domain.Document) (*domain.ManuscriptContent, error) {
	if content == nil {
		return nil, domain.ErrInvalidInput
	}
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}

	wordCount := domain.DocumentWordCount(*content)
	if err := s.projects.UpdateContent(ctx, projectID, content, wordCount); err != nil {
		return nil, err
	}

	return &domain.ManuscriptContent{Content: content, WordCount: wordCount}, nil
}

// Outline extracts the nested section outline from the manuscript
func (s *manuscriptService) Outline(ctx context.Context, userID, projectID string) ([]*domain.Section, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	mc, err := s.projects.GetContent(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return domain.ExtractOutline(*mc.Content), nil
}

// MoveSection swaps a section with its nearest same-level sibling in
// the given direction. A section with no sibling in that direction
// leaves the document unchanged.
func (s *manuscriptService) MoveSection(ctx context.Context, userID, projectID string, ordinal int, dir domain.MoveDirection) (*domain.ManuscriptContent, error) {
	return s.mutate(ctx, userID, projectID, func(doc domain.Document) domain.Document {
		return domain.MoveSection(doc, ordinal, dir)
	})
}

// SwapSections exchanges two same-level sections
func (s *manuscriptService) SwapSections(ctx context.Context, userID, projectID string, a, b int) (*domain.ManuscriptContent, error) {
	return s.mutate(ctx, userID, projectID, func(doc domain.Document) domain.Document {
		return domain.SwapSections(doc, a, b)
	})
}

// ChangeSectionLevel rewrites a section heading's level
func (s *manuscriptService) ChangeSectionLevel(ctx context.Context, userID, projectID string, ordinal, level int) (*domain.ManuscriptContent, error) {
	return s.mutate(ctx, userID, projectID, func(doc domain.Document) domain.Document {
		return domain.ChangeSectionLevel(doc, ordinal, level)
	})
}

// TrashSection moves a section and its subtree into the trash. The
// trash entry is written first; only once it is persisted does the
// document lose the section. A failed trash write leaves the document
// untouched.
func (s *manuscriptService) TrashSection(ctx context.Context, userID, projectID string, ordinal int) (*domain.ManuscriptContent, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	mc, err := s.projects.GetContent(ctx, projectID)
	if err != nil {
		return nil, err
	}
	doc := *mc.Content

	rng, ok := domain.ResolveSectionRange(doc, ordinal)
	if !ok {
		return mc, nil
	}

	content := domain.ExtractSectionContent(doc, ordinal)
	heading := doc.Content[rng.From]
	title := domain.FlattenText(heading)
	if title == "" {
		title = domain.UntitledSection
	}

	entry := &domain.TrashedSection{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Title:     title,
		Level:     heading.HeadingLevel(),
		Content:   content,
		DeletedAt: time.Now(),
	}
	if err := s.trash.Add(ctx, entry); err != nil {
		return nil, fmt.Errorf("trash section: %w", err)
	}

	updated := domain.DeleteSection(doc, ordinal)
	wordCount := domain.DocumentWordCount(updated)
	if err := s.projects.UpdateContent(ctx, projectID, &updated, wordCount); err != nil {
		return nil, err
	}

	s.logger.Info("section trashed",
		"project_id", projectID,
		"trash_id", entry.ID,
		"title", title,
		"nodes", len(content))

	return &domain.ManuscriptContent{Content: &updated, WordCount: wordCount}, nil
}

// ListTrash retrieves the trashed sections of a project
func (s *manuscriptService) ListTrash(ctx context.Context, userID, projectID string) ([]*domain.TrashedSection, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	return s.trash.ListByProject(ctx, projectID)
}

// RestoreSection appends a trashed section back onto the manuscript
// and removes it from the trash. The document write happens first, so
// a crash between the two steps leaves a duplicate trash entry rather
// than lost content.
func (s *manuscriptService) RestoreSection(ctx context.Context, userID, projectID, trashID string) (*domain.ManuscriptContent, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}

	entry, err := s.trash.Get(ctx, trashID)
	if err != nil {
		return nil, err
	}
	if entry.ProjectID != projectID {
		return nil, domain.ErrNotFound
	}

	mc, err := s.projects.GetContent(ctx, projectID)
	if err != nil {
		return nil, err
	}

	updated := domain.RestoreSection(*mc.Content, entry.Content)
	wordCount := domain.DocumentWordCount(updated)
	if err := s.projects.UpdateContent(ctx, projectID, &updated, wordCount); err != nil {
		return nil, err
	}

	if err := s.trash.Delete(ctx, trashID); err != nil {
		s.logger.Warn("restored section still in trash",
			"project_id", projectID,
			"trash_id", trashID,
			"error", err)
	}

	return &domain.ManuscriptContent{Content: &updated, WordCount: wordCount}, nil
}

// DeleteTrashEntry permanently discards a trashed section
func (s *manuscriptService) DeleteTrashEntry(ctx context.Context, userID, projectID, trashID string) error {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return err
	}

	entry, err := s.trash.Get(ctx, trashID)
	if err != nil {
		return err
	}
	if entry.ProjectID != projectID {
		return domain.ErrNotFound
	}

	return s.trash.Delete(ctx, trashID)
}

// ImportMarkdown converts markdown source into document nodes and
// replaces the manuscript content with them
func (s *manuscriptService) ImportMarkdown(ctx context.Context, userID, projectID, source string) (*domain.ManuscriptContent, error) {
	if source == "" {
		return nil, domain.ErrInvalidInput
	}

	doc, err := markdown.Parse([]byte(source))
	if err != nil {
		return nil, fmt.Errorf("import markdown: %w", err)
	}

	return s.UpdateContent(ctx, userID, projectID, &doc)
}

// mutate loads the document, applies fn, and persists the result with a
// fresh word count. Mutators that no-op still round-trip through the
// store so the response always reflects persisted state.
func (s *manuscriptService) mutate(ctx context.Context, userID, projectID string, fn func(domain.Document) domain.Document) (*domain.ManuscriptContent, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	mc, err := s.projects.GetContent(ctx, projectID)
	if err != nil {
		return nil, err
	}

	updated := fn(*mc.Content)
	wordCount := domain.DocumentWordCount(updated)
	if err := s.projects.UpdateContent(ctx, projectID, &updated, wordCount); err != nil {
		return nil, err
	}

	return &domain.ManuscriptContent{Content: &updated, WordCount: wordCount}, nil
}
