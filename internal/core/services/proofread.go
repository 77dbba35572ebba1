package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/syutarojp/novel-forge/internal/core/domain"
	"github.com/syutarojp/novel-forge/internal/core/ports/driven"
	"github.com/syutarojp/novel-forge/internal/core/ports/driving"
)

// Ensure proofreadService implements ProofreadService
var _ driving.ProofreadService = (*proofreadService)(nil)

// proofreadService implements the ProofreadService interface
type proofreadService struct {
	projects    driven.ProjectStore
	proofreader driven.Proofreader
	logger      *slog.Logger
}

// NewProofreadService creates a new ProofreadService
func NewProofreadService(projects driven.ProjectStore, proofreader driven.Proofreader, logger *slog.Logger) driving.ProofreadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &proofreadService{
		projects:    projects,
		proofreader: proofreader,
		logger:      logger,
	}
}

// ProofreadProject analyses the whole manuscript of a project. Issues
// are located against the document's text projection; findings whose
// source text is gone are dropped, never misapplied.
func (s *proofreadService) ProofreadProject(ctx context.Context, userID, projectID string) (*driving.ProofreadReport, error) {
	if s.proofreader == nil {
		return nil, domain.ErrServiceUnavailable
	}
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}

	mc, err := s.projects.GetContent(ctx, projectID)
	if err != nil {
		return nil, err
	}
	doc := *mc.Content

	text := doc.TextProjection()
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidInput
	}

	result, err := s.proofreader.Proofread(ctx, text)
	if err != nil {
		return nil, err
	}

	located := domain.LocateIssues(doc, result.Issues)
	s.logger.Info("proofreading complete",
		"project_id", projectID,
		"model", s.proofreader.Model(),
		"issues", len(result.Issues),
		"located", len(located))

	return &driving.ProofreadReport{
		Issues:  located,
		Summary: result.Summary,
		Model:   s.proofreader.Model(),
	}, nil
}

// ProofreadText analyses an arbitrary text fragment
func (s *proofreadService) ProofreadText(ctx context.Context, userID string, text string) (*domain.ProofreadingResult, error) {
	if s.proofreader == nil {
		return nil, domain.ErrServiceUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.proofreader.Proofread(ctx, text)
}
