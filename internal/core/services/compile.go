package services

import (
	"context"
	"fmt"

	"github.com/syutarojp/novel-forge/internal/compile"
	"github.com/syutarojp/novel-forge/internal/core/domain"
	"github.com/syutarojp/novel-forge/internal/core/ports/driven"
	"github.com/syutarojp/novel-forge/internal/core/ports/driving"
)

// Ensure compileService implements CompileService
var _ driving.CompileService = (*compileService)(nil)

// compileService implements the CompileService interface
type compileService struct {
	projects driven.ProjectStore
	binder   driven.BinderStore
}

// NewCompileService creates a new CompileService
func NewCompileService(projects driven.ProjectStore, binder driven.BinderStore) driving.CompileService {
	return &compileService{projects: projects, binder: binder}
}

// Compile renders the project's binder content in the given format
func (s *compileService) Compile(ctx context.Context, userID, projectID string, format driving.CompileFormat) (*driving.CompileResult, error) {
	project, err := ownedProject(ctx, s.projects, userID, projectID)
	if err != nil {
		return nil, err
	}

	items, err := s.binder.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	switch format {
	case driving.CompileDocx:
		data, err := compile.Docx(project, items)
		if err != nil {
			return nil, fmt.Errorf("compile docx: %w", err)
		}
		return &driving.CompileResult{
			Filename:    project.Title + ".docx",
			ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			Data:        data,
		}, nil
	case driving.CompileMarkdown:
		return &driving.CompileResult{
			Filename:    project.Title + ".md",
			ContentType: "text/markdown; charset=utf-8",
			Data:        []byte(compile.Markdown(project, items)),
		}, nil
	case driving.CompileText:
		return &driving.CompileResult{
			Filename:    project.Title + ".txt",
			ContentType: "text/plain; charset=utf-8",
			Data:        []byte(compile.Text(project, items)),
		}, nil
	default:
		return nil, domain.ErrInvalidInput
	}
}
