package driving

import (
	"context"
)

// CompileFormat selects the export format
type CompileFormat string

const (
	CompileDocx     CompileFormat = "docx"
	CompileMarkdown CompileFormat = "markdown"
	CompileText     CompileFormat = "text"
)

// CompileResult carries a finished export
type CompileResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CompileService exports a project to a downloadable document
type CompileService interface {
	// Compile renders the project's binder content in the given format
	Compile(ctx context.Context, userID, projectID string, format CompileFormat) (*CompileResult, error)
}
