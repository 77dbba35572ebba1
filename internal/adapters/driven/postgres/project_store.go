package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/syutarojp/novel-forge/internal/core/domain"
	"github.com/syutarojp/novel-forge/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ProjectStore = (*ProjectStore)(nil)

// ProjectStore implements driven.ProjectStore using PostgreSQL. The
// manuscript document and settings are stored as JSONB.
type ProjectStore struct {
	db *DB
}

// NewProjectStore creates a new ProjectStore
func NewProjectStore(db *DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// Create inserts a new project
func (s *ProjectStore) Create(ctx context.Context, project *domain.Project) error {
	content, err := json.Marshal(project.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	settings, err := json.Marshal(project.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	query := `
		INSERT INTO projects (id, user_id, title, author, genre, target_word_count, content, word_count, settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = s.db.ExecContext(ctx, query,
		project.ID,
		project.UserID,
		project.Title,
		project.Author,
		project.Genre,
		project.TargetWordCount,
		content,
		project.WordCount,
		settings,
		project.CreatedAt,
		project.UpdatedAt,
	)
	return err
}

// Get retrieves a project by ID
func (s *ProjectStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	query := `
		SELECT id, user_id, title, author, genre, target_word_count, content, word_count, settings, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var project domain.Project
	var content, settings []byte

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Author,
		&project.Genre,
		&project.TargetWordCount,
		&content,
		&project.WordCount,
		&settings,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	project.Content = &domain.Document{}
	if err := json.Unmarshal(content, project.Content); err != nil {
		return nil, fmt.Errorf("unmarshal content: %w", err)
	}
	if err := json.Unmarshal(settings, &project.Settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	return &project, nil
}

// ListByUser retrieves all projects owned by a user, most recently
// updated first. The manuscript content is not loaded for listings.
func (s *ProjectStore) ListByUser(ctx context.Context, userID string) ([]*domain.Project, error) {
	query := `
		SELECT id, user_id, title, author, genre, target_word_count, word_count, settings, created_at, updated_at
		FROM projects
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var project domain.Project
		var settings []byte
		if err := rows.Scan(
			&project.ID,
			&project.UserID,
			&project.Title,
			&project.Author,
			&project.Genre,
			&project.TargetWordCount,
			&project.WordCount,
			&settings,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(settings, &project.Settings); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
		projects = append(projects, &project)
	}
	return projects, rows.Err()
}

// Update persists project metadata and settings changes. The manuscript
// content is written only through UpdateContent.
func (s *ProjectStore) Update(ctx context.Context, project *domain.Project) error {
	settings, err := json.Marshal(project.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	query := `
		UPDATE projects
		SET title = $2, author = $3, genre = $4, target_word_count = $5, settings = $6, updated_at = $7
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query,
		project.ID,
		project.Title,
		project.Author,
		project.Genre,
		project.TargetWordCount,
		settings,
		project.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a project; dependent rows cascade
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetContent retrieves only the manuscript content and word count
func (s *ProjectStore) GetContent(ctx context.Context, id string) (*domain.ManuscriptContent, error) {
	var content []byte
	var wordCount int

	err := s.db.QueryRowContext(ctx,
		`SELECT content, word_count FROM projects WHERE id = $1`, id,
	).Scan(&content, &wordCount)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{}
	if err := json.Unmarshal(content, doc); err != nil {
		return nil, fmt.Errorf("unmarshal content: %w", err)
	}

	return &domain.ManuscriptContent{Content: doc, WordCount: wordCount}, nil
}

// UpdateContent persists the manuscript content and word count without
// touching other columns
func (s *ProjectStore) UpdateContent(ctx context.Context, id string, content *domain.Document, wordCount int) error {
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET content = $2, word_count = $3, updated_at = $4 WHERE id = $1`,
		id, data, wordCount, time.Now(),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow maps a zero-row update to ErrNotFound
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
