package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/syutarojp/novel-forge/internal/core/domain"
	"github.com/syutarojp/novel-forge/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TrashStore = (*TrashStore)(nil)

// TrashStore implements driven.TrashStore using PostgreSQL
type TrashStore struct {
	db *DB
}

// NewTrashStore creates a new TrashStore
func NewTrashStore(db *DB) *TrashStore {
	return &TrashStore{db: db}
}

// Add inserts a trashed section
func (s *TrashStore) Add(ctx context.Context, section *domain.TrashedSection) error {
	content, err := json.Marshal(section.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}

	query := `
		INSERT INTO section_trash (id, project_id, title, level, content, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = s.db.ExecContext(ctx, query,
		section.ID,
		section.ProjectID,
		section.Title,
		section.Level,
		content,
		section.DeletedAt,
	)
	return err
}

// Get retrieves a trashed section by ID
func (s *TrashStore) Get(ctx context.Context, id string) (*domain.TrashedSection, error) {
	query := `
		SELECT id, project_id, title, level, content, deleted_at
		FROM section_trash
		WHERE id = $1
	`

	var section domain.TrashedSection
	var content []byte

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&section.ID,
		&section.ProjectID,
		&section.Title,
		&section.Level,
		&content,
		&section.DeletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(content, &section.Content); err != nil {
		return nil, fmt.Errorf("unmarshal content: %w", err)
	}

	return &section, nil
}

// ListByProject retrieves all trashed sections for a project, most
// recently deleted first
func (s *TrashStore) ListByProject(ctx context.Context, projectID string) ([]*domain.TrashedSection, error) {
	query := `
		SELECT id, project_id, title, level, content, deleted_at
		FROM section_trash
		WHERE project_id = $1
		ORDER BY deleted_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*domain.TrashedSection
	for rows.Next() {
		var section domain.TrashedSection
		var content []byte
		if err := rows.Scan(
			&section.ID,
			&section.ProjectID,
			&section.Title,
			&section.Level,
			&content,
			&section.DeletedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(content, &section.Content); err != nil {
			return nil, fmt.Errorf("unmarshal content: %w", err)
		}
		sections = append(sections, &section)
	}
	return sections, rows.Err()
}

// Delete removes a trashed section permanently
func (s *TrashStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM section_trash WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
