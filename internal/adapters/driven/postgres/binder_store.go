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
var _ driven.BinderStore = (*BinderStore)(nil)

// BinderStore implements driven.BinderStore using PostgreSQL
type BinderStore struct {
	db *DB
}

// NewBinderStore creates a new BinderStore
func NewBinderStore(db *DB) *BinderStore {
	return &BinderStore{db: db}
}

const binderColumns = `id, project_id, parent_id, sort_order, type, title, synopsis, content, notes, word_count, label_id, status_id, include_in_compile, created_at, updated_at`

// Create inserts a new binder item
func (s *BinderStore) Create(ctx context.Context, item *domain.BinderItem) error {
	content, err := json.Marshal(item.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}

	query := `
		INSERT INTO binder_items (` + binderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = s.db.ExecContext(ctx, query,
		item.ID,
		item.ProjectID,
		nullIfEmpty(item.ParentID),
		item.SortOrder,
		string(item.Type),
		item.Title,
		item.Synopsis,
		content,
		item.Notes,
		item.WordCount,
		nullIfEmpty(item.LabelID),
		nullIfEmpty(item.StatusID),
		item.IncludeInCompile,
		item.CreatedAt,
		item.UpdatedAt,
	)
	return err
}

// Get retrieves a binder item by ID
func (s *BinderStore) Get(ctx context.Context, id string) (*domain.BinderItem, error) {
	query := `SELECT ` + binderColumns + ` FROM binder_items WHERE id = $1`

	item, err := scanBinderItem(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return item, err
}

// ListByProject retrieves all binder items for a project ordered by
// parent and sort key
func (s *BinderStore) ListByProject(ctx context.Context, projectID string) ([]*domain.BinderItem, error) {
	query := `
		SELECT ` + binderColumns + `
		FROM binder_items
		WHERE project_id = $1
		ORDER BY parent_id NULLS FIRST, sort_order
	`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.BinderItem
	for rows.Next() {
		item, err := scanBinderItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Update persists changes to a binder item
func (s *BinderStore) Update(ctx context.Context, item *domain.BinderItem) error {
	content, err := json.Marshal(item.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}

	query := `
		UPDATE binder_items
		SET parent_id = $2, sort_order = $3, title = $4, synopsis = $5, content = $6,
		    notes = $7, word_count = $8, label_id = $9, status_id = $10,
		    include_in_compile = $11, updated_at = $12
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query,
		item.ID,
		nullIfEmpty(item.ParentID),
		item.SortOrder,
		item.Title,
		item.Synopsis,
		content,
		item.Notes,
		item.WordCount,
		nullIfEmpty(item.LabelID),
		nullIfEmpty(item.StatusID),
		item.IncludeInCompile,
		item.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a binder item and its descendants
func (s *BinderStore) Delete(ctx context.Context, id string) error {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT id FROM binder_items WHERE id = $1
			UNION ALL
			SELECT b.id FROM binder_items b JOIN subtree s ON b.parent_id = s.id
		)
		DELETE FROM binder_items WHERE id IN (SELECT id FROM subtree)
	`
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBinderItem(row rowScanner) (*domain.BinderItem, error) {
	var item domain.BinderItem
	var parentID, labelID, statusID sql.NullString
	var content []byte

	err := row.Scan(
		&item.ID,
		&item.ProjectID,
		&parentID,
		&item.SortOrder,
		&item.Type,
		&item.Title,
		&item.Synopsis,
		&content,
		&item.Notes,
		&item.WordCount,
		&labelID,
		&statusID,
		&item.IncludeInCompile,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.ParentID = parentID.String
	item.LabelID = labelID.String
	item.StatusID = statusID.String
	item.Content = &domain.Document{}
	if err := json.Unmarshal(content, item.Content); err != nil {
		return nil, fmt.Errorf("unmarshal content: %w", err)
	}

	return &item, nil
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
