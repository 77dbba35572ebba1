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
var _ driven.CodexStore = (*CodexStore)(nil)

// CodexStore implements driven.CodexStore using PostgreSQL
type CodexStore struct {
	db *DB
}

// NewCodexStore creates a new CodexStore
func NewCodexStore(db *DB) *CodexStore {
	return &CodexStore{db: db}
}

const codexColumns = `id, project_id, type, name, aliases, description, notes, thumbnail, tags, field_values, color, created_at, updated_at`

// CreateEntry inserts a new codex entry
func (s *CodexStore) CreateEntry(ctx context.Context, entry *domain.CodexEntry) error {
	aliases, description, tags, fieldValues, err := marshalCodexEntry(entry)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO codex_entries (` + codexColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = s.db.ExecContext(ctx, query,
		entry.ID,
		entry.ProjectID,
		string(entry.Type),
		entry.Name,
		aliases,
		description,
		entry.Notes,
		nullIfEmpty(entry.Thumbnail),
		tags,
		fieldValues,
		nullIfEmpty(entry.Color),
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	return err
}

// GetEntry retrieves a codex entry by ID
func (s *CodexStore) GetEntry(ctx context.Context, id string) (*domain.CodexEntry, error) {
	query := `SELECT ` + codexColumns + ` FROM codex_entries WHERE id = $1`

	entry, err := scanCodexEntry(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return entry, err
}

// ListEntries retrieves all codex entries for a project, optionally
// filtered by type
func (s *CodexStore) ListEntries(ctx context.Context, projectID string, entryType domain.CodexEntryType) ([]*domain.CodexEntry, error) {
	query := `SELECT ` + codexColumns + ` FROM codex_entries WHERE project_id = $1`
	args := []any{projectID}
	if entryType != "" {
		query += ` AND type = $2`
		args = append(args, string(entryType))
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.CodexEntry
	for rows.Next() {
		entry, err := scanCodexEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// UpdateEntry persists changes to a codex entry
func (s *CodexStore) UpdateEntry(ctx context.Context, entry *domain.CodexEntry) error {
	aliases, description, tags, fieldValues, err := marshalCodexEntry(entry)
	if err != nil {
		return err
	}

	query := `
		UPDATE codex_entries
		SET type = $2, name = $3, aliases = $4, description = $5, notes = $6,
		    thumbnail = $7, tags = $8, field_values = $9, color = $10, updated_at = $11
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query,
		entry.ID,
		string(entry.Type),
		entry.Name,
		aliases,
		description,
		entry.Notes,
		nullIfEmpty(entry.Thumbnail),
		tags,
		fieldValues,
		nullIfEmpty(entry.Color),
		entry.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteEntry removes a codex entry; its relations cascade
func (s *CodexStore) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM codex_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// CreateRelation inserts a relation between two entries
func (s *CodexStore) CreateRelation(ctx context.Context, relation *domain.CodexRelation) error {
	query := `
		INSERT INTO codex_relations (id, project_id, source_id, target_id, label)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		relation.ID,
		relation.ProjectID,
		relation.SourceID,
		relation.TargetID,
		relation.Label,
	)
	return err
}

// ListRelations retrieves all relations touching an entry
func (s *CodexStore) ListRelations(ctx context.Context, entryID string) ([]*domain.CodexRelation, error) {
	query := `
		SELECT id, project_id, source_id, target_id, label
		FROM codex_relations
		WHERE source_id = $1 OR target_id = $1
	`

	rows, err := s.db.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var relations []*domain.CodexRelation
	for rows.Next() {
		var rel domain.CodexRelation
		if err := rows.Scan(&rel.ID, &rel.ProjectID, &rel.SourceID, &rel.TargetID, &rel.Label); err != nil {
			return nil, err
		}
		relations = append(relations, &rel)
	}
	return relations, rows.Err()
}

// DeleteRelation removes a relation
func (s *CodexStore) DeleteRelation(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM codex_relations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func marshalCodexEntry(entry *domain.CodexEntry) (aliases, description, tags, fieldValues []byte, err error) {
	if aliases, err = json.Marshal(emptyIfNilSlice(entry.Aliases)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal aliases: %w", err)
	}
	desc := entry.Description
	if desc == nil {
		desc = &domain.Document{}
	}
	if description, err = json.Marshal(desc); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal description: %w", err)
	}
	if tags, err = json.Marshal(emptyIfNilSlice(entry.Tags)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal tags: %w", err)
	}
	fv := entry.FieldValues
	if fv == nil {
		fv = map[string]string{}
	}
	if fieldValues, err = json.Marshal(fv); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal field values: %w", err)
	}
	return aliases, description, tags, fieldValues, nil
}

func scanCodexEntry(row rowScanner) (*domain.CodexEntry, error) {
	var entry domain.CodexEntry
	var aliases, description, tags, fieldValues []byte
	var thumbnail, color sql.NullString

	err := row.Scan(
		&entry.ID,
		&entry.ProjectID,
		&entry.Type,
		&entry.Name,
		&aliases,
		&description,
		&entry.Notes,
		&thumbnail,
		&tags,
		&fieldValues,
		&color,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Thumbnail = thumbnail.String
	entry.Color = color.String
	entry.Description = &domain.Document{}
	if err := json.Unmarshal(aliases, &entry.Aliases); err != nil {
		return nil, fmt.Errorf("unmarshal aliases: %w", err)
	}
	if err := json.Unmarshal(description, entry.Description); err != nil {
		return nil, fmt.Errorf("unmarshal description: %w", err)
	}
	if err := json.Unmarshal(tags, &entry.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	if err := json.Unmarshal(fieldValues, &entry.FieldValues); err != nil {
		return nil, fmt.Errorf("unmarshal field values: %w", err)
	}

	return &entry, nil
}

func emptyIfNilSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
