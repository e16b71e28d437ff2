// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/cobra/internal/ports/secondary"
)

// TemplateRepository implements secondary.TemplateRepository with SQLite.
type TemplateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new SQLite template repository.
func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

const templateSelectCols = "id, name, category, tags, description, is_active, archived, usage_count, last_used_at, created_by, created_at, updated_at"

// scanTemplate scans a template row into a TemplateRecord.
func scanTemplate(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TemplateRecord, error) {
	var (
		category   sql.NullString
		tags       sql.NullString
		desc       sql.NullString
		lastUsedAt sql.NullTime
		createdBy  sql.NullString
		createdAt  time.Time
		updatedAt  time.Time
	)

	record := &secondary.TemplateRecord{}
	err := scanner.Scan(
		&record.ID, &record.Name, &category, &tags, &desc, &record.IsActive,
		&record.Archived, &record.UsageCount, &lastUsedAt, &createdBy,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Category = category.String
	record.Tags = tags.String
	record.Description = desc.String
	record.CreatedBy = createdBy.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	if lastUsedAt.Valid {
		record.LastUsedAt = lastUsedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// Create persists a new template.
func (r *TemplateRepository) Create(ctx context.Context, template *secondary.TemplateRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO templates (id, name, category, tags, description, is_active, created_by) VALUES (?, ?, ?, ?, ?, ?, ?)",
		template.ID, template.Name, nullable(template.Category), nullable(template.Tags),
		nullable(template.Description), template.IsActive, nullable(template.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// GetByID retrieves a template by its ID.
func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*secondary.TemplateRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+templateSelectCols+" FROM templates WHERE id = ?", id)

	record, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("template %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return record, nil
}

// Update updates a template's editable fields.
func (r *TemplateRepository) Update(ctx context.Context, template *secondary.TemplateRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE templates SET name = ?, category = ?, tags = ?, description = ?,
			is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		template.Name, nullable(template.Category), nullable(template.Tags),
		nullable(template.Description), template.IsActive, template.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	return requireRow(result, "template", template.ID)
}

// SetArchived archives or restores a template.
func (r *TemplateRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE templates SET archived = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		archived, id,
	)
	if err != nil {
		return fmt.Errorf("failed to archive template: %w", err)
	}
	return requireRow(result, "template", id)
}

// List retrieves templates matching the given filters, newest first.
func (r *TemplateRepository) List(ctx context.Context, filters secondary.TemplateFilters) ([]*secondary.TemplateRecord, error) {
	query := "SELECT " + templateSelectCols + " FROM templates WHERE 1=1"
	var args []any

	if !filters.IncludeArchived {
		query += " AND archived = 0"
	}
	if filters.ActiveOnly {
		query += " AND is_active = 1"
	}
	if filters.Category != "" {
		query += " AND category = ?"
		args = append(args, filters.Category)
	}
	if filters.Name != "" {
		query += ` AND name LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(filters.Name)+"%")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var records []*secondary.TemplateRecord
	for rows.Next() {
		record, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// GetNextID returns the next available template ID.
func (r *TemplateRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM templates",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next template ID: %w", err)
	}
	return fmt.Sprintf("TMPL-%03d", maxID+1), nil
}

// RecordUse increments the usage counter and stamps last_used_at.
func (r *TemplateRepository) RecordUse(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE templates SET usage_count = usage_count + 1, last_used_at = CURRENT_TIMESTAMP WHERE id = ?",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to record template use: %w", err)
	}
	return requireRow(result, "template", id)
}

const templateItemSelectCols = "id, template_id, text, item_type, display_order, is_required, status_config, created_at, updated_at"

// scanTemplateItem scans a template item row into a TemplateItemRecord.
func scanTemplateItem(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TemplateItemRecord, error) {
	var (
		statusConfig sql.NullString
		createdAt    time.Time
		updatedAt    time.Time
	)

	record := &secondary.TemplateItemRecord{}
	err := scanner.Scan(
		&record.ID, &record.TemplateID, &record.Text, &record.Type,
		&record.DisplayOrder, &record.IsRequired, &statusConfig,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.StatusConfig = statusConfig.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// AddItem persists a new template item.
func (r *TemplateRepository) AddItem(ctx context.Context, item *secondary.TemplateItemRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO template_items (id, template_id, text, item_type, display_order, is_required, status_config) VALUES (?, ?, ?, ?, ?, ?, ?)",
		item.ID, item.TemplateID, item.Text, item.Type, item.DisplayOrder,
		item.IsRequired, nullable(item.StatusConfig),
	)
	if err != nil {
		return fmt.Errorf("failed to add template item: %w", err)
	}
	return nil
}

// GetItem retrieves one item belonging to a template.
func (r *TemplateRepository) GetItem(ctx context.Context, templateID, itemID string) (*secondary.TemplateItemRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+templateItemSelectCols+" FROM template_items WHERE id = ? AND template_id = ?",
		itemID, templateID,
	)

	record, err := scanTemplateItem(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("template item %s: %w", itemID, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template item: %w", err)
	}
	return record, nil
}

// UpdateItem updates an existing template item.
func (r *TemplateRepository) UpdateItem(ctx context.Context, item *secondary.TemplateItemRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE template_items SET text = ?, is_required = ?, status_config = ?,
			updated_at = CURRENT_TIMESTAMP WHERE id = ? AND template_id = ?`,
		item.Text, item.IsRequired, nullable(item.StatusConfig), item.ID, item.TemplateID,
	)
	if err != nil {
		return fmt.Errorf("failed to update template item: %w", err)
	}
	return requireRow(result, "template item", item.ID)
}

// RemoveItem deletes a template item.
func (r *TemplateRepository) RemoveItem(ctx context.Context, templateID, itemID string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM template_items WHERE id = ? AND template_id = ?", itemID, templateID)
	if err != nil {
		return fmt.Errorf("failed to remove template item: %w", err)
	}
	return requireRow(result, "template item", itemID)
}

// ListItems retrieves a template's items ordered by display order.
func (r *TemplateRepository) ListItems(ctx context.Context, templateID string) ([]*secondary.TemplateItemRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+templateItemSelectCols+" FROM template_items WHERE template_id = ? ORDER BY display_order, id",
		templateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list template items: %w", err)
	}
	defer rows.Close()

	var records []*secondary.TemplateItemRecord
	for rows.Next() {
		record, err := scanTemplateItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template item: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// ReorderItems resequences display order to match the given item IDs.
func (r *TemplateRepository) ReorderItems(ctx context.Context, templateID string, orderedItemIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder transaction: %w", err)
	}
	defer tx.Rollback()

	for i, itemID := range orderedItemIDs {
		result, err := tx.ExecContext(ctx,
			"UPDATE template_items SET display_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND template_id = ?",
			i+1, itemID, templateID,
		)
		if err != nil {
			return fmt.Errorf("failed to reorder template item %s: %w", itemID, err)
		}
		if err := requireRow(result, "template item", itemID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetNextItemID returns the next available template item ID.
func (r *TemplateRepository) GetNextItemID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM template_items",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next template item ID: %w", err)
	}
	return fmt.Sprintf("TI-%03d", maxID+1), nil
}

// nullable converts an empty string to a SQL NULL.
func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// requireRow converts a zero-row update into ErrNotFound.
func requireRow(result sql.Result, entity, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, secondary.ErrNotFound)
	}
	return nil
}

// escapeLike escapes LIKE wildcards in user-supplied substrings.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

var _ secondary.TemplateRepository = (*TemplateRepository)(nil)
