package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cobra/internal/ports/secondary"
)

// LibraryRepository implements secondary.LibraryRepository with SQLite.
type LibraryRepository struct {
	db *sql.DB
}

// NewLibraryRepository creates a new SQLite library repository.
func NewLibraryRepository(db *sql.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

const librarySelectCols = "id, text, item_type, status_config, category, is_required, usage_count, created_by, created_at, updated_at"

// scanLibraryItem scans a library row into a LibraryItemRecord.
func scanLibraryItem(scanner interface {
	Scan(dest ...any) error
}) (*secondary.LibraryItemRecord, error) {
	var (
		statusConfig sql.NullString
		category     sql.NullString
		createdBy    sql.NullString
		createdAt    time.Time
		updatedAt    time.Time
	)

	record := &secondary.LibraryItemRecord{}
	err := scanner.Scan(
		&record.ID, &record.Text, &record.Type, &statusConfig, &category,
		&record.IsRequired, &record.UsageCount, &createdBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.StatusConfig = statusConfig.String
	record.Category = category.String
	record.CreatedBy = createdBy.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Create persists a new library entry.
func (r *LibraryRepository) Create(ctx context.Context, entry *secondary.LibraryItemRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO library_items (id, text, item_type, status_config, category, is_required, created_by) VALUES (?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.Text, entry.Type, nullable(entry.StatusConfig),
		nullable(entry.Category), entry.IsRequired, nullable(entry.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to create library entry: %w", err)
	}
	return nil
}

// GetByID retrieves a library entry by its ID.
func (r *LibraryRepository) GetByID(ctx context.Context, id string) (*secondary.LibraryItemRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+librarySelectCols+" FROM library_items WHERE id = ?", id)

	record, err := scanLibraryItem(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("library entry %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get library entry: %w", err)
	}
	return record, nil
}

// Update updates an existing library entry.
func (r *LibraryRepository) Update(ctx context.Context, entry *secondary.LibraryItemRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE library_items SET text = ?, status_config = ?, category = ?, is_required = ?,
			updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		entry.Text, nullable(entry.StatusConfig), nullable(entry.Category),
		entry.IsRequired, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update library entry: %w", err)
	}
	return requireRow(result, "library entry", entry.ID)
}

// Delete removes a library entry.
func (r *LibraryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM library_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete library entry: %w", err)
	}
	return requireRow(result, "library entry", id)
}

// List retrieves library entries, most used first.
func (r *LibraryRepository) List(ctx context.Context, filters secondary.LibraryFilters) ([]*secondary.LibraryItemRecord, error) {
	query := "SELECT " + librarySelectCols + " FROM library_items WHERE 1=1"
	var args []any

	if filters.Category != "" {
		query += " AND category = ?"
		args = append(args, filters.Category)
	}
	query += " ORDER BY usage_count DESC, id"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list library entries: %w", err)
	}
	defer rows.Close()

	var records []*secondary.LibraryItemRecord
	for rows.Next() {
		record, err := scanLibraryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan library entry: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// RecordUse increments the entry's usage counter.
func (r *LibraryRepository) RecordUse(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE library_items SET usage_count = usage_count + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to record library use: %w", err)
	}
	return requireRow(result, "library entry", id)
}

// GetNextID returns the next available library entry ID.
func (r *LibraryRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM library_items",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next library entry ID: %w", err)
	}
	return fmt.Sprintf("LIB-%03d", maxID+1), nil
}

var _ secondary.LibraryRepository = (*LibraryRepository)(nil)
