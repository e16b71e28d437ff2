package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cobra/internal/ports/secondary"
)

// SettingRepository implements secondary.SettingRepository with SQLite.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SQLite setting repository.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

const settingSelectCols = "key, value, category, is_secret, enabled, updated_by, updated_at"

// scanSetting scans a setting row into a SettingRecord.
func scanSetting(scanner interface {
	Scan(dest ...any) error
}) (*secondary.SettingRecord, error) {
	var (
		value     sql.NullString
		category  sql.NullString
		updatedBy sql.NullString
		updatedAt time.Time
	)

	record := &secondary.SettingRecord{}
	err := scanner.Scan(
		&record.Key, &value, &category, &record.IsSecret,
		&record.Enabled, &updatedBy, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Value = value.String
	record.Category = category.String
	record.UpdatedBy = updatedBy.String
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Upsert creates or replaces a setting by key.
func (r *SettingRepository) Upsert(ctx context.Context, setting *secondary.SettingRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, category, is_secret, enabled, updated_by, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			category = excluded.category,
			is_secret = excluded.is_secret,
			enabled = excluded.enabled,
			updated_by = excluded.updated_by,
			updated_at = CURRENT_TIMESTAMP`,
		setting.Key, nullable(setting.Value), nullable(setting.Category),
		setting.IsSecret, setting.Enabled, nullable(setting.UpdatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}

// Get retrieves a setting by key.
func (r *SettingRepository) Get(ctx context.Context, key string) (*secondary.SettingRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+settingSelectCols+" FROM settings WHERE key = ?", key)

	record, err := scanSetting(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("setting %s: %w", key, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return record, nil
}

// List retrieves settings, optionally filtered by category.
func (r *SettingRepository) List(ctx context.Context, category string) ([]*secondary.SettingRecord, error) {
	query := "SELECT " + settingSelectCols + " FROM settings"
	var args []any
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY key"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var records []*secondary.SettingRecord
	for rows.Next() {
		record, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

var _ secondary.SettingRepository = (*SettingRepository)(nil)
