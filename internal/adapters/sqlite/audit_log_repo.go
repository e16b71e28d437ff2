package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cobra/internal/ports/secondary"
)

// AuditLogRepository implements secondary.AuditLogRepository with SQLite.
type AuditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository creates a new SQLite audit log repository.
func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

const auditLogSelectCols = "id, entity_type, entity_id, action, field_name, old_value, new_value, actor, created_at"

// scanAuditLog scans an audit row into an AuditLogRecord.
func scanAuditLog(scanner interface {
	Scan(dest ...any) error
}) (*secondary.AuditLogRecord, error) {
	var (
		fieldName sql.NullString
		oldValue  sql.NullString
		newValue  sql.NullString
		actor     sql.NullString
		createdAt time.Time
	)

	record := &secondary.AuditLogRecord{}
	err := scanner.Scan(
		&record.ID, &record.EntityType, &record.EntityID, &record.Action,
		&fieldName, &oldValue, &newValue, &actor, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	record.FieldName = fieldName.String
	record.OldValue = oldValue.String
	record.NewValue = newValue.String
	record.Actor = actor.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// create persists a new audit entry. Only the LogWriter adapter writes here.
func (r *AuditLogRepository) create(ctx context.Context, record *secondary.AuditLogRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO audit_log (id, entity_type, entity_id, action, field_name, old_value, new_value, actor) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		record.ID, record.EntityType, record.EntityID, record.Action,
		nullable(record.FieldName), nullable(record.OldValue),
		nullable(record.NewValue), nullable(record.Actor),
	)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}
	return nil
}

// getNextID returns the next available audit entry ID.
func (r *AuditLogRepository) getNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM audit_log",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next audit entry ID: %w", err)
	}
	return fmt.Sprintf("LOG-%03d", maxID+1), nil
}

// List retrieves audit entries matching the given filters, newest first.
func (r *AuditLogRepository) List(ctx context.Context, filters secondary.AuditLogFilters) ([]*secondary.AuditLogRecord, error) {
	query := "SELECT " + auditLogSelectCols + " FROM audit_log WHERE 1=1"
	var args []any

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}
	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}
	if filters.Actor != "" {
		query += " AND actor = ?"
		args = append(args, filters.Actor)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var records []*secondary.AuditLogRecord
	for rows.Next() {
		record, err := scanAuditLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// PruneOlderThan deletes entries older than the given number of days.
func (r *AuditLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM audit_log WHERE created_at < datetime('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune audit entries: %w", err)
	}
	n, err := result.RowsAffected()
	return int(n), err
}

var _ secondary.AuditLogRepository = (*AuditLogRepository)(nil)
