package secondary

import "context"

// LogWriter defines the interface for writing audit log entries.
// Implementations extract the actor from context.
type LogWriter interface {
	// LogCreate logs a create operation for an entity.
	LogCreate(ctx context.Context, entityType, entityID string) error

	// LogUpdate logs an update operation for an entity field.
	// fieldName, oldValue, newValue describe what changed.
	LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error

	// LogDelete logs a delete operation for an entity.
	LogDelete(ctx context.Context, entityType, entityID string) error
}

// AuditLogRepository defines the secondary port for reading the audit trail.
type AuditLogRepository interface {
	// List retrieves audit entries matching the given filters, newest first.
	List(ctx context.Context, filters AuditLogFilters) ([]*AuditLogRecord, error)

	// PruneOlderThan deletes entries older than the given number of days
	// and returns how many were removed.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// AuditLogRecord represents one audit trail entry as stored in persistence.
type AuditLogRecord struct {
	ID         string
	EntityType string
	EntityID   string
	Action     string // "create", "update", "delete"
	FieldName  string
	OldValue   string
	NewValue   string
	Actor      string
	CreatedAt  string
}

// AuditLogFilters contains filter options for querying the audit trail.
type AuditLogFilters struct {
	EntityType string
	EntityID   string
	Actor      string
	Limit      int
}
