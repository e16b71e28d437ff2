package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh installs. It is the single
// source of truth: repository tests load it via GetSchemaSQL(), so a column
// referenced in repository code that is missing here fails tests with
// "no such column" immediately.
//
// Keep this in sync with migrations.go: every migration's end state must be
// reflected here, and fresh installs record all migration versions as
// applied.
const SchemaSQL = `
-- Checklist templates (reusable definitions)
CREATE TABLE IF NOT EXISTS templates (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT,
	tags TEXT,
	description TEXT,
	is_active BOOLEAN NOT NULL DEFAULT 1,
	archived BOOLEAN NOT NULL DEFAULT 0,
	usage_count INTEGER NOT NULL DEFAULT 0,
	last_used_at DATETIME,
	created_by TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS template_items (
	id TEXT PRIMARY KEY,
	template_id TEXT NOT NULL,
	text TEXT NOT NULL,
	item_type TEXT NOT NULL CHECK(item_type IN ('checkbox', 'status')) DEFAULT 'checkbox',
	display_order INTEGER NOT NULL DEFAULT 0,
	is_required BOOLEAN NOT NULL DEFAULT 0,
	status_config TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (template_id) REFERENCES templates(id) ON DELETE CASCADE
);

-- Checklist instances (per-event copies of a template)
CREATE TABLE IF NOT EXISTS checklists (
	id TEXT PRIMARY KEY,
	template_id TEXT NOT NULL,
	name TEXT NOT NULL,
	event_ref TEXT,
	operational_period_ref TEXT,
	assigned_positions TEXT,
	progress_pct REAL NOT NULL DEFAULT 0,
	total_items INTEGER NOT NULL DEFAULT 0,
	completed_items INTEGER NOT NULL DEFAULT 0,
	required_items INTEGER NOT NULL DEFAULT 0,
	required_items_completed INTEGER NOT NULL DEFAULT 0,
	archived BOOLEAN NOT NULL DEFAULT 0,
	archived_at DATETIME,
	archived_by TEXT,
	created_by TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (template_id) REFERENCES templates(id)
);

CREATE TABLE IF NOT EXISTS checklist_items (
	id TEXT PRIMARY KEY,
	checklist_id TEXT NOT NULL,
	text TEXT NOT NULL,
	item_type TEXT NOT NULL CHECK(item_type IN ('checkbox', 'status')) DEFAULT 'checkbox',
	display_order INTEGER NOT NULL DEFAULT 0,
	is_required BOOLEAN NOT NULL DEFAULT 0,
	status_config TEXT,
	is_completed BOOLEAN NOT NULL DEFAULT 0,
	current_status TEXT,
	notes TEXT,
	completed_by TEXT,
	completed_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (checklist_id) REFERENCES checklists(id) ON DELETE CASCADE
);

-- Reusable item library
CREATE TABLE IF NOT EXISTS library_items (
	id TEXT PRIMARY KEY,
	text TEXT NOT NULL,
	item_type TEXT NOT NULL CHECK(item_type IN ('checkbox', 'status')) DEFAULT 'checkbox',
	status_config TEXT,
	category TEXT,
	is_required BOOLEAN NOT NULL DEFAULT 0,
	usage_count INTEGER NOT NULL DEFAULT 0,
	created_by TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Chat channels and messages
CREATE TABLE IF NOT EXISTS channels (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	platform TEXT NOT NULL CHECK(platform IN ('internal', 'teams', 'groupme')) DEFAULT 'internal',
	external_ref TEXT,
	enabled BOOLEAN NOT NULL DEFAULT 1,
	created_by TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS messages (
	id TEXT PRIMARY KEY,
	channel_id TEXT NOT NULL,
	sender TEXT NOT NULL,
	body TEXT NOT NULL,
	source TEXT NOT NULL CHECK(source IN ('internal', 'teams', 'groupme')) DEFAULT 'internal',
	external_id TEXT,
	relayed BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (channel_id) REFERENCES channels(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_messages_external_id ON messages(external_id);

-- Admin settings (key-value, secrets masked at the service layer)
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT,
	category TEXT,
	is_secret BOOLEAN NOT NULL DEFAULT 0,
	enabled BOOLEAN NOT NULL DEFAULT 1,
	updated_by TEXT,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Audit trail
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT,
	actor TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_type, entity_id);
`

// InitSchema brings a database up to the current schema. Fresh databases
// get SchemaSQL directly with all migration versions marked applied;
// existing databases run pending migrations.
func InitSchema(database *sql.DB) error {
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		if _, err := database.Exec(SchemaSQL); err != nil {
			return err
		}
		if _, err := database.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`); err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
		}
		return nil
	}

	return RunMigrations(database)
}

// GetSchemaSQL returns the authoritative schema for test setup.
func GetSchemaSQL() string {
	return SchemaSQL
}
