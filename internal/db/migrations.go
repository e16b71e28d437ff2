package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_relayed_flag_to_messages",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_is_required_to_library_items",
		Up:      migrationV2,
	},
}

// migrationV1 records the outbound relay outcome on each message so the
// dashboard can distinguish delivered from locally-kept messages.
func migrationV1(database *sql.DB) error {
	if _, err := database.Exec("ALTER TABLE messages ADD COLUMN relayed BOOLEAN NOT NULL DEFAULT 0"); err != nil {
		return err
	}
	_, err := database.Exec("CREATE INDEX IF NOT EXISTS idx_messages_external_id ON messages(external_id)")
	return err
}

// migrationV2 lets library entries carry the required flag into templates.
func migrationV2(database *sql.DB) error {
	_, err := database.Exec("ALTER TABLE library_items ADD COLUMN is_required BOOLEAN NOT NULL DEFAULT 0")
	return err
}

// RunMigrations applies pending migrations in version order.
func RunMigrations(database *sql.DB) error {
	_, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err = database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		tx, err := database.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(database); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("✓ Migration %d completed\n", migration.Version)
	}

	return nil
}
