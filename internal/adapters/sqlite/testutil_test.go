// Package sqlite_test contains integration tests for SQLite repositories.
//
// All test setup loads the schema through db.GetSchemaSQL() so tests always
// run against the authoritative schema. Do not hardcode CREATE TABLE
// statements in test files; use setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/cobra/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedTemplate inserts a test template and returns its ID.
func seedTemplate(t *testing.T, db *sql.DB, id, name string) string {
	t.Helper()
	if id == "" {
		id = "TMPL-001"
	}
	if name == "" {
		name = "Test Template"
	}
	_, err := db.Exec("INSERT INTO templates (id, name, is_active) VALUES (?, ?, 1)", id, name)
	if err != nil {
		t.Fatalf("failed to seed template: %v", err)
	}
	return id
}

// seedChecklist inserts a test checklist and returns its ID.
func seedChecklist(t *testing.T, db *sql.DB, id, templateID, name string) string {
	t.Helper()
	if id == "" {
		id = "CHK-001"
	}
	if templateID == "" {
		templateID = "TMPL-001"
	}
	if name == "" {
		name = "Test Checklist"
	}
	_, err := db.Exec("INSERT INTO checklists (id, template_id, name) VALUES (?, ?, ?)", id, templateID, name)
	if err != nil {
		t.Fatalf("failed to seed checklist: %v", err)
	}
	return id
}

// seedChannel inserts a test channel and returns its ID.
func seedChannel(t *testing.T, db *sql.DB, id, platform, externalRef string) string {
	t.Helper()
	if id == "" {
		id = "CHAN-001"
	}
	if platform == "" {
		platform = "internal"
	}
	var ref any
	if externalRef != "" {
		ref = externalRef
	}
	_, err := db.Exec("INSERT INTO channels (id, name, platform, external_ref) VALUES (?, 'Test Channel', ?, ?)", id, platform, ref)
	if err != nil {
		t.Fatalf("failed to seed channel: %v", err)
	}
	return id
}
