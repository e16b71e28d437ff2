package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures: two
// templates, one instantiated checklist with mixed completion state, a
// library entry, an internal chat channel, and integration settings.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().UTC().Format(time.RFC3339)

	templates := []struct{ id, name, category string }{
		{"TMPL-001", "Severity-1 Bridge Activation", "incident"},
		{"TMPL-002", "Post-Incident Review", "review"},
	}
	for _, t := range templates {
		if _, err := database.Exec(
			"INSERT INTO templates (id, name, category, is_active, created_by, created_at, updated_at) VALUES (?, ?, ?, 1, 'seed', ?, ?)",
			t.id, t.name, t.category, now, now,
		); err != nil {
			return fmt.Errorf("seed templates: %w", err)
		}
	}

	statusConfig := `[{"label":"Not Started","isCompletion":false},{"label":"In Progress","isCompletion":false},{"label":"Complete","isCompletion":true}]`
	items := []struct {
		id, templateID, text, itemType string
		order                          int
		required                       bool
		config                         string
	}{
		{"TI-001", "TMPL-001", "Open the incident bridge", "checkbox", 1, true, ""},
		{"TI-002", "TMPL-001", "Page the on-call Safety Officer", "checkbox", 2, true, ""},
		{"TI-003", "TMPL-001", "Customer communication", "status", 3, false, statusConfig},
		{"TI-004", "TMPL-002", "Collect timeline", "checkbox", 1, true, ""},
		{"TI-005", "TMPL-002", "Schedule review meeting", "checkbox", 2, false, ""},
	}
	for _, it := range items {
		var config sql.NullString
		if it.config != "" {
			config = sql.NullString{String: it.config, Valid: true}
		}
		if _, err := database.Exec(
			"INSERT INTO template_items (id, template_id, text, item_type, display_order, is_required, status_config, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			it.id, it.templateID, it.text, it.itemType, it.order, it.required, config, now, now,
		); err != nil {
			return fmt.Errorf("seed template items: %w", err)
		}
	}

	if _, err := database.Exec(
		`INSERT INTO checklists (id, template_id, name, event_ref, assigned_positions,
			progress_pct, total_items, completed_items, required_items, required_items_completed,
			created_by, created_at, updated_at)
		 VALUES ('CHK-001', 'TMPL-001', 'Severity-1 Bridge Activation', 'EVT-100', 'Safety Officer',
			33.33, 3, 1, 2, 1, 'seed', ?, ?)`,
		now, now,
	); err != nil {
		return fmt.Errorf("seed checklists: %w", err)
	}

	checklistItems := []struct {
		id, text, itemType string
		order              int
		required, done     bool
		config             string
	}{
		{"CI-001", "Open the incident bridge", "checkbox", 1, true, true, ""},
		{"CI-002", "Page the on-call Safety Officer", "checkbox", 2, true, false, ""},
		{"CI-003", "Customer communication", "status", 3, false, false, statusConfig},
	}
	for _, it := range checklistItems {
		var config sql.NullString
		if it.config != "" {
			config = sql.NullString{String: it.config, Valid: true}
		}
		var completedBy sql.NullString
		var completedAt sql.NullString
		if it.done {
			completedBy = sql.NullString{String: "seed", Valid: true}
			completedAt = sql.NullString{String: now, Valid: true}
		}
		if _, err := database.Exec(
			`INSERT INTO checklist_items (id, checklist_id, text, item_type, display_order, is_required,
				status_config, is_completed, completed_by, completed_at, created_at, updated_at)
			 VALUES (?, 'CHK-001', ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.id, it.text, it.itemType, it.order, it.required, config, it.done, completedBy, completedAt, now, now,
		); err != nil {
			return fmt.Errorf("seed checklist items: %w", err)
		}
	}

	if _, err := database.Exec(
		"INSERT INTO library_items (id, text, item_type, category, is_required, created_by, created_at, updated_at) VALUES ('LIB-001', 'Notify legal team', 'checkbox', 'communication', 0, 'seed', ?, ?)",
		now, now,
	); err != nil {
		return fmt.Errorf("seed library items: %w", err)
	}

	if _, err := database.Exec(
		"INSERT INTO channels (id, name, platform, enabled, created_by, created_at, updated_at) VALUES ('CHAN-001', 'Incident Bridge', 'internal', 1, 'seed', ?, ?)",
		now, now,
	); err != nil {
		return fmt.Errorf("seed channels: %w", err)
	}

	settings := []struct {
		key, value, category string
		secret               bool
	}{
		{"teams.webhook_url", "https://example.webhook.office.com/webhookb2/demo", "integrations", true},
		{"groupme.bot_id", "demo-bot-id", "integrations", true},
		{"app.display_name", "COBRA", "general", false},
	}
	for _, s := range settings {
		if _, err := database.Exec(
			"INSERT INTO settings (key, value, category, is_secret, enabled, updated_by, updated_at) VALUES (?, ?, ?, ?, 1, 'seed', ?)",
			s.key, s.value, s.category, s.secret, now,
		); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	}

	return nil
}
