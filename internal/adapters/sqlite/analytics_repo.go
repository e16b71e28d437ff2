package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/cobra/internal/ports/secondary"
)

// AnalyticsRepository implements secondary.AnalyticsRepository with SQLite.
// All queries are read-only aggregates over the other repositories' tables.
type AnalyticsRepository struct {
	db *sql.DB
}

// NewAnalyticsRepository creates a new SQLite analytics repository.
func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Counts returns the headline usage counters.
func (r *AnalyticsRepository) Counts(ctx context.Context) (*secondary.UsageCounts, error) {
	counts := &secondary.UsageCounts{}

	queries := []struct {
		dest  *int
		query string
	}{
		{&counts.Templates, "SELECT COUNT(*) FROM templates WHERE archived = 0"},
		{&counts.ActiveChecklists, "SELECT COUNT(*) FROM checklists WHERE archived = 0"},
		{&counts.CompletedChecklists, "SELECT COUNT(*) FROM checklists WHERE archived = 0 AND total_items > 0 AND completed_items = total_items"},
		{&counts.ArchivedChecklists, "SELECT COUNT(*) FROM checklists WHERE archived = 1"},
		{&counts.Messages, "SELECT COUNT(*) FROM messages"},
		{&counts.LibraryItems, "SELECT COUNT(*) FROM library_items"},
	}
	for _, q := range queries {
		if err := r.db.QueryRowContext(ctx, q.query).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	return counts, nil
}

// TopTemplates returns the n most-used templates.
func (r *AnalyticsRepository) TopTemplates(ctx context.Context, n int) ([]*secondary.TemplateUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, usage_count FROM templates WHERE archived = 0 ORDER BY usage_count DESC, name LIMIT ?",
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query top templates: %w", err)
	}
	defer rows.Close()

	var records []*secondary.TemplateUsage
	for rows.Next() {
		record := &secondary.TemplateUsage{}
		if err := rows.Scan(&record.TemplateID, &record.Name, &record.UsageCount); err != nil {
			return nil, fmt.Errorf("failed to scan template usage: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// AverageProgress returns the mean progress percentage of non-archived
// checklists, 0 when there are none.
func (r *AnalyticsRepository) AverageProgress(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		"SELECT AVG(progress_pct) FROM checklists WHERE archived = 0",
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to query average progress: %w", err)
	}
	return avg.Float64, nil
}

// CompletionRates returns per-template instance and completion counts.
func (r *AnalyticsRepository) CompletionRates(ctx context.Context) ([]*secondary.TemplateCompletion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name, COUNT(c.id),
			COALESCE(SUM(CASE WHEN c.total_items > 0 AND c.completed_items = c.total_items THEN 1 ELSE 0 END), 0)
		 FROM templates t
		 LEFT JOIN checklists c ON c.template_id = t.id AND c.archived = 0
		 WHERE t.archived = 0
		 GROUP BY t.id, t.name
		 ORDER BY t.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query completion rates: %w", err)
	}
	defer rows.Close()

	var records []*secondary.TemplateCompletion
	for rows.Next() {
		record := &secondary.TemplateCompletion{}
		if err := rows.Scan(&record.TemplateID, &record.Name, &record.Instances, &record.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan completion rate: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

var _ secondary.AnalyticsRepository = (*AnalyticsRepository)(nil)
