package secondary

import "context"

// AnalyticsRepository defines the secondary port for read-only usage queries.
type AnalyticsRepository interface {
	// Counts returns the headline usage counters.
	Counts(ctx context.Context) (*UsageCounts, error)

	// TopTemplates returns the n most-used templates.
	TopTemplates(ctx context.Context, n int) ([]*TemplateUsage, error)

	// AverageProgress returns the mean progress percentage of active
	// (non-archived) checklists, 0 when there are none.
	AverageProgress(ctx context.Context) (float64, error)

	// CompletionRates returns per-template instance counts and completion
	// counts across all non-archived checklists.
	CompletionRates(ctx context.Context) ([]*TemplateCompletion, error)
}

// UsageCounts holds the headline counters for the analytics summary.
type UsageCounts struct {
	Templates           int
	ActiveChecklists    int
	CompletedChecklists int // progress at 100%
	ArchivedChecklists  int
	Messages            int
	LibraryItems        int
}

// TemplateUsage is one row of the top-templates list.
type TemplateUsage struct {
	TemplateID string
	Name       string
	UsageCount int
}

// TemplateCompletion reports instance completion per template.
type TemplateCompletion struct {
	TemplateID string
	Name       string
	Instances  int
	Completed  int
}
