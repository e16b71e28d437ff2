package primary

import "context"

// AnalyticsService defines the primary port for read-only usage analytics.
type AnalyticsService interface {
	// Summary returns the headline counters and average progress.
	Summary(ctx context.Context) (*AnalyticsSummary, error)

	// TopTemplates returns the n most-used templates.
	TopTemplates(ctx context.Context, n int) ([]*TemplateUsage, error)

	// CompletionRates returns per-template completion statistics.
	CompletionRates(ctx context.Context) ([]*TemplateCompletionRate, error)
}

// AnalyticsSummary holds the dashboard headline numbers.
type AnalyticsSummary struct {
	Templates           int     `json:"templates"`
	ActiveChecklists    int     `json:"activeChecklists"`
	CompletedChecklists int     `json:"completedChecklists"`
	ArchivedChecklists  int     `json:"archivedChecklists"`
	Messages            int     `json:"messages"`
	LibraryItems        int     `json:"libraryItems"`
	AverageProgressPct  float64 `json:"averageProgressPct"`
}

// TemplateUsage is one row of the top-templates list.
type TemplateUsage struct {
	TemplateID string `json:"templateId"`
	Name       string `json:"name"`
	UsageCount int    `json:"usageCount"`
}

// TemplateCompletionRate reports how instances of a template complete.
type TemplateCompletionRate struct {
	TemplateID    string  `json:"templateId"`
	Name          string  `json:"name"`
	Instances     int     `json:"instances"`
	Completed     int     `json:"completed"`
	CompletionPct float64 `json:"completionPct"`
}
