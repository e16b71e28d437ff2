package app

import (
	"context"
	"fmt"
	"math"

	"github.com/example/cobra/internal/core/checklist"
	"github.com/example/cobra/internal/ports/primary"
	"github.com/example/cobra/internal/ports/secondary"
)

const defaultTopTemplates = 5

// AnalyticsServiceImpl implements the AnalyticsService interface.
type AnalyticsServiceImpl struct {
	analyticsRepo secondary.AnalyticsRepository
}

// NewAnalyticsService creates a new AnalyticsService with injected
// dependencies.
func NewAnalyticsService(analyticsRepo secondary.AnalyticsRepository) *AnalyticsServiceImpl {
	return &AnalyticsServiceImpl{analyticsRepo: analyticsRepo}
}

// Summary returns the headline counters and average progress.
func (s *AnalyticsServiceImpl) Summary(ctx context.Context) (*primary.AnalyticsSummary, error) {
	counts, err := s.analyticsRepo.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage counts: %w", err)
	}
	avg, err := s.analyticsRepo.AverageProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load average progress: %w", err)
	}

	return &primary.AnalyticsSummary{
		Templates:           counts.Templates,
		ActiveChecklists:    counts.ActiveChecklists,
		CompletedChecklists: counts.CompletedChecklists,
		ArchivedChecklists:  counts.ArchivedChecklists,
		Messages:            counts.Messages,
		LibraryItems:        counts.LibraryItems,
		AverageProgressPct:  math.Round(avg*100) / 100,
	}, nil
}

// TopTemplates returns the n most-used templates.
func (s *AnalyticsServiceImpl) TopTemplates(ctx context.Context, n int) ([]*primary.TemplateUsage, error) {
	if n <= 0 {
		n = defaultTopTemplates
	}
	records, err := s.analyticsRepo.TopTemplates(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to load top templates: %w", err)
	}

	usage := make([]*primary.TemplateUsage, len(records))
	for i, record := range records {
		usage[i] = &primary.TemplateUsage{
			TemplateID: record.TemplateID,
			Name:       record.Name,
			UsageCount: record.UsageCount,
		}
	}
	return usage, nil
}

// CompletionRates returns per-template completion statistics.
func (s *AnalyticsServiceImpl) CompletionRates(ctx context.Context) ([]*primary.TemplateCompletionRate, error) {
	records, err := s.analyticsRepo.CompletionRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load completion rates: %w", err)
	}

	rates := make([]*primary.TemplateCompletionRate, len(records))
	for i, record := range records {
		rates[i] = &primary.TemplateCompletionRate{
			TemplateID:    record.TemplateID,
			Name:          record.Name,
			Instances:     record.Instances,
			Completed:     record.Completed,
			CompletionPct: checklist.Percentage(record.Completed, record.Instances),
		}
	}
	return rates, nil
}

var _ primary.AnalyticsService = (*AnalyticsServiceImpl)(nil)
