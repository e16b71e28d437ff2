package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/cobra/internal/wire"
)

// StatusCmd returns the status command.
func StatusCmd() *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show database location and usage counters",
		Long: `Display where COBRA stores its data and the headline analytics:
template and checklist counts, average progress, and the most-used
templates.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Cfg()
			ctx := context.Background()

			fmt.Println("COBRA Status")
			fmt.Println()
			fmt.Printf("Database: %s\n", cfg.DBPath)
			fmt.Printf("Listen:   %s\n", cfg.ListenAddr)
			fmt.Println()

			summary, err := wire.AnalyticsService().Summary(ctx)
			if err != nil {
				return fmt.Errorf("failed to load summary: %w", err)
			}

			fmt.Printf("Templates:            %d\n", summary.Templates)
			fmt.Printf("Active checklists:    %d\n", summary.ActiveChecklists)
			fmt.Printf("Completed checklists: %d\n", summary.CompletedChecklists)
			fmt.Printf("Archived checklists:  %d\n", summary.ArchivedChecklists)
			fmt.Printf("Messages:             %d\n", summary.Messages)
			fmt.Printf("Library entries:      %d\n", summary.LibraryItems)
			fmt.Printf("Average progress:     %s\n",
				color.New(color.FgHiCyan).Sprintf("%.2f%%", summary.AverageProgressPct))

			top, err := wire.AnalyticsService().TopTemplates(ctx, topN)
			if err != nil {
				return fmt.Errorf("failed to load top templates: %w", err)
			}
			if len(top) > 0 {
				fmt.Println()
				fmt.Println("Most used templates:")
				for _, usage := range top {
					fmt.Printf("  - %s: %s (%d uses)\n", usage.TemplateID, usage.Name, usage.UsageCount)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&topN, "top", 5, "Number of most-used templates to show")

	return cmd
}
