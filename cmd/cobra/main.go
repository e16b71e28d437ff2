package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/cobra/internal/cli"
	"github.com/example/cobra/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "cobra",
		Short:   "COBRA - Checklist Operations Bridge for Response Activities",
		Version: version.String(),
		Long: `COBRA serves incident-management checklists over a REST API: templates,
instantiated checklists with progress tracking, an item library, chat
channels bridged to Teams and GroupMe, and usage analytics.`,
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.VersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
