package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/cobra/internal/config"
	"github.com/example/cobra/internal/db"
)

// MigrateCmd returns the migrate command.
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the COBRA database",
		Long: `Bring the database at the configured db_path up to the current schema.

Fresh databases are created from the full schema; existing databases run
pending migrations only. Running migrate on an up-to-date database is a
no-op.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return err
			}

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()

			fmt.Printf("%s Database ready at %s\n",
				color.New(color.FgHiGreen).Sprint("✓"), cfg.DBPath)
			return nil
		},
	}
}
