package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/cobra/internal/config"
	"github.com/example/cobra/internal/db"
)

// SeedCmd returns the seed command.
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with development fixtures",
		Long: `Insert demo templates, a partially completed checklist, a library
entry, an internal chat channel, and integration settings.

Intended for a fresh database; seeding twice fails on duplicate IDs.`,
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

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}

			fmt.Printf("%s Fixtures loaded into %s\n",
				color.New(color.FgHiGreen).Sprint("✓"), cfg.DBPath)
			return nil
		},
	}
}
