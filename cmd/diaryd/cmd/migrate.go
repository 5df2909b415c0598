package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"diary/internal/infrastructure/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(_ *cobra.Command, _ []string) error {
		mg := migration.NewMigration(cfg, migration.DefaultEngine)
		if err := mg.Up(); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}
		log.Info("database schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
