package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"omtnames/internal/config"
	"omtnames/internal/infrastructure/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		version, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, cfg.NewLogger())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
		return nil
	},
}
