package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"omtnames/internal/application"
	"omtnames/internal/infrastructure/database"
)

var batchSkipMigrate bool

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Resolve names for every unresolved feature in the database",
	Args:  cobra.NoArgs,
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&batchSkipMigrate, "skip-migrate", false, "do not apply pending migrations first")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	if !batchSkipMigrate {
		if _, err := database.RunMigrations(rt.cfg.DatabaseURL, rt.cfg.MigrationsPath, rt.logger); err != nil {
			return err
		}
	}

	pool, err := database.NewPool(ctx, rt.cfg.DatabaseURL, int32(rt.cfg.Workers+1), rt.logger)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	defer pool.Close()

	repo := database.NewFeatureRepository(database.NewQueries(pool))
	pending, err := repo.CountUnresolved(ctx)
	if err != nil {
		return err
	}
	rt.logger.Info("unresolved features", "count", pending)

	svc := application.NewFeatureService(rt.resolver, repo,
		application.WithWorkers(rt.cfg.Workers),
		application.WithBatchSize(rt.cfg.BatchSize),
		application.WithFeatureObserver(rt.metrics),
		application.WithServiceLogger(rt.logger),
	)
	summary, err := svc.ResolveBatch(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d resolved, %d failed\n", summary.RunID, summary.Processed, summary.Failed)
	return nil
}
