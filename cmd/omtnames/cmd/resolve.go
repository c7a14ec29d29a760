package cmd

import (
	"bufio"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"omtnames/internal/application"
)

var resolveNoTranslations bool

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve names for features read as JSON lines on stdin",
	Long: `Reads one feature per line, either {"id":1,"tags":{...}} or a bare tag object,
and writes {"id":1,"names":{...}} lines to stdout in the same order.`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveNoTranslations, "no-translations", false, "emit only the default name attributes")
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	var resolver application.Resolver = rt.resolver
	if resolveNoTranslations {
		resolver = application.ResolverFunc(rt.resolver.ResolveWithoutTranslations)
	}
	svc := application.NewFeatureService(resolver, nil,
		application.WithFeatureObserver(rt.metrics),
		application.WithServiceLogger(rt.logger),
	)

	out := bufio.NewWriter(cmd.OutOrStdout())
	summary, err := svc.ResolveStream(ctx, cmd.InOrStdin(), out)
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		rt.logger.Warn("some features were skipped", "failed", summary.Failed)
	}
	return nil
}
