package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"locize-sync/core/metrics"
	"locize-sync/core/reconcile"
	"locize-sync/feature/resolver"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncDryRun bool
	syncRoot   string
)

// syncCmd fills the missing translations of every language.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Find missing translations and add them to the store",
	Long: `Scans the source tree for translation keys, loads every language from the
store and resolves each missing (language, key) pair with the configured
resolver. Resolved translations are written per language; a failure for one
language does not stop the others.

Examples:
  # Interactive run
  locize-sync sync --root ./src

  # Resolve but write nothing
  locize-sync sync --dry-run

  # Copy reference values without prompting
  RESOLVER_MODE=reference locize-sync sync`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Resolve translations but do not write them")
	syncCmd.Flags().StringVar(&syncRoot, "root", "", "Source root to scan (overrides find_keys.root)")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	if !syncDryRun {
		if err := cfg.ValidateWrite(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}

	res, err := resolver.New(cfg.Resolver, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	engine, err := newEngine(ctx, cfg, l, reconcile.WithResolver(res), reconcile.WithMetrics(metrics.New()))
	if err != nil {
		return err
	}

	report, err := engine.Run(ctx, sourceRoot(syncRoot, cfg), reconcile.Options{DryRun: syncDryRun})
	if err != nil {
		return err
	}

	printSyncReport(l, report)
	return nil
}

// printSyncReport logs the per-language outcome of a run.
func printSyncReport(l *zap.Logger, report *reconcile.Report) {
	l = l.With(zap.String("run_id", report.RunID))

	for _, result := range report.Results {
		fields := []zap.Field{
			zap.String("language", result.Language),
			zap.String("status", string(result.Status)),
			zap.Int("count", result.Count),
		}
		if result.Failed() {
			l.Error("Failed to save translations", append(fields, zap.String("error", result.Error))...)
			continue
		}
		l.Info("Language done", fields...)
	}

	l.Info("Sync finished",
		zap.Int("keys", report.Keys),
		zap.Int("missing", report.Missing),
		zap.Int("resolved", report.Actions.Count()),
		zap.Int("failed_languages", len(report.Failures())),
	)
}
