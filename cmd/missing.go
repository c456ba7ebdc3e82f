package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var missingRoot string

// missingCmd reports missing translations without resolving them.
var missingCmd = &cobra.Command{
	Use:   "missing",
	Short: "List the keys without a translation, per language",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, l, err := setup()
		if err != nil {
			return err
		}
		defer l.Sync()

		engine, err := newEngine(ctx, cfg, l)
		if err != nil {
			return err
		}

		plan, err := engine.Plan(ctx, sourceRoot(missingRoot, cfg))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, lang := range plan.Languages {
			keys := plan.ForLanguage(lang.Code)
			fmt.Fprintf(out, "%s (%s): %d missing\n", lang.Code, lang.Name, len(keys))
			for _, key := range keys {
				fmt.Fprintf(out, "  %s\n", key)
			}
		}

		l.Info("Missing report",
			zap.Int("keys", plan.Summary.UniqueKeys),
			zap.Int("languages", plan.Summary.Languages),
			zap.Int("missing", plan.Summary.Missing),
		)
		return nil
	},
}

func init() {
	missingCmd.Flags().StringVar(&missingRoot, "root", "", "Source root to scan (overrides find_keys.root)")
	RootCmd.AddCommand(missingCmd)
}
