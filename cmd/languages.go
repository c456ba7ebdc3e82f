package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// languagesCmd prints the store's languages in order.
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the store's languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := setup()
		if err != nil {
			return err
		}
		defer l.Sync()

		store, err := newStore(cmd.Context(), cfg, l)
		if err != nil {
			return err
		}

		langs, err := store.Languages(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch languages: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, lang := range langs {
			marker := ""
			if lang.Reference {
				marker = " (reference)"
			}
			fmt.Fprintf(out, "%-8s %s / %s%s\n", lang.Code, lang.Name, lang.NativeName, marker)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(languagesCmd)
}
