package cmd

import (
	"github.com/spf13/cobra"

	"stress-advisor/domain"
)

var flagExplainType string

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Explain a set of facts in plain language",
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().StringVarP(&flagInputFile, "file", "f", "", "JSON facts file (default stdin)")
	explainCmd.Flags().StringVarP(&flagExplainType, "type", "t", domain.ExplainStress, "stress, scenario or optimize")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	facts := map[string]any{}
	if err := readInput(cmd, flagInputFile, &facts); err != nil {
		return err
	}

	return printJSON(cmd, a.explain.Explain(cmd.Context(), flagExplainType, facts))
}
