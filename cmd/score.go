package cmd

import (
	"github.com/spf13/cobra"

	"stress-advisor/domain"
)

var flagScoreExplain bool

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the stress score for one month of income and expenses",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&flagInputFile, "file", "f", "", "JSON inputs file (default stdin)")
	scoreCmd.Flags().BoolVar(&flagScoreExplain, "explain", false, "Attach a natural-language explanation")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var inputs domain.MonthlyInputs
	if err := readInput(cmd, flagInputFile, &inputs); err != nil {
		return err
	}

	result := a.stress.CalculateStress(inputs.Sanitize())
	if !flagScoreExplain {
		return printJSON(cmd, result)
	}

	explanation := a.explain.Explain(cmd.Context(), domain.ExplainStress, domain.StressFacts(result))
	return printJSON(cmd, struct {
		Result      domain.StressResult    `json:"result"`
		Explanation domain.ExplainResponse `json:"explanation"`
	}{result, explanation})
}
