package cmd

import (
	"github.com/spf13/cobra"

	"stress-advisor/domain"
)

var flagSimulateExplain bool

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Compare a baseline month against a what-if change",
	Long:  `Reads {"base": {...}, "changes": {...}} and prints base, after and delta.`,
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&flagInputFile, "file", "f", "", "JSON scenario file (default stdin)")
	simulateCmd.Flags().BoolVar(&flagSimulateExplain, "explain", false, "Attach a natural-language explanation")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var input domain.ScenarioInput
	if err := readInput(cmd, flagInputFile, &input); err != nil {
		return err
	}

	result := a.scenario.Simulate(input.Base.Sanitize(), input.Changes.Sanitize())
	if !flagSimulateExplain {
		return printJSON(cmd, result)
	}

	explanation := a.explain.Explain(cmd.Context(), domain.ExplainScenario, domain.ScenarioFacts(result))
	return printJSON(cmd, struct {
		Result      domain.ScenarioResult  `json:"result"`
		Explanation domain.ExplainResponse `json:"explanation"`
	}{result, explanation})
}
