package domain

const (
	ExplainStress   = "stress"
	ExplainScenario = "scenario"
	ExplainOptimize = "optimize"
)

type ExplainRequest struct {
	Type  string         `json:"type"`
	Facts map[string]any `json:"facts"`
}

type ExplainResponse struct {
	Headline   string `json:"headline"`
	Reason     string `json:"reason"`
	Tradeoff   string `json:"tradeoff"`
	Confidence int    `json:"confidence"`
}

// StressFacts flattens a StressResult into the fact record sent to the explainer.
func StressFacts(r StressResult) map[string]any {
	sources := make([]string, len(r.PressureSources))
	copy(sources, r.PressureSources)
	return map[string]any{
		"stressScore":     r.StressScore,
		"riskLevel":       string(r.RiskLevel),
		"expenseRatio":    r.ExpenseRatio,
		"debtRatio":       r.DebtRatio,
		"bufferMonths":    r.BufferMonths,
		"pressureSources": sources,
	}
}

// ScenarioFacts flattens a ScenarioResult into the fact record sent to the explainer.
func ScenarioFacts(r ScenarioResult) map[string]any {
	return map[string]any{
		"baseStressScore":     r.Base.StressScore,
		"afterStressScore":    r.After.StressScore,
		"afterRiskLevel":      string(r.After.RiskLevel),
		"deltaStressScore":    r.Delta.StressScore,
		"deltaMonthlyBalance": r.Delta.MonthlyBalance,
		"survivalMonths":      r.Delta.SurvivalMonths,
	}
}
