package domain

// RiskLevel is the ordered risk tier derived from a stress score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

type StressResult struct {
	StressScore     int       `json:"stressScore"`
	RiskLevel       RiskLevel `json:"riskLevel"`
	ExpenseRatio    float64   `json:"expenseRatio"`
	BufferMonths    float64   `json:"bufferMonths"`
	DebtRatio       float64   `json:"debtRatio"`
	PressureSources []string  `json:"pressureSources"`
}

type ScenarioDelta struct {
	StressScore    int     `json:"stressScore"`
	MonthlyBalance float64 `json:"monthlyBalance"`
	// SurvivalMonths is 999 when the scenario's cashflow is non-negative.
	SurvivalMonths int `json:"survivalMonths"`
}

type ScenarioResult struct {
	Base  StressResult  `json:"base"`
	After StressResult  `json:"after"`
	Delta ScenarioDelta `json:"delta"`
}

// ScenarioInput is the wire shape of a what-if request.
type ScenarioInput struct {
	Base    MonthlyInputs  `json:"base"`
	Changes MonthlyChanges `json:"changes"`
}
