package service

import (
	"math"
	"sort"

	"stress-advisor/domain"
)

type StressService struct {
	model ScoringModel
}

// NewStressService creates a StressService. The model is assumed to have
// passed ScoringModel.Validate.
func NewStressService(model ScoringModel) *StressService {
	return &StressService{model: model}
}

// CalculateStress scores one household-month. It never fails: zero income and
// zero expenses are reported through sentinel ratios.
func (s *StressService) CalculateStress(inputs domain.MonthlyInputs) domain.StressResult {
	totalExpenses := inputs.TotalExpenses()

	expenseRatio := RatioSentinel
	debtRatio := RatioSentinel
	if inputs.Income > 0 {
		expenseRatio = finiteOr(totalExpenses/inputs.Income, RatioSentinel)
		debtRatio = finiteOr(inputs.Debt/inputs.Income, RatioSentinel)
	}

	bufferMonths := BufferMonthsSentinel
	if totalExpenses > 0 {
		bufferMonths = finiteOr(inputs.SavingsBalance/totalExpenses, BufferMonthsSentinel)
	}

	w := s.model.Weights
	raw := w.Expense*float64(ScoreExpenseRatio(expenseRatio)) +
		w.Buffer*float64(ScoreBufferMonths(bufferMonths)) +
		w.Debt*float64(ScoreDebtRatio(debtRatio))

	score := int(math.Round(clamp(raw, 0, 100)))

	return domain.StressResult{
		StressScore:     score,
		RiskLevel:       s.model.RiskLevelFor(score),
		ExpenseRatio:    roundTo(expenseRatio, ExpenseRatioPlaces),
		BufferMonths:    roundTo(bufferMonths, BufferMonthsPlaces),
		DebtRatio:       roundTo(debtRatio, DebtRatioPlaces),
		PressureSources: topPressureSources(inputs, totalExpenses),
	}
}

// finiteOr returns v, or sentinel when a division overflowed.
func finiteOr(v, sentinel float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sentinel
	}
	return v
}

type categoryShare struct {
	name  string
	share float64
}

// topPressureSources returns up to MaxPressureSources category names, largest
// share first. Equal shares keep the category enumeration order.
func topPressureSources(inputs domain.MonthlyInputs, totalExpenses float64) []string {
	sources := []string{}
	if totalExpenses <= 0 {
		return sources
	}

	shares := make([]categoryShare, 0, 6)
	for _, c := range inputs.Categories() {
		share := c.Amount / totalExpenses
		if share >= MinPressureShare {
			shares = append(shares, categoryShare{name: string(c.Category), share: share})
		}
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].share > shares[j].share
	})

	for i := 0; i < len(shares) && i < MaxPressureSources; i++ {
		sources = append(sources, shares[i].name)
	}
	return sources
}
