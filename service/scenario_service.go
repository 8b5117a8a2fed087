package service

import (
	"math"

	"stress-advisor/domain"
)

type ScenarioService struct {
	stressService *StressService
}

func NewScenarioService(stressService *StressService) *ScenarioService {
	return &ScenarioService{stressService: stressService}
}

// Simulate scores base and base-with-changes and reports the difference.
func (s *ScenarioService) Simulate(
	base domain.MonthlyInputs,
	changes domain.MonthlyChanges,
) domain.ScenarioResult {
	after := changes.Apply(base)

	baseResult := s.stressService.CalculateStress(base)
	afterResult := s.stressService.CalculateStress(after)

	return domain.ScenarioResult{
		Base:  baseResult,
		After: afterResult,
		Delta: domain.ScenarioDelta{
			StressScore:    afterResult.StressScore - baseResult.StressScore,
			MonthlyBalance: roundTo(after.MonthlyBalance()-base.MonthlyBalance(), BalancePlaces),
			SurvivalMonths: survivalMonths(after),
		},
	}
}

// survivalMonths is how many whole months savings cover expenses once income
// stops. Scenarios that still break even report SurvivalMonthsSentinel, and
// so do buffers of SurvivalMonthsSentinel months or more.
func survivalMonths(inputs domain.MonthlyInputs) int {
	totalExpenses := inputs.TotalExpenses()
	if inputs.Income-totalExpenses >= 0 || totalExpenses <= 0 {
		return SurvivalMonthsSentinel
	}
	months := math.Floor(inputs.SavingsBalance / totalExpenses)
	if math.IsNaN(months) || months >= SurvivalMonthsSentinel {
		return SurvivalMonthsSentinel
	}
	return int(months)
}
