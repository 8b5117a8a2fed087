package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"stress-advisor/domain"
)

type band struct {
	limit float64
	score int
}

// bandTable maps a value to a sub-score. Bands are checked in order and the
// first match wins; values matching no band get otherwise.
type bandTable struct {
	bands     []band
	atLeast   bool // match v >= limit instead of v <= limit
	otherwise int
}

func (t bandTable) score(v float64) int {
	for _, b := range t.bands {
		if t.atLeast && v >= b.limit {
			return b.score
		}
		if !t.atLeast && v <= b.limit {
			return b.score
		}
	}
	return t.otherwise
}

var (
	expenseRatioBands = bandTable{
		bands:     []band{{0.50, 10}, {0.70, 30}, {0.85, 60}, {1.00, 85}},
		otherwise: 100,
	}
	debtRatioBands = bandTable{
		bands:     []band{{0.10, 10}, {0.20, 35}, {0.35, 70}},
		otherwise: 100,
	}
	// Larger buffers are safer, so the table runs from the top down.
	bufferMonthsBands = bandTable{
		bands:     []band{{6, 10}, {3, 35}, {1, 70}},
		atLeast:   true,
		otherwise: 100,
	}
)

// ScoreExpenseRatio maps total expenses / income to a 0-100 sub-score.
func ScoreExpenseRatio(r float64) int { return expenseRatioBands.score(r) }

// ScoreDebtRatio maps debt payments / income to a 0-100 sub-score.
func ScoreDebtRatio(r float64) int { return debtRatioBands.score(r) }

// ScoreBufferMonths maps months of savings coverage to a 0-100 sub-score.
func ScoreBufferMonths(m float64) int { return bufferMonthsBands.score(m) }

// Weights are the coefficients of the three sub-scores. They must sum to 1.
type Weights struct {
	Expense float64 `toml:"expense"`
	Buffer  float64 `toml:"buffer"`
	Debt    float64 `toml:"debt"`
}

// RiskBand assigns Level to every score up to and including Max.
type RiskBand struct {
	Max   int              `toml:"max"`
	Level domain.RiskLevel `toml:"level"`
}

// ScoringModel holds the tunable constants of the stress engine.
type ScoringModel struct {
	Weights   Weights    `toml:"weights"`
	RiskBands []RiskBand `toml:"risk_bands"`
}

// DefaultScoringModel returns the weights and risk bands used in production.
func DefaultScoringModel() ScoringModel {
	return ScoringModel{
		Weights: Weights{Expense: 0.45, Buffer: 0.35, Debt: 0.20},
		RiskBands: []RiskBand{
			{Max: 39, Level: domain.RiskLow},
			{Max: 69, Level: domain.RiskModerate},
			{Max: 100, Level: domain.RiskHigh},
		},
	}
}

const weightSumTolerance = 1e-9

// Validate checks that the weights are non-negative and sum to 1 and that
// the risk bands are strictly ascending.
func (m ScoringModel) Validate() error {
	w := m.Weights
	if w.Expense < 0 || w.Buffer < 0 || w.Debt < 0 {
		return errors.New("scoring weights must be non-negative")
	}
	if sum := w.Expense + w.Buffer + w.Debt; math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("scoring weights must sum to 1, got %v", sum)
	}
	if len(m.RiskBands) == 0 {
		return errors.New("at least one risk band is required")
	}
	for i, b := range m.RiskBands {
		if b.Level == "" {
			return fmt.Errorf("risk band %d has no level", i)
		}
		if i > 0 && b.Max <= m.RiskBands[i-1].Max {
			return fmt.Errorf("risk band %d max %d is not above %d", i, b.Max, m.RiskBands[i-1].Max)
		}
	}
	return nil
}

// RiskLevelFor returns the first band whose max covers score, or High.
func (m ScoringModel) RiskLevelFor(score int) domain.RiskLevel {
	for _, b := range m.RiskBands {
		if score <= b.Max {
			return b.Level
		}
	}
	return domain.RiskHigh
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// roundTo rounds half away from zero to the given number of decimal places.
func roundTo(value float64, places int32) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}
