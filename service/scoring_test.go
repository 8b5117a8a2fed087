package service

import (
	"testing"

	"stress-advisor/domain"
)

func TestScoreExpenseRatio_Bands(t *testing.T) {
	cases := []struct {
		ratio float64
		want  int
	}{
		{0, 10},
		{0.5, 10},
		{0.5001, 30},
		{0.7, 30},
		{0.85, 60},
		{0.86, 85},
		{1.0, 85},
		{1.01, 100},
		{RatioSentinel, 100},
	}

	for _, c := range cases {
		if got := ScoreExpenseRatio(c.ratio); got != c.want {
			t.Errorf("ScoreExpenseRatio(%v) = %d, want %d", c.ratio, got, c.want)
		}
	}
}

func TestScoreDebtRatio_Bands(t *testing.T) {
	cases := []struct {
		ratio float64
		want  int
	}{
		{0, 10},
		{0.1, 10},
		{0.15, 35},
		{0.2, 35},
		{0.35, 70},
		{0.36, 100},
		{RatioSentinel, 100},
	}

	for _, c := range cases {
		if got := ScoreDebtRatio(c.ratio); got != c.want {
			t.Errorf("ScoreDebtRatio(%v) = %d, want %d", c.ratio, got, c.want)
		}
	}
}

func TestScoreBufferMonths_Inverted(t *testing.T) {
	cases := []struct {
		months float64
		want   int
	}{
		{BufferMonthsSentinel, 10},
		{6, 10},
		{5.99, 35},
		{3, 35},
		{2.5, 70},
		{1, 70},
		{0.99, 100},
		{0, 100},
	}

	for _, c := range cases {
		if got := ScoreBufferMonths(c.months); got != c.want {
			t.Errorf("ScoreBufferMonths(%v) = %d, want %d", c.months, got, c.want)
		}
	}
}

func TestScoringModel_Validate(t *testing.T) {
	if err := DefaultScoringModel().Validate(); err != nil {
		t.Fatalf("default model should be valid: %v", err)
	}

	unbalanced := DefaultScoringModel()
	unbalanced.Weights.Debt = 0.3
	if err := unbalanced.Validate(); err == nil {
		t.Errorf("expected error for weights summing to 1.1")
	}

	negative := DefaultScoringModel()
	negative.Weights = Weights{Expense: 1.2, Buffer: -0.2, Debt: 0}
	if err := negative.Validate(); err == nil {
		t.Errorf("expected error for negative weight")
	}

	unordered := DefaultScoringModel()
	unordered.RiskBands = []RiskBand{{Max: 69, Level: domain.RiskModerate}, {Max: 39, Level: domain.RiskLow}}
	if err := unordered.Validate(); err == nil {
		t.Errorf("expected error for descending risk bands")
	}
}

func TestScoringModel_RiskLevelFor(t *testing.T) {
	model := DefaultScoringModel()

	cases := map[int]domain.RiskLevel{
		0:   domain.RiskLow,
		39:  domain.RiskLow,
		40:  domain.RiskModerate,
		69:  domain.RiskModerate,
		70:  domain.RiskHigh,
		100: domain.RiskHigh,
	}
	for score, want := range cases {
		if got := model.RiskLevelFor(score); got != want {
			t.Errorf("RiskLevelFor(%d) = %s, want %s", score, got, want)
		}
	}

	// Scores past the last band default to the highest tier.
	short := ScoringModel{RiskBands: []RiskBand{{Max: 50, Level: domain.RiskLow}}}
	if got := short.RiskLevelFor(80); got != domain.RiskHigh {
		t.Errorf("RiskLevelFor past last band = %s, want High", got)
	}
}
