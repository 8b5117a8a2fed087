package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"stress-advisor/domain"
)

const (
	scenarioConfidence = 60
	stressConfidence   = 60
	genericConfidence  = 55
)

// FallbackExplain builds the templated explanation used whenever the
// text-generation service is unavailable. It depends only on its arguments.
func FallbackExplain(explainType string, facts map[string]any, currencyPrefix string) domain.ExplainResponse {
	switch explainType {
	case domain.ExplainScenario:
		ds := numberFact(facts, "deltaStressScore", 0)
		dm := numberFact(facts, "deltaMonthlyBalance", 0)
		sm := numberFact(facts, "survivalMonths", SurvivalMonthsSentinel)

		headline := fmt.Sprintf("Stress changes by %s", formatNumber(ds))
		if ds > 0 {
			headline = fmt.Sprintf("Stress increases by %s", formatNumber(ds))
		}
		tradeoff := fmt.Sprintf("Estimated survival: %s months if income stops.", formatNumber(sm))
		if sm == SurvivalMonthsSentinel {
			tradeoff = "Cashflow is non-negative in this scenario."
		}
		return domain.ExplainResponse{
			Headline:   headline,
			Reason:     fmt.Sprintf("Monthly balance changes by %s%s.", currencyPrefix, formatNumber(dm)),
			Tradeoff:   tradeoff,
			Confidence: scenarioConfidence,
		}

	case domain.ExplainStress:
		score := numberFact(facts, "stressScore", 0)
		sources := "key expenses"
		if names := listFact(facts, "pressureSources"); len(names) > 0 {
			sources = strings.Join(names, " + ")
		}
		return domain.ExplainResponse{
			Headline:   fmt.Sprintf("Stress score is %s", formatNumber(score)),
			Reason:     fmt.Sprintf("Main pressure comes from %s.", sources),
			Tradeoff:   "Reducing top pressure categories improves score fastest.",
			Confidence: stressConfidence,
		}
	}

	return domain.ExplainResponse{
		Headline:   "Recommendation summary",
		Reason:     "Based on your spending pattern and constraints.",
		Tradeoff:   "Higher savings usually requires reducing discretionary spending.",
		Confidence: genericConfidence,
	}
}

// numberFact reads a numeric fact. Missing or non-numeric values yield def.
func numberFact(facts map[string]any, key string, def float64) float64 {
	switch v := facts[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	}
	return def
}

func listFact(facts map[string]any, key string) []string {
	switch v := facts[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}

// formatNumber prints integers without a decimal point and keeps the
// shortest exact form for everything else.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
