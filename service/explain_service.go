package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"stress-advisor/domain"
)

const systemPrompt = "You are a financial assistant for household cost-of-living planning. " +
	"You explain precomputed figures plainly and never change the numbers you are given."

// Explain outcomes reported to the ExplainRecorder.
const (
	OutcomeLive            = "live"
	OutcomeNoCredentials   = "no_credentials"
	OutcomePromptError     = "prompt_error"
	OutcomeRequestError    = "request_error"
	OutcomeInvalidResponse = "invalid_response"
)

// ExplainRecorder observes how each explanation was produced.
type ExplainRecorder interface {
	RecordExplain(explainType, outcome string)
}

type ExplainService struct {
	generator      TextGenerator
	timeout        time.Duration
	currencyPrefix string
	log            logrus.FieldLogger
	recorder       ExplainRecorder
}

// NewExplainService creates the explainer. A nil generator is valid and means
// every request is answered by FallbackExplain.
func NewExplainService(
	generator TextGenerator,
	timeout time.Duration,
	currencyPrefix string,
	log logrus.FieldLogger,
	recorder ExplainRecorder,
) *ExplainService {
	if timeout <= 0 {
		timeout = DefaultLLMTimeout
	}
	return &ExplainService{
		generator:      generator,
		timeout:        timeout,
		currencyPrefix: currencyPrefix,
		log:            log,
		recorder:       recorder,
	}
}

// Explain returns a natural-language explanation of facts. It never fails:
// any problem with the text-generation service yields the fallback.
func (s *ExplainService) Explain(
	ctx context.Context,
	explainType string,
	facts map[string]any,
) domain.ExplainResponse {
	if s.generator == nil {
		return s.fallback(explainType, facts, OutcomeNoCredentials, nil)
	}

	prompt, err := BuildPrompt(explainType, facts)
	if err != nil {
		return s.fallback(explainType, facts, OutcomePromptError, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return s.fallback(explainType, facts, OutcomeRequestError, err)
	}

	resp, err := ParseExplanation(text)
	if err != nil {
		return s.fallback(explainType, facts, OutcomeInvalidResponse, err)
	}

	s.record(explainType, OutcomeLive)
	return resp
}

func (s *ExplainService) fallback(
	explainType string,
	facts map[string]any,
	outcome string,
	err error,
) domain.ExplainResponse {
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"type":    explainType,
			"outcome": outcome,
		}).WithError(err).Warn("explanation service unavailable, using fallback")
	}
	s.record(explainType, outcome)
	return FallbackExplain(explainType, facts, s.currencyPrefix)
}

func (s *ExplainService) record(explainType, outcome string) {
	if s.recorder == nil {
		return
	}
	switch explainType {
	case domain.ExplainStress, domain.ExplainScenario, domain.ExplainOptimize:
	default:
		explainType = "other"
	}
	s.recorder.RecordExplain(explainType, outcome)
}

// BuildPrompt embeds the explanation type and the verbatim facts.
func BuildPrompt(explainType string, facts map[string]any) (string, error) {
	if facts == nil {
		facts = map[string]any{}
	}
	factsJSON, err := json.Marshal(facts)
	if err != nil {
		return "", fmt.Errorf("encoding facts: %w", err)
	}

	return strings.TrimSpace(fmt.Sprintf(`
You are a financial assistant for household cost-of-living planning.
Return ONLY valid JSON with keys: headline, reason, tradeoff, confidence (0-100).
No markdown. No extra keys. No advice to invest in or buy specific financial products.

TYPE: %s
FACTS (do not change numbers):
%s

Now output JSON only.
`, explainType, factsJSON)), nil
}

var errNoJSONObject = errors.New("no JSON object in response")

// ParseExplanation extracts the text between the first '{' and the last '}'
// and validates it as an ExplainResponse. Confidence is rounded and clamped
// to [0, 100].
func ParseExplanation(text string) (domain.ExplainResponse, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return domain.ExplainResponse{}, errNoJSONObject
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return domain.ExplainResponse{}, fmt.Errorf("parsing explanation: %w", err)
	}

	headline, ok1 := parsed["headline"].(string)
	reason, ok2 := parsed["reason"].(string)
	tradeoff, ok3 := parsed["tradeoff"].(string)
	confidence, ok4 := parsed["confidence"].(float64)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return domain.ExplainResponse{}, errors.New("explanation is missing a field or has a wrong type")
	}

	return domain.ExplainResponse{
		Headline:   headline,
		Reason:     reason,
		Tradeoff:   tradeoff,
		Confidence: clampConfidence(confidence),
	}, nil
}

func clampConfidence(c float64) int {
	return int(clamp(math.Round(c), MinConfidence, MaxConfidence))
}
