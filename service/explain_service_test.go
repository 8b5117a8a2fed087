package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stress-advisor/domain"
)

type stubGenerator struct {
	text   string
	err    error
	prompt string
	block  bool
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	if g.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return g.text, g.err
}

type recordedOutcome struct {
	explainType string
	outcome     string
}

type fakeRecorder struct {
	mu       sync.Mutex
	outcomes []recordedOutcome
}

func (r *fakeRecorder) RecordExplain(explainType, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, recordedOutcome{explainType, outcome})
}

var stressFacts = map[string]any{
	"stressScore":     72,
	"pressureSources": []string{"Rent", "Food"},
}

func newTestExplainService(gen TextGenerator) (*ExplainService, *logtest.Hook, *fakeRecorder) {
	logger, hook := logtest.NewNullLogger()
	rec := &fakeRecorder{}
	return NewExplainService(gen, 200*time.Millisecond, "RM", logger, rec), hook, rec
}

func TestExplain_NoGeneratorUsesFallback(t *testing.T) {
	svc, hook, rec := newTestExplainService(nil)

	resp := svc.Explain(context.Background(), domain.ExplainStress, stressFacts)

	assert.Equal(t, FallbackExplain(domain.ExplainStress, stressFacts, "RM"), resp)
	assert.Empty(t, hook.AllEntries())
	assert.Equal(t, []recordedOutcome{{domain.ExplainStress, OutcomeNoCredentials}}, rec.outcomes)
}

func TestExplain_LiveResponse(t *testing.T) {
	gen := &stubGenerator{text: "Sure! ```json\n" +
		`{"headline":"Rent dominates","reason":"Rent is 44% of spending.","tradeoff":"Moving costs money.","confidence":87.6}` +
		"\n```"}
	svc, hook, rec := newTestExplainService(gen)

	resp := svc.Explain(context.Background(), domain.ExplainStress, stressFacts)

	assert.Equal(t, domain.ExplainResponse{
		Headline:   "Rent dominates",
		Reason:     "Rent is 44% of spending.",
		Tradeoff:   "Moving costs money.",
		Confidence: 88,
	}, resp)
	assert.Empty(t, hook.AllEntries())
	assert.Equal(t, []recordedOutcome{{domain.ExplainStress, OutcomeLive}}, rec.outcomes)

	assert.Contains(t, gen.prompt, "TYPE: stress")
	assert.Contains(t, gen.prompt, `{"pressureSources":["Rent","Food"],"stressScore":72}`)
	assert.Contains(t, gen.prompt, "Return ONLY valid JSON")
	assert.Contains(t, gen.prompt, "No advice to invest in or buy specific financial products")
}

func TestExplain_GeneratorErrorFallsBack(t *testing.T) {
	gen := &stubGenerator{err: errors.New("connection refused")}
	svc, hook, rec := newTestExplainService(gen)

	resp := svc.Explain(context.Background(), domain.ExplainScenario, map[string]any{"deltaStressScore": 4})

	assert.Equal(t, "Stress increases by 4", resp.Headline)
	assert.Equal(t, 60, resp.Confidence)

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, OutcomeRequestError, entry.Data["outcome"])
	assert.Equal(t, []recordedOutcome{{domain.ExplainScenario, OutcomeRequestError}}, rec.outcomes)
}

func TestExplain_TimeoutFallsBack(t *testing.T) {
	gen := &stubGenerator{block: true}
	svc, _, _ := newTestExplainService(gen)

	start := time.Now()
	resp := svc.Explain(context.Background(), domain.ExplainOptimize, nil)

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 55, resp.Confidence)
}

func TestExplain_InvalidResponsesFallBack(t *testing.T) {
	cases := map[string]string{
		"no braces":          "I cannot help with that.",
		"broken json":        `{"headline": "x", "reason": }`,
		"missing tradeoff":   `{"headline":"h","reason":"r","confidence":50}`,
		"string confidence":  `{"headline":"h","reason":"r","tradeoff":"t","confidence":"high"}`,
		"numeric headline":   `{"headline":1,"reason":"r","tradeoff":"t","confidence":50}`,
		"array not object":   `[{"headline":"h"}]`,
		"closing before open": "} then {",
	}

	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			svc, _, rec := newTestExplainService(&stubGenerator{text: text})

			resp := svc.Explain(context.Background(), domain.ExplainStress, stressFacts)

			assert.Equal(t, FallbackExplain(domain.ExplainStress, stressFacts, "RM"), resp)
			assert.Equal(t, []recordedOutcome{{domain.ExplainStress, OutcomeInvalidResponse}}, rec.outcomes)
		})
	}
}

func TestExplain_UnencodableFactsFallBack(t *testing.T) {
	gen := &stubGenerator{text: `{"headline":"h","reason":"r","tradeoff":"t","confidence":50}`}
	svc, _, rec := newTestExplainService(gen)

	resp := svc.Explain(context.Background(), domain.ExplainStress, map[string]any{"bad": make(chan int)})

	assert.Equal(t, 60, resp.Confidence)
	assert.Empty(t, gen.prompt)
	assert.Equal(t, []recordedOutcome{{domain.ExplainStress, OutcomePromptError}}, rec.outcomes)
}

func TestExplain_UnknownTypeRecordedAsOther(t *testing.T) {
	svc, _, rec := newTestExplainService(nil)

	svc.Explain(context.Background(), "budget", nil)

	assert.Equal(t, []recordedOutcome{{"other", OutcomeNoCredentials}}, rec.outcomes)
}

func TestParseExplanation_ClampsConfidence(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"150", 100},
		{"-3", 0},
		{"49.5", 50},
		{"49.4", 49},
		{"0", 0},
		{"100", 100},
		{"1e9", 100},
	}

	for _, c := range cases {
		resp, err := ParseExplanation(`{"headline":"h","reason":"r","tradeoff":"t","confidence":` + c.raw + `}`)
		require.NoError(t, err)
		assert.Equal(t, c.want, resp.Confidence, "confidence %s", c.raw)
	}
}

func TestParseExplanation_IgnoresExtraKeys(t *testing.T) {
	resp, err := ParseExplanation(`prefix {"headline":"h","reason":"r","tradeoff":"t","confidence":70,"extra":true} suffix`)

	require.NoError(t, err)
	assert.Equal(t, domain.ExplainResponse{Headline: "h", Reason: "r", Tradeoff: "t", Confidence: 70}, resp)
}

func TestExplain_ConcurrentCallsAreIndependent(t *testing.T) {
	svc, _, rec := newTestExplainService(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			resp := svc.Explain(context.Background(), domain.ExplainStress, map[string]any{"stressScore": score})
			assert.Equal(t, FallbackExplain(domain.ExplainStress, map[string]any{"stressScore": score}, "RM"), resp)
		}(i)
	}
	wg.Wait()

	assert.Len(t, rec.outcomes, 20)
}
