package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stress-advisor/domain"
	"stress-advisor/service"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, service.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, service.DefaultLLMTimeout, cfg.LLM.Timeout)
	assert.Equal(t, "RM", cfg.CurrencyPrefix)
	assert.Equal(t, service.DefaultScoringModel(), cfg.Scoring)
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
currency_prefix = "$"

[server]
port = "9000"

[llm]
provider = "openai"
timeout = "3s"

[rate_limit]
capacity = 5
window = "30s"

[scoring.weights]
expense = 0.5
buffer = 0.3
debt = 0.2

[[scoring.risk_bands]]
max = 49
level = "Low"

[[scoring.risk_bands]]
max = 100
level = "High"
`)
	t.Setenv("PORT", "9100")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("RATE_LIMIT_CAPACITY", "7")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "$", cfg.CurrencyPrefix)
	assert.Equal(t, service.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-env", cfg.LLM.APIKey)
	assert.Equal(t, 3*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 7, cfg.RateLimit.Capacity)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, service.Weights{Expense: 0.5, Buffer: 0.3, Debt: 0.2}, cfg.Scoring.Weights)
	assert.Equal(t, []service.RiskBand{
		{Max: 49, Level: domain.RiskLow},
		{Max: 100, Level: domain.RiskHigh},
	}, cfg.Scoring.RiskBands)
}

func TestLoad_RejectsBadWeights(t *testing.T) {
	path := writeConfig(t, `
[scoring.weights]
expense = 0.9
buffer = 0.9
debt = 0.9
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "scoring")
}

func TestLoad_RejectsBadEnv(t *testing.T) {
	t.Setenv("LLM_TIMEOUT", "soon")

	_, err := Load("")

	assert.Error(t, err)
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "Mystery")

	_, err := Load("")

	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "[server\nport = ")

	_, err := Load(path)

	assert.Error(t, err)
}
