package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"stress-advisor/service"
)

// Config holds application configuration.
type Config struct {
	Server         ServerConfig         `toml:"server"`
	LLM            service.LLMConfig    `toml:"llm"`
	RateLimit      RateLimitConfig      `toml:"rate_limit"`
	Scoring        service.ScoringModel `toml:"scoring"`
	CurrencyPrefix string               `toml:"currency_prefix"`
}

type ServerConfig struct {
	Port     string `toml:"port"`
	LogLevel string `toml:"log_level"`
}

// RateLimitConfig configures per-client request budgets. An empty RedisAddr
// keeps the buckets in process memory.
type RateLimitConfig struct {
	Capacity  int           `toml:"capacity"`
	Window    time.Duration `toml:"window"`
	RedisAddr string        `toml:"redis_addr,omitempty"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:     "8080",
			LogLevel: "info",
		},
		LLM: service.LLMConfig{
			Provider: service.ProviderGemini,
			Timeout:  service.DefaultLLMTimeout,
		},
		RateLimit: RateLimitConfig{
			Capacity: 30,
			Window:   time.Minute,
		},
		Scoring:        service.DefaultScoringModel(),
		CurrencyPrefix: "RM",
	}
}

// Load builds the configuration from defaults, the optional TOML file at path
// and finally environment variables. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config: %w", err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", cfg.Server.LogLevel)
	cfg.CurrencyPrefix = getEnv("CURRENCY_PREFIX", cfg.CurrencyPrefix)

	cfg.LLM.Provider = strings.ToLower(getEnv("LLM_PROVIDER", cfg.LLM.Provider))
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	switch cfg.LLM.Provider {
	case service.ProviderOpenAI:
		cfg.LLM.APIKey = getEnv("OPENAI_API_KEY", cfg.LLM.APIKey)
	default:
		cfg.LLM.APIKey = getEnv("GEMINI_API_KEY", cfg.LLM.APIKey)
	}

	var err error
	if cfg.LLM.Timeout, err = getEnvDuration("LLM_TIMEOUT", cfg.LLM.Timeout); err != nil {
		return err
	}
	if cfg.RateLimit.Window, err = getEnvDuration("RATE_LIMIT_WINDOW", cfg.RateLimit.Window); err != nil {
		return err
	}
	if cfg.RateLimit.Capacity, err = getEnvInt("RATE_LIMIT_CAPACITY", cfg.RateLimit.Capacity); err != nil {
		return err
	}
	cfg.RateLimit.RedisAddr = getEnv("REDIS_ADDR", cfg.RateLimit.RedisAddr)
	return nil
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}
	switch c.LLM.Provider {
	case service.ProviderGemini, service.ProviderOpenAI:
	default:
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q",
			service.ProviderGemini, service.ProviderOpenAI, c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("LLM_TIMEOUT must be positive")
	}
	if c.RateLimit.Capacity <= 0 {
		return errors.New("RATE_LIMIT_CAPACITY must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return errors.New("RATE_LIMIT_WINDOW must be positive")
	}
	if err := c.Scoring.Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
