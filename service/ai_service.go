package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultGeminiModel   = "gemini-1.5-flash"
	defaultOpenAIBaseURL = "https://api.openai.com"
	defaultOpenAIModel   = "gpt-4o-mini"

	generationTemperature = 0.2
	openAIMaxTokens       = 300
)

// TextGenerator sends a prompt to a text-generation service and returns the
// primary text of its reply.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMConfig selects and configures the text-generation provider.
type LLMConfig struct {
	Provider string        `toml:"provider"`
	APIKey   string        `toml:"api_key,omitempty"`
	Model    string        `toml:"model"`
	BaseURL  string        `toml:"base_url"`
	Timeout  time.Duration `toml:"timeout"`
}

// NewTextGenerator returns the configured client, or nil when no API key is
// set. A nil generator makes the explainer answer from the fallback only.
func NewTextGenerator(cfg LLMConfig) (TextGenerator, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultLLMTimeout
	}
	httpClient := &http.Client{Timeout: timeout}

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGemini:
		return &GeminiClient{
			apiKey:     cfg.APIKey,
			baseURL:    orDefault(cfg.BaseURL, defaultGeminiBaseURL),
			model:      orDefault(cfg.Model, defaultGeminiModel),
			httpClient: httpClient,
		}, nil
	case ProviderOpenAI:
		return &OpenAIClient{
			apiKey:     cfg.APIKey,
			baseURL:    orDefault(cfg.BaseURL, defaultOpenAIBaseURL),
			model:      orDefault(cfg.Model, defaultOpenAIModel),
			httpClient: httpClient,
		}, nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return strings.TrimRight(v, "/")
}

// GeminiClient calls the Gemini generateContent endpoint.
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	}
	reqBody.GenerationConfig.Temperature = generationTemperature

	// The key travels in a header so it never shows up in logged URLs.
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	headers := map[string]string{"x-goog-api-key": c.apiKey}

	var out geminiResponse
	if err := postJSON(ctx, c.httpClient, endpoint, headers, reqBody, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// OpenAIClient calls the chat completions endpoint.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

type OpenAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   openAIMaxTokens,
		Temperature: generationTemperature,
	}

	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	var out OpenAIResponse
	if err := postJSON(ctx, c.httpClient, c.baseURL+"/v1/chat/completions", headers, reqBody, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no response from AI")
	}
	return out.Choices[0].Message.Content, nil
}

func postJSON(
	ctx context.Context,
	client *http.Client,
	endpoint string,
	headers map[string]string,
	in any,
	out any,
) error {
	jsonData, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, MaxLLMResponseBytes)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(msg))
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
