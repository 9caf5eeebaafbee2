package utils

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ChatbotParams holds the tunable knobs for the conversation manager.
// Secrets (API keys, database URLs) never live here; they come from the
// environment through Config.
type ChatbotParams struct {
	Model                 string  `yaml:"model"`
	Temperature           float64 `yaml:"temperature"`
	MaxOutputTokens       int     `yaml:"max_output_tokens"`
	ChatHistoryLimit      int     `yaml:"chat_history_limit"`
	RetryMaxAttempts      int     `yaml:"retry_max_attempts"`
	RetryBackoffMS        int     `yaml:"retry_backoff_ms"`
	RequestTimeoutSeconds int     `yaml:"request_timeout_seconds"`
}

// Params is the root of the params.yaml document
type Params struct {
	Chatbot ChatbotParams `yaml:"chatbot"`
}

// DefaultParams returns the parameter set used when a key is absent from params.yaml
func DefaultParams() *Params {
	return &Params{
		Chatbot: ChatbotParams{
			Model:                 "llama-3.1-8b-instant",
			Temperature:           0.7,
			MaxOutputTokens:       1024,
			ChatHistoryLimit:      5,
			RetryMaxAttempts:      3,
			RetryBackoffMS:        500,
			RequestTimeoutSeconds: 60,
		},
	}
}

// LoadParams reads and parses a params.yaml file, filling absent keys with defaults
func LoadParams(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file: %w", err)
	}

	params := DefaultParams()
	if err := yaml.Unmarshal(data, params); err != nil {
		return nil, fmt.Errorf("failed to parse params file: %w", err)
	}

	// Zero values from explicit empty keys fall back to defaults too
	defaults := DefaultParams().Chatbot
	if params.Chatbot.Model == "" {
		params.Chatbot.Model = defaults.Model
	}
	if params.Chatbot.MaxOutputTokens <= 0 {
		params.Chatbot.MaxOutputTokens = defaults.MaxOutputTokens
	}
	if params.Chatbot.ChatHistoryLimit <= 0 {
		params.Chatbot.ChatHistoryLimit = defaults.ChatHistoryLimit
	}
	if params.Chatbot.RetryMaxAttempts <= 0 {
		params.Chatbot.RetryMaxAttempts = defaults.RetryMaxAttempts
	}
	if params.Chatbot.RetryBackoffMS <= 0 {
		params.Chatbot.RetryBackoffMS = defaults.RetryBackoffMS
	}
	if params.Chatbot.RequestTimeoutSeconds <= 0 {
		params.Chatbot.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}

	return params, nil
}

// RetryBackoffBase returns the base delay for exponential backoff
func (p ChatbotParams) RetryBackoffBase() time.Duration {
	return time.Duration(p.RetryBackoffMS) * time.Millisecond
}

// RequestTimeout returns the per-attempt timeout for model calls
func (p ChatbotParams) RequestTimeout() time.Duration {
	return time.Duration(p.RequestTimeoutSeconds) * time.Second
}
