package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"

	// NoSystemPrompt disables the system message entirely.
	NoSystemPrompt = "-"
)

var (
	ErrMissingAPIKey    = errors.New("API key is not set")
	ErrMissingModel     = errors.New("model is not set")
	ErrUnknownProvider  = errors.New("unknown provider")
	ErrInvalidMaxTokens = errors.New("max tokens must be positive")
)

// Config holds all runtime configuration for the chat loop.
type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int

	// MaxSteps bounds agent steps per turn; 0 leaves the loop unbounded.
	MaxSteps    int
	KeepHistory bool
	TypingDelay time.Duration
	// SystemPrompt overrides the default persona; NoSystemPrompt sends none.
	SystemPrompt string
	Verbose      bool
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderOpenAI,
		Temperature: 0,
		MaxTokens:   1024,
		MaxSteps:    0,
		KeepHistory: true,
		TypingDelay: 0,
		Verbose:     false,
	}
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider == "" {
		cfg.Provider = ProviderOpenAI
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.SystemPrompt = strings.TrimSpace(cfg.SystemPrompt)

	if cfg.Model == "" {
		switch cfg.Provider {
		case ProviderOpenAI:
			cfg.Model = DefaultOpenAIModel
		case ProviderAnthropic:
			cfg.Model = DefaultAnthropicModel
		}
	}
	if cfg.MaxSteps < 0 {
		cfg.MaxSteps = 0
	}
	if cfg.TypingDelay < 0 {
		cfg.TypingDelay = 0
	}
	if cfg.Temperature < 0 {
		cfg.Temperature = 0
	}
	return cfg
}

// Validate reports configuration that would make the first model call fail.
func Validate(cfg Config) error {
	switch cfg.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("%w for provider %s", ErrMissingAPIKey, cfg.Provider)
	}
	if cfg.Model == "" {
		return ErrMissingModel
	}
	if cfg.MaxTokens <= 0 {
		return ErrInvalidMaxTokens
	}
	return nil
}

// APIKeyEnv names the environment variable holding the credential for provider.
func APIKeyEnv(provider string) string {
	if strings.EqualFold(provider, ProviderAnthropic) {
		return "ANTHROPIC_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// BaseURLEnv names the environment variable holding the endpoint for provider.
func BaseURLEnv(provider string) string {
	if strings.EqualFold(provider, ProviderAnthropic) {
		return "ANTHROPIC_BASE_URL"
	}
	return "OPENAI_BASE_URL"
}

// ModelEnv names the environment variable holding the model for provider.
func ModelEnv(provider string) string {
	if strings.EqualFold(provider, ProviderAnthropic) {
		return "ANTHROPIC_MODEL"
	}
	return "OPENAI_MODEL"
}
