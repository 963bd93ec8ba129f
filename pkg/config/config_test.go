package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("expected openai provider, got %q", cfg.Provider)
	}
	if !cfg.KeepHistory {
		t.Fatal("expected history to persist across turns by default")
	}
	if cfg.MaxSteps != 0 {
		t.Fatalf("expected unbounded steps by default, got %d", cfg.MaxSteps)
	}
	if cfg.Temperature != 0 {
		t.Fatalf("expected temperature 0, got %v", cfg.Temperature)
	}
}

func TestNormalizeAppliesProviderModel(t *testing.T) {
	cfg := Normalize(Config{Provider: " Anthropic ", APIKey: " key "})
	if cfg.Provider != ProviderAnthropic {
		t.Fatalf("unexpected provider: %q", cfg.Provider)
	}
	if cfg.Model != DefaultAnthropicModel {
		t.Fatalf("unexpected model: %q", cfg.Model)
	}
	if cfg.APIKey != "key" {
		t.Fatalf("expected trimmed key, got %q", cfg.APIKey)
	}

	cfg = Normalize(Config{})
	if cfg.Provider != ProviderOpenAI || cfg.Model != DefaultOpenAIModel {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestNormalizeClampsNegatives(t *testing.T) {
	cfg := Normalize(Config{MaxSteps: -3, TypingDelay: -time.Second, Temperature: -1})
	if cfg.MaxSteps != 0 || cfg.TypingDelay != 0 || cfg.Temperature != 0 {
		t.Fatalf("expected clamped values, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := Normalize(DefaultConfig())
	base.APIKey = "test-key"
	if err := Validate(base); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	missingKey := base
	missingKey.APIKey = ""
	if err := Validate(missingKey); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}

	unknown := base
	unknown.Provider = "gemini"
	if err := Validate(unknown); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}

	noModel := base
	noModel.Model = ""
	if err := Validate(noModel); !errors.Is(err, ErrMissingModel) {
		t.Fatalf("expected ErrMissingModel, got %v", err)
	}

	noTokens := base
	noTokens.MaxTokens = 0
	if err := Validate(noTokens); !errors.Is(err, ErrInvalidMaxTokens) {
		t.Fatalf("expected ErrInvalidMaxTokens, got %v", err)
	}
}

func TestProviderEnvNames(t *testing.T) {
	if APIKeyEnv("openai") != "OPENAI_API_KEY" || APIKeyEnv("ANTHROPIC") != "ANTHROPIC_API_KEY" {
		t.Fatal("unexpected API key env names")
	}
	if BaseURLEnv("anthropic") != "ANTHROPIC_BASE_URL" || ModelEnv("openai") != "OPENAI_MODEL" {
		t.Fatal("unexpected base url/model env names")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tool-chat.yaml")
	content := `provider: anthropic
max-steps: 8
keep-history: false
typing-delay: 20ms
tags:
  - a
  - b
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	data, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	checks := map[string]string{
		"provider":     "anthropic",
		"max-steps":    "8",
		"keep-history": "false",
		"typing-delay": "20ms",
		"tags":         "a,b",
	}
	for key, want := range checks {
		got, ok := Lookup(data, key)
		if !ok || got != want {
			t.Fatalf("Lookup(%q) = %q, %v; want %q", key, got, ok, want)
		}
	}
	if _, ok := Lookup(data, "model"); ok {
		t.Fatal("expected missing key to report false")
	}
}

func TestLoadFileEmptyPathAndErrors(t *testing.T) {
	data, err := LoadFile("  ")
	if err != nil || len(data) != 0 {
		t.Fatalf("expected empty map for empty path, got %v, %v", data, err)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("provider: [unclosed"), 0o644); err != nil {
		t.Fatalf("write bad config: %v", err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Fatal("expected parse error")
	}
}
