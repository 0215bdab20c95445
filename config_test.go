package main

import (
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg := configFromEnv(envMap(nil))
	if cfg.Addr != defaultAddr || cfg.OpenAIModel != defaultOpenAIModel ||
		cfg.OpenAIBaseURL != defaultOpenAIBaseURL || cfg.AITimeout != defaultAITimeout {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	cfg := configFromEnv(envMap(map[string]string{
		"ADDR":               ":8080",
		"DB_URL":             "postgres://localhost/energy",
		"OPENAI_BASE_URL":    "https://llm.example.com/",
		"OPENAI_API_KEY":     "sk-test",
		"OPENAI_MODEL":       "small-model",
		"AI_TIMEOUT_SECONDS": "30",
	}))
	if cfg.Addr != ":8080" || cfg.DBURL != "postgres://localhost/energy" {
		t.Errorf("unexpected server config: %+v", cfg)
	}
	if cfg.OpenAIBaseURL != "https://llm.example.com" {
		t.Errorf("trailing slash should be trimmed, got %q", cfg.OpenAIBaseURL)
	}
	if cfg.OpenAIModel != "small-model" || cfg.AITimeout != 30*time.Second {
		t.Errorf("unexpected AI config: %+v", cfg)
	}
}

// TestConfigFromEnv_LegacyDefaultUpgrade verifies an old default base URL with
// no key is replaced, while a configured key keeps whatever URL was chosen.
func TestConfigFromEnv_LegacyDefaultUpgrade(t *testing.T) {
	cfg := configFromEnv(envMap(map[string]string{"OPENAI_BASE_URL": "https://api.openai.com/v1"}))
	if cfg.OpenAIBaseURL != defaultOpenAIBaseURL {
		t.Errorf("legacy URL without key should upgrade, got %q", cfg.OpenAIBaseURL)
	}

	cfg = configFromEnv(envMap(map[string]string{
		"OPENAI_BASE_URL": "https://api.openai.com/v1",
		"OPENAI_API_KEY":  "sk-test",
	}))
	if cfg.OpenAIBaseURL != "https://api.openai.com/v1" {
		t.Errorf("configured key must keep the chosen URL, got %q", cfg.OpenAIBaseURL)
	}
}

func TestConfigFromEnv_InvalidTimeout(t *testing.T) {
	for _, v := range []string{"abc", "0", "-5"} {
		cfg := configFromEnv(envMap(map[string]string{"AI_TIMEOUT_SECONDS": v}))
		if cfg.AITimeout != defaultAITimeout {
			t.Errorf("AI_TIMEOUT_SECONDS=%q: timeout = %v, want default", v, cfg.AITimeout)
		}
	}
}
