package remote_test

import (
	"testing"

	"github.com/csattler/tessera/internal/ocr/remote"
)

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := remote.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"base_url", cfg.BaseURL, "https://api.openai.com/v1"},
		{"model", cfg.Model, "gpt-4o-mini"},
		{"timeout", cfg.Timeout, 120},
		{"max_attempts", cfg.MaxAttempts, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestConfigFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_REMOTE_BASE_URL", "https://proxy.internal/v1")
	t.Setenv("TEST_REMOTE_MODEL", "gpt-4o")
	t.Setenv("TEST_REMOTE_TOKEN", "secret")
	t.Setenv("TEST_REMOTE_TIMEOUT", "60")
	t.Setenv("TEST_REMOTE_MAX_ATTEMPTS", "5")

	cfg := remote.Config{}
	err := cfg.Finalize(&remote.Env{
		BaseURL:     "TEST_REMOTE_BASE_URL",
		Model:       "TEST_REMOTE_MODEL",
		Token:       "TEST_REMOTE_TOKEN",
		Timeout:     "TEST_REMOTE_TIMEOUT",
		MaxAttempts: "TEST_REMOTE_MAX_ATTEMPTS",
	})
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.BaseURL != "https://proxy.internal/v1" {
		t.Errorf("base_url: got %s", cfg.BaseURL)
	}
	if cfg.Model != "gpt-4o" || cfg.Token != "secret" {
		t.Errorf("model/token: got %s / %s", cfg.Model, cfg.Token)
	}
	if cfg.Timeout != 60 || cfg.MaxAttempts != 5 {
		t.Errorf("timeout/attempts: got %d / %d", cfg.Timeout, cfg.MaxAttempts)
	}
}

func TestConfigMerge(t *testing.T) {
	cfg := remote.Config{BaseURL: "https://a", Model: "m1", Timeout: 30}
	cfg.Merge(&remote.Config{Model: "m2", Token: "tok"})

	if cfg.BaseURL != "https://a" {
		t.Errorf("base_url overwritten: %s", cfg.BaseURL)
	}
	if cfg.Model != "m2" || cfg.Token != "tok" || cfg.Timeout != 30 {
		t.Errorf("merge result: %+v", cfg)
	}
}
