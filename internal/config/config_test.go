package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("RESEARCHBOT_MODEL", "")
	t.Setenv("RESEARCHBOT_MAX_ITERATIONS", "")

	cfg := New(t.TempDir())
	if cfg.Model != DefaultModel {
		t.Errorf("expected default model, got %q", cfg.Model)
	}
	if cfg.MaxIterations != DefaultMaxIterations {
		t.Errorf("expected default max iterations, got %d", cfg.MaxIterations)
	}
	if cfg.MaxSearchResults != DefaultMaxSearchResults {
		t.Errorf("expected default max search results, got %d", cfg.MaxSearchResults)
	}
	if cfg.SearchProvider != "duckduckgo" {
		t.Errorf("expected duckduckgo provider, got %q", cfg.SearchProvider)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("RESEARCHBOT_MODEL", "openai/gpt-4o")
	t.Setenv("RESEARCHBOT_MAX_ITERATIONS", "15")
	t.Setenv("RESEARCHBOT_TEMPERATURE", "0.2")

	cfg := New(t.TempDir())
	if cfg.Model != "openai/gpt-4o" {
		t.Errorf("model env override ignored: %q", cfg.Model)
	}
	if cfg.MaxIterations != 15 {
		t.Errorf("iterations env override ignored: %d", cfg.MaxIterations)
	}
	if cfg.Temperature != 0.2 {
		t.Errorf("temperature env override ignored: %v", cfg.Temperature)
	}
}

func TestConfigFileOverridesEnv(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("RESEARCHBOT_MODEL", "env-model")

	dir := t.TempDir()
	data := []byte(`{"model": "file-model", "max_iterations": 3}`)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := New(dir)
	if cfg.Model != "file-model" {
		t.Errorf("config file must override env, got %q", cfg.Model)
	}
	if cfg.MaxIterations != 3 {
		t.Errorf("config file max_iterations ignored: %d", cfg.MaxIterations)
	}
}

func TestValidateMissingKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")

	cfg := New(t.TempDir())
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for missing API key")
	}
}

func TestDBDisabled(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("RESEARCHBOT_DB", "")

	cfg := New(t.TempDir())
	if cfg.DBPath != "" {
		t.Errorf("empty RESEARCHBOT_DB must disable persistence, got %q", cfg.DBPath)
	}
}
