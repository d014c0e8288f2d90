package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPPort != "8000" {
		t.Errorf("expected default port 8000, got %q", cfg.HTTPPort)
	}
	if cfg.ModelPath != "model/model.json" {
		t.Errorf("unexpected default model path %q", cfg.ModelPath)
	}
	if cfg.RateLimit != 10 {
		t.Errorf("expected default rate limit 10, got %d", cfg.RateLimit)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected default log format json, got %q", cfg.LogFormat)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RATE_LIMIT", "25")
	t.Setenv("MODEL_PATH", "/tmp/model.json")

	cfg := Load()
	if cfg.HTTPPort != "9090" {
		t.Errorf("expected port from env, got %q", cfg.HTTPPort)
	}
	if cfg.RateLimit != 25 {
		t.Errorf("expected rate limit from env, got %d", cfg.RateLimit)
	}
	if cfg.ModelPath != "/tmp/model.json" {
		t.Errorf("expected model path from env, got %q", cfg.ModelPath)
	}
}

func TestGetEnvIntRejectsGarbage(t *testing.T) {
	t.Setenv("RATE_LIMIT", "lots")

	if cfg := Load(); cfg.RateLimit != 10 {
		t.Errorf("non-numeric value should fall back to default, got %d", cfg.RateLimit)
	}
}

func TestHTTPAddress(t *testing.T) {
	cfg := &Config{HTTPPort: "8000"}
	if cfg.HTTPAddress() != ":8000" {
		t.Errorf("unexpected address %q", cfg.HTTPAddress())
	}
}
