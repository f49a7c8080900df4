package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultsNormalize(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if !filepath.IsAbs(cfg.Paths.CacheDir) {
		t.Errorf("cache dir should be absolute after normalize, got %q", cfg.Paths.CacheDir)
	}
	if cfg.GuessTimeout() != 10*time.Second {
		t.Errorf("unexpected guess timeout: %v", cfg.GuessTimeout())
	}
	if cfg.RateLimitWindow() != time.Second {
		t.Errorf("unexpected rate limit window: %v", cfg.RateLimitWindow())
	}
	if cfg.GuessTTL() != 72*time.Hour {
		t.Errorf("unexpected guess TTL: %v", cfg.GuessTTL())
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Error("missing file should report exists=false")
	}
	if resolved != path {
		t.Errorf("resolved path mismatch: got %q, want %q", resolved, path)
	}
	if cfg.Hashing.Attempts != defaultHashAttempts {
		t.Errorf("expected default hash attempts, got %d", cfg.Hashing.Attempts)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`cache_dir = "` + filepath.Join(dir, "cache") + `"`,
		"",
		"[guess_api]",
		`base_url = "https://example.test/v1/"`,
		"rate_limit_ms = 250",
		"",
		"[logging]",
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.GuessAPI.BaseURL != "https://example.test/v1" {
		t.Errorf("base URL should be trimmed of trailing slash, got %q", cfg.GuessAPI.BaseURL)
	}
	if cfg.RateLimitWindow() != 250*time.Millisecond {
		t.Errorf("unexpected rate window: %v", cfg.RateLimitWindow())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("unexpected log level: %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadFormat(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for bad log format")
	}
}

func TestValidateRejectsBadBaseURL(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	cfg.GuessAPI.BaseURL = "ftp://example.test"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for non-http base URL")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[guess_api]") {
		t.Error("sample config missing guess_api section")
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/x")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "x") {
		t.Errorf("ExpandPath(~/x) = %q", got)
	}
}
