package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	CacheDir string `toml:"cache_dir"`
	LogDir   string `toml:"log_dir"`
}

// GuessAPI contains connection settings for the remote movie-guess service.
type GuessAPI struct {
	BaseURL          string `toml:"base_url"`
	APIKey           string `toml:"api_key"`
	UserAgent        string `toml:"user_agent"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
	RateLimitMillis  int    `toml:"rate_limit_ms"`
	GuessTTLHours    int    `toml:"guess_ttl_hours"`
	FeaturesTTLHours int    `toml:"features_ttl_hours"`
	NegativeTTLHours int    `toml:"negative_ttl_hours"`
}

// Hashing contains limits for content hashing of large files.
type Hashing struct {
	Attempts       int `toml:"attempts"`
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Identification contains retry policy for remote identification.
type Identification struct {
	RetryAttempts int `toml:"retry_attempts"`
	RetryBaseMS   int `toml:"retry_base_ms"`
}

// Cache contains tuning for the persistent lookup cache.
type Cache struct {
	Compression         bool `toml:"compression"`
	CompressionMinBytes int  `toml:"compression_min_bytes"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Paths          Paths          `toml:"paths"`
	GuessAPI       GuessAPI       `toml:"guess_api"`
	Hashing        Hashing        `toml:"hashing"`
	Identification Identification `toml:"identification"`
	Cache          Cache          `toml:"cache"`
	Logging        Logging        `toml:"logging"`
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a file was found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("submatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// DefaultConfigPath returns the expanded default config file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// EnsureDirectories creates the directories the pipeline needs at runtime.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.CacheDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// GuessTimeout returns the per-request timeout for the guess API.
func (c *Config) GuessTimeout() time.Duration {
	return time.Duration(c.GuessAPI.TimeoutSeconds) * time.Second
}

// RateLimitWindow returns the minimum interval between guess API calls.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.GuessAPI.RateLimitMillis) * time.Millisecond
}

// GuessTTL returns the cache lifetime for filename guesses.
func (c *Config) GuessTTL() time.Duration {
	return time.Duration(c.GuessAPI.GuessTTLHours) * time.Hour
}

// FeaturesTTL returns the cache lifetime for feature-set lookups.
func (c *Config) FeaturesTTL() time.Duration {
	return time.Duration(c.GuessAPI.FeaturesTTLHours) * time.Hour
}

// NegativeTTL returns the cache lifetime for "no result" outcomes.
func (c *Config) NegativeTTL() time.Duration {
	return time.Duration(c.GuessAPI.NegativeTTLHours) * time.Hour
}

// HashTimeout returns the per-attempt timeout for content hashing.
func (c *Config) HashTimeout() time.Duration {
	return time.Duration(c.Hashing.TimeoutSeconds) * time.Second
}

// RetryBase returns the backoff base for identification retries.
func (c *Config) RetryBase() time.Duration {
	return time.Duration(c.Identification.RetryBaseMS) * time.Millisecond
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
