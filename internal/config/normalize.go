package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeGuessAPI()
	c.normalizeHashing()
	c.normalizeIdentification()
	c.normalizeCache()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeGuessAPI() {
	if c.GuessAPI.APIKey == "" {
		if value, ok := os.LookupEnv("SUBMATCH_API_KEY"); ok {
			c.GuessAPI.APIKey = value
		}
	}
	c.GuessAPI.BaseURL = strings.TrimRight(strings.TrimSpace(c.GuessAPI.BaseURL), "/")
	if c.GuessAPI.BaseURL == "" {
		c.GuessAPI.BaseURL = defaultGuessBaseURL
	}
	c.GuessAPI.UserAgent = strings.TrimSpace(c.GuessAPI.UserAgent)
	if c.GuessAPI.UserAgent == "" {
		c.GuessAPI.UserAgent = defaultGuessUserAgent
	}
	if c.GuessAPI.TimeoutSeconds <= 0 {
		c.GuessAPI.TimeoutSeconds = defaultGuessTimeoutSeconds
	}
	if c.GuessAPI.RateLimitMillis < 0 {
		c.GuessAPI.RateLimitMillis = defaultRateLimitMillis
	}
	if c.GuessAPI.GuessTTLHours <= 0 {
		c.GuessAPI.GuessTTLHours = defaultGuessTTLHours
	}
	if c.GuessAPI.FeaturesTTLHours <= 0 {
		c.GuessAPI.FeaturesTTLHours = defaultFeaturesTTLHours
	}
	if c.GuessAPI.NegativeTTLHours <= 0 {
		c.GuessAPI.NegativeTTLHours = defaultNegativeTTLHours
	}
}

func (c *Config) normalizeHashing() {
	if c.Hashing.Attempts <= 0 {
		c.Hashing.Attempts = defaultHashAttempts
	}
	if c.Hashing.TimeoutSeconds <= 0 {
		c.Hashing.TimeoutSeconds = defaultHashTimeoutSeconds
	}
}

func (c *Config) normalizeIdentification() {
	if c.Identification.RetryAttempts <= 0 {
		c.Identification.RetryAttempts = defaultRetryAttempts
	}
	if c.Identification.RetryBaseMS <= 0 {
		c.Identification.RetryBaseMS = defaultRetryBaseMS
	}
}

func (c *Config) normalizeCache() {
	if c.Cache.CompressionMinBytes <= 0 {
		c.Cache.CompressionMinBytes = defaultCompressionMinBytes
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
