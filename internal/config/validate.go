package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateGuessAPI(); err != nil {
		return err
	}
	if err := c.validateHashing(); err != nil {
		return err
	}
	if err := c.validateIdentification(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		return errors.New("paths.cache_dir must be set")
	}
	return nil
}

func (c *Config) validateGuessAPI() error {
	if !strings.HasPrefix(c.GuessAPI.BaseURL, "http://") && !strings.HasPrefix(c.GuessAPI.BaseURL, "https://") {
		return fmt.Errorf("guess_api.base_url must be an http(s) URL, got %q", c.GuessAPI.BaseURL)
	}
	return nil
}

func (c *Config) validateHashing() error {
	if c.Hashing.Attempts > 10 {
		return errors.New("hashing.attempts must be 10 or fewer")
	}
	return nil
}

func (c *Config) validateIdentification() error {
	if c.Identification.RetryAttempts > 10 {
		return errors.New("identification.retry_attempts must be 10 or fewer")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
