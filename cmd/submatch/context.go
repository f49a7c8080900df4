package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"submatch/internal/cache"
	"submatch/internal/config"
	"submatch/internal/hashing"
	"submatch/internal/identify"
	"submatch/internal/identify/episodedetect"
	"submatch/internal/identify/guessapi"
	"submatch/internal/logging"
	"submatch/internal/request"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the process logger. Output goes to stderr so tables
// and JSON on stdout stay machine-readable.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		level := cfg.Logging.Level
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			level = strings.TrimSpace(*c.logLevelFlag)
		}
		logger, err := logging.New(logging.Options{
			Level:       level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{"stderr"},
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// openStore opens the persistent cache. The returned closer releases the
// cache directory lock and must run before the process exits.
func (c *commandContext) openStore() (*cache.Store, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	kv, err := cache.OpenSQLite(cfg.Paths.CacheDir)
	if err != nil {
		return nil, nil, err
	}
	codec, err := cache.NewCodec(cfg.Cache.Compression, cfg.Cache.CompressionMinBytes)
	if err != nil {
		_ = kv.Close()
		return nil, nil, err
	}
	store := cache.NewStore(kv, logger, cache.WithCodec(codec))
	return store, func() { _ = kv.Close() }, nil
}

// newIdentifier wires the full identification stack over store.
func (c *commandContext) newIdentifier(store *cache.Store) (*identify.Coordinator, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.GuessAPI.APIKey) == "" {
		return nil, fmt.Errorf("guess_api.api_key is not configured; set it in the config file or via SUBMATCH_API_KEY")
	}
	client, err := guessapi.New(cfg.GuessAPI.APIKey, cfg.GuessAPI.BaseURL, cfg.GuessAPI.UserAgent,
		guessapi.WithHTTPClient(&http.Client{Timeout: cfg.GuessTimeout()}))
	if err != nil {
		return nil, fmt.Errorf("create guess api client: %w", err)
	}

	resolver := request.NewCoordinator(store, logger)
	settings := identify.Settings{
		GuessOptions: request.Options{
			Endpoint:    "guess",
			Window:      cfg.RateLimitWindow(),
			TTL:         cfg.GuessTTL(),
			NegativeTTL: cfg.NegativeTTL(),
		},
		FeaturesOptions: request.Options{
			Endpoint:    "features",
			Window:      cfg.RateLimitWindow(),
			TTL:         cfg.FeaturesTTL(),
			NegativeTTL: cfg.NegativeTTL(),
		},
		Retry: request.RetryPolicy{
			Attempts: cfg.Identification.RetryAttempts,
			Base:     cfg.RetryBase(),
		},
	}
	return identify.NewCoordinator(resolver, client, episodedetect.New(), settings, logger), nil
}

func (c *commandContext) hashRetryOptions() hashing.RetryOptions {
	cfg, err := c.ensureConfig()
	if err != nil {
		return hashing.RetryOptions{}
	}
	return hashing.RetryOptions{
		Attempts: cfg.Hashing.Attempts,
		Timeout:  cfg.HashTimeout(),
	}
}
