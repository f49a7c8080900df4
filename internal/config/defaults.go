package config

const (
	defaultConfigPath          = "~/.config/submatch/config.toml"
	defaultCacheDir            = "~/.local/share/submatch/cache"
	defaultLogDir              = "~/.local/share/submatch/logs"
	defaultGuessBaseURL        = "https://api.opensubtitles.com/api/v1"
	defaultGuessUserAgent      = "submatch/dev"
	defaultGuessTimeoutSeconds = 10
	defaultRateLimitMillis     = 1000
	defaultGuessTTLHours       = 72
	defaultFeaturesTTLHours    = 168
	defaultNegativeTTLHours    = 24
	defaultHashAttempts        = 3
	defaultHashTimeoutSeconds  = 30
	defaultRetryAttempts       = 3
	defaultRetryBaseMS         = 1000
	defaultCompressionMinBytes = 512
	defaultLogLevel            = "info"
	defaultLogFormat           = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
		},
		GuessAPI: GuessAPI{
			BaseURL:          defaultGuessBaseURL,
			UserAgent:        defaultGuessUserAgent,
			TimeoutSeconds:   defaultGuessTimeoutSeconds,
			RateLimitMillis:  defaultRateLimitMillis,
			GuessTTLHours:    defaultGuessTTLHours,
			FeaturesTTLHours: defaultFeaturesTTLHours,
			NegativeTTLHours: defaultNegativeTTLHours,
		},
		Hashing: Hashing{
			Attempts:       defaultHashAttempts,
			TimeoutSeconds: defaultHashTimeoutSeconds,
		},
		Identification: Identification{
			RetryAttempts: defaultRetryAttempts,
			RetryBaseMS:   defaultRetryBaseMS,
		},
		Cache: Cache{
			Compression:         true,
			CompressionMinBytes: defaultCompressionMinBytes,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
