// Package config loads, normalizes, and validates the TOML configuration
// that drives the identification pipeline: cache location, guess API
// connection settings, hashing limits, retry policy, and logging.
package config
