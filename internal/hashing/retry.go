package hashing

import (
	"context"
	"errors"
	"time"

	"submatch/internal/mediaerr"
)

// RetryOptions bounds hash attempts over slow storage.
type RetryOptions struct {
	Attempts int
	Timeout  time.Duration
}

func (o RetryOptions) withDefaults() RetryOptions {
	if o.Attempts <= 0 {
		o.Attempts = 3
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return o
}

// WithRetry runs fn up to Attempts times with a per-attempt timeout. Size
// failures abort immediately since retrying cannot grow the file. When all
// attempts fail the returned error carries ErrHashFailed plus the last cause.
func WithRetry(ctx context.Context, opts RetryOptions, fn func(ctx context.Context) (string, error)) (string, error) {
	opts = opts.withDefaults()

	var lastErr error
	for attempt := 1; attempt <= opts.Attempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		value, err := fn(attemptCtx)
		cancel()
		if err == nil {
			return value, nil
		}
		if errors.Is(err, mediaerr.ErrInsufficientSize) {
			return "", err
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", mediaerr.Wrap(mediaerr.ErrHashFailed, "hashing", "retry", "attempts exhausted", lastErr)
}
