package request

import (
	"context"
	"time"

	"github.com/avast/retry-go"

	"submatch/internal/mediaerr"
)

// RetryPolicy bounds ResolveWithRetry.
type RetryPolicy struct {
	// Attempts is the total number of tries. Zero means 3.
	Attempts int
	// Base is the first backoff delay; each retry doubles it. Zero means 1s.
	Base time.Duration
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.Attempts <= 0 {
		p.Attempts = 3
	}
	if p.Base <= 0 {
		p.Base = time.Second
	}
	return p
}

// ResolveWithRetry wraps Resolve in exponential backoff for the
// identification flows that explicitly request resilience. Only retryable
// failures (network, protocol, rate limit, IO) re-attempt; the final error
// is the last cause.
func (c *Coordinator) ResolveWithRetry(ctx context.Context, key string, producer Producer, opts Options, policy RetryPolicy) (string, bool, error) {
	policy = policy.withDefaults()

	var value string
	var found bool
	err := retry.Do(
		func() error {
			var resolveErr error
			value, found, resolveErr = c.Resolve(ctx, key, producer, opts)
			return resolveErr
		},
		retry.Attempts(uint(policy.Attempts)),
		retry.Delay(policy.Base),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.RetryIf(mediaerr.Retryable),
	)
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}
