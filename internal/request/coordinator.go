package request

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"submatch/internal/cache"
	"submatch/internal/logging"
	"submatch/internal/mediaerr"
)

// negativeMarker is the stored form of a cached "no result" outcome. The
// leading NUL keeps it out of any legitimate JSON payload's value space.
const negativeMarker = "\x00no-result"

// Producer performs the actual lookup. found=false reports an explicit
// "no result", which is cached like a positive answer.
type Producer func(ctx context.Context) (value string, found bool, err error)

// Options describe one logical lookup class.
type Options struct {
	// Endpoint names the rate-limit bucket. Empty disables rate limiting.
	Endpoint string
	// Window is the minimum interval between calls to the endpoint.
	Window time.Duration
	// TTL is the cache lifetime of a positive result.
	TTL time.Duration
	// NegativeTTL is the cache lifetime of a "no result" outcome. Zero
	// falls back to TTL.
	NegativeTTL time.Duration
}

func (o Options) negativeTTL() time.Duration {
	if o.NegativeTTL > 0 {
		return o.NegativeTTL
	}
	return o.TTL
}

type outcome struct {
	value string
	found bool
}

// Coordinator multiplexes lookups over a shared cache. The singleflight
// group is the single source of truth for "is this key already being
// resolved"; membership is checked-and-inserted atomically by Do.
type Coordinator struct {
	store  *cache.Store
	logger *slog.Logger

	flight singleflight.Group

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewCoordinator builds a coordinator over store.
func NewCoordinator(store *cache.Store, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		store:    store,
		logger:   logging.NewComponentLogger(logger, "request"),
		limiters: make(map[string]*rate.Limiter),
	}
}

// Resolve returns the value for key, consulting the cache first, then
// joining any in-flight resolution, then invoking producer. found=false
// means the lookup definitively had no result. Rate-limit rejections fail
// fast with ErrRateLimited; callers that want resilience use
// ResolveWithRetry.
func (c *Coordinator) Resolve(ctx context.Context, key string, producer Producer, opts Options) (string, bool, error) {
	if value, found, ok := c.cached(key); ok {
		return value, found, nil
	}

	result, err, shared := c.flight.Do(key, func() (any, error) {
		// A racing caller may have settled and cached while we queued.
		if value, found, ok := c.cached(key); ok {
			return outcome{value: value, found: found}, nil
		}

		if err := c.reserve(opts); err != nil {
			return nil, err
		}

		value, found, err := producer(ctx)
		if err != nil {
			return nil, err
		}

		if found {
			c.store.Set(key, value, opts.TTL)
		} else {
			c.store.Set(key, negativeMarker, opts.negativeTTL())
		}
		return outcome{value: value, found: found}, nil
	})
	if err != nil {
		return "", false, err
	}
	if shared {
		c.logger.Debug("joined in-flight resolution", logging.String("key", key))
	}
	out := result.(outcome)
	return out.value, out.found, nil
}

// cached reads key from the store, decoding the negative marker. The third
// return reports whether a live entry existed at all.
func (c *Coordinator) cached(key string) (value string, found bool, ok bool) {
	stored, ok := c.store.Get(key)
	if !ok {
		return "", false, false
	}
	if stored == negativeMarker {
		return "", false, true
	}
	return stored, true, true
}

// reserve consumes one rate-limit slot for the endpoint, failing fast when
// the window has not elapsed.
func (c *Coordinator) reserve(opts Options) error {
	if opts.Endpoint == "" || opts.Window <= 0 {
		return nil
	}
	c.mu.Lock()
	limiter, ok := c.limiters[opts.Endpoint]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(opts.Window), 1)
		c.limiters[opts.Endpoint] = limiter
	}
	c.mu.Unlock()

	if !limiter.Allow() {
		return mediaerr.Wrap(mediaerr.ErrRateLimited, "request", opts.Endpoint,
			"minimum interval has not elapsed", nil)
	}
	return nil
}
