package request

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"submatch/internal/cache"
	"submatch/internal/mediaerr"
)

func newTestCoordinator() *Coordinator {
	return NewCoordinator(cache.NewStore(cache.NewMemoryKV(), nil), nil)
}

func TestResolveCachesPositiveResult(t *testing.T) {
	coord := newTestCoordinator()
	calls := 0
	producer := func(context.Context) (string, bool, error) {
		calls++
		return `{"title":"Movie"}`, true, nil
	}
	opts := Options{TTL: time.Hour}

	for i := 0; i < 3; i++ {
		value, found, err := coord.Resolve(context.Background(), "guess:movie.mkv", producer, opts)
		if err != nil {
			t.Fatal(err)
		}
		if !found || value != `{"title":"Movie"}` {
			t.Fatalf("unexpected result: %q %v", value, found)
		}
	}
	if calls != 1 {
		t.Errorf("producer should run once, ran %d times", calls)
	}
}

func TestResolveNegativeCaching(t *testing.T) {
	coord := newTestCoordinator()
	calls := 0
	producer := func(context.Context) (string, bool, error) {
		calls++
		return "", false, nil
	}
	opts := Options{TTL: time.Hour, NegativeTTL: time.Hour}

	for i := 0; i < 3; i++ {
		_, found, err := coord.Resolve(context.Background(), "guess:garbage.mkv", producer, opts)
		if err != nil {
			t.Fatal(err)
		}
		if found {
			t.Fatal("no-result outcome should report found=false")
		}
	}
	if calls != 1 {
		t.Errorf("negative outcome should be cached, producer ran %d times", calls)
	}
}

func TestResolveDeduplicatesConcurrentCallers(t *testing.T) {
	coord := newTestCoordinator()
	var invocations atomic.Int32
	release := make(chan struct{})
	producer := func(context.Context) (string, bool, error) {
		invocations.Add(1)
		<-release
		return "shared", true, nil
	}

	const callers = 16
	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, _, err := coord.Resolve(context.Background(), "guess:same-key", producer, Options{TTL: time.Hour})
			results[i] = value
			errs[i] = err
		}(i)
	}

	// Give every goroutine time to reach the flight group before settling.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := invocations.Load(); got != 1 {
		t.Errorf("producer invoked %d times, want 1", got)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d error: %v", i, errs[i])
		}
		if results[i] != "shared" {
			t.Errorf("caller %d got %q", i, results[i])
		}
	}
}

func TestResolveRateLimitFailsFast(t *testing.T) {
	coord := newTestCoordinator()
	producer := func(context.Context) (string, bool, error) {
		return "value", true, nil
	}
	opts := Options{Endpoint: "guess", Window: time.Hour, TTL: time.Hour}

	if _, _, err := coord.Resolve(context.Background(), "guess:first", producer, opts); err != nil {
		t.Fatal(err)
	}
	_, _, err := coord.Resolve(context.Background(), "guess:second", producer, opts)
	if !errors.Is(err, mediaerr.ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestResolveCacheHitSkipsRateLimit(t *testing.T) {
	coord := newTestCoordinator()
	producer := func(context.Context) (string, bool, error) {
		return "value", true, nil
	}
	opts := Options{Endpoint: "guess", Window: time.Hour, TTL: time.Hour}

	if _, _, err := coord.Resolve(context.Background(), "guess:key", producer, opts); err != nil {
		t.Fatal(err)
	}
	// Same key again: served from cache, no rate-limit slot consumed.
	if _, _, err := coord.Resolve(context.Background(), "guess:key", producer, opts); err != nil {
		t.Errorf("cache hit should bypass the limiter: %v", err)
	}
}

func TestResolveProducerErrorNotCached(t *testing.T) {
	coord := newTestCoordinator()
	calls := 0
	producer := func(context.Context) (string, bool, error) {
		calls++
		if calls == 1 {
			return "", false, mediaerr.Wrap(mediaerr.ErrNetwork, "test", "lookup", "boom", nil)
		}
		return "recovered", true, nil
	}
	opts := Options{TTL: time.Hour}

	if _, _, err := coord.Resolve(context.Background(), "guess:flaky", producer, opts); !errors.Is(err, mediaerr.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	value, found, err := coord.Resolve(context.Background(), "guess:flaky", producer, opts)
	if err != nil || !found || value != "recovered" {
		t.Errorf("failure must not be cached: %q %v %v", value, found, err)
	}
}

func TestResolveWithRetryRecovers(t *testing.T) {
	coord := newTestCoordinator()
	calls := 0
	producer := func(context.Context) (string, bool, error) {
		calls++
		if calls < 3 {
			return "", false, mediaerr.Wrap(mediaerr.ErrNetwork, "test", "lookup", "transient", nil)
		}
		return "eventually", true, nil
	}
	policy := RetryPolicy{Attempts: 3, Base: time.Millisecond}

	value, found, err := coord.ResolveWithRetry(context.Background(), "guess:retry", producer, Options{TTL: time.Hour}, policy)
	if err != nil {
		t.Fatal(err)
	}
	if !found || value != "eventually" {
		t.Errorf("unexpected result: %q %v", value, found)
	}
	if calls != 3 {
		t.Errorf("expected 3 producer calls, got %d", calls)
	}
}

func TestResolveWithRetryGivesUpOnTerminalError(t *testing.T) {
	coord := newTestCoordinator()
	calls := 0
	producer := func(context.Context) (string, bool, error) {
		calls++
		return "", false, mediaerr.Wrap(mediaerr.ErrInvalidResult, "test", "lookup", "garbage", nil)
	}
	policy := RetryPolicy{Attempts: 3, Base: time.Millisecond}

	_, _, err := coord.ResolveWithRetry(context.Background(), "guess:garbage", producer, Options{TTL: time.Hour}, policy)
	if !errors.Is(err, mediaerr.ErrInvalidResult) {
		t.Fatalf("expected ErrInvalidResult, got %v", err)
	}
	if calls != 1 {
		t.Errorf("non-retryable errors should not re-attempt, got %d calls", calls)
	}
}
