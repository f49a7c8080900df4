package testsupport

import (
	"testing"

	"submatch/internal/cache"
	"submatch/internal/config"
)

// MustOpenCache opens the persistent cache store for tests and registers
// cleanup of the underlying database and lock.
func MustOpenCache(t testing.TB, cfg *config.Config) *cache.Store {
	t.Helper()

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	kv, err := cache.OpenSQLite(cfg.Paths.CacheDir)
	if err != nil {
		t.Fatalf("cache.OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		_ = kv.Close()
	})
	codec, err := cache.NewCodec(cfg.Cache.Compression, cfg.Cache.CompressionMinBytes)
	if err != nil {
		t.Fatalf("cache.NewCodec: %v", err)
	}
	return cache.NewStore(kv, nil, cache.WithCodec(codec))
}
