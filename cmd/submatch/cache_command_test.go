package main

import (
	"encoding/json"
	"testing"
	"time"

	"submatch/internal/testsupport"
)

func TestCacheStatsAndClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfgPath := writeConfigFile(t, cfg)

	// Seed inside a subtest so the store's lock is released before the
	// commands reopen the cache directory.
	t.Run("seed", func(t *testing.T) {
		store := testsupport.MustOpenCache(t, cfg)
		store.Set("guess:Example.Movie.2020.mkv", `{"imdb_id":"tt0000001"}`, time.Hour)
		store.Set("guess:Other.Movie.mkv", `{"imdb_id":"tt0000002"}`, time.Hour)
		store.Set("features:tt0000001", `{"imdb_id":"tt0000001"}`, time.Hour)
	})

	out, err := runCLI(t, "cache", "stats", "--json", "--config", cfgPath)
	if err != nil {
		t.Fatalf("cache stats: %v\n%s", err, out)
	}
	var stats cacheStatsView
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("unmarshal stats: %v\n%s", err, out)
	}
	if stats.EntryCount != 3 {
		t.Fatalf("expected 3 entries, got %d", stats.EntryCount)
	}
	if stats.PerCategory["guess"] != 2 || stats.PerCategory["features"] != 1 {
		t.Fatalf("unexpected category counts: %#v", stats.PerCategory)
	}

	if out, err = runCLI(t, "cache", "clear", "guess", "--config", cfgPath); err != nil {
		t.Fatalf("cache clear guess: %v\n%s", err, out)
	}
	out, err = runCLI(t, "cache", "stats", "--json", "--config", cfgPath)
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	stats = cacheStatsView{}
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("unmarshal stats: %v", err)
	}
	if stats.EntryCount != 1 || stats.PerCategory["guess"] != 0 {
		t.Fatalf("guess category should be empty: %#v", stats)
	}

	if out, err = runCLI(t, "cache", "clear", "--config", cfgPath); err != nil {
		t.Fatalf("cache clear: %v\n%s", err, out)
	}
	out, err = runCLI(t, "cache", "stats", "--json", "--config", cfgPath)
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	stats = cacheStatsView{}
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("unmarshal stats: %v", err)
	}
	if stats.EntryCount != 0 {
		t.Fatalf("expected empty cache, got %d entries", stats.EntryCount)
	}
}
