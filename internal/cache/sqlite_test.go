package cache

import (
	"testing"
	"time"
)

func TestSQLiteKVRoundTrip(t *testing.T) {
	kv, err := OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer kv.Close()

	if err := kv.Set("guess:movie", "payload"); err != nil {
		t.Fatal(err)
	}
	value, ok, err := kv.Get("guess:movie")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || value != "payload" {
		t.Errorf("Get = %q, %v", value, ok)
	}

	if err := kv.Set("guess:movie", "replaced"); err != nil {
		t.Fatal(err)
	}
	value, _, _ = kv.Get("guess:movie")
	if value != "replaced" {
		t.Errorf("upsert should replace, got %q", value)
	}

	if err := kv.Delete("guess:movie"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := kv.Get("guess:movie"); ok {
		t.Error("deleted key should be gone")
	}
}

func TestSQLiteKVMissingKey(t *testing.T) {
	kv, err := OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer kv.Close()

	if _, ok, err := kv.Get("absent"); ok || err != nil {
		t.Errorf("missing key: ok=%v err=%v", ok, err)
	}
	if err := kv.Delete("absent"); err != nil {
		t.Error("deleting a missing key should not fail:", err)
	}
}

func TestSQLiteKVKeys(t *testing.T) {
	kv, err := OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer kv.Close()

	for _, key := range []string{"b", "a", "c"} {
		if err := kv.Set(key, "v"); err != nil {
			t.Fatal(err)
		}
	}
	keys, err := kv.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 3 || keys[0] != "a" || keys[2] != "c" {
		t.Errorf("Keys = %v", keys)
	}
}

func TestSQLiteKVPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	kv, err := OpenSQLite(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := kv.Set("guess:persisted", "survives"); err != nil {
		t.Fatal(err)
	}
	if err := kv.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenSQLite(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	value, ok, err := reopened.Get("guess:persisted")
	if err != nil || !ok || value != "survives" {
		t.Errorf("persisted value: %q ok=%v err=%v", value, ok, err)
	}
}

func TestSQLiteBackedStore(t *testing.T) {
	kv, err := OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer kv.Close()

	store := NewStore(kv, nil)
	store.Set("guess:k", "v", time.Hour)
	if value, ok := store.Get("guess:k"); !ok || value != "v" {
		t.Errorf("sqlite-backed store: %q %v", value, ok)
	}
}
