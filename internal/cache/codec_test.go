package cache

import (
	"strings"
	"testing"
	"time"
)

func TestCodecRoundTrip(t *testing.T) {
	codec, err := NewCodec(true, 16)
	if err != nil {
		t.Fatal(err)
	}
	payload := strings.Repeat(`{"title":"The Matrix","year":1999}`, 20)
	encoded := codec.Encode(payload)
	if !strings.HasPrefix(encoded, compressedMarker) {
		t.Fatalf("large repetitive payload should compress, got %q", encoded[:20])
	}
	decoded, err := codec.Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded != payload {
		t.Error("round trip mismatch")
	}
}

func TestCodecSmallValuesStayRaw(t *testing.T) {
	codec, err := NewCodec(true, 512)
	if err != nil {
		t.Fatal(err)
	}
	if got := codec.Encode("tiny"); got != "tiny" {
		t.Errorf("small value should stay raw, got %q", got)
	}
}

func TestCodecLegacyValuesReadable(t *testing.T) {
	// Entries written before compression existed carry no marker and must
	// decode unchanged.
	codec, err := NewCodec(true, 16)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := codec.Decode(`{"plain":"legacy"}`)
	if err != nil {
		t.Fatal(err)
	}
	if decoded != `{"plain":"legacy"}` {
		t.Errorf("legacy value mangled: %q", decoded)
	}
}

func TestCodecDisabledStillDecodes(t *testing.T) {
	writer, err := NewCodec(true, 1)
	if err != nil {
		t.Fatal(err)
	}
	reader, err := NewCodec(false, 0)
	if err != nil {
		t.Fatal(err)
	}
	payload := strings.Repeat("abcdef ", 100)
	decoded, err := reader.Decode(writer.Encode(payload))
	if err != nil {
		t.Fatal(err)
	}
	if decoded != payload {
		t.Error("codec with compression disabled must still read compressed entries")
	}
}

func TestStoreWithCodec(t *testing.T) {
	codec, err := NewCodec(true, 16)
	if err != nil {
		t.Fatal(err)
	}
	kv := NewMemoryKV()
	clock := newFakeClock()
	store := NewStore(kv, nil, WithClock(clock.Now), WithCodec(codec))

	payload := strings.Repeat(`{"k":"v"}`, 50)
	store.Set("guess:k", payload, time.Hour)

	stored, ok, _ := kv.Get("guess:k")
	if !ok {
		t.Fatal("value missing from backend")
	}
	if !strings.HasPrefix(stored, compressedMarker) {
		t.Error("backend should hold the compressed form")
	}
	value, ok := store.Get("guess:k")
	if !ok || value != payload {
		t.Error("store should transparently decompress")
	}
}
