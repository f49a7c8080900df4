package cache

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// compressedMarker prefixes compressed values so uncompressed legacy entries
// stay readable. The decoder keys on the prefix alone.
const compressedMarker = "zst1:"

// Codec encodes values before they hit the KV store and decodes them on the
// way out. Compression kicks in above MinSize; the zero Codec stores values
// verbatim.
type Codec struct {
	Compress bool
	MinSize  int

	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCodec builds a codec. Construction only fails when zstd setup does,
// which indicates a programming error rather than bad input.
func NewCodec(compress bool, minSize int) (*Codec, error) {
	codec := &Codec{Compress: compress, MinSize: minSize}
	if compress {
		encoder, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("init zstd encoder: %w", err)
		}
		codec.encoder = encoder
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("init zstd decoder: %w", err)
	}
	codec.decoder = decoder
	return codec, nil
}

// Encode returns the stored representation of value.
func (c *Codec) Encode(value string) string {
	if c == nil || !c.Compress || c.encoder == nil || len(value) < c.MinSize {
		return value
	}
	compressed := c.encoder.EncodeAll([]byte(value), nil)
	encoded := compressedMarker + base64.StdEncoding.EncodeToString(compressed)
	if len(encoded) >= len(value) {
		// Compression did not pay off; keep the raw form.
		return value
	}
	return encoded
}

// Decode reverses Encode. Values without the marker pass through untouched.
func (c *Codec) Decode(stored string) (string, error) {
	if !strings.HasPrefix(stored, compressedMarker) {
		return stored, nil
	}
	raw, err := base64.StdEncoding.DecodeString(stored[len(compressedMarker):])
	if err != nil {
		return "", fmt.Errorf("decode cache value: %w", err)
	}
	if c == nil || c.decoder == nil {
		return "", fmt.Errorf("compressed cache value but no decoder configured")
	}
	decompressed, err := c.decoder.DecodeAll(raw, nil)
	if err != nil {
		return "", fmt.Errorf("decompress cache value: %w", err)
	}
	return string(decompressed), nil
}
