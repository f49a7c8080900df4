package hashing

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"submatch/internal/mediaerr"
)

// ChunkSize is the number of bytes hashed from each end of a video file.
const ChunkSize = 64 * 1024

// MinVideoSize is the smallest file VideoHash accepts.
const MinVideoSize = 2 * ChunkSize

// VideoHash computes the published 64-bit video checksum over the supplied
// bytes: an accumulator seeded with the total size, plus every little-endian
// 64-bit word of the first and last ChunkSize bytes, modulo 2^64. The result
// is 16 lowercase hex digits and must stay bit-exact with the external
// verification scheme.
func VideoHash(data []byte) (string, error) {
	size := int64(len(data))
	if size < MinVideoSize {
		return "", mediaerr.Wrap(mediaerr.ErrInsufficientSize, "hashing", "video",
			fmt.Sprintf("file is %d bytes, need at least %d", size, MinVideoSize), nil)
	}
	acc := uint64(size)
	acc += sumWords(data[:ChunkSize])
	acc += sumWords(data[size-ChunkSize:])
	return fmt.Sprintf("%016x", acc), nil
}

// VideoHashFile computes the video checksum reading only the head and tail
// chunks, so arbitrarily large files never load fully into memory.
func VideoHashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", mediaerr.Wrap(mediaerr.ErrIO, "hashing", "open", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", mediaerr.Wrap(mediaerr.ErrIO, "hashing", "stat", path, err)
	}
	size := info.Size()
	if size < MinVideoSize {
		return "", mediaerr.Wrap(mediaerr.ErrInsufficientSize, "hashing", "video",
			fmt.Sprintf("file is %d bytes, need at least %d", size, MinVideoSize), nil)
	}

	head := make([]byte, ChunkSize)
	if _, err := io.ReadFull(file, head); err != nil {
		return "", mediaerr.Wrap(mediaerr.ErrIO, "hashing", "read head", path, err)
	}
	tail := make([]byte, ChunkSize)
	if _, err := file.ReadAt(tail, size-ChunkSize); err != nil {
		return "", mediaerr.Wrap(mediaerr.ErrIO, "hashing", "read tail", path, err)
	}

	acc := uint64(size)
	acc += sumWords(head)
	acc += sumWords(tail)
	return fmt.Sprintf("%016x", acc), nil
}

// sumWords adds every 8-byte little-endian word of chunk. Overflow wraps,
// which is exactly the modulo-2^64 arithmetic the scheme requires.
func sumWords(chunk []byte) uint64 {
	var sum uint64
	for i := 0; i+8 <= len(chunk); i += 8 {
		sum += binary.LittleEndian.Uint64(chunk[i : i+8])
	}
	return sum
}

// SubtitleDigest returns the 128-bit digest of the exact original byte
// sequence as 32 lowercase hex digits. The remote service hashes raw bytes,
// so no re-encoding or normalization ever happens here.
func SubtitleDigest(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
