package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteMediaTree lays out a drop directory with one video (large enough to
// content-hash) and sidecar subtitles named after it, returning the video
// path. languages name the sidecar suffixes, e.g. "en" producing
// "<base>.en.srt".
func WriteMediaTree(t testing.TB, root, videoName string, languages ...string) string {
	t.Helper()

	videoPath := filepath.Join(root, videoName)
	WriteFile(t, videoPath, 256*1024)

	base := videoName[:len(videoName)-len(filepath.Ext(videoName))]
	for _, lang := range languages {
		WriteText(t, filepath.Join(root, base+"."+lang+".srt"),
			"1\n00:00:01,000 --> 00:00:02,000\nhello\n")
	}
	return videoPath
}
