package mediafile

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

var videoExtensions = map[string]struct{}{
	".mkv": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".wmv": {},
	".mpg": {}, ".mpeg": {}, ".m4v": {}, ".ts": {}, ".webm": {},
	".flv": {}, ".vob": {}, ".divx": {}, ".ogv": {}, ".3gp": {},
}

var subtitleExtensions = map[string]struct{}{
	".srt": {}, ".sub": {}, ".ssa": {}, ".ass": {}, ".vtt": {},
	".smi": {}, ".mpl": {},
}

var (
	mkvMagic  = []byte{0x1A, 0x45, 0xDF, 0xA3}
	riffMagic = []byte("RIFF")
)

// DetectKind classifies a file by extension, falling back to content
// sniffing for ambiguous names. Plain .txt files are only accepted as
// subtitles when their content has subtitle shape; otherwise they stay
// unknown so name-based pairing never picks them up.
func DetectKind(path string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo, nil
	}
	if _, ok := subtitleExtensions[ext]; ok {
		return KindSubtitle, nil
	}
	if ext == ".txt" {
		if sniffSubtitle(path) {
			return KindSubtitle, nil
		}
		return KindUnknown, nil
	}
	return sniffHeader(path), nil
}

// sniffHeader checks container magic for extensionless or oddly named files.
func sniffHeader(path string) Kind {
	file, err := os.Open(path)
	if err != nil {
		return KindUnknown
	}
	defer file.Close()

	header := make([]byte, 12)
	n, err := file.Read(header)
	if err != nil || n < 12 {
		return KindUnknown
	}
	if bytes.Equal(header[:4], mkvMagic) {
		return KindVideo
	}
	if bytes.Equal(header[4:8], []byte("ftyp")) {
		return KindVideo
	}
	if bytes.Equal(header[:4], riffMagic) && bytes.Equal(header[8:12], []byte("AVI ")) {
		return KindVideo
	}
	return KindUnknown
}

// sniffSubtitle reports whether the first lines look like SRT, WebVTT, or
// Advanced SubStation content.
func sniffSubtitle(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lines := make([]string, 0, 10)
	for scanner.Scan() && len(lines) < 10 {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}

	for _, line := range lines {
		switch {
		case strings.Contains(line, "-->"):
			return true
		case line == "WEBVTT":
			return true
		case strings.EqualFold(line, "[Script Info]"):
			return true
		}
	}
	return false
}
