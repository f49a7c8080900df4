package mediafile

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"submatch/internal/mediaerr"
)

// Kind classifies a discovered file.
type Kind int

const (
	KindUnknown Kind = iota
	KindVideo
	KindSubtitle
)

// String returns the lowercase label for the kind.
func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindSubtitle:
		return "subtitle"
	default:
		return "unknown"
	}
}

// FileEntry describes one discovered media file. Identity is Path, unique
// within a drop session. Entries are immutable once discovered.
type FileEntry struct {
	Path string
	Name string
	Size int64
	Kind Kind
}

// Dir returns the entry's parent directory.
func (f FileEntry) Dir() string {
	return filepath.Dir(f.Path)
}

// BaseName returns the file name without its extension.
func (f FileEntry) BaseName() string {
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}

// Ext returns the lowercase extension including the dot.
func (f FileEntry) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// NewEntry stats path and classifies it.
func NewEntry(path string) (FileEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileEntry{}, mediaerr.Wrap(mediaerr.ErrIO, "mediafile", "stat", path, err)
	}
	return entryFromInfo(path, info)
}

func entryFromInfo(path string, info fs.FileInfo) (FileEntry, error) {
	kind, err := DetectKind(path)
	if err != nil {
		return FileEntry{}, err
	}
	return FileEntry{
		Path: path,
		Name: filepath.Base(path),
		Size: info.Size(),
		Kind: kind,
	}, nil
}

// Discover walks root and returns every video and subtitle file found, in
// lexicographic path order so repeated runs produce identical input for
// pairing. Unknown files are skipped.
func Discover(root string) ([]FileEntry, error) {
	var entries []FileEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entry, err := entryFromInfo(path, info)
		if err != nil {
			return err
		}
		if entry.Kind == KindUnknown {
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, mediaerr.Wrap(mediaerr.ErrIO, "mediafile", "discover", root, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// ReadBytes loads the entry's full content.
func ReadBytes(entry FileEntry) ([]byte, error) {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return nil, mediaerr.Wrap(mediaerr.ErrIO, "mediafile", "read", entry.Path, err)
	}
	return data, nil
}
