package identify

import (
	"path/filepath"
	"strings"

	"submatch/internal/pairing"
	"submatch/internal/textutil"
)

// DirectoryQuery derives the fallback guess query from the nearest useful
// ancestor directory of path. Subtitle containers are skipped, bracketed
// release tags are stripped, and parenthesized years survive. Returns the
// raw directory name (for the reason string) and the cleaned query; both
// empty when no ancestor yields a usable query.
func DirectoryQuery(path string) (dirName, query string) {
	dir := filepath.Dir(path)
	for {
		name := filepath.Base(dir)
		if name == "" || name == "." || name == "/" || name == string(filepath.Separator) {
			return "", ""
		}
		if !pairing.IsSubtitleContainer(name) {
			if cleaned := cleanDirQuery(name); cleaned != "" {
				return name, cleaned
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}

func cleanDirQuery(name string) string {
	return strings.TrimSpace(textutil.StripReleaseTokens(textutil.StripGroupSuffix(name)))
}
