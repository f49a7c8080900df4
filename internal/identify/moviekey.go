package identify

import (
	"path/filepath"
	"regexp"
	"strings"

	"submatch/internal/textutil"
)

var episodeTokenRe = regexp.MustCompile(`^(?i)(s\d{1,2}e\d{1,3}|\d{1,2}x\d{1,3})$`)

// MovieKey derives the deduplication key for a path: the lowercased
// directory plus a normalized base name with extension, language codes,
// quality and disc tokens, and episode numbering stripped. Episode numbers
// do not participate so sibling episodes of one show share a key; the
// per-file enrichment pass restores the correct numbering afterwards.
func MovieKey(path string) string {
	dir := filepath.ToSlash(filepath.Clean(filepath.Dir(path)))
	name := filepath.Base(path)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ToLower(dir) + "|" + normalizeBase(base)
}

func normalizeBase(base string) string {
	base = textutil.StripGroupSuffix(base)
	tokens := textutil.Tokens(textutil.StripReleaseTokens(base))

	kept := tokens[:0]
	for _, token := range tokens {
		if episodeTokenRe.MatchString(token) {
			continue
		}
		kept = append(kept, strings.ToLower(strings.Trim(token, "()")))
	}
	// A trailing language code is a sidecar marker, not part of the title.
	if len(kept) > 1 && textutil.IsLanguageToken(kept[len(kept)-1]) {
		kept = kept[:len(kept)-1]
	}
	return strings.Join(kept, " ")
}
