package pairing

import "strings"

// subtitleContainers are directory names, lowercased, that hold subtitles
// for the sibling video. Localized equivalents included.
var subtitleContainers = map[string]struct{}{
	"sub": {}, "subs": {}, "subtitle": {}, "subtitles": {},
	"caption": {}, "captions": {}, "vobsubs": {},
	"legendas": {}, "sous-titres": {}, "untertitel": {},
	"napisy": {}, "sottotitoli": {}, "subtitulos": {}, "titulky": {},
}

// IsSubtitleContainer reports whether a directory name is a recognized
// subtitle container.
func IsSubtitleContainer(name string) bool {
	_, ok := subtitleContainers[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
