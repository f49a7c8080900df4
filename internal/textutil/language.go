package textutil

import (
	"strings"

	"golang.org/x/text/language"
)

// IsLanguageToken reports whether token looks like a language code: 2-5
// letters that either parse as a BCP 47 tag or have plain ISO 639 shape.
// Release tokens ("dv", "hd") are rejected outright.
func IsLanguageToken(token string) bool {
	token = strings.TrimSpace(token)
	if len(token) < 2 || len(token) > 5 {
		return false
	}
	for _, r := range token {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	if IsReleaseToken(token) {
		return false
	}
	if _, err := language.Parse(strings.ToLower(token)); err == nil {
		return true
	}
	// Unregistered but ISO-shaped two or three letter codes still count.
	return len(token) <= 3
}
