package episodedetect

import (
	"path/filepath"
	"strings"

	"github.com/moistari/rls"
)

// Detector parses episode numbering out of filenames.
type Detector struct{}

// New returns a Detector.
func New() Detector {
	return Detector{}
}

// Detect reports the season/episode numbering carried by name. ok=false
// means the name carries no usable numbering (movies, specials without a
// number, plain titles).
func (Detector) Detect(name string) (season, episode int, ok bool) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	release := rls.ParseString(base)
	if release.Series <= 0 || release.Episode <= 0 {
		return 0, 0, false
	}
	return release.Series, release.Episode, true
}
