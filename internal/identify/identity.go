package identify

import (
	"fmt"
	"strings"
)

// Kind classifies a resolved identity.
type Kind string

const (
	KindMovie   Kind = "movie"
	KindSeries  Kind = "series"
	KindEpisode Kind = "episode"
)

// Identity is a concrete match for one media file. For episodes, IMDBID
// refers to the specific episode once enrichment succeeds; until then it
// carries the series id, which is also kept in SeriesID as a back-reference.
type Identity struct {
	IMDBID string
	Title  string
	Year   string
	Kind   Kind
	Reason string

	SeriesID     string
	Season       int
	Episode      int
	EpisodeTitle string
}

// FormattedTitle renders the display title. Episodes are assembled as
// "Title - SxxExx - Episode Title"; everything else is the plain title.
func (id Identity) FormattedTitle() string {
	if id.Kind != KindEpisode || id.Season <= 0 || id.Episode <= 0 {
		return id.Title
	}
	parts := []string{id.Title, fmt.Sprintf("S%02dE%02d", id.Season, id.Episode)}
	if strings.TrimSpace(id.EpisodeTitle) != "" {
		parts = append(parts, id.EpisodeTitle)
	}
	return strings.Join(parts, " - ")
}

// State tracks one file's progress through identification.
type State int

const (
	StateIdle State = iota
	StateGuessing
	StateResolved
	StateNoMatch
	StateFailed
)

// String returns the lowercase label for the state.
func (s State) String() string {
	switch s {
	case StateGuessing:
		return "guessing"
	case StateResolved:
		return "resolved"
	case StateNoMatch:
		return "no-match"
	case StateFailed:
		return "error"
	default:
		return "idle"
	}
}

// Terminal reports whether the state is final for the current batch.
func (s State) Terminal() bool {
	switch s {
	case StateResolved, StateNoMatch, StateFailed:
		return true
	default:
		return false
	}
}

// Result is the observable outcome for one file. Identity is set only in
// StateResolved; Err carries the human-readable reason in StateFailed.
type Result struct {
	State    State
	Identity *Identity
	Err      string
}
