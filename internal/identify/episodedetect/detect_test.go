package episodedetect_test

import (
	"testing"

	"submatch/internal/identify/episodedetect"
)

func TestDetect(t *testing.T) {
	detector := episodedetect.New()

	tests := []struct {
		name    string
		season  int
		episode int
		ok      bool
	}{
		{"Example.Show.S02E05.1080p.WEB-DL.mkv", 2, 5, true},
		{"Example Show - s01e01 - Pilot.mkv", 1, 1, true},
		{"Example.Show.3x07.HDTV.mkv", 3, 7, true},
		{"Example.Movie.2020.1080p.BluRay.mkv", 0, 0, false},
		{"random-notes.mkv", 0, 0, false},
	}
	for _, tt := range tests {
		season, episode, ok := detector.Detect(tt.name)
		if ok != tt.ok || season != tt.season || episode != tt.episode {
			t.Errorf("Detect(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tt.name, season, episode, ok, tt.season, tt.episode, tt.ok)
		}
	}
}
