package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"submatch/internal/testsupport"
)

func TestPairCommandJSON(t *testing.T) {
	cfgPath := writeConfigFile(t, testsupport.NewConfig(t))

	drop := t.TempDir()
	movieDir := filepath.Join(drop, "Example Movie (2020)")
	video := testsupport.WriteMediaTree(t, movieDir, "Example.Movie.2020.mkv", "en", "es")
	orphan := filepath.Join(drop, "stray.srt")
	testsupport.WriteText(t, orphan, "1\n00:00:01,000 --> 00:00:02,000\nhi\n")

	out, err := runCLI(t, "pair", drop, "--json", "--config", cfgPath)
	if err != nil {
		t.Fatalf("pair: %v\n%s", err, out)
	}

	var view pairView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("unmarshal output: %v\n%s", err, out)
	}
	if len(view.Groups) != 1 {
		t.Fatalf("expected one group, got %d", len(view.Groups))
	}
	if view.Groups[0].Video != video || len(view.Groups[0].Subtitles) != 2 {
		t.Fatalf("unexpected group: %#v", view.Groups[0])
	}
	if len(view.Orphans) != 1 || view.Orphans[0] != orphan {
		t.Fatalf("unexpected orphans: %v", view.Orphans)
	}
}
