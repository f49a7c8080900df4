package pairing

import (
	"path/filepath"
	"strings"

	"submatch/internal/mediafile"
	"submatch/internal/textutil"
)

// Group associates one video with the subtitles that belong to it. A video
// with no matching subtitles still produces a group with an empty sequence.
type Group struct {
	Video     mediafile.FileEntry
	Subtitles []mediafile.FileEntry
}

// Result is the outcome of one pairing pass.
type Result struct {
	Groups  []Group
	Orphans []mediafile.FileEntry
}

// Pair walks videos in input order and claims matching subtitles. A claimed
// subtitle never matches a second video; ambiguous subtitles go to the first
// video that reaches them, with no backtracking.
func Pair(files []mediafile.FileEntry) Result {
	var videos []mediafile.FileEntry
	var subtitles []mediafile.FileEntry
	for _, file := range files {
		switch file.Kind {
		case mediafile.KindVideo:
			videos = append(videos, file)
		case mediafile.KindSubtitle:
			subtitles = append(subtitles, file)
		}
	}

	used := make([]bool, len(subtitles))
	result := Result{Groups: make([]Group, 0, len(videos))}

	for _, video := range videos {
		group := Group{Video: video, Subtitles: []mediafile.FileEntry{}}
		for i, subtitle := range subtitles {
			if used[i] {
				continue
			}
			if matches(video, subtitle) {
				used[i] = true
				group.Subtitles = append(group.Subtitles, subtitle)
			}
		}
		result.Groups = append(result.Groups, group)
	}

	for i, subtitle := range subtitles {
		if !used[i] {
			result.Orphans = append(result.Orphans, subtitle)
		}
	}
	return result
}

func matches(video, subtitle mediafile.FileEntry) bool {
	videoDir := video.Dir()
	subtitleDir := subtitle.Dir()

	if sameDir(videoDir, subtitleDir) {
		// Plain-text candidates need content confirmation elsewhere; they
		// never participate in name-based matching.
		if subtitle.Ext() == ".txt" {
			return false
		}
		return nameMatches(video.BaseName(), subtitle.BaseName())
	}

	return inContainerFor(videoDir, subtitleDir)
}

// nameMatches accepts an exact base-name match or the video base followed by
// a dot and a language-looking token.
func nameMatches(videoBase, subtitleBase string) bool {
	if strings.EqualFold(videoBase, subtitleBase) {
		return true
	}
	prefix := videoBase + "."
	if len(subtitleBase) <= len(prefix) {
		return false
	}
	if !strings.EqualFold(subtitleBase[:len(prefix)], prefix) {
		return false
	}
	return textutil.IsLanguageToken(subtitleBase[len(prefix):])
}

// inContainerFor reports whether subtitleDir is a subtitle container sitting
// directly under the video's directory. Every subtitle inside a matching
// container is accepted regardless of its base name.
func inContainerFor(videoDir, subtitleDir string) bool {
	if !IsSubtitleContainer(filepath.Base(subtitleDir)) {
		return false
	}
	parent := filepath.Dir(subtitleDir)
	if sameDir(parent, videoDir) {
		return true
	}
	// Tolerate release-token noise: "Movie (2020)" vs "Movie.2020.1080p".
	if sameDir(filepath.Dir(parent), filepath.Dir(videoDir)) {
		return textutil.NormalizeDirName(filepath.Base(parent)) == textutil.NormalizeDirName(filepath.Base(videoDir))
	}
	return false
}

func sameDir(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
