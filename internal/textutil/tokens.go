package textutil

import (
	"regexp"
	"strings"
)

// releaseTokens are lowercase tokens that carry no title information.
// Grouped loosely: resolution, source, codec, audio, misc release tags,
// disc/part markers.
var releaseTokens = map[string]struct{}{}

func init() {
	for _, token := range []string{
		"480p", "480i", "576p", "576i", "720p", "720i", "1080p", "1080i",
		"2160p", "4k", "uhd", "ultrahd", "hd", "sd",
		"bluray", "blu-ray", "bdrip", "brrip", "bdremux", "remux", "hdrip",
		"dvdrip", "dvd", "webrip", "web-dl", "webdl", "web", "hdtv", "pdtv",
		"x264", "x265", "h264", "h265", "hevc", "avc", "xvid", "divx",
		"av1", "vp9", "10bit", "8bit", "hi10p",
		"aac", "ac3", "dts", "dd5", "ddp5", "truehd", "atmos", "flac", "mp3",
		"proper", "repack", "extended", "unrated", "remastered", "limited",
		"internal", "multi", "dual", "subbed", "dubbed", "hdr", "hdr10",
		"dv", "sdr", "imax",
		"cd1", "cd2", "cd3", "cd4", "disc1", "disc2", "disc3", "disc4",
		"part1", "part2", "part3", "part4", "pt1", "pt2",
	} {
		releaseTokens[token] = struct{}{}
	}
}

var (
	separatorRe = regexp.MustCompile(`[._\-\s]+`)
	bracketRe   = regexp.MustCompile(`\[[^\]]*\]|\{[^}]*\}`)
	yearRe      = regexp.MustCompile(`^\(?(19|20)\d{2}\)?$`)
	groupRe     = regexp.MustCompile(`-[A-Za-z0-9]+$`)
)

// IsReleaseToken reports whether a token is a known quality, codec, source,
// or disc/part marker.
func IsReleaseToken(token string) bool {
	_, ok := releaseTokens[strings.ToLower(strings.TrimSpace(token))]
	return ok
}

// IsYearToken reports whether a token is a plausible release year,
// optionally parenthesized.
func IsYearToken(token string) bool {
	return yearRe.MatchString(strings.TrimSpace(token))
}

// Tokens splits a name on the usual release separators (dots, underscores,
// hyphens, whitespace) and drops empties.
func Tokens(name string) []string {
	fields := separatorRe.Split(name, -1)
	out := fields[:0]
	for _, field := range fields {
		if strings.TrimSpace(field) != "" {
			out = append(out, field)
		}
	}
	return out
}

// StripReleaseTokens removes bracketed groups and every trailing run of
// release tokens from a base name. Tokens before the first release token are
// kept verbatim so embedded title words never disappear. Parenthesized years
// survive.
func StripReleaseTokens(name string) string {
	name = bracketRe.ReplaceAllString(name, " ")
	tokens := Tokens(name)
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if IsReleaseToken(token) {
			break
		}
		kept = append(kept, token)
	}
	if len(kept) == 0 {
		kept = tokens
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

// NormalizeDirName lowers a directory name to a comparable form: bracketed
// release tags removed, release tokens dropped, separators collapsed to
// single spaces. Parenthesized years are retained so "Movie (2020)" and
// "Movie.2020.1080p" compare equal once the year parens are normalized away.
func NormalizeDirName(name string) string {
	name = bracketRe.ReplaceAllString(name, " ")
	name = strings.NewReplacer("(", " ", ")", " ").Replace(name)
	tokens := Tokens(name)
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if IsReleaseToken(token) {
			continue
		}
		kept = append(kept, strings.ToLower(token))
	}
	return strings.Join(kept, " ")
}

// StripGroupSuffix removes a trailing "-GROUP" release-group marker.
func StripGroupSuffix(name string) string {
	return groupRe.ReplaceAllString(name, "")
}
