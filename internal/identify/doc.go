// Package identify resolves media files to concrete movie or episode
// identities. The coordinator drives a per-file state machine (idle,
// guessing, then resolved, no-match, or error), deduplicates work across
// files that share a MovieKey, falls back from filename guesses to
// directory-name guesses, and enriches series matches with episode-level
// metadata when the filename carries season/episode numbering.
package identify
