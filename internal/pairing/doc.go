// Package pairing groups a flat list of discovered files into video plus
// subtitle groups using directory and filename heuristics: exact base-name
// matches, language-suffix matches, and subtitle container directories.
// Videos claim subtitles in input order; the result is deterministic for a
// given input.
package pairing
