// Package hashing computes the content identifiers remote services key on:
// a 64-bit head/tail checksum for videos and a 128-bit byte-exact digest for
// subtitles. Both are pure functions of the file bytes; the retry wrapper
// tolerates slow reads on very large files.
package hashing
