// Command submatch discovers media files, pairs videos with their
// subtitles, computes content hashes, and resolves files to movie or
// episode identities backed by a persistent lookup cache.
package main
