// Package textutil normalizes media file and directory names: stripping
// release tokens (quality, codec, source, disc/part markers), collapsing
// separators, and deriving comparable name forms shared by pairing and
// identification.
package textutil
