// Package cache provides the persistent key-value cache every network-backed
// lookup depends on: TTL expiry via sibling expiry keys, optional
// self-describing compression, derived statistics, and category-scoped
// clearing. The backing store is pluggable; the default is SQLite.
package cache
