// Package request wraps arbitrary asynchronous lookups with the discipline
// every network-backed call in the pipeline needs: cache-first reads,
// in-flight de-duplication so concurrent callers share one outcome,
// per-endpoint minimum-interval rate limiting, negative caching, and an
// opt-in retry path with exponential backoff.
package request
