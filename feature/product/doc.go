// Package product resolves normalized barcodes to catalog products.
//
// # Components
//
//   - Cache: in-memory TTL cache keyed by normalized barcode with lazy
//     eviction and hit/miss accounting (default TTL 5 minutes).
//   - Resolver: HTTP client for the catalog lookup boundary with a
//     bounded per-attempt timeout, a capped exponential-backoff retry
//     loop, and singleflight collapsing of duplicate in-flight lookups.
//   - Service: validation + cache-or-fetch entry point for the pipeline.
//   - Handler: lookup and cache-statistics HTTP endpoints.
//
// # Failure classes
//
// Three sentinels separate the user-facing outcomes: ErrNotFound (valid
// barcode, no catalog match; terminal), ErrTransport (timeout or
// network failure after retries), ErrServer (5xx-class responses after
// retries). Only the latter two burn retry budget; a 404 or any other
// 4xx is never retried.
package product
