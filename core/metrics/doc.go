// Package metrics defines the Prometheus collectors for the scan
// pipeline and exposes the scrape endpoint.
//
// Collectors are package-level and registered via promauto, so any
// feature can increment them without wiring. The counters are
// observability only; nothing in the pipeline branches on them.
package metrics
