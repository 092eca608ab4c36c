package metrics

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ScansTotal counts scan submissions by outcome (accepted,
	// invalid_barcode, not_found, superseded, rejected, error).
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockcount_scans_total",
		Help: "Scan submissions by outcome.",
	}, []string{"outcome"})

	// CacheHits counts product cache hits.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockcount_product_cache_hits_total",
		Help: "Product cache hits.",
	})

	// CacheMisses counts product cache misses, including expirations.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockcount_product_cache_misses_total",
		Help: "Product cache misses.",
	})

	// LookupRetries counts retried product lookup attempts.
	LookupRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockcount_product_lookup_retries_total",
		Help: "Retried product lookup attempts.",
	})

	// DetectionAttempts counts frame capture/recognition cycles.
	DetectionAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockcount_detection_attempts_total",
		Help: "Frame capture and recognition cycles.",
	})

	// DetectionSuccesses counts cycles that produced a barcode candidate.
	DetectionSuccesses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockcount_detection_successes_total",
		Help: "Recognition cycles that yielded a barcode.",
	})
)

// Handler returns the Prometheus scrape endpoint as a Fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// HTTPHandler returns the plain net/http scrape handler for non-Fiber use.
func HTTPHandler() http.Handler {
	return promhttp.Handler()
}
