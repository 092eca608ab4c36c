package product

import "time"

// Config holds configuration for the product lookup boundary and cache.
type Config struct {
	// LookupURL is the catalog lookup endpoint. The barcode is passed
	// as a query parameter.
	LookupURL string `mapstructure:"lookup_url" default:"http://localhost:3000/api/products/lookup"`
	// TimeoutSeconds bounds a single lookup attempt.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// RetryAttempts is the total number of attempts per lookup.
	RetryAttempts int `mapstructure:"retry_attempts" default:"3"`
	// RetryBaseDelayMS is the backoff base; the delay doubles each attempt.
	RetryBaseDelayMS int `mapstructure:"retry_base_delay_ms" default:"1000"`
	// CacheTTLSeconds is the time-to-live of a cached product.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// Timeout returns the per-attempt timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryBaseDelay returns the backoff base delay as a duration.
func (c Config) RetryBaseDelay() time.Duration {
	if c.RetryBaseDelayMS <= 0 {
		return time.Second
	}
	return time.Duration(c.RetryBaseDelayMS) * time.Millisecond
}

// CacheTTL returns the cache time-to-live as a duration.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
