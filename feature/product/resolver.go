package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"stockcount/core/metrics"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Failure classes of a lookup. Handlers map each to a distinct
// user-facing message; only ErrTransport and ErrServer are preceded by
// automatic retries.
var (
	// ErrNotFound means the barcode is valid but no catalog product
	// matches it. Terminal, never retried.
	ErrNotFound = errors.New("product not found")
	// ErrTransport covers timeouts and network-level failures that
	// survived the retry budget.
	ErrTransport = errors.New("product lookup connection failure")
	// ErrServer means the lookup service kept answering with
	// server-side failures until the retry budget ran out.
	ErrServer = errors.New("product lookup server error")
)

// lookupResponse is the wire shape of the product lookup boundary.
type lookupResponse struct {
	Success bool           `json:"success"`
	Data    *Product       `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
	Debug   map[string]any `json:"debug,omitempty"`
}

// retryableError tags a lookup failure that is worth another attempt:
// transport errors and 5xx-class responses. 4xx responses never carry it.
type retryableError struct {
	err       error
	transport bool
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Resolver fetches products from the catalog lookup boundary, consulting
// the cache first and applying the retry policy on server-side and
// transport failures. Concurrent lookups for the same barcode collapse
// into a single request via singleflight.
type Resolver struct {
	cfg    Config
	cache  *Cache
	client *http.Client
	logger *zap.Logger
	sf     singleflight.Group
}

// NewResolver creates a resolver over the configured lookup boundary.
func NewResolver(cfg Config, cache *Cache, logger *zap.Logger) *Resolver {
	return &Resolver{
		cfg:    cfg,
		cache:  cache,
		client: &http.Client{Timeout: cfg.Timeout()},
		logger: logger,
	}
}

// Resolve returns the product for a normalized, validated barcode.
// Cache hit short-circuits; on a miss the lookup runs with exponential
// backoff (base delay doubled per attempt) and the result is cached
// before being returned.
func (r *Resolver) Resolve(ctx context.Context, barcode string) (*Product, error) {
	if p, ok := r.cache.Get(barcode); ok {
		return &p, nil
	}

	// Duplicate in-flight lookups for one barcode share a single
	// request and result.
	v, err, shared := r.sf.Do(barcode, func() (any, error) {
		return r.fetchWithRetry(ctx, barcode)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		r.logger.Debug("lookup shared with concurrent caller", zap.String("barcode", barcode))
	}

	p := v.(*Product)
	r.cache.Set(barcode, *p)
	return p, nil
}

// fetchWithRetry runs the capped retry loop around single lookup
// attempts. Client-side failures (not found, bad request) break out
// immediately; transport and 5xx failures burn the budget.
func (r *Resolver) fetchWithRetry(ctx context.Context, barcode string) (*Product, error) {
	attempts := r.cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(r.cfg.RetryBaseDelay()))

	var (
		product *Product
		lastErr *retryableError
		attempt int
	)

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			metrics.LookupRetries.Inc()
			r.logger.Info("Retrying product lookup",
				zap.String("barcode", barcode),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", attempts))
		}

		p, err := r.fetchOnce(ctx, barcode)
		if err != nil {
			var re *retryableError
			if errors.As(err, &re) {
				lastErr = re
				return retry.RetryableError(err)
			}
			return err
		}

		product = p
		return nil
	})

	if err == nil {
		return product, nil
	}

	// Terminal failures pass through untouched.
	if errors.Is(err, ErrNotFound) || lastErr == nil {
		return nil, err
	}

	// Budget exhausted: classify by what kept failing.
	if lastErr.transport {
		return nil, fmt.Errorf("%w: %v", ErrTransport, lastErr.err)
	}
	return nil, fmt.Errorf("%w: %v", ErrServer, lastErr.err)
}

// fetchOnce performs a single lookup attempt and classifies the outcome.
func (r *Resolver) fetchOnce(ctx context.Context, barcode string) (*Product, error) {
	u := r.cfg.LookupURL + "?barcode=" + url.QueryEscape(barcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &retryableError{err: err, transport: true}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 500:
		return nil, &retryableError{err: fmt.Errorf("lookup returned status %d", resp.StatusCode)}
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("lookup rejected request with status %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &retryableError{err: fmt.Errorf("decoding lookup response: %w", err), transport: true}
	}

	if !body.Success || body.Data == nil {
		if body.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, body.Error)
		}
		return nil, ErrNotFound
	}

	if t, ok := body.Data.UnitForBarcode(barcode); ok {
		body.Data.Barcodes.ScannedType = t
	}

	return body.Data, nil
}
