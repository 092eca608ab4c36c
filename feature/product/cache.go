package product

import (
	"math"
	"sync"
	"time"

	"stockcount/core/metrics"
)

// cacheEntry wraps a cached product with its TTL window.
type cacheEntry struct {
	product    Product
	insertedAt time.Time
	expiresAt  time.Time
}

// CacheStats is a point-in-time snapshot of cache effectiveness.
type CacheStats struct {
	TotalEntries   int     `json:"totalEntries"`
	ValidEntries   int     `json:"validEntries"`
	ExpiredEntries int     `json:"expiredEntries"`
	Hits           uint64  `json:"hits"`
	Misses         uint64  `json:"misses"`
	HitRate        float64 `json:"hitRate"`
}

// Cache is an in-memory TTL cache of resolved products keyed by
// normalized barcode. Expired entries are evicted lazily on Get.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	hits    uint64
	misses  uint64
	now     func() time.Time
}

// NewCache creates a cache with the given TTL. A zero or negative TTL
// disables caching entirely: Get always misses and Set is a no-op.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached product for a normalized barcode. An entry
// older than its TTL is never returned; it is evicted and the call
// counts as a miss.
func (c *Cache) Get(barcode string) (Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ttl <= 0 || barcode == "" {
		c.misses++
		metrics.CacheMisses.Inc()
		return Product{}, false
	}

	entry, ok := c.entries[barcode]
	if ok && c.now().Before(entry.expiresAt) {
		c.hits++
		metrics.CacheHits.Inc()
		return entry.product, true
	}

	if ok {
		delete(c.entries, barcode)
	}
	c.misses++
	metrics.CacheMisses.Inc()
	return Product{}, false
}

// Set inserts or overwrites the entry for a normalized barcode.
func (c *Cache) Set(barcode string, p Product) {
	if c.ttl <= 0 || barcode == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries[barcode] = cacheEntry{
		product:    p,
		insertedAt: now,
		expiresAt:  now.Add(c.ttl),
	}

	// Bounded sweep: evict everything expired once the map grows.
	if len(c.entries) > 100 {
		for k, e := range c.entries {
			if !now.Before(e.expiresAt) {
				delete(c.entries, k)
			}
		}
	}
}

// Remove deletes the entry for a barcode, reporting whether it existed.
func (c *Cache) Remove(barcode string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[barcode]
	delete(c.entries, barcode)
	return ok
}

// Clear empties the cache and resets the hit/miss counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
	c.hits = 0
	c.misses = 0
}

// Stats returns current cache statistics. Valid/expired counts are
// computed against the current clock without evicting.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	stats := CacheStats{
		TotalEntries: len(c.entries),
		Hits:         c.hits,
		Misses:       c.misses,
	}
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			stats.ValidEntries++
		} else {
			stats.ExpiredEntries++
		}
	}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = math.Round(float64(c.hits)/float64(total)*10000) / 100
	}
	return stats
}
