package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testProduct() Product {
	return Product{
		MaterialCode: "100001",
		Name:         "Bear Brand Gold",
		Brand:        "Bear Brand",
		Category:     "BB Gold",
		ProductGroup: "BB Gold",
		Barcodes: Barcodes{
			CS:      "18851234567897",
			EA:      "8851234567890",
			Primary: "8851234567890",
		},
	}
}

func TestCache_GetSet(t *testing.T) {
	c := NewCache(5 * time.Minute)

	_, ok := c.Get("8851234567890")
	assert.False(t, ok)

	c.Set("8851234567890", testProduct())

	got, ok := c.Get("8851234567890")
	assert.True(t, ok)
	assert.Equal(t, "100001", got.MaterialCode)
}

func TestCache_TTLExpiry(t *testing.T) {
	c := NewCache(5 * time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("8851234567890", testProduct())

	// Just before expiry: hit.
	now = now.Add(5*time.Minute - time.Second)
	_, ok := c.Get("8851234567890")
	assert.True(t, ok)

	// Past expiry: never returned, counts as a miss.
	now = now.Add(2 * time.Second)
	_, ok = c.Get("8851234567890")
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 0, stats.TotalEntries, "expired entry is evicted on Get")
}

func TestCache_RemoveAndClear(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("8851234567890", testProduct())

	assert.True(t, c.Remove("8851234567890"))
	assert.False(t, c.Remove("8851234567890"))

	c.Set("8851234567890", testProduct())
	c.Clear()

	stats := c.Stats()
	assert.Equal(t, 0, stats.TotalEntries)
	assert.Equal(t, uint64(0), stats.Hits)
	assert.Equal(t, uint64(0), stats.Misses)
}

func TestCache_DisabledTTL(t *testing.T) {
	c := NewCache(0)
	c.Set("8851234567890", testProduct())

	_, ok := c.Get("8851234567890")
	assert.False(t, ok)
}

func TestCache_HitRate(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("8851234567890", testProduct())

	c.Get("8851234567890") // hit
	c.Get("0000000000000") // miss

	assert.InDelta(t, 50.0, c.Stats().HitRate, 0.01)
}
