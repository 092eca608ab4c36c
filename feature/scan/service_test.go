package scan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stockcount/feature/detection"
	"stockcount/feature/inventory"
	"stockcount/feature/product"
	"stockcount/feature/units"
)

// catalogStub serves a fixed two-product catalog keyed by barcode, with
// an optional per-request delay to exercise the stale-scan guard.
type catalogStub struct {
	srv      *httptest.Server
	delay    time.Duration
	requests atomic.Int32
}

func newCatalogStub(t *testing.T) *catalogStub {
	t.Helper()
	s := &catalogStub{}

	products := map[string]map[string]any{
		"8851234567890": {
			"materialCode": "100001",
			"name":         "น้ำดื่ม 600ml",
			"brand":        "Crystal",
			"category":     "Beverage",
			"barcodes":     map[string]any{"ea": "8851234567890", "cs": "18851234567897", "primary": "8851234567890"},
		},
		"18851234567897": {
			"materialCode": "100001",
			"name":         "น้ำดื่ม 600ml",
			"brand":        "Crystal",
			"category":     "Beverage",
			"barcodes":     map[string]any{"ea": "8851234567890", "cs": "18851234567897", "primary": "8851234567890"},
		},
		"8859999999991": {
			"materialCode": "200002",
			"name":         "Cola 325ml",
			"brand":        "Fizz",
			"category":     "Beverage",
			"barcodes":     map[string]any{"ea": "8859999999991", "primary": "8859999999991"},
		},
	}

	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		if s.delay > 0 {
			time.Sleep(s.delay)
		}
		w.Header().Set("Content-Type", "application/json")
		p, ok := products[r.URL.Query().Get("barcode")]
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": p})
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func testService(t *testing.T, catalog *catalogStub) (*Service, *inventory.Store) {
	t.Helper()
	products := product.NewService(product.Config{
		LookupURL:     catalog.srv.URL,
		RetryAttempts: 1,
	}, zap.NewNop())
	store := inventory.NewStore(nil, zap.NewNop())
	return NewService(products, store, zap.NewNop()), store
}

func TestProcess_SimpleScan(t *testing.T) {
	svc, store := testService(t, newCatalogStub(t))

	result, err := svc.Process(context.Background(), Request{Barcode: "8851234567890", Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, units.EA, result.Unit)
	assert.Equal(t, "100001", result.Record.MaterialCode)
	assert.Equal(t, 3, result.Record.Quantities.EA)

	records := store.List()
	require.Len(t, records, 1)
}

func TestProcess_DefaultsToOneUnit(t *testing.T) {
	svc, _ := testService(t, newCatalogStub(t))

	result, err := svc.Process(context.Background(), Request{Barcode: "8851234567890"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Record.Quantities.EA)
}

func TestProcess_CaseBarcodeUsesCaseUnit(t *testing.T) {
	svc, _ := testService(t, newCatalogStub(t))

	result, err := svc.Process(context.Background(), Request{Barcode: "18851234567897", Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, units.CS, result.Unit)
	assert.Equal(t, 2, result.Record.Quantities.CS)
	assert.Equal(t, 0, result.Record.Quantities.EA)
	assert.Equal(t, units.EA, result.DualUnit.SecondaryUnit.Type,
		"each is the next unit below case for this product")
}

func TestProcess_DetailedQuantity(t *testing.T) {
	svc, _ := testService(t, newCatalogStub(t))

	result, err := svc.Process(context.Background(), Request{
		Barcode:  "18851234567897",
		Detailed: &DetailedQuantity{Major: 2, Remainder: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Record.Quantities.CS)
	assert.Equal(t, 5, result.Record.Quantities.EA)
	assert.Equal(t, 7, result.Record.Quantity)
}

func TestProcess_SameProductTwoBarcodesOneRecord(t *testing.T) {
	svc, store := testService(t, newCatalogStub(t))
	ctx := context.Background()

	_, err := svc.Process(ctx, Request{Barcode: "8851234567890", Quantity: 5})
	require.NoError(t, err)
	_, err = svc.Process(ctx, Request{Barcode: "18851234567897", Quantity: 2})
	require.NoError(t, err)

	records := store.List()
	require.Len(t, records, 1, "material code is the aggregation key, not the barcode")
	assert.Equal(t, 5, records[0].Quantities.EA)
	assert.Equal(t, 2, records[0].Quantities.CS)
}

func TestProcess_Errors(t *testing.T) {
	svc, store := testService(t, newCatalogStub(t))
	ctx := context.Background()

	_, err := svc.Process(ctx, Request{Barcode: "123", Quantity: 1})
	assert.ErrorIs(t, err, product.ErrInvalidBarcode)

	_, err = svc.Process(ctx, Request{Barcode: "4000000000002", Quantity: 1})
	assert.ErrorIs(t, err, product.ErrNotFound)

	_, err = svc.Process(ctx, Request{Barcode: "8851234567890", Quantity: -1})
	assert.Error(t, err)

	_, err = svc.Process(ctx, Request{
		Barcode:  "8851234567890",
		Detailed: &DetailedQuantity{Major: 0, Remainder: 0},
	})
	assert.Error(t, err)

	assert.Empty(t, store.List())
}

func TestProcess_StaleScanIsDropped(t *testing.T) {
	catalog := newCatalogStub(t)
	catalog.delay = 50 * time.Millisecond
	svc, store := testService(t, catalog)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = svc.Process(context.Background(), Request{Barcode: "8851234567890", Quantity: 1})
	}()

	// Start a second scan while the first is still waiting on the
	// catalog. Exactly one of the two must land in the store.
	time.Sleep(10 * time.Millisecond)
	_, secondErr := svc.Process(context.Background(), Request{Barcode: "8859999999991", Quantity: 1})
	wg.Wait()

	require.NoError(t, secondErr)
	assert.ErrorIs(t, firstErr, ErrSuperseded)

	records := store.List()
	require.Len(t, records, 1)
	assert.Equal(t, "200002", records[0].MaterialCode)
}

func TestPreviewScan(t *testing.T) {
	svc, store := testService(t, newCatalogStub(t))

	preview, err := svc.PreviewScan(context.Background(), "18851234567897")
	require.NoError(t, err)
	assert.Equal(t, units.CS, preview.Unit)
	assert.False(t, preview.SingleUnit)
	assert.Equal(t, "ลัง", preview.DualUnit.PrimaryUnit.ShortLabel)
	assert.Empty(t, store.List(), "preview must not count anything")

	preview, err = svc.PreviewScan(context.Background(), "8859999999991")
	require.NoError(t, err)
	assert.True(t, preview.SingleUnit)
	assert.True(t, preview.DualUnit.AllowFractional,
		"each-only product falls back to fractional entry")
}

func TestConsume_CountsCandidates(t *testing.T) {
	svc, store := testService(t, newCatalogStub(t))

	candidates := make(chan detection.Candidate, 3)
	candidates <- detection.Candidate{RawValue: "8851234567890"}
	candidates <- detection.Candidate{RawValue: "4000000000002"} // unknown, skipped
	candidates <- detection.Candidate{RawValue: "8851234567890"}
	close(candidates)

	svc.Consume(context.Background(), candidates)

	records := store.List()
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Quantities.EA)
}
