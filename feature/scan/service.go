package scan

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"stockcount/core/metrics"
	"stockcount/feature/barcode"
	"stockcount/feature/detection"
	"stockcount/feature/inventory"
	"stockcount/feature/product"
	"stockcount/feature/units"
)

// ErrSuperseded means a newer scan started while this one was waiting
// on the lookup boundary. The late result is dropped, never counted.
var ErrSuperseded = errors.New("scan superseded by a newer scan")

// DetailedQuantity carries a dual-unit entry: the major count in the
// scanned unit plus a remainder in the unit below it.
type DetailedQuantity struct {
	Major     int `json:"major"`
	Remainder int `json:"remainder"`
}

// Request is one scan submission.
type Request struct {
	Barcode  string            `json:"barcode"`
	Quantity int               `json:"quantity"`
	Detailed *DetailedQuantity `json:"detailed,omitempty"`
}

// Result is the outcome of an accepted scan.
type Result struct {
	Product    *product.Product    `json:"product"`
	Record     *inventory.Record   `json:"record"`
	Unit       units.UnitType      `json:"unit"`
	DualUnit   units.DualUnitInput `json:"dualUnit"`
	Validation barcode.Validation  `json:"validation"`
	Warning    string              `json:"warning,omitempty"`
}

// Preview describes how a barcode would be counted, without mutating
// anything. Used to render the quantity form before submission.
type Preview struct {
	Product    *product.Product    `json:"product"`
	Unit       units.UnitType      `json:"unit"`
	SingleUnit bool                `json:"singleUnit"`
	DualUnit   units.DualUnitInput `json:"dualUnit"`
	Validation barcode.Validation  `json:"validation"`
}

// Service runs the scan pipeline: validate, resolve, pick the unit,
// fold into the inventory store.
type Service struct {
	products *product.Service
	store    *inventory.Store
	logger   *zap.Logger

	// epoch increments on every submission. A scan that comes back from
	// the lookup boundary after a newer scan has started is stale and
	// must not reach the store; comparing epochs makes the drop positive
	// instead of relying on timing.
	epoch atomic.Uint64
}

// NewService creates the scan pipeline over the product service and
// inventory store.
func NewService(products *product.Service, store *inventory.Store, logger *zap.Logger) *Service {
	return &Service{
		products: products,
		store:    store,
		logger:   logger,
	}
}

// Process runs one scan through the pipeline. A zero Quantity with no
// Detailed pair counts as one unit. The returned error is one of the
// product sentinels, ErrSuperseded, or a validation error from the
// quantity or store layer; on persistence failure the scan is still
// counted and Result.Warning is set.
func (s *Service) Process(ctx context.Context, req Request) (*Result, error) {
	epoch := s.epoch.Add(1)

	p, validation, err := s.products.Lookup(ctx, req.Barcode)
	if err != nil {
		metrics.ScansTotal.WithLabelValues(outcomeFor(err)).Inc()
		return &Result{Validation: validation}, err
	}

	if s.epoch.Load() != epoch {
		metrics.ScansTotal.WithLabelValues("superseded").Inc()
		s.logger.Debug("Dropping stale scan result",
			zap.String("barcode", validation.Normalized))
		return nil, ErrSuperseded
	}

	unit := scannedUnit(p)
	dual := units.Resolve(unit, p.AvailableUnits())

	input := inventory.Simple(1)
	switch {
	case req.Detailed != nil:
		input = inventory.Detailed(req.Detailed.Major, req.Detailed.Remainder)
	case req.Quantity > 0:
		input = inventory.Simple(req.Quantity)
	case req.Quantity < 0:
		metrics.ScansTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("quantity must be greater than zero, got %d", req.Quantity)
	}

	adds, err := input.Additions(dual)
	if err != nil {
		metrics.ScansTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	rec, err := s.store.Apply(ctx, p, adds)
	if err != nil && !errors.Is(err, inventory.ErrPersistence) {
		metrics.ScansTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	metrics.ScansTotal.WithLabelValues("accepted").Inc()
	result := &Result{
		Product:    p,
		Record:     rec,
		Unit:       unit,
		DualUnit:   dual,
		Validation: validation,
	}
	if err != nil {
		result.Warning = err.Error()
	}
	return result, nil
}

// PreviewScan resolves a barcode and reports the unit layout it would
// be counted under, without touching the store.
func (s *Service) PreviewScan(ctx context.Context, raw string) (*Preview, error) {
	p, validation, err := s.products.Lookup(ctx, raw)
	if err != nil {
		return &Preview{Validation: validation}, err
	}

	unit := scannedUnit(p)
	return &Preview{
		Product:    p,
		Unit:       unit,
		SingleUnit: units.IsSingleUnit(unit),
		DualUnit:   units.Resolve(unit, p.AvailableUnits()),
		Validation: validation,
	}, nil
}

// Consume feeds detection loop candidates through the pipeline, one
// unit per candidate. Lookup misses and stale drops are logged and
// skipped; the consumer only stops when the channel closes or the
// context ends.
func (s *Service) Consume(ctx context.Context, candidates <-chan detection.Candidate) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-candidates:
			if !ok {
				return
			}
			result, err := s.Process(ctx, Request{Barcode: c.RawValue})
			if err != nil {
				s.logger.Warn("Detected barcode not counted",
					zap.String("barcode", c.RawValue),
					zap.Error(err))
				continue
			}
			s.logger.Info("Counted scan",
				zap.String("materialCode", result.Record.MaterialCode),
				zap.String("unit", string(result.Unit)),
				zap.Int("total", result.Record.Quantity))
		}
	}
}

// scannedUnit picks the unit the barcode maps to, defaulting to each
// when the catalog did not mark one.
func scannedUnit(p *product.Product) units.UnitType {
	if units.Valid(p.Barcodes.ScannedType) {
		return p.Barcodes.ScannedType
	}
	return units.EA
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, product.ErrInvalidBarcode):
		return "invalid_barcode"
	case errors.Is(err, product.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
