package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"stockcount/feature/product"
	"stockcount/feature/units"
)

var (
	// ErrNotFound is returned when a material code has no record.
	ErrNotFound = errors.New("inventory record not found")
	// ErrUnknownUnit is returned for a unit outside cs/dsp/ea.
	ErrUnknownUnit = errors.New("unknown unit type")
	// ErrPersistence wraps snapshot write failures. The in-memory state
	// stays authoritative; callers surface the warning and move on.
	ErrPersistence = errors.New("inventory snapshot not persisted")
)

// Summary is the aggregate projection over all records.
type Summary struct {
	TotalRecords  int            `json:"totalRecords"`
	TotalQuantity int            `json:"totalQuantity"`
	LastUpdate    *time.Time     `json:"lastUpdate,omitempty"`
	Categories    map[string]int `json:"categories"`
	Brands        map[string]int `json:"brands"`
	Units         UnitBreakdown  `json:"units"`

	// UnitProducts counts the distinct products counted through each
	// unit, independent of how many pieces each holds.
	UnitProducts UnitBreakdown `json:"unitProducts"`
}

// UnitBreakdown totals each unit counter across all records.
type UnitBreakdown struct {
	CS  int `json:"cs"`
	DSP int `json:"dsp"`
	EA  int `json:"ea"`
}

// Store is the in-memory aggregation state, keyed by material code.
// All access goes through the mutex; reads hand out copies so callers
// can never mutate shared state.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record
	repo    Repository
	logger  *zap.Logger
	subs    []chan struct{}

	now func() time.Time
}

// NewStore creates an empty store. repo may be nil, in which case the
// store runs memory-only.
func NewStore(repo Repository, logger *zap.Logger) *Store {
	return &Store{
		records: make(map[string]*Record),
		repo:    repo,
		logger:  logger,
		now:     time.Now,
	}
}

// Load replaces the in-memory state with the persisted snapshot. A
// missing or discarded snapshot leaves the store empty without error.
func (s *Store) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	records, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading inventory snapshot: %w", err)
	}

	s.mu.Lock()
	s.records = make(map[string]*Record, len(records))
	for i := range records {
		rec := records[i]
		if rec.MaterialCode == "" {
			continue
		}
		s.records[rec.MaterialCode] = &rec
	}
	count := len(s.records)
	s.mu.Unlock()

	s.logger.Info("Inventory snapshot loaded", zap.Int("records", count))
	return nil
}

// Upsert applies a single-unit addition for a scanned product.
func (s *Store) Upsert(ctx context.Context, p *product.Product, quantity int, unit units.UnitType) (*Record, error) {
	return s.Apply(ctx, p, []Addition{{Unit: unit, Quantity: quantity}})
}

// Apply folds one or more per-unit additions into the record for the
// product's material code, creating the record on first contact.
// Repeated scans accumulate; counters are never overwritten here.
func (s *Store) Apply(ctx context.Context, p *product.Product, adds []Addition) (*Record, error) {
	if p == nil || p.MaterialCode == "" {
		return nil, errors.New("product has no material code")
	}
	if len(adds) == 0 {
		return nil, errors.New("no quantity additions given")
	}
	for _, add := range adds {
		if !units.Valid(add.Unit) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, add.Unit)
		}
		if add.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be greater than zero, got %d", add.Quantity)
		}
	}

	s.mu.Lock()
	rec, ok := s.records[p.MaterialCode]
	if !ok {
		rec = &Record{
			MaterialCode: p.MaterialCode,
			Name:         p.Name,
			Description:  p.Description,
			Brand:        p.Brand,
			Category:     p.Category,
			ProductGroup: p.ProductGroup,
			Size:         p.Size,
		}
		s.records[p.MaterialCode] = rec
	}
	for _, add := range adds {
		rec.Quantities.Add(add.Unit, add.Quantity)
		if bc := p.BarcodeFor(add.Unit); bc != "" {
			if rec.ScannedBarcodes == nil {
				rec.ScannedBarcodes = make(map[units.UnitType]string, 3)
			}
			rec.ScannedBarcodes[add.Unit] = bc
		}
	}
	rec.recompute(s.now())
	out := cloneRecord(rec)
	s.mu.Unlock()

	s.notify()
	return out, s.persist(ctx)
}

// SetUnitQuantity overwrites one unit counter of an existing record.
// Used by manual corrections; negative values are rejected.
func (s *Store) SetUnitQuantity(ctx context.Context, materialCode string, unit units.UnitType, value int) (*Record, error) {
	if !units.Valid(unit) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	if value < 0 {
		return nil, fmt.Errorf("quantity must be 0 or greater, got %d", value)
	}

	s.mu.Lock()
	rec, ok := s.records[materialCode]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	rec.Quantities.Set(unit, value)
	rec.recompute(s.now())
	out := cloneRecord(rec)
	s.mu.Unlock()

	s.notify()
	return out, s.persist(ctx)
}

// Remove deletes a whole record.
func (s *Store) Remove(ctx context.Context, materialCode string) error {
	s.mu.Lock()
	if _, ok := s.records[materialCode]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.records, materialCode)
	s.mu.Unlock()

	s.notify()
	return s.persist(ctx)
}

// Clear drops every record and the persisted snapshot.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.records = make(map[string]*Record)
	s.mu.Unlock()

	s.notify()
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Error("Failed to clear inventory snapshot", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Get returns a copy of one record.
func (s *Store) Get(materialCode string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[materialCode]
	if !ok {
		return nil, false
	}
	return cloneRecord(rec), true
}

// List returns all records, most recently updated first.
func (s *Store) List() []Record {
	s.mu.RLock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, *cloneRecord(rec))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastUpdated.Equal(out[j].LastUpdated) {
			return out[i].LastUpdated.After(out[j].LastUpdated)
		}
		return out[i].MaterialCode < out[j].MaterialCode
	})
	return out
}

// Search filters records by a case-insensitive term matched against
// name, brand, category, material code and scanned barcodes. An empty
// term returns everything.
func (s *Store) Search(term string) []Record {
	term = strings.ToLower(strings.TrimSpace(term))
	all := s.List()
	if term == "" {
		return all
	}

	out := make([]Record, 0, len(all))
	for _, rec := range all {
		if recordMatches(&rec, term) {
			out = append(out, rec)
		}
	}
	return out
}

func recordMatches(rec *Record, term string) bool {
	for _, field := range []string{rec.Name, rec.Brand, rec.Category, rec.MaterialCode} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	for _, bc := range rec.ScannedBarcodes {
		if strings.Contains(bc, term) {
			return true
		}
	}
	return false
}

// Summary computes the aggregate projection.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := Summary{
		TotalRecords: len(s.records),
		Categories:   make(map[string]int),
		Brands:       make(map[string]int),
	}
	for _, rec := range s.records {
		sum.TotalQuantity += rec.Quantity
		if rec.Category != "" {
			sum.Categories[rec.Category]++
		}
		if rec.Brand != "" {
			sum.Brands[rec.Brand]++
		}
		sum.Units.CS += rec.Quantities.CS
		sum.Units.DSP += rec.Quantities.DSP
		sum.Units.EA += rec.Quantities.EA
		if rec.Quantities.CS > 0 {
			sum.UnitProducts.CS++
		}
		if rec.Quantities.DSP > 0 {
			sum.UnitProducts.DSP++
		}
		if rec.Quantities.EA > 0 {
			sum.UnitProducts.EA++
		}
		if sum.LastUpdate == nil || rec.LastUpdated.After(*sum.LastUpdate) {
			t := rec.LastUpdated
			sum.LastUpdate = &t
		}
	}
	return sum
}

// Subscribe returns a channel that receives a signal after every
// mutation. Signals coalesce; a slow consumer misses intermediate
// updates, never blocks a writer.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// persist writes the current snapshot. Failures are logged and wrapped
// in ErrPersistence; the in-memory mutation is never rolled back.
func (s *Store) persist(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	s.mu.RLock()
	snapshot := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		snapshot = append(snapshot, *cloneRecord(rec))
	}
	s.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].MaterialCode < snapshot[j].MaterialCode
	})

	if err := s.repo.Save(ctx, snapshot); err != nil {
		s.logger.Error("Failed to persist inventory snapshot", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func cloneRecord(rec *Record) *Record {
	out := *rec
	if rec.ScannedBarcodes != nil {
		out.ScannedBarcodes = make(map[units.UnitType]string, len(rec.ScannedBarcodes))
		for k, v := range rec.ScannedBarcodes {
			out.ScannedBarcodes[k] = v
		}
	}
	return &out
}
