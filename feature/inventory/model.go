package inventory

import (
	"time"

	"stockcount/feature/units"
)

// Quantities holds the per-unit counters of a record. Each counter is
// always ≥ 0 and the three stay distinct in the canonical store; they
// are only merged for display and export.
type Quantities struct {
	CS  int `json:"cs"`
	DSP int `json:"dsp"`
	EA  int `json:"ea"`
}

// Get returns the counter for a unit type.
func (q Quantities) Get(u units.UnitType) int {
	switch u {
	case units.CS:
		return q.CS
	case units.DSP:
		return q.DSP
	case units.EA:
		return q.EA
	}
	return 0
}

// Add adds n to the counter for a unit type.
func (q *Quantities) Add(u units.UnitType, n int) {
	switch u {
	case units.CS:
		q.CS += n
	case units.DSP:
		q.DSP += n
	case units.EA:
		q.EA += n
	}
}

// Set overwrites the counter for a unit type.
func (q *Quantities) Set(u units.UnitType, n int) {
	switch u {
	case units.CS:
		q.CS = n
	case units.DSP:
		q.DSP = n
	case units.EA:
		q.EA = n
	}
}

// Total is the sum of the three counters.
func (q Quantities) Total() int {
	return q.CS + q.DSP + q.EA
}

// Record is the aggregation unit for one product. At most one record
// exists per material code; repeated scans of the same product mutate
// the existing record, whichever unit they arrive through.
type Record struct {
	// MaterialCode is the unique aggregation key.
	MaterialCode string `json:"materialCode"`

	// Display fields copied from the product at first insertion.
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Brand        string `json:"brand"`
	Category     string `json:"category"`
	ProductGroup string `json:"productGroup"`
	Size         string `json:"size,omitempty"`

	Quantities Quantities `json:"quantities"`

	// ScannedBarcodes audits the last barcode scanned per unit type.
	// Bounded to three entries, one per unit.
	ScannedBarcodes map[units.UnitType]string `json:"scannedBarcodes,omitempty"`

	// Quantity is the legacy aggregate, kept equal to
	// Quantities.Total() after every mutation.
	Quantity int `json:"quantity"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// recompute refreshes the legacy aggregate and timestamp after a
// mutation.
func (r *Record) recompute(now time.Time) {
	r.Quantity = r.Quantities.Total()
	r.LastUpdated = now
}
