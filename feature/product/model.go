package product

import "stockcount/feature/units"

// Barcodes holds the per-unit barcodes of a product. A product carries
// at most one barcode per unit type; Primary is the one shown in the UI
// and ScannedType records which unit the current scan matched.
type Barcodes struct {
	EA          string         `json:"ea,omitempty"`
	DSP         string         `json:"dsp,omitempty"`
	CS          string         `json:"cs,omitempty"`
	Primary     string         `json:"primary"`
	ScannedType units.UnitType `json:"scannedType,omitempty"`
}

// Product is a catalog entity resolved from a barcode lookup. It is
// immutable once fetched; the cache owns it for its TTL window.
type Product struct {
	// MaterialCode is the canonical per-product identity used for
	// aggregation. Distinct from any single barcode.
	MaterialCode string   `json:"materialCode"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Brand        string   `json:"brand"`
	Category     string   `json:"category"`
	ProductGroup string   `json:"productGroup"`
	Size         string   `json:"size,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	PackSize     int      `json:"packSize,omitempty"`
	Status       string   `json:"status,omitempty"`
	Barcodes     Barcodes `json:"barcodes"`
}

// AvailableUnits returns the unit types this product carries barcodes
// for, in priority order (cs, dsp, ea).
func (p *Product) AvailableUnits() []units.UnitType {
	var available []units.UnitType
	if p.Barcodes.CS != "" {
		available = append(available, units.CS)
	}
	if p.Barcodes.DSP != "" {
		available = append(available, units.DSP)
	}
	if p.Barcodes.EA != "" {
		available = append(available, units.EA)
	}
	return available
}

// BarcodeFor returns the barcode registered for the given unit type, or
// the empty string if the product has none.
func (p *Product) BarcodeFor(u units.UnitType) string {
	switch u {
	case units.CS:
		return p.Barcodes.CS
	case units.DSP:
		return p.Barcodes.DSP
	case units.EA:
		return p.Barcodes.EA
	}
	return ""
}

// UnitForBarcode reports which unit type a normalized barcode belongs
// to on this product.
func (p *Product) UnitForBarcode(barcode string) (units.UnitType, bool) {
	switch barcode {
	case "":
		return "", false
	case p.Barcodes.CS:
		return units.CS, true
	case p.Barcodes.DSP:
		return units.DSP, true
	case p.Barcodes.EA:
		return units.EA, true
	}
	return "", false
}
