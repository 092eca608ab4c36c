package units

import "fmt"

// UnitType identifies a package granularity of a catalog product.
type UnitType string

const (
	// CS is the case/carton unit, the largest granularity.
	CS UnitType = "cs"
	// DSP is the display pack, the intermediate granularity.
	DSP UnitType = "dsp"
	// EA is the each (single item) granularity.
	EA UnitType = "ea"
)

// Column is the aggregation bucket a unit reports into. The canonical
// store always keeps cs, dsp and ea distinct; columns only matter for
// display and export.
type Column string

const (
	ColumnCase  Column = "cs"
	ColumnPiece Column = "piece"
)

// DisplayInfo describes how a unit type is presented to the operator.
type DisplayInfo struct {
	Type        UnitType `json:"type"`
	Label       string   `json:"label"`
	ShortLabel  string   `json:"shortLabel"`
	Description string   `json:"description"`
	Column      Column   `json:"column"`
}

// DualUnitInput describes the quantity form for a scanned product: the
// unit that was scanned plus the next available unit in priority order.
// When no lower-priority unit exists the secondary becomes a synthetic
// fractional each with no backing barcode.
type DualUnitInput struct {
	PrimaryUnit     DisplayInfo `json:"primaryUnit"`
	SecondaryUnit   DisplayInfo `json:"secondaryUnit"`
	AllowFractional bool        `json:"allowFractional"`
}

// priority is the fixed search order for the secondary unit.
var priority = []UnitType{CS, DSP, EA}

var config = map[UnitType]DisplayInfo{
	CS: {
		Type:        CS,
		Label:       "ลัง (Case/Carton)",
		ShortLabel:  "ลัง",
		Description: "หน่วยลังหรือกล่องใหญ่",
		Column:      ColumnCase,
	},
	DSP: {
		Type:        DSP,
		Label:       "แพ็ค (Display Pack)",
		ShortLabel:  "แพ็ค",
		Description: "หน่วยแพ็คสำหรับจัดแสดง",
		Column:      ColumnCase,
	},
	EA: {
		Type:        EA,
		Label:       "ชิ้น (Each)",
		ShortLabel:  "ชิ้น",
		Description: "หน่วยผลิตภัณฑ์ต่อชิ้น",
		Column:      ColumnPiece,
	},
}

// fractional is the synthetic secondary unit used when a product has no
// packaged unit below the scanned one.
var fractional = DisplayInfo{
	Type:        EA,
	Label:       "เศษ (ชิ้น)",
	ShortLabel:  "เศษ",
	Description: "จำนวนเศษที่เหลือ",
	Column:      ColumnPiece,
}

// All returns the three unit types in priority order.
func All() []UnitType {
	out := make([]UnitType, len(priority))
	copy(out, priority)
	return out
}

// Valid reports whether u is one of the three known unit types.
func Valid(u UnitType) bool {
	_, ok := config[u]
	return ok
}

// Display returns the display descriptor for a known unit type.
func Display(u UnitType) DisplayInfo {
	return config[u]
}

// Fractional returns the synthetic fractional-each descriptor.
func Fractional() DisplayInfo {
	return fractional
}

// NextAvailable returns the first unit strictly after current in priority
// order that is present in available, or false if none exists.
func NextAvailable(current UnitType, available []UnitType) (UnitType, bool) {
	idx := -1
	for i, u := range priority {
		if u == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false
	}
	for _, candidate := range priority[idx+1:] {
		for _, a := range available {
			if a == candidate {
				return candidate, true
			}
		}
	}
	return "", false
}

// IsSingleUnit reports whether a scan of this unit needs only one
// quantity field. Each is the smallest granularity, so there is nothing
// below it to break into.
func IsSingleUnit(scanned UnitType) bool {
	return scanned == EA
}

// Resolve builds the dual-unit input configuration for a scan of the
// given unit against the units the product actually carries barcodes
// for. Priority order is fixed: cs → dsp → ea.
func Resolve(scanned UnitType, available []UnitType) DualUnitInput {
	primary := config[scanned]

	if next, ok := NextAvailable(scanned, available); ok {
		return DualUnitInput{
			PrimaryUnit:   primary,
			SecondaryUnit: config[next],
		}
	}

	return DualUnitInput{
		PrimaryUnit:     primary,
		SecondaryUnit:   fractional,
		AllowFractional: true,
	}
}

// ValidateDualInput checks quantity values against a dual-unit form.
// Both values must be non-negative and at least one must be positive.
// The returned error names the offending field.
func ValidateDualInput(primary, secondary int, dual DualUnitInput) error {
	if primary < 0 {
		return fmt.Errorf("%s must be 0 or greater", dual.PrimaryUnit.ShortLabel)
	}
	if secondary < 0 {
		return fmt.Errorf("%s must be 0 or greater", dual.SecondaryUnit.ShortLabel)
	}
	if primary == 0 && secondary == 0 {
		return fmt.Errorf("at least one quantity must be greater than 0")
	}
	return nil
}
