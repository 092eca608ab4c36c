package inventory

import (
	"fmt"

	"stockcount/feature/units"
)

type inputKind int

const (
	kindSimple inputKind = iota
	kindDetailed
)

// Input is the quantity entered for one scan. It is either a simple
// count in the scanned unit, or a detailed major/remainder pair for
// dual-unit entry. The two shapes are resolved into per-unit additions
// at the aggregation boundary, never before.
type Input struct {
	kind      inputKind
	value     int
	major     int
	remainder int
}

// Simple builds an input counted entirely in the scanned unit.
func Simple(value int) Input {
	return Input{kind: kindSimple, value: value}
}

// Detailed builds a dual-unit input: major counts the scanned unit,
// remainder counts the secondary unit below it.
func Detailed(major, remainder int) Input {
	return Input{kind: kindDetailed, major: major, remainder: remainder}
}

// IsDetailed reports whether the input carries a major/remainder pair.
func (in Input) IsDetailed() bool {
	return in.kind == kindDetailed
}

// Addition is one per-unit increment produced by resolving an Input.
type Addition struct {
	Unit       units.UnitType
	Quantity   int
	Fractional bool
}

// Additions resolves the input against the dual-unit layout of the
// scanned product. A simple input yields one addition in the scanned
// unit. A detailed input yields up to two: the major count in the
// scanned unit and the remainder in the secondary unit (the fractional
// fallback lands on EA). Zero-quantity additions are omitted.
func (in Input) Additions(dual units.DualUnitInput) ([]Addition, error) {
	switch in.kind {
	case kindSimple:
		if in.value <= 0 {
			return nil, fmt.Errorf("quantity must be greater than zero, got %d", in.value)
		}
		return []Addition{{Unit: dual.PrimaryUnit.Type, Quantity: in.value}}, nil

	case kindDetailed:
		if err := units.ValidateDualInput(in.major, in.remainder, dual); err != nil {
			return nil, err
		}
		var adds []Addition
		if in.major > 0 {
			adds = append(adds, Addition{Unit: dual.PrimaryUnit.Type, Quantity: in.major})
		}
		if in.remainder > 0 {
			adds = append(adds, Addition{
				Unit:       dual.SecondaryUnit.Type,
				Quantity:   in.remainder,
				Fractional: dual.AllowFractional,
			})
		}
		return adds, nil
	}
	return nil, fmt.Errorf("unknown quantity input kind %d", in.kind)
}
