package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_SecondaryPriority(t *testing.T) {
	t.Run("CSWithEAOnly", func(t *testing.T) {
		// Product has cs and ea barcodes, no dsp: secondary skips to ea.
		dual := Resolve(CS, []UnitType{CS, EA})
		assert.Equal(t, CS, dual.PrimaryUnit.Type)
		assert.Equal(t, EA, dual.SecondaryUnit.Type)
		assert.False(t, dual.AllowFractional)
	})

	t.Run("CSWithAllUnits", func(t *testing.T) {
		dual := Resolve(CS, []UnitType{CS, DSP, EA})
		assert.Equal(t, DSP, dual.SecondaryUnit.Type)
		assert.False(t, dual.AllowFractional)
	})

	t.Run("CSOnly", func(t *testing.T) {
		// No lower unit: synthetic fractional each.
		dual := Resolve(CS, []UnitType{CS})
		assert.Equal(t, EA, dual.SecondaryUnit.Type)
		assert.Equal(t, "เศษ", dual.SecondaryUnit.ShortLabel)
		assert.True(t, dual.AllowFractional)
	})

	t.Run("DSPWithEA", func(t *testing.T) {
		dual := Resolve(DSP, []UnitType{DSP, EA})
		assert.Equal(t, EA, dual.SecondaryUnit.Type)
		assert.False(t, dual.AllowFractional)
	})

	t.Run("EAIsAlwaysFractionalSecondary", func(t *testing.T) {
		dual := Resolve(EA, []UnitType{CS, DSP, EA})
		assert.True(t, dual.AllowFractional)
	})
}

func TestIsSingleUnit(t *testing.T) {
	assert.True(t, IsSingleUnit(EA))
	assert.False(t, IsSingleUnit(CS))
	assert.False(t, IsSingleUnit(DSP))
}

func TestNextAvailable(t *testing.T) {
	next, ok := NextAvailable(CS, []UnitType{CS, EA})
	assert.True(t, ok)
	assert.Equal(t, EA, next)

	_, ok = NextAvailable(EA, []UnitType{CS, DSP, EA})
	assert.False(t, ok, "nothing comes after ea")

	_, ok = NextAvailable(CS, []UnitType{CS})
	assert.False(t, ok)
}

func TestValidateDualInput(t *testing.T) {
	dual := Resolve(CS, []UnitType{CS, EA})

	assert.NoError(t, ValidateDualInput(2, 0, dual))
	assert.NoError(t, ValidateDualInput(0, 3, dual))
	assert.NoError(t, ValidateDualInput(1, 1, dual))

	err := ValidateDualInput(-1, 0, dual)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), dual.PrimaryUnit.ShortLabel)
	}

	err = ValidateDualInput(0, -2, dual)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), dual.SecondaryUnit.ShortLabel)
	}

	assert.Error(t, ValidateDualInput(0, 0, dual), "at least one value must be positive")
}

func TestColumns(t *testing.T) {
	// DSP reports into the case-like column for display purposes only;
	// the store keeps the three counters distinct.
	assert.Equal(t, ColumnCase, Display(CS).Column)
	assert.Equal(t, ColumnCase, Display(DSP).Column)
	assert.Equal(t, ColumnPiece, Display(EA).Column)
	assert.Equal(t, ColumnPiece, Fractional().Column)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(CS))
	assert.True(t, Valid(DSP))
	assert.True(t, Valid(EA))
	assert.False(t, Valid(UnitType("pallet")))
}
