package barcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "489123456789", Normalize("489-123 456-789"))
	assert.Equal(t, "8851234567890", Normalize(" 8851234567890 "))
	assert.Equal(t, "", Normalize("no digits here"))
	assert.Equal(t, "", Normalize(""))

	// Idempotent: normalizing twice yields the same string.
	once := Normalize("4-8.9a1b2c3")
	assert.Equal(t, once, Normalize(once))
}

func TestValidate_Formats(t *testing.T) {
	cases := []struct {
		raw    string
		format string
	}{
		{"48912345", FormatEAN8},
		{"489123456782", FormatUPCA},
		{"8851234567890", FormatEAN13},
		{"18851234567897", FormatITF14},
	}

	for _, tc := range cases {
		t.Run(tc.format, func(t *testing.T) {
			v := Validate(tc.raw)
			assert.True(t, v.IsValid)
			assert.Equal(t, tc.format, v.DetectedFormat)
			assert.Empty(t, v.Errors)
		})
	}
}

func TestValidate_AnyThirteenDigitStringIsEAN13(t *testing.T) {
	v := Validate("9876543210678")
	assert.True(t, v.IsValid)
	assert.Equal(t, FormatEAN13, v.DetectedFormat)
}

func TestValidate_Invalid(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		v := Validate("---")
		assert.False(t, v.IsValid)
		assert.NotEmpty(t, v.Errors)
	})

	t.Run("TooShort", func(t *testing.T) {
		v := Validate("4891")
		assert.False(t, v.IsValid)
		assert.Contains(t, v.Suggestions[1], "000048912")
	})

	t.Run("TooLong", func(t *testing.T) {
		v := Validate("123456789012345")
		assert.False(t, v.IsValid)
		// Trim suggestions keep 13 digits from either end.
		assert.Contains(t, v.Suggestions[1], "3456789012345")
		assert.Contains(t, v.Suggestions[1], "1234567890123")
	})

	t.Run("NonStandardMiddleLength", func(t *testing.T) {
		v := Validate("1234567890") // 10 digits
		assert.False(t, v.IsValid)
		assert.NotEmpty(t, v.Suggestions)
	})
}

func TestValidate_Heuristics(t *testing.T) {
	t.Run("AllSameDigit", func(t *testing.T) {
		v := Validate("1111111111111")
		assert.True(t, v.IsValid, "warnings must not block submission")
		assert.NotEmpty(t, v.Warnings)
	})

	t.Run("ArithmeticSequence", func(t *testing.T) {
		v := Validate("12345678")
		if assert.True(t, v.IsValid) {
			assert.NotEmpty(t, v.Warnings)
		}
	})

	t.Run("NormalBarcodeHasNoWarnings", func(t *testing.T) {
		v := Validate("8851234567890")
		assert.Empty(t, v.Warnings)
	})
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatEAN13, DetectFormat("8851234567890"))
	assert.Equal(t, "", DetectFormat("123"))
}
