package barcode

import (
	"fmt"
	"strings"
)

// Format names detected by length.
const (
	FormatEAN8  = "EAN-8"
	FormatUPCA  = "UPC-A"
	FormatEAN13 = "EAN-13"
	FormatITF14 = "ITF-14"
)

// validLengths are the accepted digit counts for retail barcodes.
var validLengths = map[int]string{
	8:  FormatEAN8,
	12: FormatUPCA,
	13: FormatEAN13,
	14: FormatITF14,
}

// Validation is the outcome of validating a raw barcode string.
// Errors block further processing; Warnings flag suspicious but
// acceptable inputs.
type Validation struct {
	IsValid        bool     `json:"isValid"`
	Normalized     string   `json:"normalized"`
	DetectedFormat string   `json:"detectedFormat,omitempty"`
	Errors         []string `json:"errors,omitempty"`
	Suggestions    []string `json:"suggestions,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}

// Normalize strips every non-digit character from raw.
// Returns the empty string if no digits remain.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DetectFormat returns the symbology implied by the digit count of an
// already-normalized barcode, or the empty string for non-standard lengths.
func DetectFormat(normalized string) string {
	return validLengths[len(normalized)]
}

// Validate normalizes raw and checks it against the accepted retail
// formats. Invalid inputs come back with correction suggestions so the
// operator can fix a mistyped or partially read code.
func Validate(raw string) Validation {
	normalized := Normalize(raw)
	v := Validation{Normalized: normalized}

	if normalized == "" {
		v.Errors = append(v.Errors, "barcode contains no digits")
		return v
	}

	format, ok := validLengths[len(normalized)]
	if !ok {
		v.Errors = append(v.Errors, fmt.Sprintf("unsupported barcode length %d (expected 8, 12, 13 or 14)", len(normalized)))
		v.Suggestions = suggestCorrections(normalized)
		return v
	}

	v.IsValid = true
	v.DetectedFormat = format

	// Heuristic flags only. A run of identical digits or a clean
	// arithmetic progression is almost always a misread, but the
	// operator may still submit it.
	if allSameDigit(normalized) {
		v.Warnings = append(v.Warnings, "all digits identical; likely a misread")
	} else if len(normalized) > 4 && isArithmeticSequence(normalized) {
		v.Warnings = append(v.Warnings, "digits form an arithmetic sequence; likely a misread")
	}

	return v
}

// suggestCorrections proposes fixes for a barcode with a non-standard
// length: zero-padding short codes to 12/13 digits and trimming long
// codes to 13 from either end.
func suggestCorrections(normalized string) []string {
	var suggestions []string

	if len(normalized) < 8 {
		suggestions = append(suggestions, "barcode too short; retail barcodes have at least 8 digits")
		if len(normalized) >= 4 {
			suggestions = append(suggestions,
				"pad with leading zeros: "+zeroPad(normalized, 12)+" or "+zeroPad(normalized, 13))
		}
		return suggestions
	}

	if len(normalized) > 14 {
		suggestions = append(suggestions, "barcode too long; retail barcodes have at most 14 digits")
		suggestions = append(suggestions,
			"trim to 13 digits: "+normalized[len(normalized)-13:]+" or "+normalized[:13])
		return suggestions
	}

	// 9-11 digits: between EAN-8 and UPC-A.
	suggestions = append(suggestions, "non-standard length")
	suggestions = append(suggestions,
		"pad with leading zeros: "+zeroPad(normalized, 12)+" or "+zeroPad(normalized, 13))
	return suggestions
}

func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return len(s) > 0
}

// isArithmeticSequence reports whether consecutive digits differ by a
// constant step, e.g. "123456" or "97531".
func isArithmeticSequence(s string) bool {
	if len(s) < 3 {
		return false
	}
	step := int(s[1]) - int(s[0])
	for i := 2; i < len(s); i++ {
		if int(s[i])-int(s[i-1]) != step {
			return false
		}
	}
	return true
}
