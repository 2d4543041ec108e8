package errors

import (
	"strings"

	"github.com/matzehuels/alnglyph/pkg/coord"
)

// ValidateBaseWidth accepts the base widths the mapper understands: 1 for
// nucleotide rows and 3 for rows counted in codons.
func ValidateBaseWidth(w int) error {
	if w != 1 && w != 3 {
		return New(ErrCodeInvalidInput, "base width must be 1 or 3, got %d", w)
	}
	return nil
}

// ValidateRow checks row metadata before it enters a layout pass.
//
// Validation rules:
//   - Base width is 1 or 3
//   - Native range is not decreasing
//   - Circular length, when set, covers the native start
func ValidateRow(r coord.Row) error {
	if err := ValidateBaseWidth(r.BaseWidth); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "row %d", r.Index)
	}
	if r.Native.To < r.Native.From {
		return New(ErrCodeMalformedAlignment, "row %d: native range %v is decreasing", r.Index, r.Native)
	}
	if r.Circular < 0 {
		return New(ErrCodeInvalidInput, "row %d: negative circular length %d", r.Index, r.Circular)
	}
	if r.Circular > 0 && r.Native.From >= r.Circular {
		return New(ErrCodeInvalidInput, "row %d: native start %d outside circular length %d", r.Index, r.Native.From, r.Circular)
	}
	return nil
}

// ValidateDinucleotide checks a splice-site donor or acceptor.
// Empty strings are allowed and mean "unknown".
func ValidateDinucleotide(s string) error {
	if s == "" {
		return nil
	}
	if len(s) != 2 {
		return New(ErrCodeInvalidInput, "splice site %q must be two bases", s)
	}
	if strings.Trim(strings.ToUpper(s), "ACGTUN") != "" {
		return New(ErrCodeInvalidInput, "splice site %q contains non-nucleotide characters", s)
	}
	return nil
}
