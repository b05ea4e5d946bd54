// Package money normalizes monetary input to int64 cents.
//
// Every amount in the engine is an integer number of the smallest
// currency unit; decimal.Decimal is used only at the parsing and
// formatting boundary so that splitting and re-summing never drift.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

var centsFactor = decimal.NewFromInt(100)

// Parse converts a monetary string to cents. Input may carry a leading
// currency symbol, thousands separators and either decimal separator.
// Empty or non-numeric input yields 0; Parse never fails.
func Parse(input string) int64 {
	cents, err := ParseStrict(input)
	if err != nil {
		return 0
	}

	return cents
}

// ParseStrict is Parse without the lenient fallback: malformed input is
// reported instead of collapsed to zero. Request validation uses this.
func ParseStrict(input string) (int64, error) {
	s := normalize(input)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	return d.Mul(centsFactor).Round(0).IntPart(), nil
}

// Format renders cents as a plain decimal string with two fractional
// digits and no precision loss.
func Format(cents int64) string {
	return decimal.NewFromInt(cents).Div(centsFactor).StringFixed(2)
}

func normalize(input string) string {
	s := strings.TrimSpace(input)

	// Strip a currency symbol on either end.
	for _, sym := range []string{"€", "$", "£", "¥", "₩"} {
		s = strings.TrimPrefix(s, sym)
		s = strings.TrimSuffix(s, sym)
	}

	s = strings.TrimSpace(s)

	// "1.234,56" and "1,234.56" both normalize to "1234.56". Whichever
	// separator appears last is the decimal one.
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	if lastComma > lastDot {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	return s
}
