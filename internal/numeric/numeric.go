// Package numeric provides locale-tolerant decimal parsing and clamping
// helpers shared by every money and percentage field in the service.
package numeric

import (
	"math"
	"strconv"
	"strings"
)

// ParseDecimal converts free-form decimal text into a finite float64.
// It accepts both "3.27" and "3,27". When both '.' and ',' appear, the
// rightmost one is the decimal separator and the other is stripped as a
// thousands separator. Empty or unparseable input yields 0 so that live,
// partial edits never surface an error.
func ParseDecimal(text string) float64 {
	raw := strings.Join(strings.Fields(text), "")
	if raw == "" {
		return 0
	}

	lastDot := strings.LastIndex(raw, ".")
	lastComma := strings.LastIndex(raw, ",")

	normalized := raw
	switch {
	case lastDot != -1 && lastComma != -1:
		decimalSep, thousandsSep := ".", ","
		if lastComma > lastDot {
			decimalSep, thousandsSep = ",", "."
		}
		normalized = strings.ReplaceAll(normalized, thousandsSep, "")
		normalized = strings.Replace(normalized, decimalSep, ".", 1)
	case lastComma != -1:
		normalized = strings.Replace(normalized, ",", ".", 1)
	}

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// Clamp bounds value to [min, max] inclusive. Non-finite input collapses
// to min.
func Clamp(value, min, max float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return min
	}
	return math.Min(max, math.Max(min, value))
}

// IsFinite reports whether value is a usable number.
func IsFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
