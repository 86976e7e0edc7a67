// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/orilevi/business-forecast/pkg/constants"
)

// RoundCurrency rounds a value to whole currency units. Rounding is applied
// only at the point a value is emitted into a result; intermediate
// calculations stay at full precision.
func RoundCurrency(val float64) float64 {
	return math.Round(val)
}

// Ratio returns numerator/denominator, or 0 when the denominator is 0.
func Ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// Clamp constrains val to the inclusive range [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// WithinTolerance checks if two values are within a specified tolerance.
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// IsZero checks if a value is effectively zero (within currency tolerance).
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}
