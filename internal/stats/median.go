package stats

import (
	"math"
	"slices"
)

// Median returns the middle value, averaging the two middle values for an
// even count. Empty input returns 0.
func Median(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}

	// Sort a copy, callers keep their order
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return float64(sorted[n/2-1]+sorted[n/2]) / 2
	}
	return float64(sorted[n/2])
}

// Round rounds x to the given number of decimal digits, ties to even
func Round(x float64, digits int) float64 {
	if digits <= 0 {
		return math.RoundToEven(x)
	}
	pow := math.Pow10(digits)
	return math.RoundToEven(x*pow) / pow
}
