// Package stats contains the pure numeric logic for percentile trimming.
// This is part of the Functional Core - no I/O, only pure functions.
package stats

import (
	"math"
	"sort"
)

// Percentile returns the q-quantile of values for q in [0, 1], using
// inclusive linear interpolation between order statistics (the same method
// pandas calls "linear"). Returns NaN for an empty sample. The input slice
// is not modified.
func Percentile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	if len(values) == 1 {
		return values[0]
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// TrimAtPercentile returns the values less than or equal to the q-quantile,
// in their original order, along with the quantile itself. Trimming at q=1
// is a no-op.
func TrimAtPercentile(values []float64, q float64) ([]float64, float64) {
	if len(values) == 0 {
		return nil, math.NaN()
	}

	p := Percentile(values, q)
	trimmed := make([]float64, 0, len(values))
	for _, v := range values {
		if v <= p {
			trimmed = append(trimmed, v)
		}
	}
	return trimmed, p
}
