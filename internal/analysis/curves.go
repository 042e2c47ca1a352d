package analysis

import "math"

// Common physical ranges used when validating input curves.
var (
	RangeFraction = &Range{Min: 0, Max: 1}
	RangeGR       = &Range{Min: 0, Max: 1000}
	RangeRT       = &Range{Min: 0.1, Max: 1000}
	RangePorosity = &Range{Min: 0.01, Max: 0.5}
	RangePerm     = &Range{Min: 0.001, Max: 10000}
	RangePE       = &Range{Min: 0.5, Max: 10}
)

// Map applies fn to every sample of data.
func Map(data []float64, fn func(float64) float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = fn(v)
	}
	return out
}

// Zip applies fn to every pair of samples of a and b. Both must have the
// same length.
func Zip(a, b []float64, fn func(x, y float64) float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = fn(a[i], b[i])
	}
	return out
}

// Log10 returns the base-10 logarithm of every sample.
func Log10(data []float64) []float64 {
	return Map(data, math.Log10)
}

// Fill returns a curve of n samples all equal to v.
func Fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Percent is count/total as a percentage, 0 when total is 0.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
