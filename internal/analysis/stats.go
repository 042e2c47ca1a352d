package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// minCorrelationPoints is the number of jointly valid samples Correlate needs.
const minCorrelationPoints = 10

// ValidValues returns the non-NaN samples of data in their original order.
func ValidValues(data []float64) []float64 {
	valid := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	return valid
}

// Clip bounds every sample to [lo, hi]. NaN samples stay NaN.
func Clip(data []float64, lo, hi float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = ClipValue(v, lo, hi)
	}
	return out
}

// ClipValue bounds v to [lo, hi]. NaN is returned unchanged.
func ClipValue(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Max(lo, math.Min(hi, v))
}

// NanMean is the mean of the valid samples, NaN if there are none.
func NanMean(data []float64) float64 {
	valid := ValidValues(data)
	if len(valid) == 0 {
		return math.NaN()
	}
	return stat.Mean(valid, nil)
}

// NanStd is the population standard deviation of the valid samples.
func NanStd(data []float64) float64 {
	valid := ValidValues(data)
	if len(valid) == 0 {
		return math.NaN()
	}
	_, variance := stat.PopMeanVariance(valid, nil)
	return math.Sqrt(variance)
}

// NanMin is the smallest valid sample, NaN if there are none.
func NanMin(data []float64) float64 {
	valid := ValidValues(data)
	if len(valid) == 0 {
		return math.NaN()
	}
	return floats.Min(valid)
}

// NanMax is the largest valid sample, NaN if there are none.
func NanMax(data []float64) float64 {
	valid := ValidValues(data)
	if len(valid) == 0 {
		return math.NaN()
	}
	return floats.Max(valid)
}

// Percentile returns the p-th percentile (0-100) of the valid samples using
// linear interpolation between the closest ranks. NaN if there are no valid
// samples.
func Percentile(data []float64, p float64) float64 {
	sorted := ValidValues(data)
	if len(sorted) == 0 {
		return math.NaN()
	}
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := (p / 100) * float64(n-1)
	if pos <= 0 {
		return sorted[0]
	}
	if pos >= float64(n-1) {
		return sorted[n-1]
	}
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Statistics computes the QC record for a curve. It fails with
// ErrNoValidData when every sample is NaN.
func Statistics(data []float64, name string) (QCStats, error) {
	valid := ValidValues(data)
	if len(valid) == 0 {
		return QCStats{CurveName: name, TotalPoints: len(data)},
			NewError("statistics", name, ErrNoValidData, "%d samples, none valid", len(data))
	}
	sorted := append([]float64(nil), valid...)
	sort.Float64s(sorted)

	mean, variance := stat.PopMeanVariance(valid, nil)
	nulls := len(data) - len(valid)
	minVal, maxVal := sorted[0], sorted[len(sorted)-1]

	return QCStats{
		CurveName:      name,
		TotalPoints:    len(data),
		ValidPoints:    len(valid),
		NullCount:      nulls,
		NullPercentage: float64(nulls) / float64(len(data)) * 100,
		Min:            minVal,
		Max:            maxVal,
		Range:          maxVal - minVal,
		Mean:           mean,
		Median:         percentileSorted(sorted, 50),
		Std:            math.Sqrt(variance),
		Variance:       variance,
		P10:            percentileSorted(sorted, 10),
		P25:            percentileSorted(sorted, 25),
		P50:            percentileSorted(sorted, 50),
		P75:            percentileSorted(sorted, 75),
		P90:            percentileSorted(sorted, 90),
	}, nil
}

// JointValid returns the samples of a and b where both are valid.
func JointValid(a, b []float64) ([]float64, []float64) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	xa := make([]float64, 0, n)
	xb := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		xa = append(xa, a[i])
		xb = append(xb, b[i])
	}
	return xa, xb
}

// Pearson is the correlation coefficient over the jointly valid samples of
// a and b. It returns NaN when fewer than two joint samples exist or either
// curve is constant.
func Pearson(a, b []float64) float64 {
	xa, xb := JointValid(a, b)
	if len(xa) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xa, xb, nil)
}

// Correlate computes the Pearson correlation of two aligned curves together
// with its two-sided p-value.
func Correlate(a, b []float64) (Correlation, error) {
	if err := CheckSameLength("correlate", []string{"a", "b"}, a, b); err != nil {
		return Correlation{}, err
	}
	xa, xb := JointValid(a, b)
	if len(xa) < minCorrelationPoints {
		return Correlation{Points: len(xa)}, NewError("correlate", "", ErrNoValidData,
			"%d joint samples, need %d", len(xa), minCorrelationPoints)
	}

	r := stat.Correlation(xa, xb, nil)
	if math.IsNaN(r) {
		return Correlation{R: r, PValue: math.NaN(), Points: len(xa)}, nil
	}
	p := 0.0
	if math.Abs(r) < 1 {
		df := float64(len(xa) - 2)
		t := r * math.Sqrt(df/(1-r*r))
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
		p = 2 * (1 - dist.CDF(math.Abs(t)))
	}
	return Correlation{
		R:           r,
		PValue:      p,
		Points:      len(xa),
		Significant: p < 0.05,
	}, nil
}

// CountWhere counts the valid samples that satisfy pred.
func CountWhere(data []float64, pred func(float64) bool) int {
	n := 0
	for _, v := range data {
		if !math.IsNaN(v) && pred(v) {
			n++
		}
	}
	return n
}
