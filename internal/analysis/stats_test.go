package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

func TestStatistics(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		data := []float64{1, 2, 3, 4, 5, nan}
		s, err := Statistics(data, "GR")
		require.NoError(t, err)

		assert.Equal(t, "GR", s.CurveName)
		assert.Equal(t, 6, s.TotalPoints)
		assert.Equal(t, 5, s.ValidPoints)
		assert.Equal(t, 1, s.NullCount)
		assert.InDelta(t, 100.0/6, s.NullPercentage, 1e-9)
		assert.Equal(t, 1.0, s.Min)
		assert.Equal(t, 5.0, s.Max)
		assert.Equal(t, 4.0, s.Range)
		assert.InDelta(t, 3.0, s.Mean, 1e-12)
		assert.InDelta(t, 3.0, s.Median, 1e-12)
		assert.InDelta(t, 2.0, s.Variance, 1e-12)
		assert.InDelta(t, math.Sqrt(2), s.Std, 1e-12)
		assert.InDelta(t, 1.4, s.P10, 1e-12)
		assert.InDelta(t, 2.0, s.P25, 1e-12)
		assert.InDelta(t, 3.0, s.P50, 1e-12)
		assert.InDelta(t, 4.0, s.P75, 1e-12)
		assert.InDelta(t, 4.6, s.P90, 1e-12)
	})

	t.Run("all null fails", func(t *testing.T) {
		_, err := Statistics([]float64{nan, nan}, "RHOB")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoValidData))
	})

	t.Run("single value", func(t *testing.T) {
		s, err := Statistics([]float64{7}, "X")
		require.NoError(t, err)
		assert.Equal(t, 7.0, s.P10)
		assert.Equal(t, 0.0, s.Std)
	})
}

func TestPercentile(t *testing.T) {
	data := []float64{10, 20, 30, 40, nan, 50}
	assert.InDelta(t, 12.0, Percentile(data, 5), 1e-12)
	assert.InDelta(t, 48.0, Percentile(data, 95), 1e-12)
	assert.Equal(t, 10.0, Percentile(data, 0))
	assert.Equal(t, 50.0, Percentile(data, 100))
	assert.True(t, math.IsNaN(Percentile([]float64{nan}, 50)))
}

func TestClip(t *testing.T) {
	out := Clip([]float64{-1, 0.5, 2, nan}, 0, 1)
	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 0.5, out[1])
	assert.Equal(t, 1.0, out[2])
	assert.True(t, math.IsNaN(out[3]))
	assert.Equal(t, 1.0, ClipValue(math.Inf(1), 0, 1))
}

func TestNanHelpers(t *testing.T) {
	data := []float64{nan, 2, 4, nan}
	assert.Equal(t, 3.0, NanMean(data))
	assert.Equal(t, 1.0, NanStd(data))
	assert.Equal(t, 2.0, NanMin(data))
	assert.Equal(t, 4.0, NanMax(data))
	assert.True(t, math.IsNaN(NanMean([]float64{nan})))
	assert.Equal(t, 1, CountWhere(data, func(v float64) bool { return v > 3 }))
}

func TestPearson(t *testing.T) {
	a := []float64{1, 2, 3, nan, 5}
	b := []float64{2, 4, 6, 8, nan}
	assert.InDelta(t, 1.0, Pearson(a, b), 1e-12)
	assert.True(t, math.IsNaN(Pearson([]float64{1}, []float64{2})))
}

func TestCorrelate(t *testing.T) {
	t.Run("strong linear relation", func(t *testing.T) {
		a := make([]float64, 20)
		b := make([]float64, 20)
		for i := range a {
			a[i] = float64(i)
			b[i] = 2*float64(i) + math.Sin(float64(i))
		}
		c, err := Correlate(a, b)
		require.NoError(t, err)
		assert.Equal(t, 20, c.Points)
		assert.Greater(t, c.R, 0.95)
		assert.Less(t, c.PValue, 0.001)
		assert.True(t, c.Significant)
	})

	t.Run("too few points", func(t *testing.T) {
		_, err := Correlate([]float64{1, 2, 3}, []float64{1, 2, 3})
		assert.ErrorIs(t, err, ErrNoValidData)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := Correlate([]float64{1, 2}, []float64{1})
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})
}
