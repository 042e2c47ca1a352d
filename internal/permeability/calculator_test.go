package permeability

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/petro_engine_go/internal/analysis"
)

func TestTimur(t *testing.T) {
	c := New()

	t.Run("rock type constants", func(t *testing.T) {
		for _, rock := range []RockType{Sandstone, Carbonate, ShalySand} {
			p := DefaultTimurParams(rock)
			res, err := c.Timur([]float64{0.2}, SwiConstant(0.2), rock, p)
			require.NoError(t, err)
			want := p.A * math.Pow(0.2, p.B) / math.Pow(0.2, p.C)
			assert.InDelta(t, want, res.K[0], 1e-9, rock.String())
			assert.InDelta(t, math.Log10(want), res.Log10K[0], 1e-12)
			assert.Equal(t, rock.String(), res.Parameters["rock_type"])
		}
	})

	t.Run("swi curve", func(t *testing.T) {
		res, err := c.Timur([]float64{0.2, 0.2}, SwiCurve([]float64{0.2, 0.4}), Sandstone, DefaultTimurParams(Sandstone))
		require.NoError(t, err)
		assert.InDelta(t, 4.0, res.K[0]/res.K[1], 1e-9)
		assert.Equal(t, true, res.Parameters["swi_curve"])
		assert.Contains(t, res.InputStats, "swi")

		_, err = c.Timur([]float64{0.2, 0.2}, SwiCurve([]float64{0.2}), Sandstone, DefaultTimurParams(Sandstone))
		assert.ErrorIs(t, err, analysis.ErrLengthMismatch)
	})

	t.Run("clipped to limits", func(t *testing.T) {
		res, err := c.Timur([]float64{0.5, 0.01}, SwiCurve([]float64{0.01, 1}), Sandstone, DefaultTimurParams(Sandstone))
		require.NoError(t, err)
		assert.Equal(t, MaxPermeability, res.K[0])
		assert.Equal(t, MinPermeability, res.K[1])
		assert.InDelta(t, 4.0, res.Log10K[0], 1e-12)
		assert.Equal(t, analysis.QualityFair, res.Quality.Overall)
	})

	t.Run("invalid swi", func(t *testing.T) {
		for _, v := range []float64{0, -0.1, 1.5, math.NaN()} {
			_, err := c.Timur([]float64{0.2}, SwiConstant(v), Sandstone, DefaultTimurParams(Sandstone))
			assert.ErrorIs(t, err, analysis.ErrInvalidParameter, "swi %v", v)
		}
	})
}

func TestKozenyCarman(t *testing.T) {
	c := New()
	res, err := c.KozenyCarman([]float64{0.2}, nil, Sandstone, DefaultKozenyParams(Sandstone))
	require.NoError(t, err)
	assert.InDelta(t, 5*0.008/(0.64*2), res.K[0], 1e-12)
	assert.Equal(t, false, res.Parameters["grain_size_included"])

	res, err = c.KozenyCarman([]float64{0.2}, []float64{200}, Sandstone, DefaultKozenyParams(Sandstone))
	require.NoError(t, err)
	assert.InDelta(t, 4*5*0.008/(0.64*2), res.K[0], 1e-12)

	carb := DefaultKozenyParams(Carbonate)
	assert.Equal(t, KozenyParams{C: 2, Tortuosity: 3}, carb)

	_, err = c.KozenyCarman([]float64{0.2}, nil, Sandstone, KozenyParams{C: 5, Tortuosity: 0})
	assert.ErrorIs(t, err, analysis.ErrInvalidParameter)
}

func TestWyllieRose(t *testing.T) {
	c := New()
	res, err := c.WyllieRose([]float64{0.2}, []float64{100}, DefaultSorting)
	require.NoError(t, err)
	assert.InDelta(t, 79*0.0125*2.5, res.K[0], 1e-9)

	_, err = c.WyllieRose([]float64{0.2}, []float64{100}, 0)
	assert.ErrorIs(t, err, analysis.ErrInvalidParameter)

	_, err = c.WyllieRose([]float64{0.2}, nil, DefaultSorting)
	assert.ErrorIs(t, err, analysis.ErrEmptyInput)
}

func TestEstimateSwi(t *testing.T) {
	c := New()

	res, err := c.EstimateSwi([]float64{20, 0.001, math.NaN()}, SwiMorrisBiggs)
	require.NoError(t, err)
	assert.InDelta(t, 0.2+0.8/4.5, res.Swi[0], 1e-12)
	assert.Equal(t, maxSwi, res.Swi[1])
	assert.True(t, math.IsNaN(res.Swi[2]))

	res, err = c.EstimateSwi([]float64{0.1, 1, 10000}, SwiSchlumberger)
	require.NoError(t, err)
	assert.Equal(t, maxSwi, res.Swi[0])
	assert.InDelta(t, 0.8, res.Swi[1], 1e-12)
	assert.InDelta(t, 0.1+0.7*math.Pow(10000, -0.15), res.Swi[2], 1e-12)
	assert.Empty(t, res.Warnings)

	res, err = c.EstimateSwi([]float64{20, math.NaN()}, SwiSchlumberger)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "PERMEABILITY")

	_, err = c.EstimateSwi([]float64{1}, SwiMethod(5))
	assert.ErrorIs(t, err, analysis.ErrInvalidParameter)
}

func TestClassify(t *testing.T) {
	perm := []float64{0.001, 0.1, 0.5, 5, 50, 500, 1000, 10000, math.NaN()}
	cl := Classify(perm)
	require.Len(t, cl.Classes, 6)
	assert.Equal(t, 8, cl.Total)

	counts := map[string]int{}
	sum := 0
	for _, cc := range cl.Classes {
		counts[cc.Class.Name] = cc.Count
		sum += cc.Count
	}
	assert.Equal(t, cl.Total, sum)
	assert.Equal(t, map[string]int{
		"very_tight": 1, "tight": 2, "low": 1, "moderate": 1, "good": 1, "very_good": 2,
	}, counts)
	assert.InDelta(t, 25.0, cl.Classes[5].Percentage, 1e-12)
	assert.Equal(t, "<0.1", Classes[0].Label())
	assert.Equal(t, "10-100", Classes[3].Label())
	assert.Equal(t, ">=1000", Classes[5].Label())

	empty := Classify([]float64{math.NaN()})
	assert.Equal(t, 0, empty.Total)
	assert.Equal(t, 0.0, empty.Classes[0].Percentage)
}

func TestCalculateDispatch(t *testing.T) {
	c := New()
	in := Inputs{Porosity: []float64{0.2}, Swi: SwiConstant(0.25), GrainSize: []float64{150}}
	p := DefaultParams(Sandstone)

	for _, m := range []Method{Timur, KozenyCarman, WyllieRose} {
		res, err := c.Calculate(m, in, p)
		require.NoError(t, err, m.String())
		assert.Equal(t, m.String(), res.Method)
		assert.True(t, m.Implemented())
	}
	assert.Equal(t, 3, c.History().Len())

	for _, m := range []Method{CoatesDumanoir, Schlumberger, MorrisBiggs} {
		_, err := c.Calculate(m, in, p)
		assert.True(t, analysis.IsNotImplemented(err), m.String())
	}

	_, err := ParseMethod("coates_dumanoir")
	assert.NoError(t, err)
	_, err = ParseRockType("granite")
	assert.ErrorIs(t, err, analysis.ErrInvalidParameter)
}
