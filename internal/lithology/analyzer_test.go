package lithology

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/petro_engine_go/internal/analysis"
)

var nan = math.NaN()

func TestNeutronDensity(t *testing.T) {
	a := New()

	t.Run("clean quartz", func(t *testing.T) {
		// water-filled quartz at 10, 20 and 25% porosity
		rhob := []float64{2.485, 2.32, 2.2375}
		nphi := []float64{0.08, 0.18, 0.23}
		res, err := a.NeutronDensity(rhob, nphi, nil, "")
		require.NoError(t, err)

		assert.Equal(t, "quartz", res.Dominant)
		assert.Equal(t, DefaultFluid, res.Fluid)
		assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.25}, res.TotalPorosity, 1e-9)
		assert.InDelta(t, 0, res.SeparationStats.Mean, 1e-9)
		assert.Equal(t, []bool{false, false, false}, res.GasZones)
		assert.Len(t, res.Minerals, len(Minerals))
		assert.Len(t, res.Facies, 3)
		assert.Equal(t, false, res.Parameters["pe_available"])
		assert.Equal(t, analysis.QualityGood, res.Quality.Overall)
		assert.Contains(t, res.Curves(), "PHIT_ND")
	})

	t.Run("clay dominated", func(t *testing.T) {
		res, err := a.NeutronDensity([]float64{2.26, 2.12}, []float64{0.55, 0.65}, []float64{2.8, 2.9}, "fresh_water")
		require.NoError(t, err)
		assert.Equal(t, "clay", res.Dominant)
		assert.Equal(t, []bool{true, true}, res.GasZones)
		assert.Equal(t, 2, res.Parameters["gas_zones"])
		assert.Equal(t, true, res.Parameters["pe_available"])
	})

	t.Run("positive separation flags gas", func(t *testing.T) {
		res, err := a.NeutronDensity([]float64{2.32, 2.32}, []float64{0.18, 0.30}, nil, "")
		require.NoError(t, err)
		assert.InDelta(t, 0, res.GasEffect[0], 1e-9)
		assert.InDelta(t, 0.12, res.GasEffect[1], 1e-9)
		assert.Equal(t, []bool{false, true}, res.GasZones)
	})

	t.Run("fluid density", func(t *testing.T) {
		res, err := a.NeutronDensity([]float64{2.16}, []float64{0.18}, nil, "gas")
		require.NoError(t, err)
		quartz := res.Minerals[0]
		assert.Equal(t, "quartz", quartz.Mineral)
		assert.InDelta(t, 0.2, quartz.PorosityDensity[0], 1e-9)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		_, err := a.NeutronDensity([]float64{2.3}, []float64{0.2}, nil, "brine")
		assert.ErrorIs(t, err, analysis.ErrInvalidParameter)

		_, err = a.NeutronDensity([]float64{nan, 2.3}, []float64{0.2, nan}, nil, "")
		assert.ErrorIs(t, err, analysis.ErrNoValidData)

		_, err = a.NeutronDensity([]float64{2.3, 2.4}, []float64{0.2, 0.2}, []float64{3}, "")
		assert.ErrorIs(t, err, analysis.ErrLengthMismatch)

		_, err = a.NeutronDensity(nil, []float64{0.2}, nil, "")
		assert.ErrorIs(t, err, analysis.ErrEmptyInput)
	})
}

func TestClassifyFacies(t *testing.T) {
	tests := []struct {
		rhob, nphi, pe float64
		want           string
	}{
		{2.7, 0.05, 5.0, "carbonate_tight"},
		{2.7, 0.05, 1.8, "sandstone_tight"},
		{2.7, 0.05, 3.0, "mixed_tight"},
		{2.7, 0.05, nan, "tight_rock"},
		{2.5, 0.2, 4.5, "carbonate_reservoir"},
		{2.5, 0.2, 2.0, "sandstone_reservoir"},
		{2.5, 0.2, 3.0, "mixed_reservoir"},
		{2.5, 0.2, nan, "good_reservoir"},
		{2.5, 0.4, 3.0, "shale_clay"},
		{2.0, 0.2, 3.0, "coal_organic"},
		{2.3, 0.2, 3.0, FallbackFacies},
		{nan, 0.2, 3.0, Unknown},
		{2.5, nan, 3.0, Unknown},
	}
	for _, tc := range tests {
		got := ClassifyFacies([]float64{tc.rhob}, []float64{tc.nphi}, []float64{tc.pe})
		assert.Equal(t, tc.want, got[0], "rhob=%v nphi=%v pe=%v", tc.rhob, tc.nphi, tc.pe)
	}

	got := ClassifyFacies([]float64{2.7, 2.5}, []float64{0.05, 0.2}, nil)
	assert.Equal(t, []string{"tight_rock", "good_reservoir"}, got)
}

func TestReservoirQuality(t *testing.T) {
	a := New()
	phi := []float64{0.2, 0.12, 0.03, nan, 0.08}
	perm := []float64{500, 20, 0.05, 10, 5}
	vcl := []float64{0.05, 0.3, 0.6, 0.1, 0.15}
	sw := []float64{0.2, 0.5, 0.95, 0.5, 0.8}

	res, err := a.ReservoirQuality(phi, perm, vcl, sw)
	require.NoError(t, err)

	assert.Equal(t, []string{"excellent", "good", "poor", Unknown, "fair"}, res.PorosityClass)
	assert.Equal(t, []string{"excellent", "good", "tight", "good", "fair"}, res.PermeabilityClass)
	assert.Equal(t, []string{"excellent", "fair", "poor", Unknown, "fair"}, res.RQIClass)
	assert.Equal(t, []string{"clean", "moderately_shaly", "very_shaly", "slightly_shaly", "slightly_shaly"}, res.Clay)
	assert.Equal(t, []string{"high_hc", "moderate_hc", "water", "moderate_hc", "low_hc"}, res.Hydrocarbon)
	assert.Equal(t, []string{"excellent", "fair", "poor", Unknown, "fair"}, res.Overall)
	assert.InDelta(t, 0.0314*50, res.RQI[0], 1e-12)
	assert.True(t, math.IsNaN(res.RQI[3]))

	require.Contains(t, res.ClassStats, "fair")
	fair := res.ClassStats["fair"]
	assert.Equal(t, 2, fair.Count)
	assert.InDelta(t, 40.0, fair.Percentage, 1e-12)
	assert.InDelta(t, 0.1, fair.AvgPorosity, 1e-12)
	assert.InDelta(t, 12.5, fair.AvgPermeability, 1e-12)
	assert.NotContains(t, res.ClassStats, Unknown)
	assert.NotContains(t, res.ClassStats, "good")
	assert.Equal(t, analysis.QualityGood, res.Quality.Overall)

	t.Run("no clay penalty without vclay", func(t *testing.T) {
		res, err := a.ReservoirQuality(phi, perm, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "good", res.Overall[1])
		assert.Nil(t, res.Clay)
		assert.Nil(t, res.Hydrocarbon)
		assert.Equal(t, false, res.Parameters["clay_penalty_applied"])
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := a.ReservoirQuality(phi, perm, []float64{0.1}, nil)
		assert.ErrorIs(t, err, analysis.ErrLengthMismatch)
	})
}

func TestCutoffs(t *testing.T) {
	c := Cutoffs()
	require.Len(t, c, 21)
	assert.Equal(t, Cutoff{Property: "porosity", Class: "poor", Range: "<0.05"}, c[0])
	assert.Equal(t, Cutoff{Property: "porosity", Class: "fair", Range: "0.05-0.1"}, c[1])
	assert.Equal(t, Cutoff{Property: "porosity", Class: "excellent", Range: ">=0.15"}, c[3])
	assert.Equal(t, "permeability", c[4].Property)
}

func TestPhotoelectric(t *testing.T) {
	a := New()
	pe := []float64{1.8, 5.2, 5.0, 3.1, 3.0, 1.2, 4.0, nan}
	rhob := []float64{2.5, 2.95, 2.71, 2.85, 2.3, 2.8, 2.6, 2.5}

	res, err := a.Photoelectric(pe, rhob, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"quartz_sandstone", "anhydrite", "limestone", "dolomite",
		"clay_shale", "coal_organic", FallbackMineral, Unknown,
	}, res.Minerals)

	require.Len(t, res.Stats, 7)
	assert.NotContains(t, res.Stats, Unknown)
	lime := res.Stats["limestone"]
	assert.Equal(t, 1, lime.Count)
	assert.InDelta(t, 12.5, lime.Percentage, 1e-12)
	assert.InDelta(t, 5.0, lime.AvgPE, 1e-12)
	assert.InDelta(t, 2.71, lime.AvgRhob, 1e-12)
	assert.Equal(t, analysis.QualityGood, res.Quality.Overall)
	assert.Equal(t, false, res.Parameters["neutron_available"])

	res, err = a.Photoelectric([]float64{1.8, nan, nan}, []float64{2.5, 2.5, 2.6}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"quartz_sandstone", Unknown, Unknown}, res.Minerals)
	require.Len(t, res.Stats, 1)
	sand := res.Stats["quartz_sandstone"]
	assert.Equal(t, 1, sand.Count)
	assert.InDelta(t, 100.0/3, sand.Percentage, 1e-9)
	assert.InDelta(t, 1.8, sand.AvgPE, 1e-12)
	assert.InDelta(t, 2.5, sand.AvgRhob, 1e-12)

	_, err = a.Photoelectric(pe, rhob[:3], nil)
	assert.ErrorIs(t, err, analysis.ErrLengthMismatch)
}

func TestPayZones(t *testing.T) {
	a := New()
	vsh := []float64{0.2, 0.6, 0.3, 0.1, nan, 0.2}
	phi := []float64{0.15, 0.2, 0.05, 0.1, 0.2, 0.12}
	sw := []float64{0.3, 0.2, 0.3, 0.5, 0.3, 0.6}

	res, err := a.PayZones(vsh, phi, sw, DefaultPayCutoffs())
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false, true, false, true}, res.Flags)
	assert.Equal(t, 3, res.Count)
	assert.InDelta(t, 1.5, res.NetThickness, 1e-12)
	assert.Equal(t, []Run{{0, 1}, {3, 4}, {5, 6}}, res.Runs)
	assert.InDelta(t, 0.5/3, res.MeanVsh, 1e-12)
	assert.InDelta(t, 0.37/3, res.MeanPorosity, 1e-12)
	assert.InDelta(t, 1.4/3, res.MeanSw, 1e-12)
	assert.Equal(t, []float64{1, 0, 0, 1, 0, 1}, res.Curves()["PAY_FLAG"])

	c := DefaultPayCutoffs()
	c.Step = 0
	_, err = a.PayZones(vsh, phi, sw, c)
	assert.ErrorIs(t, err, analysis.ErrInvalidParameter)

	c = DefaultPayCutoffs()
	c.MinPorosity = 0.5
	res, err = a.PayZones(vsh, phi, sw, c)
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.Empty(t, res.Runs)
	assert.True(t, math.IsNaN(res.MeanVsh))
	assert.Len(t, res.Quality.Warnings, 1)
}

func TestHardFormations(t *testing.T) {
	a := New()
	res, err := a.HardFormations([]float64{4.5, 4.0, 3.9, 5}, []float64{2.8, 2.7, 2.9, 2.6}, DefaultHardThresholds())
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false, false}, res.Flags)
	assert.Equal(t, 2, res.Count)
	assert.InDelta(t, 1.0, res.Thickness, 1e-12)
	assert.Equal(t, []Run{{0, 2}}, res.Runs)

	th := DefaultHardThresholds()
	th.MinPE = math.Inf(1)
	_, err = a.HardFormations([]float64{4.5}, []float64{2.8}, th)
	assert.ErrorIs(t, err, analysis.ErrInvalidParameter)

	assert.Equal(t, 1, a.History().Len())
	last, ok := a.History().Last()
	require.True(t, ok)
	assert.Equal(t, HardFormationsType, last.Type)
}
