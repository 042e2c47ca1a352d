package config

import (
	"github.com/user/petro_engine_go/internal/clayvolume"
	"github.com/user/petro_engine_go/internal/permeability"
	"github.com/user/petro_engine_go/internal/porosity"
	"github.com/user/petro_engine_go/internal/saturation"
)

// Params converts the section into calculator parameters. A provided
// reference takes precedence over its percentile.
func (c ClayVolumeConfig) Params() (clayvolume.Params, error) {
	m, err := clayvolume.ParseMethod(c.Method)
	if err != nil {
		return clayvolume.Params{}, err
	}
	p := clayvolume.Params{
		Method:  m,
		GRClean: clayvolume.AutoEstimate(c.CleanPercentile),
		GRClay:  clayvolume.AutoEstimate(c.ClayPercentile),
	}
	if c.GRClean != nil {
		p.GRClean = clayvolume.Provided(*c.GRClean)
	}
	if c.GRClay != nil {
		p.GRClay = clayvolume.Provided(*c.GRClay)
	}
	return p, nil
}

func (c PorosityConfig) CombinedParams() (porosity.CombinedParams, error) {
	lith, err := porosity.ParseLithology(c.Lithology)
	if err != nil {
		return porosity.CombinedParams{}, err
	}
	comb, err := porosity.ParseCombination(c.Combination)
	if err != nil {
		return porosity.CombinedParams{}, err
	}
	return porosity.CombinedParams{
		Density:     porosity.DensityParams{MatrixDensity: c.MatrixDensity, FluidDensity: c.FluidDensity},
		Lithology:   lith,
		Combination: comb,
	}, nil
}

func (c SaturationConfig) Params() saturation.Params {
	return saturation.Params{
		A: c.A, M: c.M, N: c.N, Rw: c.Rw, Rsh: c.Rsh,
		DisableClayCorrection: c.DisableClayCorrection,
	}
}

func (c SaturationConfig) Model() (saturation.Method, error) {
	return saturation.ParseMethod(c.Method)
}

// Params returns the tabulated constants of the configured rock type with
// the configured sorting coefficient.
func (c PermeabilityConfig) Params() (permeability.Params, error) {
	rock, err := permeability.ParseRockType(c.RockType)
	if err != nil {
		return permeability.Params{}, err
	}
	p := permeability.DefaultParams(rock)
	p.Sorting = c.Sorting
	return p, nil
}

func (c PermeabilityConfig) Model() (permeability.Method, error) {
	return permeability.ParseMethod(c.Method)
}
