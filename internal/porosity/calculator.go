package porosity

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/user/petro_engine_go/internal/analysis"
)

var (
	rangeRHOB = &analysis.Range{Min: 1.0, Max: 3.5}
	rangeNPHI = &analysis.Range{Min: 0, Max: 1}
)

// harmonicFloor replaces non-positive porosities in the harmonic mean.
const harmonicFloor = 1e-6

// Calculator computes effective porosity from density and neutron logs.
type Calculator struct {
	analysis.Base
}

// New creates a porosity calculator.
func New(opts ...analysis.Option) *Calculator {
	return &Calculator{Base: analysis.NewBase("porosity", opts...)}
}

// Density computes PHID = (rhoma - rhob) / (rhoma - rhof), optionally
// reduced by VCL times the clay apparent density porosity, clipped to
// [0, 0.5]. vcl may be nil.
func (c *Calculator) Density(rhob, vcl []float64, p DensityParams) (*DensityResult, error) {
	c.ClearWarnings()
	res, err := c.density(rhob, vcl, p)
	if err != nil {
		return nil, err
	}
	c.Finish(&res.Result)
	return res, nil
}

func (c *Calculator) density(bulkDensity, vclIn []float64, p DensityParams) (*DensityResult, error) {
	rhob, err := c.ValidateCurve(bulkDensity, "RHOB", rangeRHOB)
	if err != nil {
		return nil, err
	}
	vcl, err := c.ValidateOptionalCurve(vclIn, "VCL", analysis.RangeFraction)
	if err != nil {
		return nil, err
	}
	if err := analysis.CheckSameLength("density porosity", []string{"RHOB", "VCL"}, rhob, vcl); err != nil {
		return nil, err
	}
	if _, err := c.ValidateParameters(
		analysis.Param{Name: "matrix_density", Value: p.MatrixDensity},
		analysis.Param{Name: "fluid_density", Value: p.FluidDensity},
	); err != nil {
		return nil, err
	}
	if p.MatrixDensity == p.FluidDensity {
		return nil, analysis.NewError("density porosity", "fluid_density", analysis.ErrInvalidParameter,
			"matrix and fluid density are both %g", p.MatrixDensity)
	}

	span := p.MatrixDensity - p.FluidDensity
	raw := analysis.Map(rhob, func(v float64) float64 { return (p.MatrixDensity - v) / span })

	res := &DensityResult{
		Result:  analysis.NewResult(DensityType, ""),
		PHIDRaw: raw,
	}
	phid := raw
	if vcl != nil {
		res.ClayCorrection = analysis.Map(vcl, func(v float64) float64 { return v * ClayDensityApparentPorosity })
		phid = analysis.Zip(raw, res.ClayCorrection, func(d, cc float64) float64 { return d - cc })
	}
	res.PHID = analysis.Clip(phid, MinPorosity, MaxPorosity)

	res.Parameters["matrix_density"] = p.MatrixDensity
	res.Parameters["fluid_density"] = p.FluidDensity
	res.Parameters["clay_correction_applied"] = vcl != nil
	res.Parameters["clay_apparent_porosity"] = ClayDensityApparentPorosity

	c.AddInputQC(&res.Result, "bulk_density", rhob, "RHOB")
	c.AddInputQC(&res.Result, "vcl", vcl, "VCL")
	c.AddQC(&res.Result, "phid", res.PHID, "PHID")
	c.AddQC(&res.Result, "phid_raw", raw, "PHID_RAW")
	res.Quality = densityQuality(res.PHID, raw, rhob)
	res.Warnings = c.Warnings()
	return res, nil
}

// Neutron applies the lithology factor and an optional clay correction to
// NPHI and clips the result to [0, 0.5]. vcl may be nil.
func (c *Calculator) Neutron(nphi, vcl []float64, lith Lithology) (*NeutronResult, error) {
	c.ClearWarnings()
	res, err := c.neutron(nphi, vcl, lith)
	if err != nil {
		return nil, err
	}
	c.Finish(&res.Result)
	return res, nil
}

func (c *Calculator) neutron(neutronPorosity, vclIn []float64, lith Lithology) (*NeutronResult, error) {
	nphi, err := c.ValidateCurve(neutronPorosity, "NPHI", rangeNPHI)
	if err != nil {
		return nil, err
	}
	vcl, err := c.ValidateOptionalCurve(vclIn, "VCL", analysis.RangeFraction)
	if err != nil {
		return nil, err
	}
	if err := analysis.CheckSameLength("neutron porosity", []string{"NPHI", "VCL"}, nphi, vcl); err != nil {
		return nil, err
	}

	factor := lith.Factor()
	litho := analysis.Map(nphi, func(v float64) float64 { return v * factor })

	res := &NeutronResult{
		Result:    analysis.NewResult(NeutronType, ""),
		PHINRaw:   nphi,
		PHINLitho: litho,
	}
	phin := litho
	if vcl != nil {
		res.ClayCorrection = analysis.Map(vcl, func(v float64) float64 { return v * ClayNeutronApparentPorosity })
		phin = analysis.Zip(litho, res.ClayCorrection, func(n, cc float64) float64 { return n - cc })
	}
	res.PHIN = analysis.Clip(phin, MinPorosity, MaxPorosity)

	res.Parameters["lithology"] = lith.String()
	res.Parameters["lithology_factor"] = factor
	res.Parameters["clay_correction_applied"] = vcl != nil
	res.Parameters["clay_apparent_porosity"] = ClayNeutronApparentPorosity

	c.AddInputQC(&res.Result, "neutron_porosity", nphi, "NPHI")
	c.AddInputQC(&res.Result, "vcl", vcl, "VCL")
	c.AddQC(&res.Result, "phin", res.PHIN, "PHIN")
	c.AddQC(&res.Result, "phin_raw", nphi, "PHIN_RAW")
	c.AddQC(&res.Result, "phin_lithology_corrected", litho, "PHIN_LITHO")
	res.Quality = neutronQuality(res.PHIN, phin, nphi)
	res.Warnings = c.Warnings()
	return res, nil
}

// Combined computes density and neutron porosity and merges them into PHIE
// with the selected combination, clipped to [0, 0.5]. Gas-like samples,
// where PHID exceeds PHIN by more than GasThreshold, are reported. Only the
// combined calculation is recorded in the history.
func (c *Calculator) Combined(rhob, nphi, vcl []float64, p CombinedParams) (*CombinedResult, error) {
	c.ClearWarnings()
	if err := analysis.CheckSameLength("density-neutron porosity", []string{"RHOB", "NPHI", "VCL"}, rhob, nphi, vcl); err != nil {
		return nil, err
	}

	den, err := c.density(rhob, vcl, p.Density)
	if err != nil {
		return nil, fmt.Errorf("density porosity: %w", err)
	}
	neu, err := c.neutron(nphi, vcl, p.Lithology)
	if err != nil {
		return nil, fmt.Errorf("neutron porosity: %w", err)
	}

	phid, phin := den.PHID, neu.PHIN
	var phie []float64
	switch p.Combination {
	case Arithmetic:
		phie = analysis.Zip(phid, phin, func(d, n float64) float64 { return (d + n) / 2 })
	case Geometric:
		phie = analysis.Zip(phid, phin, func(d, n float64) float64 { return math.Sqrt(d * n) })
	case Harmonic:
		phie = analysis.Zip(phid, phin, func(d, n float64) float64 {
			if d <= 0 {
				d = harmonicFloor
			}
			if n <= 0 {
				n = harmonicFloor
			}
			return 2 / (1/d + 1/n)
		})
	default:
		return nil, analysis.NewError("density-neutron porosity", p.Combination.String(),
			analysis.ErrInvalidParameter, "unknown combination method")
	}
	phie = analysis.Clip(phie, MinPorosity, MaxPorosity)

	res := &CombinedResult{
		Result:  analysis.NewResult(CombinedType, p.Combination.String()),
		PHIE:    phie,
		PHID:    phid,
		PHIN:    phin,
		Gas:     DetectGas(phid, phin, GasThreshold),
		Density: den,
		Neutron: neu,
	}
	res.Parameters["combination_method"] = p.Combination.String()
	res.Parameters["matrix_density"] = p.Density.MatrixDensity
	res.Parameters["fluid_density"] = p.Density.FluidDensity
	res.Parameters["lithology"] = p.Lithology.String()
	res.Parameters["clay_correction_applied"] = vcl != nil

	c.AddQC(&res.Result, "phie", phie, "PHIE")
	c.AddQC(&res.Result, "phid", phid, "PHID")
	c.AddQC(&res.Result, "phin", phin, "PHIN")
	res.Quality = combinedQuality(phie, phid, phin, res.Gas)

	c.Finish(&res.Result)
	if res.Gas.Count > 0 {
		c.Logger().Info("gas effect detected",
			zap.Int("points", res.Gas.Count), zap.Float64("percentage", res.Gas.Percentage))
	}
	return res, nil
}

// DetectGas flags samples where phid - phin exceeds threshold. The
// percentage is taken over all samples, NaN included.
func DetectGas(phid, phin []float64, threshold float64) GasEffect {
	ind := analysis.Zip(phid, phin, func(d, n float64) float64 { return d - n })
	zones := make([]bool, len(ind))
	count := 0
	for i, v := range ind {
		if v > threshold {
			zones[i] = true
			count++
		}
	}
	maxGas := analysis.NanMax(ind)
	if math.IsNaN(maxGas) {
		maxGas = 0
	}
	return GasEffect{
		Indicator:  ind,
		Zones:      zones,
		Count:      count,
		Percentage: analysis.Percent(count, len(ind)),
		Max:        maxGas,
		Threshold:  threshold,
	}
}

// ApplyClayCorrection returns a copy of r with clay-corrected PHID, PHIN and
// their quadratic mean attached. r itself is not modified.
func (c *Calculator) ApplyClayCorrection(r *CombinedResult, vclIn []float64, p ClayCorrectionParams) (*CombinedResult, error) {
	c.ClearWarnings()
	vcl, err := c.ValidateCurve(vclIn, "VCL", analysis.RangeFraction)
	if err != nil {
		return nil, err
	}
	if err := analysis.CheckSameLength("clay correction", []string{"PHID", "VCL"}, r.PHID, vcl); err != nil {
		return nil, err
	}
	if _, err := c.ValidateParameters(
		analysis.Param{Name: "clay_porosity_density", Value: p.DensityClayPorosity},
		analysis.Param{Name: "clay_porosity_neutron", Value: p.NeutronClayPorosity},
	); err != nil {
		return nil, err
	}

	d := analysis.Zip(r.PHID, vcl, func(phi, v float64) float64 { return phi - v*p.DensityClayPorosity })
	n := analysis.Zip(r.PHIN, vcl, func(phi, v float64) float64 { return phi - v*p.NeutronClayPorosity })

	out := *r
	out.ClayCorrection = &ClayCorrected{
		PHID:   analysis.Clip(d, MinPorosity, MaxPorosity),
		PHIN:   analysis.Clip(n, MinPorosity, MaxPorosity),
		PHIE:   analysis.Clip(quadraticMean(d, n), MinPorosity, MaxPorosity),
		Params: p,
	}
	out.Warnings = append(append([]string(nil), r.Warnings...), c.Warnings()...)
	return &out, nil
}

// ApplyGasCorrection returns a copy of r where, in samples with PHID - PHIN
// above GasThreshold, PHIN is raised by factor times the excess and PHIE is
// recomputed as the quadratic mean. Zones are always detected on the
// uncorrected PHID and PHIN of r, so applying it twice gives the same curves.
func (c *Calculator) ApplyGasCorrection(r *CombinedResult, factor float64) (*CombinedResult, error) {
	if _, err := c.ValidateParameters(analysis.Param{Name: "gas_correction_factor", Value: factor}); err != nil {
		return nil, err
	}
	if factor < 0 {
		return nil, analysis.NewError("gas correction", "gas_correction_factor", analysis.ErrInvalidParameter,
			"factor %g must not be negative", factor)
	}

	gas := DetectGas(r.PHID, r.PHIN, GasThreshold)
	phid := append([]float64(nil), r.PHID...)
	phin := append([]float64(nil), r.PHIN...)
	maxEffect := 0.0
	for i, zone := range gas.Zones {
		if !zone {
			continue
		}
		phin[i] += factor * gas.Indicator[i]
		maxEffect = math.Max(maxEffect, gas.Indicator[i])
	}
	phin = analysis.Clip(phin, MinPorosity, MaxPorosity)

	out := *r
	out.GasCorrection = &GasCorrected{
		PHID:       phid,
		PHIN:       phin,
		PHIE:       analysis.Clip(quadraticMean(phid, phin), MinPorosity, MaxPorosity),
		Zones:      gas.Zones,
		Factor:     factor,
		Percentage: gas.Percentage,
		MaxEffect:  maxEffect,
	}
	return &out, nil
}

// MatrixDensityInfo lists the reference matrix densities.
func (c *Calculator) MatrixDensityInfo() []MatrixDensity {
	return append([]MatrixDensity(nil), MatrixDensities...)
}

func quadraticMean(a, b []float64) []float64 {
	return analysis.Zip(a, b, func(x, y float64) float64 { return math.Sqrt((x*x + y*y) / 2) })
}

func densityQuality(phid, raw, rhob []float64) analysis.QualityFlags {
	flags := analysis.NewQualityFlags()

	unrealistic := analysis.CountWhere(rhob, func(v float64) bool { return v < 1.5 || v > 3.0 })
	if unrealistic > 0 {
		flags.Warn(fmt.Sprintf("%d points with unrealistic bulk density", unrealistic), "")
		flags.Downgrade(analysis.QualityPoor)
	}

	negative := analysis.CountWhere(raw, func(v float64) bool { return v < 0 })
	if float64(negative) > float64(len(raw))*0.1 {
		flags.Warn("Many negative porosities (>10%)", "Check matrix density")
		flags.Downgrade(analysis.QualityPoor)
	}

	if valid := analysis.ValidValues(phid); len(valid) > 0 && analysis.NanMax(valid) > 0.4 {
		flags.Warn("Very high porosities (>40%)", "Check calculation parameters")
	}
	return flags
}

func neutronQuality(phin, unclipped, raw []float64) analysis.QualityFlags {
	flags := analysis.NewQualityFlags()

	negative := analysis.CountWhere(unclipped, func(v float64) bool { return v < 0 })
	if negative > 0 {
		flags.Warn(fmt.Sprintf("%d negative values after correction", negative), "Check clay correction")
	}

	over := 0
	for i := range phin {
		if phin[i] < raw[i]*0.5 {
			over++
		}
	}
	if float64(over) > float64(len(phin))*0.1 {
		flags.Warn("Possible clay over-correction", "")
		flags.Downgrade(analysis.QualityFair)
	}
	return flags
}

func combinedQuality(phie, phid, phin []float64, gas GasEffect) analysis.QualityFlags {
	flags := analysis.NewQualityFlags()

	if r := analysis.Pearson(phid, phin); !math.IsNaN(r) && r < 0.5 {
		flags.Warn(fmt.Sprintf("Low PHID-PHIN correlation (%.2f)", r), "Check tool calibration")
		flags.Downgrade(analysis.QualityFair)
	}
	if gas.Percentage > 20 {
		flags.Warn(fmt.Sprintf("Possible gas effect in %.1f%% of points", gas.Percentage), "Consider gas correction")
	}

	valid := analysis.ValidValues(phie)
	if len(valid) > 0 {
		if analysis.NanMax(valid) > 0.35 {
			flags.Warn("Very high final porosities (>35%)", "")
		}
		if analysis.NanStd(valid) > 0.15 {
			flags.Warn("High porosity variability", "")
		}
	}
	return flags
}
