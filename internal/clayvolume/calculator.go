package clayvolume

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/user/petro_engine_go/internal/analysis"
)

// Quality cutoffs on the clean/clay gamma-ray separation, in API units.
const (
	poorSeparation = 30.0
	fairSeparation = 50.0
)

// Calculator derives clay volume from gamma-ray curves.
type Calculator struct {
	analysis.Base
}

// New creates a clay volume calculator.
func New(opts ...analysis.Option) *Calculator {
	return &Calculator{Base: analysis.NewBase("clay_volume", opts...)}
}

// Calculate converts a gamma-ray curve into a clay volume fraction with the
// method selected in p. Missing references are estimated from percentiles
// of the valid gamma-ray samples.
func (c *Calculator) Calculate(gammaRay []float64, p Params) (*Result, error) {
	c.ClearWarnings()

	gr, err := c.ValidateCurve(gammaRay, "GR", analysis.RangeGR)
	if err != nil {
		return nil, err
	}
	valid := analysis.ValidValues(gr)
	if len(valid) == 0 {
		return nil, analysis.NewError("clay volume", "GR", analysis.ErrNoValidData, "")
	}

	grClean := resolve(p.GRClean, gr)
	grClay := resolve(p.GRClay, gr)
	if p.GRClean.IsAuto() || p.GRClay.IsAuto() {
		c.Logger().Info("estimated gamma-ray references",
			zap.String("gr_clean", p.GRClean.String()), zap.Float64("gr_clean_value", grClean),
			zap.String("gr_clay", p.GRClay.String()), zap.Float64("gr_clay_value", grClay))
	}

	if _, err := c.ValidateParameters(
		analysis.Param{Name: "gr_clean", Value: grClean},
		analysis.Param{Name: "gr_clay", Value: grClay},
	); err != nil {
		return nil, err
	}
	if grClay <= grClean {
		return nil, analysis.NewError("clay volume", "gr_clay", analysis.ErrInvalidRange,
			"GR clay %.2f must exceed GR clean %.2f, difference %.2f", grClay, grClean, grClay-grClean)
	}

	igr := GammaRayIndex(gr, grClean, grClay)
	vcl, err := Apply(p.Method, igr)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Result:  analysis.NewResult(CalculationType, p.Method.String()),
		VCL:     vcl,
		IGR:     igr,
		GRClean: grClean,
		GRClay:  grClay,
	}
	res.Parameters["method"] = p.Method.String()
	res.Parameters["method_description"] = p.Method.Description()
	res.Parameters["gr_clean"] = grClean
	res.Parameters["gr_clay"] = grClay
	res.Parameters["gr_clean_source"] = p.GRClean.String()
	res.Parameters["gr_clay_source"] = p.GRClay.String()
	res.Parameters["gr_range"] = grClay - grClean

	c.AddInputQC(&res.Result, "gamma_ray", gr, "GR")
	c.AddQC(&res.Result, "vcl", vcl, "VCL_"+p.Method.String())
	c.AddQC(&res.Result, "igr", igr, "IGR")
	res.Quality = assessQuality(vcl, grClean, grClay)

	c.Finish(&res.Result)
	return res, nil
}

// BatchCalculate runs every method in methods (all methods when empty) with
// the same references and compares the resulting curves.
func (c *Calculator) BatchCalculate(gammaRay []float64, methods []Method, p Params) (*BatchResult, error) {
	if len(methods) == 0 {
		methods = Methods
	}
	for _, m := range methods {
		if m.Description() == "" {
			return nil, analysis.NewError("batch clay volume", m.String(), analysis.ErrInvalidParameter, "unknown method")
		}
	}

	batch := &BatchResult{
		Methods: append([]Method(nil), methods...),
		Results: make(map[Method]*Result, len(methods)),
	}
	for _, m := range methods {
		mp := p
		mp.Method = m
		res, err := c.Calculate(gammaRay, mp)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", m, err)
		}
		batch.Results[m] = res
	}
	if len(methods) > 1 {
		batch.Comparison = compare(batch)
	}
	return batch, nil
}

// MethodInfo lists the available methods and their formulas.
func (c *Calculator) MethodInfo() []MethodInfo {
	info := make([]MethodInfo, 0, len(Methods))
	for _, m := range Methods {
		info = append(info, MethodInfo{Method: m, Description: m.Description(), Recommendation: m.Recommendation()})
	}
	return info
}

// GammaRayIndex normalizes gamma-ray values to [0, 1] between the clean and
// clay references. NaN samples stay NaN.
func GammaRayIndex(gr []float64, grClean, grClay float64) []float64 {
	span := grClay - grClean
	return analysis.Map(gr, func(v float64) float64 {
		return analysis.ClipValue((v-grClean)/span, 0, 1)
	})
}

// Apply transforms a gamma-ray index curve with method m and clips the
// result to [0, 1].
func Apply(m Method, igr []float64) ([]float64, error) {
	var fn func(float64) float64
	switch m {
	case Linear:
		fn = func(i float64) float64 { return i }
	case LarionovOlder:
		fn = func(i float64) float64 { return 0.33 * (math.Pow(2, 2*i) - 1) }
	case LarionovTertiary:
		fn = func(i float64) float64 { return 0.083 * (math.Pow(2, 3.7*i) - 1) }
	case Clavier:
		fn = func(i float64) float64 {
			d := math.Max(3.38-(i+0.7)*(i+0.7), 0)
			return 1.7 - math.Sqrt(d)
		}
	case Steiber:
		fn = func(i float64) float64 {
			den := 3 - 2*i
			if den <= 0 {
				den = 1e-10
			}
			return i / den
		}
	default:
		return nil, analysis.NewError("clay volume", m.String(), analysis.ErrInvalidParameter, "unknown method")
	}
	return analysis.Map(igr, func(i float64) float64 {
		return analysis.ClipValue(fn(i), 0, 1)
	}), nil
}

func resolve(ref Reference, gr []float64) float64 {
	if ref.auto {
		return analysis.Percentile(gr, ref.percentile)
	}
	return ref.value
}

func assessQuality(vcl []float64, grClean, grClay float64) analysis.QualityFlags {
	flags := analysis.NewQualityFlags()

	switch sep := grClay - grClean; {
	case sep < poorSeparation:
		flags.Warn("GR range very small (< 30 API)", "Consider adjusting GR clean and GR clay values")
		flags.Downgrade(analysis.QualityPoor)
	case sep < fairSeparation:
		flags.Warn("GR range limited (< 50 API)", "")
		flags.Downgrade(analysis.QualityFair)
	}

	valid := analysis.ValidValues(vcl)
	if len(valid) == 0 {
		return flags
	}
	if analysis.NanMax(valid)-analysis.NanMin(valid) < 0.2 {
		flags.Warn("VCL range very small (< 0.2)", "Check lithological variability in the interval")
	}
	high := analysis.CountWhere(valid, func(v float64) bool { return v > 0.8 })
	if float64(high) > float64(len(valid))*0.5 {
		flags.Warn("More than 50% of VCL values > 0.8", "Check calculation method and parameters")
	}
	return flags
}

func compare(batch *BatchResult) *Comparison {
	cmp := &Comparison{
		Methods: batch.Methods,
		Stats:   make(map[Method]MethodStats, len(batch.Methods)),
	}
	for _, m := range batch.Methods {
		vcl := batch.Results[m].VCL
		if len(analysis.ValidValues(vcl)) == 0 {
			continue
		}
		cmp.Stats[m] = MethodStats{
			Mean: analysis.NanMean(vcl),
			Std:  analysis.NanStd(vcl),
			Min:  analysis.NanMin(vcl),
			Max:  analysis.NanMax(vcl),
		}
	}
	for i, a := range batch.Methods {
		for _, b := range batch.Methods[i+1:] {
			xa, _ := analysis.JointValid(batch.Results[a].VCL, batch.Results[b].VCL)
			if len(xa) <= 1 {
				continue
			}
			cmp.Correlations = append(cmp.Correlations, PairCorrelation{
				A: a,
				B: b,
				R: analysis.Pearson(batch.Results[a].VCL, batch.Results[b].VCL),
			})
		}
	}
	return cmp
}
