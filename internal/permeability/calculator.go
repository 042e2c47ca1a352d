package permeability

import (
	"math"

	"go.uber.org/zap"

	"github.com/user/petro_engine_go/internal/analysis"
)

var (
	rangeSwi            = &analysis.Range{Min: 0.01, Max: 1}
	rangeGrainSize      = &analysis.Range{Min: 1, Max: 1000}
	rangeWylliePorosity = &analysis.Range{Min: 0.05, Max: 0.4}
	rangeD50            = &analysis.Range{Min: 10, Max: 1000}
)

// Morris-Biggs Swi estimate assumes this porosity for every sample.
const morrisBiggsPorosity = 0.2

// Swi estimates are clipped to this interval.
const (
	minSwi = 0.05
	maxSwi = 0.8
)

// SaturatedShare is the share of clipped samples above which a result is
// downgraded to fair.
const SaturatedShare = 0.3

// Calculator estimates permeability from porosity, Swi and grain size.
type Calculator struct {
	analysis.Base
}

// New creates a permeability calculator.
func New(opts ...analysis.Option) *Calculator {
	return &Calculator{Base: analysis.NewBase("permeability", opts...)}
}

// Calculate runs correlation m. Declared correlations without an
// implementation fail with analysis.ErrNotImplemented.
func (c *Calculator) Calculate(m Method, in Inputs, p Params) (*Result, error) {
	switch m {
	case Timur:
		return c.Timur(in.Porosity, in.Swi, p.RockType, p.Timur)
	case KozenyCarman:
		return c.KozenyCarman(in.Porosity, in.GrainSize, p.RockType, p.Kozeny)
	case WyllieRose:
		return c.WyllieRose(in.Porosity, in.GrainSize, p.Sorting)
	case CoatesDumanoir, Schlumberger, MorrisBiggs:
		c.Logger().Warn("permeability model not implemented", zap.String("method", m.String()))
		return nil, analysis.NewError("permeability", m.String(), analysis.ErrNotImplemented, "")
	default:
		return nil, analysis.NewError("permeability", m.String(), analysis.ErrInvalidParameter, "unknown method")
	}
}

// Timur computes K = A * phi^B / Swi^C.
func (c *Calculator) Timur(porosity []float64, swi Swi, rock RockType, p TimurParams) (*Result, error) {
	c.ClearWarnings()
	phi, err := c.ValidateCurve(porosity, "POROSITY", analysis.RangePorosity)
	if err != nil {
		return nil, err
	}

	var sw []float64
	if swi.IsCurve() {
		if sw, err = c.ValidateCurve(swi.curve, "SWI", rangeSwi); err != nil {
			return nil, err
		}
		if err := analysis.CheckSameLength("timur", []string{"POROSITY", "SWI"}, phi, sw); err != nil {
			return nil, err
		}
	} else {
		if _, err := c.ValidateParameters(analysis.Param{Name: "swi", Value: swi.value}); err != nil {
			return nil, err
		}
		if swi.value <= 0 || swi.value > 1 {
			return nil, analysis.NewError("timur", "swi", analysis.ErrInvalidParameter, "Swi %g outside (0, 1]", swi.value)
		}
		sw = analysis.Fill(len(phi), swi.value)
	}
	if _, err := c.ValidateParameters(
		analysis.Param{Name: "A", Value: p.A},
		analysis.Param{Name: "B", Value: p.B},
		analysis.Param{Name: "C", Value: p.C},
	); err != nil {
		return nil, err
	}

	raw := analysis.Zip(phi, sw, func(f, s float64) float64 {
		return p.A * math.Pow(f, p.B) / math.Pow(s, p.C)
	})
	res := c.newResult(Timur, raw)
	res.Parameters["rock_type"] = rock.String()
	res.Parameters["A"] = p.A
	res.Parameters["B"] = p.B
	res.Parameters["C"] = p.C
	res.Parameters["swi_curve"] = swi.IsCurve()
	c.AddInputQC(&res.Result, "porosity", phi, "POROSITY")
	if swi.IsCurve() {
		c.AddInputQC(&res.Result, "swi", sw, "SWI")
	}
	c.finish(res)
	return res, nil
}

// KozenyCarman computes K = C * phi^3 / ((1-phi)^2 * tau), scaled by
// (d/100)^2 when a grain size curve in microns is given.
func (c *Calculator) KozenyCarman(porosity, grainSize []float64, rock RockType, p KozenyParams) (*Result, error) {
	c.ClearWarnings()
	phi, err := c.ValidateCurve(porosity, "POROSITY", analysis.RangePorosity)
	if err != nil {
		return nil, err
	}
	gs, err := c.ValidateOptionalCurve(grainSize, "GRAIN_SIZE", rangeGrainSize)
	if err != nil {
		return nil, err
	}
	if err := analysis.CheckSameLength("kozeny-carman", []string{"POROSITY", "GRAIN_SIZE"}, phi, gs); err != nil {
		return nil, err
	}
	if err := c.positive("kozeny-carman",
		analysis.Param{Name: "C", Value: p.C},
		analysis.Param{Name: "tortuosity", Value: p.Tortuosity},
	); err != nil {
		return nil, err
	}

	raw := analysis.Map(phi, func(f float64) float64 {
		return p.C * math.Pow(f, 3) / (math.Pow(1-f, 2) * p.Tortuosity)
	})
	if gs != nil {
		raw = analysis.Zip(raw, gs, func(k, d float64) float64 { return k * math.Pow(d/100, 2) })
	}

	res := c.newResult(KozenyCarman, raw)
	res.Parameters["rock_type"] = rock.String()
	res.Parameters["C"] = p.C
	res.Parameters["tortuosity"] = p.Tortuosity
	res.Parameters["grain_size_included"] = gs != nil
	c.AddInputQC(&res.Result, "porosity", phi, "POROSITY")
	c.AddInputQC(&res.Result, "grain_size", gs, "GRAIN_SIZE")
	c.finish(res)
	return res, nil
}

// WyllieRose computes K = 79 * phi^3/(1-phi)^2 * d50^2/So^2 / 1000 for
// granular rocks, d50 in microns.
func (c *Calculator) WyllieRose(porosity, d50 []float64, sorting float64) (*Result, error) {
	c.ClearWarnings()
	phi, err := c.ValidateCurve(porosity, "POROSITY", rangeWylliePorosity)
	if err != nil {
		return nil, err
	}
	gs, err := c.ValidateCurve(d50, "GRAIN_SIZE", rangeD50)
	if err != nil {
		return nil, err
	}
	if err := analysis.CheckSameLength("wyllie-rose", []string{"POROSITY", "GRAIN_SIZE"}, phi, gs); err != nil {
		return nil, err
	}
	if err := c.positive("wyllie-rose", analysis.Param{Name: "sorting_coefficient", Value: sorting}); err != nil {
		return nil, err
	}

	raw := analysis.Zip(phi, gs, func(f, d float64) float64 {
		return 79 * (math.Pow(f, 3) / math.Pow(1-f, 2)) * (d * d / (sorting * sorting)) / 1000
	})
	res := c.newResult(WyllieRose, raw)
	res.Parameters["sorting_coefficient"] = sorting
	c.AddInputQC(&res.Result, "porosity", phi, "POROSITY")
	c.AddInputQC(&res.Result, "grain_size", gs, "GRAIN_SIZE")
	c.finish(res)
	return res, nil
}

// EstimateSwi derives irreducible water saturation from permeability,
// clipped to [0.05, 0.8].
func (c *Calculator) EstimateSwi(perm []float64, m SwiMethod) (*SwiResult, error) {
	c.ClearWarnings()
	k, err := c.ValidateCurve(perm, "PERMEABILITY", analysis.RangePerm)
	if err != nil {
		return nil, err
	}

	var fn func(float64) float64
	switch m {
	case SwiMorrisBiggs:
		fn = func(v float64) float64 { return 0.2 + 0.8/(1+0.35*math.Sqrt(v/morrisBiggsPorosity)) }
	case SwiSchlumberger:
		fn = func(v float64) float64 { return 0.1 + 0.7*math.Pow(v, -0.15) }
	default:
		return nil, analysis.NewError("estimate swi", m.String(), analysis.ErrInvalidParameter, "unknown method")
	}
	swi := analysis.Clip(analysis.Map(k, fn), minSwi, maxSwi)
	out := &SwiResult{Swi: swi, Method: m, Mean: analysis.NanMean(swi), Warnings: c.Warnings()}
	c.Logger().Debug("swi estimated", zap.String("method", m.String()), zap.Float64("mean_swi", out.Mean))
	return out, nil
}

// Classify buckets the valid samples of perm into Classes.
func Classify(perm []float64) Classification {
	valid := analysis.ValidValues(perm)
	out := Classification{Total: len(valid), Classes: make([]ClassCount, len(Classes))}
	for i, cl := range Classes {
		out.Classes[i].Class = cl
	}
	for _, v := range valid {
		for i, cl := range Classes {
			if v >= cl.Min && v < cl.Max {
				out.Classes[i].Count++
				break
			}
		}
	}
	for i := range out.Classes {
		out.Classes[i].Percentage = analysis.Percent(out.Classes[i].Count, out.Total)
	}
	return out
}

func (c *Calculator) positive(op string, params ...analysis.Param) error {
	if _, err := c.ValidateParameters(params...); err != nil {
		return err
	}
	for _, p := range params {
		if p.Value <= 0 {
			return analysis.NewError(op, p.Name, analysis.ErrInvalidParameter, "must be positive, got %g", p.Value)
		}
	}
	return nil
}

func (c *Calculator) newResult(m Method, raw []float64) *Result {
	k := analysis.Clip(raw, MinPermeability, MaxPermeability)
	res := &Result{
		Result: analysis.NewResult(CalculationType, m.String()),
		K:      k,
		Log10K: analysis.Log10(k),
	}
	res.Parameters["method"] = m.String()
	res.Parameters["description"] = m.Description()
	res.Quality = assessQuality(k)
	return res
}

func (c *Calculator) finish(res *Result) {
	c.AddQC(&res.Result, "permeability", res.K, "PERM_"+res.Method)
	c.AddQC(&res.Result, "permeability_log10", res.Log10K, "PERM_LOG10")
	c.Finish(&res.Result)
	c.Logger().Debug("permeability calculated",
		zap.String("method", res.Method), zap.Float64("mean_k", analysis.NanMean(res.K)))
}

func assessQuality(k []float64) analysis.QualityFlags {
	flags := analysis.NewQualityFlags()
	valid := analysis.ValidValues(k)
	if len(valid) == 0 {
		flags.Warn("No valid permeability values", "Check input curves and parameters")
		flags.Downgrade(analysis.QualityPoor)
		return flags
	}
	atBound := analysis.CountWhere(valid, func(v float64) bool {
		return v <= MinPermeability || v >= MaxPermeability
	})
	if float64(atBound) > float64(len(valid))*SaturatedShare {
		flags.Warn("More than 30% of permeability values at the clip limits", "Review correlation constants for this rock type")
		flags.Downgrade(analysis.QualityFair)
	}
	return flags
}
