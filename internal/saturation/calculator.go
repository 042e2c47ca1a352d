package saturation

import (
	"math"

	"go.uber.org/zap"

	"github.com/user/petro_engine_go/internal/analysis"
)

// Newton-Raphson settings for Simandoux with n != 2.
const (
	newtonStart     = 0.5
	newtonTolerance = 1e-6
	newtonMaxIter   = 50
	newtonMinSw     = 0.01
	newtonMaxSw     = 0.99
)

// Calculator computes water saturation from resistivity and porosity.
type Calculator struct {
	analysis.Base
}

// New creates a water saturation calculator.
func New(opts ...analysis.Option) *Calculator {
	return &Calculator{Base: analysis.NewBase("water_saturation", opts...)}
}

// Calculate runs model m. Declared models without an implementation fail
// with analysis.ErrNotImplemented.
func (c *Calculator) Calculate(m Method, in Inputs, p Params) (*Result, error) {
	switch m {
	case ArchieSimple:
		return c.ArchieSimple(in.RT, in.Porosity, p)
	case ArchieModified:
		return c.ArchieWithClay(in.RT, in.Porosity, in.Vclay, p)
	case Simandoux:
		return c.Simandoux(in.RT, in.Porosity, in.Vclay, p)
	case WaxmanSmits, DualWater, Indonesian:
		c.Logger().Warn("saturation model not implemented", zap.String("method", m.String()))
		return nil, analysis.NewError("water saturation", m.String(), analysis.ErrNotImplemented, "")
	default:
		return nil, analysis.NewError("water saturation", m.String(), analysis.ErrInvalidParameter, "unknown method")
	}
}

// ArchieSimple computes Sw = ((a*Rw)/(phi^m * Rt))^(1/n) clipped to [0, 1].
func (c *Calculator) ArchieSimple(rt, porosity []float64, p Params) (*Result, error) {
	c.ClearWarnings()
	rtv, phi, _, err := c.validateInputs(rt, porosity, nil, false)
	if err != nil {
		return nil, err
	}
	if err := c.validateArchie(p); err != nil {
		return nil, err
	}
	res := c.archie(ArchieSimple, rtv, phi, p)
	c.finish(res, rtv, phi, nil)
	return res, nil
}

// ArchieWithClay runs Archie on the effective porosity phi*(1-Vclay),
// floored at 0.001. With p.DisableClayCorrection the total porosity is used.
func (c *Calculator) ArchieWithClay(rt, porosity, vclay []float64, p Params) (*Result, error) {
	c.ClearWarnings()
	rtv, phi, vcl, err := c.validateInputs(rt, porosity, vclay, true)
	if err != nil {
		return nil, err
	}
	if err := c.validateArchie(p); err != nil {
		return nil, err
	}

	phie := phi
	if !p.DisableClayCorrection {
		phie = analysis.Zip(phi, vcl, func(f, v float64) float64 {
			e := f * (1 - v)
			if e < minEffectivePorosity {
				return minEffectivePorosity
			}
			return e
		})
	}
	res := c.archie(ArchieModified, rtv, phie, p)
	res.PorosityEffective = phie
	res.Parameters["vclay_correction_applied"] = !p.DisableClayCorrection
	c.finish(res, rtv, phi, vcl)
	return res, nil
}

// Simandoux solves phi^m*Sw^n/(a*Rw) + Vclay*Sw/Rsh = 1/Rt. For n = 2 the
// quadratic root is used and samples with a negative discriminant are NaN.
// Other exponents are solved per sample by Newton-Raphson.
func (c *Calculator) Simandoux(rt, porosity, vclay []float64, p Params) (*Result, error) {
	c.ClearWarnings()
	rtv, phi, vcl, err := c.validateInputs(rt, porosity, vclay, true)
	if err != nil {
		return nil, err
	}
	if err := c.validateArchie(p); err != nil {
		return nil, err
	}
	if _, err := c.ValidateParameters(analysis.Param{Name: "rsh", Value: p.Rsh}); err != nil {
		return nil, err
	}
	if p.Rsh <= 0 {
		return nil, analysis.NewError("simandoux", "rsh", analysis.ErrInvalidParameter, "Rsh must be positive, got %g", p.Rsh)
	}

	raw := make([]float64, len(rtv))
	quadratic := math.Abs(p.N-2) < 1e-3
	if !quadratic {
		c.Logger().Debug("solving simandoux iteratively", zap.Float64("n", p.N))
	}
	for i := range rtv {
		a := math.Pow(phi[i], p.M) / (p.A * p.Rw)
		b := vcl[i] / p.Rsh
		if quadratic {
			raw[i] = simandouxQuadratic(a, b, rtv[i])
		} else {
			raw[i] = simandouxNewton(a, b, rtv[i], p.N)
		}
	}

	sw := analysis.Clip(raw, 0, 1)
	res := &Result{
		Result: analysis.NewResult(CalculationType, Simandoux.String()),
		SW:     sw,
		SH:     analysis.Map(sw, func(v float64) float64 { return 1 - v }),
	}
	res.Parameters["method"] = Simandoux.String()
	res.Parameters["description"] = Simandoux.Description()
	res.Parameters["rw"] = p.Rw
	res.Parameters["rsh"] = p.Rsh
	res.Parameters["a"] = p.A
	res.Parameters["m"] = p.M
	res.Parameters["n"] = p.N
	res.Parameters["solver"] = "quadratic"
	if !quadratic {
		res.Parameters["solver"] = "newton_raphson"
	}
	res.Quality = assessQuality(sw, raw)
	c.finish(res, rtv, phi, vcl)
	return res, nil
}

// MethodInfo describes the declared saturation models.
func (c *Calculator) MethodInfo() MethodInfo {
	desc := make(map[Method]string, len(Methods))
	for _, m := range Methods {
		desc[m] = m.Description()
	}
	return MethodInfo{
		Methods:      append([]Method(nil), Methods...),
		Descriptions: desc,
		Defaults:     DefaultParams(),
		ClayCutoff:   ClayCutoff,
		Recommendations: map[string]Method{
			"clean_formations": ArchieSimple,
			"shaly_formations": Simandoux,
			"high_vclay":       WaxmanSmits,
			"fractured":        Indonesian,
		},
	}
}

func (c *Calculator) validateInputs(rt, porosity, vclay []float64, needClay bool) (rtv, phi, vcl []float64, err error) {
	if rtv, err = c.ValidateCurve(rt, "RT", analysis.RangeRT); err != nil {
		return nil, nil, nil, err
	}
	if phi, err = c.ValidateCurve(porosity, "POROSITY", analysis.RangePorosity); err != nil {
		return nil, nil, nil, err
	}
	if needClay {
		if vcl, err = c.ValidateCurve(vclay, "VCLAY", analysis.RangeFraction); err != nil {
			return nil, nil, nil, err
		}
	}
	err = analysis.CheckSameLength("water saturation", []string{"RT", "POROSITY", "VCLAY"}, rtv, phi, vcl)
	if err != nil {
		return nil, nil, nil, err
	}
	return rtv, phi, vcl, nil
}

func (c *Calculator) validateArchie(p Params) error {
	params := []analysis.Param{
		{Name: "rw", Value: p.Rw},
		{Name: "a", Value: p.A},
		{Name: "m", Value: p.M},
		{Name: "n", Value: p.N},
	}
	if _, err := c.ValidateParameters(params...); err != nil {
		return err
	}
	for _, pp := range params {
		if pp.Value <= 0 {
			return analysis.NewError("archie", pp.Name, analysis.ErrInvalidParameter, "must be positive, got %g", pp.Value)
		}
	}
	return nil
}

func (c *Calculator) archie(m Method, rt, phi []float64, p Params) *Result {
	ff := analysis.Map(phi, func(f float64) float64 { return p.A / math.Pow(f, p.M) })
	ri := analysis.Map(rt, func(r float64) float64 { return r / p.Rw })
	raw := analysis.Zip(ff, ri, func(f, r float64) float64 { return math.Pow(f/r, 1/p.N) })
	sw := analysis.Clip(raw, 0, 1)

	res := &Result{
		Result:           analysis.NewResult(CalculationType, m.String()),
		SW:               sw,
		SH:               analysis.Map(sw, func(v float64) float64 { return 1 - v }),
		FormationFactor:  ff,
		ResistivityIndex: ri,
	}
	res.Parameters["method"] = m.String()
	res.Parameters["description"] = m.Description()
	res.Parameters["rw"] = p.Rw
	res.Parameters["a"] = p.A
	res.Parameters["m"] = p.M
	res.Parameters["n"] = p.N
	res.Quality = assessQuality(sw, raw)
	return res
}

func (c *Calculator) finish(res *Result, rt, phi, vcl []float64) {
	c.AddInputQC(&res.Result, "rt", rt, "RT")
	c.AddInputQC(&res.Result, "porosity", phi, "POROSITY")
	c.AddInputQC(&res.Result, "vclay", vcl, "VCLAY")
	c.AddQC(&res.Result, "sw", res.SW, "SW_"+res.Method)
	c.Finish(&res.Result)
	c.Logger().Debug("water saturation calculated",
		zap.String("method", res.Method), zap.Float64("mean_sw", analysis.NanMean(res.SW)))
}

func simandouxQuadratic(a, b, rt float64) float64 {
	cc := -1 / rt
	if a == 0 {
		if b > 0 {
			return -cc / b
		}
		return math.NaN()
	}
	disc := b*b - 4*a*cc
	if disc < 0 {
		return math.NaN()
	}
	return (-b + math.Sqrt(disc)) / (2 * a)
}

func simandouxNewton(a, b, rt, n float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsNaN(rt) {
		return math.NaN()
	}
	sw := newtonStart
	for range newtonMaxIter {
		f := a*math.Pow(sw, n) + b*sw - 1/rt
		df := a*n*math.Pow(sw, n-1) + b
		next := analysis.ClipValue(sw-f/(df+1e-10), newtonMinSw, newtonMaxSw)
		if math.Abs(next-sw) < newtonTolerance {
			return next
		}
		sw = next
	}
	return sw
}

func assessQuality(sw, raw []float64) analysis.QualityFlags {
	flags := analysis.NewQualityFlags()
	valid := analysis.ValidValues(sw)
	if len(valid) == 0 {
		flags.Warn("No valid water saturation values", "Check input curves and parameters")
		flags.Downgrade(analysis.QualityPoor)
		return flags
	}
	if analysis.NanMean(valid) > 0.9 {
		flags.Warn("Mean Sw above 0.9, interval appears water bearing", "")
	}
	clipped := analysis.CountWhere(raw, func(v float64) bool { return v > 1 })
	if float64(clipped) > float64(len(valid))*0.2 {
		flags.Warn("More than 20% of Sw values clipped at 1.0", "Check Rw and porosity inputs")
		flags.Downgrade(analysis.QualityFair)
	}
	return flags
}
