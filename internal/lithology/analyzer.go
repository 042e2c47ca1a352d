package lithology

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/user/petro_engine_go/internal/analysis"
)

var (
	rangeRhob = &analysis.Range{Min: 1.5, Max: 3.2}
	rangeNPHI = &analysis.Range{Min: -0.1, Max: 0.8}
)

// Gas zones are samples whose quartz separation exceeds this value.
const GasThreshold = 0.05

// rqiFactor converts sqrt(mD / fraction) to microns.
const rqiFactor = 0.0314

// Minerals are the reference matrices of the crossplot, in tie-break order.
var Minerals = []Mineral{
	{Name: "quartz", RhobMatrix: 2.65, PEMatrix: 1.81, NPHIMatrix: -0.02},
	{Name: "calcite", RhobMatrix: 2.71, PEMatrix: 5.08, NPHIMatrix: 0.00},
	{Name: "dolomite", RhobMatrix: 2.87, PEMatrix: 3.14, NPHIMatrix: 0.04},
	{Name: "clay", RhobMatrix: 2.40, PEMatrix: 2.8, NPHIMatrix: 0.45},
	{Name: "anhydrite", RhobMatrix: 2.96, PEMatrix: 5.05, NPHIMatrix: 0.02},
}

// Fluids are the pore fluids NeutronDensity accepts.
var Fluids = map[string]Fluid{
	"fresh_water": {Name: "fresh_water", Rhob: 1.00, PE: 0.36, NPHI: 1.00},
	"salt_water":  {Name: "salt_water", Rhob: 1.10, PE: 0.81, NPHI: 1.00},
	"oil":         {Name: "oil", Rhob: 0.85, PE: 0.12, NPHI: 0.80},
	"gas":         {Name: "gas", Rhob: 0.20, PE: 0.12, NPHI: 0.45},
}

// DefaultFluid is used when no fluid is named.
const DefaultFluid = "fresh_water"

var (
	tightRhob     = Above(2.6)
	tightNPHI     = Below(0.1)
	reservoirRhob = Interval{Lo: 2.4, Hi: 2.8}
	reservoirNPHI = Interval{Lo: 0.1, Hi: 0.3}
)

// FaciesRules are evaluated in order; the first match wins. Samples that
// match no rule are "intermediate".
var FaciesRules = []FaciesRule{
	{"carbonate_tight", tightRhob, tightNPHI, PECondition{PEPresent, Above(4.5)}},
	{"sandstone_tight", tightRhob, tightNPHI, PECondition{PEPresent, Below(2.0)}},
	{"mixed_tight", tightRhob, tightNPHI, PECondition{PEPresent, All}},
	{"tight_rock", tightRhob, tightNPHI, PECondition{Kind: PEAbsent}},
	{"carbonate_reservoir", reservoirRhob, reservoirNPHI, PECondition{PEPresent, Above(4.0)}},
	{"sandstone_reservoir", reservoirRhob, reservoirNPHI, PECondition{PEPresent, Below(2.5)}},
	{"mixed_reservoir", reservoirRhob, reservoirNPHI, PECondition{PEPresent, All}},
	{"good_reservoir", reservoirRhob, reservoirNPHI, PECondition{Kind: PEAbsent}},
	{"shale_clay", All, Above(0.3), PECondition{}},
	{"coal_organic", Below(2.2), All, PECondition{}},
}

// FallbackFacies labels samples that match no facies rule.
const FallbackFacies = "intermediate"

// PEMineralRules are evaluated in order; the first match wins. Anhydrite
// sits before limestone because its window lies inside the limestone one,
// so samples with PE above 5.0 and RHOB above 2.9 are anhydrite, never
// limestone.
var PEMineralRules = []PEMineralRule{
	{"quartz_sandstone", Below(2.0), Below(2.7)},
	{"anhydrite", Above(5.0), Above(2.9)},
	{"limestone", Above(4.5), Above(2.65)},
	{"dolomite", Interval{Lo: 2.8, Hi: 3.5}, Above(2.8)},
	{"clay_shale", Interval{Lo: 2.5, Hi: 3.5}, Below(2.5)},
	{"coal_organic", Below(1.5), All},
}

// FallbackMineral labels samples that match no PE rule.
const FallbackMineral = "mixed_lithology"

// Analyzer identifies lithology, facies and reservoir quality.
type Analyzer struct {
	analysis.Base
}

// New creates a lithology analyzer.
func New(opts ...analysis.Option) *Analyzer {
	return &Analyzer{Base: analysis.NewBase("lithology", opts...)}
}

// NeutronDensity interprets the neutron-density crossplot against every
// reference mineral. pe may be nil. fluid names an entry of Fluids; an
// empty name selects DefaultFluid.
func (a *Analyzer) NeutronDensity(rhob, nphi, pe []float64, fluid string) (*NeutronDensityResult, error) {
	a.ClearWarnings()
	rho, err := a.ValidateCurve(rhob, "RHOB", rangeRhob)
	if err != nil {
		return nil, err
	}
	nph, err := a.ValidateCurve(nphi, "NPHI", rangeNPHI)
	if err != nil {
		return nil, err
	}
	pef, err := a.ValidateOptionalCurve(pe, "PE", analysis.RangePE)
	if err != nil {
		return nil, err
	}
	if err := analysis.CheckSameLength("neutron-density", []string{"RHOB", "NPHI", "PE"}, rho, nph, pef); err != nil {
		return nil, err
	}
	if fluid == "" {
		fluid = DefaultFluid
	}
	fl, ok := Fluids[fluid]
	if !ok {
		return nil, analysis.NewError("neutron-density", fluid, analysis.ErrInvalidParameter, "unknown fluid type")
	}
	if x, _ := analysis.JointValid(rho, nph); len(x) == 0 {
		return nil, analysis.NewError("neutron-density", "RHOB/NPHI", analysis.ErrNoValidData, "no sample with both curves")
	}

	responses := make([]MineralResponse, len(Minerals))
	dominant := 0
	for i, m := range Minerals {
		phiD := analysis.Map(rho, func(v float64) float64 {
			return (m.RhobMatrix - v) / (m.RhobMatrix - fl.Rhob)
		})
		phiN := analysis.Map(nph, func(v float64) float64 { return v - m.NPHIMatrix })
		sep := analysis.Zip(phiN, phiD, func(n, d float64) float64 { return n - d })
		responses[i] = MineralResponse{
			Mineral:           m.Name,
			PorosityDensity:   phiD,
			PorosityNeutron:   phiN,
			Separation:        sep,
			MeanAbsSeparation: math.Abs(analysis.NanMean(sep)),
		}
		if responses[i].MeanAbsSeparation < responses[dominant].MeanAbsSeparation {
			dominant = i
		}
	}
	dom := responses[dominant]

	gas := analysis.Map(responses[0].Separation, func(v float64) float64 { return math.Max(0, v) })
	zones := make([]bool, len(gas))
	for i, v := range gas {
		zones[i] = v > GasThreshold
	}

	res := &NeutronDensityResult{
		Result:        analysis.NewResult(NeutronDensityType, "neutron_density"),
		Dominant:      dom.Mineral,
		Fluid:         fl.Name,
		Minerals:      responses,
		TotalPorosity: analysis.Clip(dom.PorosityDensity, 0, 0.5),
		GasEffect:     gas,
		GasZones:      zones,
		Facies:        ClassifyFacies(rho, nph, pef),
		SeparationStats: CurveStats{
			Mean: analysis.NanMean(dom.Separation),
			Std:  analysis.NanStd(dom.Separation),
			Min:  analysis.NanMin(dom.Separation),
			Max:  analysis.NanMax(dom.Separation),
		},
	}
	gasCount := countTrue(zones)
	res.Parameters["fluid_type"] = fl.Name
	res.Parameters["fluid_density"] = fl.Rhob
	res.Parameters["dominant_mineral"] = dom.Mineral
	res.Parameters["pe_available"] = pef != nil
	res.Parameters["gas_zones"] = gasCount
	res.Parameters["gas_percentage"] = analysis.Percent(gasCount, len(zones))

	a.AddInputQC(&res.Result, "rhob", rho, "RHOB")
	a.AddInputQC(&res.Result, "nphi", nph, "NPHI")
	a.AddInputQC(&res.Result, "pe", pef, "PE")
	a.AddQC(&res.Result, "total_porosity", res.TotalPorosity, "PHIT_ND")

	res.Quality = analysis.NewQualityFlags()
	if dom.MeanAbsSeparation > 0.1 {
		res.Quality.Warn(fmt.Sprintf("Best mineral fit (%s) leaves mean separation %.3f", dom.Mineral, dom.MeanAbsSeparation),
			"Lithology is likely mixed; use PE to refine")
		res.Quality.Downgrade(analysis.QualityFair)
	}
	if gasCount > 0 {
		res.Quality.Warn(fmt.Sprintf("Gas effect in %d samples", gasCount), "Apply gas correction before using porosity")
	}
	a.Finish(&res.Result)
	a.Logger().Debug("neutron-density analysis",
		zap.String("dominant", dom.Mineral), zap.Float64("mean_phit", analysis.NanMean(res.TotalPorosity)))
	return res, nil
}

// ClassifyFacies applies FaciesRules to every sample. pe may be nil; a NaN
// PE counts as absent. Samples with NaN RHOB or NPHI are Unknown.
func ClassifyFacies(rhob, nphi, pe []float64) []string {
	out := make([]string, len(rhob))
	for i := range rhob {
		r, n := rhob[i], nphi[i]
		if math.IsNaN(r) || math.IsNaN(n) {
			out[i] = Unknown
			continue
		}
		p, havePE := math.NaN(), false
		if pe != nil && !math.IsNaN(pe[i]) {
			p, havePE = pe[i], true
		}
		out[i] = FallbackFacies
		for _, rule := range FaciesRules {
			if rule.matches(r, n, p, havePE) {
				out[i] = rule.Facies
				break
			}
		}
	}
	return out
}

// ReservoirQuality grades every sample from porosity and permeability,
// penalized by clay content. vclay and sw may be nil.
func (a *Analyzer) ReservoirQuality(porosity, perm, vclay, sw []float64) (*ReservoirResult, error) {
	a.ClearWarnings()
	phi, err := a.ValidateCurve(porosity, "POROSITY", analysis.RangePorosity)
	if err != nil {
		return nil, err
	}
	k, err := a.ValidateCurve(perm, "PERMEABILITY", analysis.RangePerm)
	if err != nil {
		return nil, err
	}
	vcl, err := a.ValidateOptionalCurve(vclay, "VCLAY", analysis.RangeFraction)
	if err != nil {
		return nil, err
	}
	swc, err := a.ValidateOptionalCurve(sw, "SW", analysis.RangeFraction)
	if err != nil {
		return nil, err
	}
	if err := analysis.CheckSameLength("reservoir quality", []string{"POROSITY", "PERMEABILITY", "VCLAY", "SW"}, phi, k, vcl, swc); err != nil {
		return nil, err
	}

	rqi := analysis.Zip(k, phi, func(kv, f float64) float64 {
		if f <= 0 {
			return math.NaN()
		}
		return rqiFactor * math.Sqrt(kv/f)
	})
	res := &ReservoirResult{
		Result:            analysis.NewResult(ReservoirType, "rqi_combined"),
		PorosityClass:     classifyAll(phi, porosityTiers),
		PermeabilityClass: classifyAll(k, permeabilityTiers),
		RQI:               rqi,
		RQIClass:          classifyAll(rqi, rqiTiers),
	}
	if vcl != nil {
		res.Clay = classifyAll(vcl, clayTiers)
	}
	if swc != nil {
		res.Hydrocarbon = classifyAll(analysis.Map(swc, func(v float64) float64 { return 1 - v }), hydrocarbonTiers)
	}
	res.Overall = make([]string, len(phi))
	for i := range phi {
		clay := ""
		if res.Clay != nil {
			clay = res.Clay[i]
		}
		res.Overall[i] = overallQuality(res.PorosityClass[i], res.PermeabilityClass[i], res.RQIClass[i], clay)
	}
	res.ClassStats = classStats(res.Overall, phi, k, rqi)
	res.Cutoffs = Cutoffs()

	res.Parameters["clay_penalty_applied"] = vcl != nil
	res.Parameters["hydrocarbon_assessed"] = swc != nil
	a.AddInputQC(&res.Result, "porosity", phi, "POROSITY")
	a.AddInputQC(&res.Result, "permeability", k, "PERMEABILITY")
	a.AddInputQC(&res.Result, "vclay", vcl, "VCLAY")
	a.AddInputQC(&res.Result, "sw", swc, "SW")
	a.AddQC(&res.Result, "rqi", rqi, "RQI")

	res.Quality = analysis.NewQualityFlags()
	if unknown := labels(res.Overall).count(Unknown); unknown > len(phi)/2 {
		res.Quality.Warn(fmt.Sprintf("%d of %d samples could not be graded", unknown, len(phi)),
			"Check porosity and permeability coverage")
		res.Quality.Downgrade(analysis.QualityFair)
	}
	a.Finish(&res.Result)
	a.Logger().Debug("reservoir quality assessed", zap.Float64("mean_rqi", analysis.NanMean(rqi)))
	return res, nil
}

// Photoelectric identifies minerals from PE and RHOB. nphi is optional and
// only checked and summarized.
func (a *Analyzer) Photoelectric(pe, rhob, nphi []float64) (*PhotoelectricResult, error) {
	a.ClearWarnings()
	pef, err := a.ValidateCurve(pe, "PE", analysis.RangePE)
	if err != nil {
		return nil, err
	}
	rho, err := a.ValidateCurve(rhob, "RHOB", rangeRhob)
	if err != nil {
		return nil, err
	}
	nph, err := a.ValidateOptionalCurve(nphi, "NPHI", rangeNPHI)
	if err != nil {
		return nil, err
	}
	if err := analysis.CheckSameLength("photoelectric", []string{"PE", "RHOB", "NPHI"}, pef, rho, nph); err != nil {
		return nil, err
	}

	res := &PhotoelectricResult{
		Result:   analysis.NewResult(PhotoelectricType, "pe_rhob"),
		Minerals: ClassifyPE(pef, rho),
		Stats:    make(map[string]MineralStats),
	}
	for _, name := range distinct(res.Minerals) {
		if name == Unknown {
			continue
		}
		var peIn, rhoIn []float64
		for i, m := range res.Minerals {
			if m == name {
				peIn = append(peIn, pef[i])
				rhoIn = append(rhoIn, rho[i])
			}
		}
		res.Stats[name] = MineralStats{
			Count:      len(peIn),
			Percentage: analysis.Percent(len(peIn), len(pef)),
			AvgPE:      analysis.NanMean(peIn),
			AvgRhob:    analysis.NanMean(rhoIn),
		}
	}

	res.Parameters["neutron_available"] = nph != nil
	a.AddInputQC(&res.Result, "pe", pef, "PE")
	a.AddInputQC(&res.Result, "rhob", rho, "RHOB")
	a.AddInputQC(&res.Result, "nphi", nph, "NPHI")
	res.Quality = analysis.NewQualityFlags()
	if mixed := res.Stats[FallbackMineral].Count; mixed > len(pef)/2 {
		res.Quality.Warn(fmt.Sprintf("%d of %d samples do not match a single mineral", mixed, len(pef)),
			"Combine with the neutron-density crossplot")
		res.Quality.Downgrade(analysis.QualityFair)
	}
	a.Finish(&res.Result)
	a.Logger().Debug("photoelectric analysis", zap.Int("minerals", len(res.Stats)))
	return res, nil
}

// ClassifyPE applies PEMineralRules to every sample. Samples with NaN PE or
// RHOB are Unknown.
func ClassifyPE(pe, rhob []float64) []string {
	out := make([]string, len(pe))
	for i := range pe {
		p, r := pe[i], rhob[i]
		if math.IsNaN(p) || math.IsNaN(r) {
			out[i] = Unknown
			continue
		}
		out[i] = FallbackMineral
		for _, rule := range PEMineralRules {
			if rule.PE.Contains(p) && rule.Rhob.Contains(r) {
				out[i] = rule.Mineral
				break
			}
		}
	}
	return out
}

// PayZones flags samples with Vsh <= MaxVsh, porosity >= MinPorosity and
// Sw <= MaxSw. Samples with any NaN input are not pay.
func (a *Analyzer) PayZones(vsh, porosity, sw []float64, c PayCutoffs) (*PayZonesResult, error) {
	a.ClearWarnings()
	v, err := a.ValidateCurve(vsh, "VSH", analysis.RangeFraction)
	if err != nil {
		return nil, err
	}
	phi, err := a.ValidateCurve(porosity, "POROSITY", analysis.RangePorosity)
	if err != nil {
		return nil, err
	}
	s, err := a.ValidateCurve(sw, "SW", analysis.RangeFraction)
	if err != nil {
		return nil, err
	}
	if err := analysis.CheckSameLength("pay zones", []string{"VSH", "POROSITY", "SW"}, v, phi, s); err != nil {
		return nil, err
	}
	if err := a.step("pay zones", c.Step,
		analysis.Param{Name: "max_vsh", Value: c.MaxVsh},
		analysis.Param{Name: "min_porosity", Value: c.MinPorosity},
		analysis.Param{Name: "max_sw", Value: c.MaxSw},
	); err != nil {
		return nil, err
	}

	flags := make([]bool, len(v))
	var inV, inPhi, inSw []float64
	for i := range v {
		// NaN fails every comparison below.
		flags[i] = v[i] <= c.MaxVsh && phi[i] >= c.MinPorosity && s[i] <= c.MaxSw
		if flags[i] {
			inV = append(inV, v[i])
			inPhi = append(inPhi, phi[i])
			inSw = append(inSw, s[i])
		}
	}
	count := len(inV)
	res := &PayZonesResult{
		Result:       analysis.NewResult(PayZonesType, "cutoffs"),
		Flags:        flags,
		Count:        count,
		NetThickness: float64(count) * c.Step,
		Runs:         runs(flags),
		MeanVsh:      analysis.NanMean(inV),
		MeanPorosity: analysis.NanMean(inPhi),
		MeanSw:       analysis.NanMean(inSw),
		Cutoffs:      c,
	}
	res.Parameters["max_vsh"] = c.MaxVsh
	res.Parameters["min_porosity"] = c.MinPorosity
	res.Parameters["max_sw"] = c.MaxSw
	res.Parameters["step"] = c.Step
	res.Parameters["net_to_gross"] = analysis.Percent(count, len(flags))
	a.AddInputQC(&res.Result, "vsh", v, "VSH")
	a.AddInputQC(&res.Result, "porosity", phi, "POROSITY")
	a.AddInputQC(&res.Result, "sw", s, "SW")
	res.Quality = analysis.NewQualityFlags()
	if count == 0 {
		res.Quality.Warn("No sample passes the pay cutoffs", "Review cutoffs for this formation")
	}
	a.Finish(&res.Result)
	a.Logger().Debug("pay zones identified", zap.Int("samples", count), zap.Float64("net_thickness", res.NetThickness))
	return res, nil
}

// HardFormations flags samples with PE >= MinPE and RHOB >= MinRhob.
func (a *Analyzer) HardFormations(pe, rhob []float64, t HardThresholds) (*HardFormationsResult, error) {
	a.ClearWarnings()
	pef, err := a.ValidateCurve(pe, "PE", analysis.RangePE)
	if err != nil {
		return nil, err
	}
	rho, err := a.ValidateCurve(rhob, "RHOB", rangeRhob)
	if err != nil {
		return nil, err
	}
	if err := analysis.CheckSameLength("hard formations", []string{"PE", "RHOB"}, pef, rho); err != nil {
		return nil, err
	}
	if err := a.step("hard formations", t.Step,
		analysis.Param{Name: "min_pe", Value: t.MinPE},
		analysis.Param{Name: "min_rhob", Value: t.MinRhob},
	); err != nil {
		return nil, err
	}

	flags := make([]bool, len(pef))
	for i := range pef {
		flags[i] = pef[i] >= t.MinPE && rho[i] >= t.MinRhob
	}
	count := countTrue(flags)
	res := &HardFormationsResult{
		Result:     analysis.NewResult(HardFormationsType, "pe_rhob_thresholds"),
		Flags:      flags,
		Count:      count,
		Thickness:  float64(count) * t.Step,
		Runs:       runs(flags),
		Thresholds: t,
	}
	res.Parameters["min_pe"] = t.MinPE
	res.Parameters["min_rhob"] = t.MinRhob
	res.Parameters["step"] = t.Step
	a.AddInputQC(&res.Result, "pe", pef, "PE")
	a.AddInputQC(&res.Result, "rhob", rho, "RHOB")
	res.Quality = analysis.NewQualityFlags()
	a.Finish(&res.Result)
	a.Logger().Debug("hard formations identified", zap.Int("samples", count))
	return res, nil
}

func (a *Analyzer) step(op string, step float64, params ...analysis.Param) error {
	if _, err := a.ValidateParameters(append(params, analysis.Param{Name: "step", Value: step})...); err != nil {
		return err
	}
	if step <= 0 {
		return analysis.NewError(op, "step", analysis.ErrInvalidParameter, "must be positive, got %g", step)
	}
	return nil
}

// tier is a class covering [min, next tier's min).
type tier struct {
	name string
	min  float64
}

var (
	porosityTiers = []tier{
		{"poor", math.Inf(-1)}, {"fair", 0.05}, {"good", 0.10}, {"excellent", 0.15},
	}
	permeabilityTiers = []tier{
		{"tight", math.Inf(-1)}, {"poor", 0.1}, {"fair", 1}, {"good", 10}, {"excellent", 100},
	}
	rqiTiers = []tier{
		{"poor", math.Inf(-1)}, {"fair", 0.1}, {"good", 0.5}, {"excellent", 1.0},
	}
	clayTiers = []tier{
		{"clean", math.Inf(-1)}, {"slightly_shaly", 0.10}, {"moderately_shaly", 0.25}, {"very_shaly", 0.50},
	}
	hydrocarbonTiers = []tier{
		{"water", math.Inf(-1)}, {"low_hc", 0.1}, {"moderate_hc", 0.3}, {"high_hc", 0.6},
	}
)

func classify(v float64, tiers []tier) string {
	if math.IsNaN(v) {
		return Unknown
	}
	name := tiers[0].name
	for _, t := range tiers[1:] {
		if v < t.min {
			break
		}
		name = t.name
	}
	return name
}

type labels []string

func (l labels) count(name string) int {
	n := 0
	for _, s := range l {
		if s == name {
			n++
		}
	}
	return n
}

func classifyAll(data []float64, tiers []tier) labels {
	out := make(labels, len(data))
	for i, v := range data {
		out[i] = classify(v, tiers)
	}
	return out
}

var (
	qualityScores = map[string]float64{"tight": 1, "poor": 1, "fair": 2, "good": 3, "excellent": 4}
	clayPenalties = map[string]float64{"clean": 0, "slightly_shaly": 1, "moderately_shaly": 2, "very_shaly": 3}
)

// overallQuality averages the three scores and subtracts half the clay
// penalty. An unknown porosity, permeability or RQI class gives Unknown; an
// unknown or missing clay class gives no penalty.
func overallQuality(phi, k, rqi, clay string) string {
	if phi == Unknown || k == Unknown || rqi == Unknown {
		return Unknown
	}
	score := (qualityScores[phi]+qualityScores[k]+qualityScores[rqi])/3 - 0.5*clayPenalties[clay]
	switch {
	case score >= 3.5:
		return "excellent"
	case score >= 2.5:
		return "good"
	case score >= 1.5:
		return "fair"
	default:
		return "poor"
	}
}

func classStats(overall labels, phi, k, rqi []float64) map[string]ClassStats {
	out := make(map[string]ClassStats)
	for _, name := range []string{"excellent", "good", "fair", "poor"} {
		var p, kk, r []float64
		for i, o := range overall {
			if o == name {
				p = append(p, phi[i])
				kk = append(kk, k[i])
				r = append(r, rqi[i])
			}
		}
		if len(p) == 0 {
			continue
		}
		out[name] = ClassStats{
			Count:           len(p),
			Percentage:      analysis.Percent(len(p), len(overall)),
			AvgPorosity:     analysis.NanMean(p),
			AvgPermeability: analysis.NanMean(kk),
			AvgRQI:          analysis.NanMean(r),
		}
	}
	return out
}

// Cutoffs lists the class boundaries used by ReservoirQuality.
func Cutoffs() []Cutoff {
	var out []Cutoff
	for _, group := range []struct {
		property string
		tiers    []tier
	}{
		{"porosity", porosityTiers},
		{"permeability", permeabilityTiers},
		{"rqi", rqiTiers},
		{"clay", clayTiers},
		{"hydrocarbon_saturation", hydrocarbonTiers},
	} {
		for i, t := range group.tiers {
			var r string
			switch {
			case i == 0:
				r = fmt.Sprintf("<%g", group.tiers[1].min)
			case i == len(group.tiers)-1:
				r = fmt.Sprintf(">=%g", t.min)
			default:
				r = fmt.Sprintf("%g-%g", t.min, group.tiers[i+1].min)
			}
			out = append(out, Cutoff{Property: group.property, Class: t.name, Range: r})
		}
	}
	return out
}

func distinct(names []string) []string {
	out := slices.Clone(names)
	slices.Sort(out)
	return slices.Compact(out)
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func runs(flags []bool) []Run {
	var out []Run
	start := -1
	for i, f := range flags {
		switch {
		case f && start < 0:
			start = i
		case !f && start >= 0:
			out = append(out, Run{Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, Run{Start: start, End: len(flags)})
	}
	return out
}
