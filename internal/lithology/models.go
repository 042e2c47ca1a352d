package lithology

import (
	"math"

	"github.com/user/petro_engine_go/internal/analysis"
)

// Analysis types recorded in results and history.
const (
	NeutronDensityType = "neutron_density_analysis"
	ReservoirType      = "reservoir_quality_assessment"
	PhotoelectricType  = "photoelectric_analysis"
	PayZonesType       = "reservoir_zone_identification"
	HardFormationsType = "hard_formation_identification"
)

// Unknown labels samples that cannot be classified.
const Unknown = "unknown"

// Mineral holds the matrix responses of a reference mineral.
type Mineral struct {
	Name       string
	RhobMatrix float64 // g/cm3
	PEMatrix   float64 // barns/electron
	NPHIMatrix float64 // apparent neutron porosity
}

// Fluid holds the responses of a pore fluid.
type Fluid struct {
	Name string
	Rhob float64
	PE   float64
	NPHI float64
}

// Interval is the open interval (Lo, Hi). Use infinities for open ends.
type Interval struct {
	Lo, Hi float64
}

// All matches every finite value.
var All = Interval{Lo: math.Inf(-1), Hi: math.Inf(1)}

// Above returns (lo, +Inf).
func Above(lo float64) Interval { return Interval{Lo: lo, Hi: math.Inf(1)} }

// Below returns (-Inf, hi).
func Below(hi float64) Interval { return Interval{Lo: math.Inf(-1), Hi: hi} }

// Contains reports whether lo < v < hi. NaN is never contained.
func (iv Interval) Contains(v float64) bool {
	return v > iv.Lo && v < iv.Hi
}

// PEKind says how a facies rule uses the photoelectric factor.
type PEKind int

const (
	PEAny     PEKind = iota // PE is ignored
	PEPresent               // PE is available and inside Range
	PEAbsent                // no PE value for the sample
)

// PECondition is the photoelectric part of a facies rule.
type PECondition struct {
	Kind  PEKind
	Range Interval
}

func (c PECondition) matches(pe float64, havePE bool) bool {
	switch c.Kind {
	case PEPresent:
		return havePE && c.Range.Contains(pe)
	case PEAbsent:
		return !havePE
	default:
		return true
	}
}

// FaciesRule labels a sample whose RHOB and NPHI fall in the given
// intervals and whose PE satisfies the condition.
type FaciesRule struct {
	Facies string
	Rhob   Interval
	NPHI   Interval
	PE     PECondition
}

func (r FaciesRule) matches(rhob, nphi, pe float64, havePE bool) bool {
	return r.Rhob.Contains(rhob) && r.NPHI.Contains(nphi) && r.PE.matches(pe, havePE)
}

// PEMineralRule labels a sample from its position on the PE-RHOB crossplot.
type PEMineralRule struct {
	Mineral string
	PE      Interval
	Rhob    Interval
}

// CurveStats summarizes a curve without percentiles.
type CurveStats struct {
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

// MineralResponse is the crossplot response computed against one mineral.
type MineralResponse struct {
	Mineral           string
	PorosityDensity   []float64
	PorosityNeutron   []float64
	Separation        []float64
	MeanAbsSeparation float64
}

// NeutronDensityResult is the outcome of the neutron-density crossplot.
type NeutronDensityResult struct {
	analysis.Result `yaml:",inline"`

	Dominant        string            `yaml:"dominant_mineral"`
	Fluid           string            `yaml:"fluid_type"`
	Minerals        []MineralResponse `yaml:"-"`
	TotalPorosity   []float64         `yaml:"-"`
	GasEffect       []float64         `yaml:"-"`
	GasZones        []bool            `yaml:"-"`
	Facies          []string          `yaml:"-"`
	SeparationStats CurveStats        `yaml:"nd_separation_stats"`
}

func (r *NeutronDensityResult) Curves() map[string][]float64 {
	return map[string][]float64{"PHIT_ND": r.TotalPorosity, "GAS_ND": r.GasEffect}
}

// ClassStats aggregates the samples of one overall quality class.
type ClassStats struct {
	Count           int     `yaml:"count"`
	Percentage      float64 `yaml:"percentage"`
	AvgPorosity     float64 `yaml:"avg_porosity"`
	AvgPermeability float64 `yaml:"avg_permeability"`
	AvgRQI          float64 `yaml:"avg_rqi"`
}

// Cutoff documents one class boundary used by the reservoir assessment.
type Cutoff struct {
	Property string `yaml:"property"`
	Class    string `yaml:"class"`
	Range    string `yaml:"range"`
}

// ReservoirResult is the per-sample reservoir quality assessment. Clay and
// Hydrocarbon are nil when the matching input curve was not given.
type ReservoirResult struct {
	analysis.Result `yaml:",inline"`

	PorosityClass     []string              `yaml:"-"`
	PermeabilityClass []string              `yaml:"-"`
	RQI               []float64             `yaml:"-"`
	RQIClass          []string              `yaml:"-"`
	Clay              []string              `yaml:"-"`
	Hydrocarbon       []string              `yaml:"-"`
	Overall           []string              `yaml:"-"`
	ClassStats        map[string]ClassStats `yaml:"quality_statistics"`
	Cutoffs           []Cutoff              `yaml:"cutoffs_used"`
}

func (r *ReservoirResult) Curves() map[string][]float64 {
	return map[string][]float64{"RQI": r.RQI}
}

// MineralStats aggregates the samples labelled with one mineral.
type MineralStats struct {
	Count      int     `yaml:"count"`
	Percentage float64 `yaml:"percentage"`
	AvgPE      float64 `yaml:"avg_pe"`
	AvgRhob    float64 `yaml:"avg_rhob"`
}

// PhotoelectricResult is the PE-based mineral identification.
type PhotoelectricResult struct {
	analysis.Result `yaml:",inline"`

	Minerals []string                `yaml:"-"`
	Stats    map[string]MineralStats `yaml:"mineral_statistics"`
}

func (r *PhotoelectricResult) Curves() map[string][]float64 {
	return map[string][]float64{}
}

// PayCutoffs select net pay samples. Step is the sample spacing in meters.
type PayCutoffs struct {
	MaxVsh      float64 `yaml:"max_vsh"`
	MinPorosity float64 `yaml:"min_porosity"`
	MaxSw       float64 `yaml:"max_sw"`
	Step        float64 `yaml:"step"`
}

// DefaultPayCutoffs returns Vsh <= 0.5, porosity >= 0.08, Sw <= 0.6 on a
// 0.5 m sampling.
func DefaultPayCutoffs() PayCutoffs {
	return PayCutoffs{MaxVsh: 0.5, MinPorosity: 0.08, MaxSw: 0.6, Step: 0.5}
}

// Run is a contiguous range of flagged samples, End exclusive.
type Run struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// PayZonesResult flags the samples passing every pay cutoff.
type PayZonesResult struct {
	analysis.Result `yaml:",inline"`

	Flags        []bool     `yaml:"-"`
	Count        int        `yaml:"zones_identified"`
	NetThickness float64    `yaml:"total_thickness"`
	Runs         []Run      `yaml:"runs"`
	MeanVsh      float64    `yaml:"avg_vsh_in_zones"`
	MeanPorosity float64    `yaml:"avg_porosity_in_zones"`
	MeanSw       float64    `yaml:"avg_saturation_in_zones"`
	Cutoffs      PayCutoffs `yaml:"criteria"`
}

func (r *PayZonesResult) Curves() map[string][]float64 {
	return map[string][]float64{"PAY_FLAG": flagCurve(r.Flags)}
}

// HardThresholds select hard (carbonate or evaporite) samples.
type HardThresholds struct {
	MinPE   float64 `yaml:"min_pe"`
	MinRhob float64 `yaml:"min_rhob"`
	Step    float64 `yaml:"step"`
}

// DefaultHardThresholds returns PE >= 4.0 and RHOB >= 2.7 on a 0.5 m sampling.
func DefaultHardThresholds() HardThresholds {
	return HardThresholds{MinPE: 4.0, MinRhob: 2.7, Step: 0.5}
}

// HardFormationsResult flags the samples passing both hard-rock thresholds.
type HardFormationsResult struct {
	analysis.Result `yaml:",inline"`

	Flags      []bool         `yaml:"-"`
	Count      int            `yaml:"hard_formations"`
	Thickness  float64        `yaml:"total_thickness"`
	Runs       []Run          `yaml:"runs"`
	Thresholds HardThresholds `yaml:"criteria"`
}

func (r *HardFormationsResult) Curves() map[string][]float64 {
	return map[string][]float64{"HARD_FLAG": flagCurve(r.Flags)}
}

func flagCurve(flags []bool) []float64 {
	out := make([]float64, len(flags))
	for i, f := range flags {
		if f {
			out[i] = 1
		}
	}
	return out
}
