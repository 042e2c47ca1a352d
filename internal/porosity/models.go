package porosity

import (
	"fmt"

	"github.com/user/petro_engine_go/internal/analysis"
)

// Calculation types recorded in results and history.
const (
	DensityType  = "density_porosity_calculation"
	NeutronType  = "neutron_porosity_calculation"
	CombinedType = "density_neutron_porosity_calculation"
)

// Physical limits of porosity outputs.
const (
	MinPorosity = 0.0
	MaxPorosity = 0.5
)

// GasThreshold is the PHID-PHIN excess that marks a possible gas sample.
const GasThreshold = 0.05

// DefaultGasCorrectionFactor is the share of the PHID-PHIN excess added back
// to the neutron porosity in gas zones.
const DefaultGasCorrectionFactor = 0.15

// MatrixDensity is a reference grain density in g/cm3.
type MatrixDensity struct {
	Name           string
	Density        float64
	Recommendation string
}

// MatrixDensities are the reference matrix densities, in table order.
var MatrixDensities = []MatrixDensity{
	{"sandstone", 2.65, "Clastic formations, conventional reservoirs"},
	{"limestone", 2.71, "Marine carbonates, carbonate platforms"},
	{"dolomite", 2.87, "Diagenetically altered carbonates"},
	{"anhydrite", 2.98, "Evaporites, seals"},
	{"halite", 2.16, "Salt domes, seals"},
	{"coal", 1.30, "Coal beds"},
	{"clay", ClayDensity, "Shale intervals, clay corrections"},
}

// FluidDensities are reference pore fluid densities in g/cm3.
var FluidDensities = map[string]float64{
	"fresh_water":  1.00,
	"salt_water":   1.10,
	"oil":          0.85,
	"gas":          0.20,
	"mud_filtrate": 1.05,
}

// Clay response used by the shale corrections.
const (
	ClayDensityApparentPorosity = 0.40
	ClayNeutronApparentPorosity = 0.45
	ClayDensity                 = 2.20
)

// Lithology selects the neutron lithology factor.
type Lithology int

const (
	Sandstone Lithology = iota
	Limestone
	Dolomite
)

func (l Lithology) String() string {
	switch l {
	case Sandstone:
		return "sandstone"
	case Limestone:
		return "limestone"
	case Dolomite:
		return "dolomite"
	default:
		return fmt.Sprintf("Lithology(%d)", int(l))
	}
}

// Factor is the multiplier applied to NPHI for the lithology.
func (l Lithology) Factor() float64 {
	switch l {
	case Limestone:
		return 0.95
	case Dolomite:
		return 0.90
	default:
		return 1.00
	}
}

// ParseLithology maps "sandstone", "limestone" or "dolomite" to a Lithology.
func ParseLithology(s string) (Lithology, error) {
	for _, l := range []Lithology{Sandstone, Limestone, Dolomite} {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, analysis.NewError("parse lithology", s, analysis.ErrInvalidParameter, "")
}

// Combination selects how density and neutron porosity are merged.
type Combination int

const (
	Arithmetic Combination = iota
	Geometric
	Harmonic
)

func (c Combination) String() string {
	switch c {
	case Arithmetic:
		return "arithmetic"
	case Geometric:
		return "geometric"
	case Harmonic:
		return "harmonic"
	default:
		return fmt.Sprintf("Combination(%d)", int(c))
	}
}

// ParseCombination maps a combination key to a Combination.
func ParseCombination(s string) (Combination, error) {
	for _, c := range []Combination{Arithmetic, Geometric, Harmonic} {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, analysis.NewError("parse combination", s, analysis.ErrInvalidParameter, "")
}

// DensityParams are the matrix and fluid densities in g/cm3.
type DensityParams struct {
	MatrixDensity float64
	FluidDensity  float64
}

// DefaultDensityParams is a water-filled sandstone.
func DefaultDensityParams() DensityParams {
	return DensityParams{MatrixDensity: 2.65, FluidDensity: 1.00}
}

// CombinedParams configures a density-neutron calculation.
type CombinedParams struct {
	Density     DensityParams
	Lithology   Lithology
	Combination Combination
}

// DefaultCombinedParams is an arithmetic average over a water-filled sandstone.
func DefaultCombinedParams() CombinedParams {
	return CombinedParams{Density: DefaultDensityParams(), Lithology: Sandstone, Combination: Arithmetic}
}

// ClayCorrectionParams are the apparent porosities of clay seen by each tool.
type ClayCorrectionParams struct {
	DensityClayPorosity float64
	NeutronClayPorosity float64
}

// DefaultClayCorrectionParams returns the tabulated clay response.
func DefaultClayCorrectionParams() ClayCorrectionParams {
	return ClayCorrectionParams{
		DensityClayPorosity: ClayDensityApparentPorosity,
		NeutronClayPorosity: ClayNeutronApparentPorosity,
	}
}

// DensityResult holds density porosity. ClayCorrection is nil when no VCL
// curve was supplied.
type DensityResult struct {
	analysis.Result `yaml:",inline"`

	PHID           []float64 `yaml:"-"`
	PHIDRaw        []float64 `yaml:"-"`
	ClayCorrection []float64 `yaml:"-"`
}

func (r *DensityResult) Curves() map[string][]float64 {
	c := map[string][]float64{"PHID": r.PHID, "PHID_RAW": r.PHIDRaw}
	if r.ClayCorrection != nil {
		c["PHID_CLAY_CORR"] = r.ClayCorrection
	}
	return c
}

// NeutronResult holds neutron porosity after lithology and clay corrections.
type NeutronResult struct {
	analysis.Result `yaml:",inline"`

	PHIN           []float64 `yaml:"-"`
	PHINRaw        []float64 `yaml:"-"`
	PHINLitho      []float64 `yaml:"-"`
	ClayCorrection []float64 `yaml:"-"`
}

func (r *NeutronResult) Curves() map[string][]float64 {
	c := map[string][]float64{"PHIN": r.PHIN, "PHIN_RAW": r.PHINRaw, "PHIN_LITHO": r.PHINLitho}
	if r.ClayCorrection != nil {
		c["PHIN_CLAY_CORR"] = r.ClayCorrection
	}
	return c
}

// GasEffect describes where density porosity exceeds neutron porosity by
// more than Threshold.
type GasEffect struct {
	Indicator  []float64 `yaml:"-"`
	Zones      []bool    `yaml:"-"`
	Count      int       `yaml:"gas_points_count"`
	Percentage float64   `yaml:"gas_percentage"`
	Max        float64   `yaml:"max_gas_effect"`
	Threshold  float64   `yaml:"threshold_used"`
}

// ClayCorrected is the output of ApplyClayCorrection.
type ClayCorrected struct {
	PHID   []float64
	PHIN   []float64
	PHIE   []float64
	Params ClayCorrectionParams
}

// GasCorrected is the output of ApplyGasCorrection.
type GasCorrected struct {
	PHID       []float64
	PHIN       []float64
	PHIE       []float64
	Zones      []bool
	Factor     float64
	Percentage float64
	MaxEffect  float64
}

// CombinedResult holds the effective porosity from density and neutron
// together with the individual results it was built from.
type CombinedResult struct {
	analysis.Result `yaml:",inline"`

	PHIE []float64 `yaml:"-"`
	PHID []float64 `yaml:"-"`
	PHIN []float64 `yaml:"-"`
	Gas  GasEffect `yaml:"gas_effect"`

	Density *DensityResult `yaml:"-"`
	Neutron *NeutronResult `yaml:"-"`

	ClayCorrection *ClayCorrected `yaml:"-"`
	GasCorrection  *GasCorrected  `yaml:"-"`
}

func (r *CombinedResult) Curves() map[string][]float64 {
	c := map[string][]float64{"PHIE": r.PHIE, "PHID": r.PHID, "PHIN": r.PHIN, "GAS_IND": r.Gas.Indicator}
	if cc := r.ClayCorrection; cc != nil {
		c["PHID_CC"], c["PHIN_CC"], c["PHIE_CC"] = cc.PHID, cc.PHIN, cc.PHIE
	}
	if gc := r.GasCorrection; gc != nil {
		c["PHID_GC"], c["PHIN_GC"], c["PHIE_GC"] = gc.PHID, gc.PHIN, gc.PHIE
	}
	return c
}

// LithologyIndication is the interpretation of the PHIN-PHID separation.
type LithologyIndication struct {
	Primary           string
	Confidence        string
	AvgSeparation     float64
	SeparationStd     float64
	CleanSandstonePct float64
	ClayPct           float64
	CarbonatePct      float64
	Recommendations   []string
}
