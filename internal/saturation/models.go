package saturation

import (
	"fmt"

	"github.com/user/petro_engine_go/internal/analysis"
)

// CalculationType tags saturation results and history entries.
const CalculationType = "water_saturation_calculation"

// ClayCutoff is the clay volume above which shaly-sand models are preferred
// over Archie.
const ClayCutoff = 0.5

// minEffectivePorosity bounds the clay-corrected porosity from below.
const minEffectivePorosity = 0.001

// Method selects the saturation model.
type Method int

const (
	ArchieSimple Method = iota
	ArchieModified
	WaxmanSmits
	DualWater
	Simandoux
	Indonesian
)

// Methods lists every declared model, implemented or not.
var Methods = []Method{ArchieSimple, ArchieModified, WaxmanSmits, DualWater, Simandoux, Indonesian}

func (m Method) String() string {
	switch m {
	case ArchieSimple:
		return "archie_simple"
	case ArchieModified:
		return "archie_modified"
	case WaxmanSmits:
		return "waxman_smits"
	case DualWater:
		return "dual_water"
	case Simandoux:
		return "simandoux"
	case Indonesian:
		return "indonesian"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Description returns the model equation or its intended use.
func (m Method) Description() string {
	switch m {
	case ArchieSimple:
		return "Archie: Sw = ((a*Rw)/(phi^m * Rt))^(1/n)"
	case ArchieModified:
		return "Archie with Vclay: Sw = ((a*Rw)/(phie^m * Rt))^(1/n), phie = phi*(1-Vclay)"
	case WaxmanSmits:
		return "Waxman-Smits: formations with conductive clays"
	case DualWater:
		return "Dual Water: free and clay-bound water model"
	case Simandoux:
		return "Simandoux: 1/Rt = phi^m*Sw^n/(a*Rw) + Vclay*Sw/Rsh"
	case Indonesian:
		return "Indonesian equation: fractured and shaly formations"
	default:
		return ""
	}
}

// Implemented reports whether Calculate can run the model.
func (m Method) Implemented() bool {
	switch m {
	case ArchieSimple, ArchieModified, Simandoux:
		return true
	default:
		return false
	}
}

// ParseMethod maps a model key such as "simandoux" to a Method.
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, analysis.NewError("parse method", s, analysis.ErrInvalidParameter, "available methods: %v", Methods)
}

// Params are the Archie and shale parameters. Rsh is only used by
// Simandoux.
type Params struct {
	A   float64
	M   float64
	N   float64
	Rw  float64
	Rsh float64

	// DisableClayCorrection makes ArchieModified use the total porosity.
	DisableClayCorrection bool
}

// DefaultParams returns a=1, m=2, n=2, Rw=0.05 ohm-m, Rsh=2 ohm-m.
func DefaultParams() Params {
	return Params{A: 1, M: 2, N: 2, Rw: 0.05, Rsh: 2}
}

// Inputs are the curves a model reads. Vclay is required by ArchieModified
// and Simandoux.
type Inputs struct {
	RT       []float64
	Porosity []float64
	Vclay    []float64
}

// Result holds water and hydrocarbon saturation. FormationFactor and
// ResistivityIndex are set by the Archie models, PorosityEffective by
// ArchieModified.
type Result struct {
	analysis.Result `yaml:",inline"`

	SW                []float64 `yaml:"-"`
	SH                []float64 `yaml:"-"`
	FormationFactor   []float64 `yaml:"-"`
	ResistivityIndex  []float64 `yaml:"-"`
	PorosityEffective []float64 `yaml:"-"`
}

func (r *Result) Curves() map[string][]float64 {
	c := map[string][]float64{"SW": r.SW, "SH": r.SH}
	if r.FormationFactor != nil {
		c["F"] = r.FormationFactor
		c["RI"] = r.ResistivityIndex
	}
	if r.PorosityEffective != nil {
		c["PHIE_SW"] = r.PorosityEffective
	}
	return c
}

// MethodInfo describes the available models and defaults.
type MethodInfo struct {
	Methods         []Method
	Descriptions    map[Method]string
	Defaults        Params
	ClayCutoff      float64
	Recommendations map[string]Method
}
