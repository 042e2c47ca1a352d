package permeability

import (
	"fmt"
	"math"

	"github.com/user/petro_engine_go/internal/analysis"
)

// CalculationType tags permeability results and history entries.
const CalculationType = "permeability_calculation"

// Output limits in mD.
const (
	MinPermeability = 0.001
	MaxPermeability = 10000.0
)

// Method selects the permeability correlation.
type Method int

const (
	Timur Method = iota
	KozenyCarman
	CoatesDumanoir
	WyllieRose
	Schlumberger
	MorrisBiggs
)

// Methods lists every declared correlation, implemented or not.
var Methods = []Method{Timur, KozenyCarman, CoatesDumanoir, WyllieRose, Schlumberger, MorrisBiggs}

func (m Method) String() string {
	switch m {
	case Timur:
		return "timur"
	case KozenyCarman:
		return "kozeny_carman"
	case CoatesDumanoir:
		return "coates_dumanoir"
	case WyllieRose:
		return "wyllie_rose"
	case Schlumberger:
		return "schlumberger"
	case MorrisBiggs:
		return "morris_biggs"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

func (m Method) Description() string {
	switch m {
	case Timur:
		return "Timur: K = A * (phi^B / Swi^C), classic empirical model"
	case KozenyCarman:
		return "Kozeny-Carman: K = C * phi^3 / ((1-phi)^2 * tau), theoretical model"
	case CoatesDumanoir:
		return "Coates & Dumanoir: for NMR data"
	case WyllieRose:
		return "Wyllie & Rose: K = 79 * phi^3/(1-phi)^2 * d50^2/So^2 / 1000, granular rocks"
	case Schlumberger:
		return "Schlumberger: carbonates"
	case MorrisBiggs:
		return "Morris & Biggs: sandstones"
	default:
		return ""
	}
}

// Implemented reports whether Calculate can run the correlation.
func (m Method) Implemented() bool {
	switch m {
	case Timur, KozenyCarman, WyllieRose:
		return true
	default:
		return false
	}
}

// ParseMethod maps a correlation key such as "timur" to a Method.
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, analysis.NewError("parse method", s, analysis.ErrInvalidParameter, "available methods: %v", Methods)
}

// RockType selects default correlation constants.
type RockType int

const (
	Sandstone RockType = iota
	Carbonate
	ShalySand
)

func (r RockType) String() string {
	switch r {
	case Sandstone:
		return "sandstone"
	case Carbonate:
		return "carbonate"
	case ShalySand:
		return "shaly_sand"
	default:
		return fmt.Sprintf("RockType(%d)", int(r))
	}
}

// ParseRockType maps "sandstone", "carbonate" or "shaly_sand" to a RockType.
func ParseRockType(s string) (RockType, error) {
	for _, r := range []RockType{Sandstone, Carbonate, ShalySand} {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, analysis.NewError("parse rock type", s, analysis.ErrInvalidParameter, "")
}

// TimurParams are the constants of K = A * phi^B / Swi^C.
type TimurParams struct {
	A, B, C float64
}

// DefaultTimurParams returns the tabulated constants for the rock type.
// Unknown rock types get the sandstone constants.
func DefaultTimurParams(r RockType) TimurParams {
	switch r {
	case Carbonate:
		return TimurParams{A: 2040, B: 3.0, C: 1.0}
	case ShalySand:
		return TimurParams{A: 4500, B: 4.0, C: 2.0}
	default:
		return TimurParams{A: 8581, B: 4.4, C: 2.0}
	}
}

// KozenyParams are the Kozeny constant and the tortuosity.
type KozenyParams struct {
	C          float64
	Tortuosity float64
}

// DefaultKozenyParams returns the tabulated constants for the rock type.
func DefaultKozenyParams(r RockType) KozenyParams {
	switch r {
	case Carbonate:
		return KozenyParams{C: 2.0, Tortuosity: 3.0}
	case ShalySand:
		return KozenyParams{C: 1.0, Tortuosity: 4.0}
	default:
		return KozenyParams{C: 5.0, Tortuosity: 2.0}
	}
}

// DefaultSorting is the Wyllie-Rose sorting coefficient So.
const DefaultSorting = 2.0

// Swi is the irreducible water saturation, either one value for every
// sample or a curve.
type Swi struct {
	value float64
	curve []float64
}

// SwiConstant uses v at every sample.
func SwiConstant(v float64) Swi {
	return Swi{value: v}
}

// SwiCurve uses one value per sample.
func SwiCurve(c []float64) Swi {
	return Swi{curve: c}
}

// IsCurve reports whether the saturation varies per sample.
func (s Swi) IsCurve() bool {
	return s.curve != nil
}

// Inputs are the curves a correlation reads. Swi is used by Timur,
// GrainSize by Kozeny-Carman (optional) and Wyllie-Rose (required).
type Inputs struct {
	Porosity  []float64
	Swi       Swi
	GrainSize []float64
}

// Params bundles the constants of every implemented correlation.
type Params struct {
	RockType RockType
	Timur    TimurParams
	Kozeny   KozenyParams
	Sorting  float64
}

// DefaultParams returns the tabulated constants for the rock type.
func DefaultParams(r RockType) Params {
	return Params{
		RockType: r,
		Timur:    DefaultTimurParams(r),
		Kozeny:   DefaultKozenyParams(r),
		Sorting:  DefaultSorting,
	}
}

// Result holds permeability in mD and its base-10 logarithm.
type Result struct {
	analysis.Result `yaml:",inline"`

	K      []float64 `yaml:"-"`
	Log10K []float64 `yaml:"-"`
}

func (r *Result) Curves() map[string][]float64 {
	return map[string][]float64{"PERM": r.K, "PERM_LOG10": r.Log10K}
}

// SwiMethod selects the Swi-from-permeability correlation.
type SwiMethod int

const (
	SwiMorrisBiggs SwiMethod = iota
	SwiSchlumberger
)

func (m SwiMethod) String() string {
	switch m {
	case SwiMorrisBiggs:
		return "morris_biggs"
	case SwiSchlumberger:
		return "schlumberger"
	default:
		return fmt.Sprintf("SwiMethod(%d)", int(m))
	}
}

// ParseSwiMethod maps "morris_biggs" or "schlumberger" to a SwiMethod.
func ParseSwiMethod(s string) (SwiMethod, error) {
	for _, m := range []SwiMethod{SwiMorrisBiggs, SwiSchlumberger} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, analysis.NewError("parse swi method", s, analysis.ErrInvalidParameter, "")
}

// SwiResult holds an irreducible water saturation estimate.
type SwiResult struct {
	Swi      []float64
	Method   SwiMethod
	Mean     float64
	Warnings []string
}

// Class is a permeability class covering [Min, Max) in mD.
type Class struct {
	Name string
	Min  float64
	Max  float64
}

// Label renders the class interval.
func (c Class) Label() string {
	switch {
	case math.IsInf(c.Min, -1):
		return fmt.Sprintf("<%g", c.Max)
	case math.IsInf(c.Max, 1):
		return fmt.Sprintf(">=%g", c.Min)
	default:
		return fmt.Sprintf("%g-%g", c.Min, c.Max)
	}
}

// Classes are the industry permeability classes, in increasing order. The
// first is unbounded below and the last unbounded above so every finite
// value lands in exactly one class.
var Classes = []Class{
	{"very_tight", math.Inf(-1), 0.1},
	{"tight", 0.1, 1},
	{"low", 1, 10},
	{"moderate", 10, 100},
	{"good", 100, 1000},
	{"very_good", 1000, math.Inf(1)},
}

// ClassCount is the population of one class.
type ClassCount struct {
	Class      Class
	Count      int
	Percentage float64
}

// Classification counts valid samples per class. NaN samples are excluded
// from Total.
type Classification struct {
	Total   int
	Classes []ClassCount
}
