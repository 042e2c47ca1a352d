package clayvolume

import (
	"fmt"

	"github.com/user/petro_engine_go/internal/analysis"
)

// CalculationType tags clay volume results and history entries.
const CalculationType = "vcl_calculation"

// Method selects the IGR to VCL transform.
type Method int

const (
	Linear Method = iota
	LarionovOlder
	LarionovTertiary
	Clavier
	Steiber
)

// Methods lists every clay volume method in declaration order.
var Methods = []Method{Linear, LarionovOlder, LarionovTertiary, Clavier, Steiber}

func (m Method) String() string {
	switch m {
	case Linear:
		return "linear"
	case LarionovOlder:
		return "larionov_older"
	case LarionovTertiary:
		return "larionov_tertiary"
	case Clavier:
		return "clavier"
	case Steiber:
		return "steiber"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Description returns the formula behind the method.
func (m Method) Description() string {
	switch m {
	case Linear:
		return "Linear: VCL = IGR"
	case LarionovOlder:
		return "Larionov pre-Tertiary rocks: VCL = 0.33*(2^(2*IGR) - 1)"
	case LarionovTertiary:
		return "Larionov Tertiary rocks: VCL = 0.083*(2^(3.7*IGR) - 1)"
	case Clavier:
		return "Clavier: VCL = 1.7 - sqrt(3.38 - (IGR + 0.7)^2)"
	case Steiber:
		return "Steiber: VCL = IGR / (3 - 2*IGR)"
	default:
		return ""
	}
}

// Recommendation says where the method is usually applied.
func (m Method) Recommendation() string {
	switch m {
	case Linear:
		return "General use, tends to overestimate clay volume"
	case LarionovOlder:
		return "Consolidated pre-Tertiary formations"
	case LarionovTertiary:
		return "Unconsolidated Tertiary formations (recommended default)"
	case Clavier:
		return "General application, balanced response"
	case Steiber:
		return "Formations with high radioactivity"
	default:
		return ""
	}
}

// ParseMethod maps a method key such as "larionov_tertiary" to a Method.
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, analysis.NewError("parse method", s, analysis.ErrInvalidParameter,
		"available methods: %v", Methods)
}

// Reference is either a provided gamma-ray value or a percentile of the
// valid gamma-ray samples to be estimated at call time.
type Reference struct {
	value      float64
	percentile float64
	auto       bool
}

// Provided uses v as the reference value.
func Provided(v float64) Reference {
	return Reference{value: v}
}

// AutoEstimate takes the p-th percentile (0-100) of the valid gamma-ray samples.
func AutoEstimate(p float64) Reference {
	return Reference{percentile: p, auto: true}
}

// IsAuto reports whether the reference is estimated from the data.
func (r Reference) IsAuto() bool {
	return r.auto
}

func (r Reference) String() string {
	if r.auto {
		return fmt.Sprintf("P%g", r.percentile)
	}
	return fmt.Sprintf("%g", r.value)
}

// Params configures a clay volume calculation.
type Params struct {
	Method  Method
	GRClean Reference
	GRClay  Reference
}

// DefaultParams uses Larionov Tertiary with P5/P95 references.
func DefaultParams() Params {
	return Params{
		Method:  LarionovTertiary,
		GRClean: AutoEstimate(5),
		GRClay:  AutoEstimate(95),
	}
}

// Result holds the clay volume curve and the gamma-ray index it came from.
type Result struct {
	analysis.Result `yaml:",inline"`

	VCL     []float64 `yaml:"-"`
	IGR     []float64 `yaml:"-"`
	GRClean float64   `yaml:"gr_clean"`
	GRClay  float64   `yaml:"gr_clay"`
}

// Curves returns the output curves by mnemonic.
func (r *Result) Curves() map[string][]float64 {
	return map[string][]float64{"VCL": r.VCL, "IGR": r.IGR}
}

// MethodStats summarizes one method's VCL curve in a batch comparison.
type MethodStats struct {
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

// PairCorrelation is the Pearson correlation of two methods' VCL curves.
type PairCorrelation struct {
	A, B Method
	R    float64
}

// Comparison is the cross-method summary of a batch calculation.
type Comparison struct {
	Methods      []Method
	Stats        map[Method]MethodStats
	Correlations []PairCorrelation
}

// BatchResult holds one result per requested method.
type BatchResult struct {
	Methods    []Method
	Results    map[Method]*Result
	Comparison *Comparison
}

// MethodInfo describes one available method.
type MethodInfo struct {
	Method         Method
	Description    string
	Recommendation string
}
