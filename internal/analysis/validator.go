package analysis

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Validator sanitizes curves and parameters and collects the non-fatal
// warnings raised along the way. Warnings accumulate until ClearWarnings.
type Validator struct {
	logger   *zap.Logger
	warnings []string
}

// NewValidator creates a validator that also logs every warning it records.
func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{logger: logger, warnings: make([]string, 0)}
}

// ValidateCurve returns a copy of data after checking it. An empty curve
// fails with ErrEmptyInput. Null samples and samples outside validRange are
// reported as warnings only.
func (v *Validator) ValidateCurve(data []float64, name string, validRange *Range) ([]float64, error) {
	if len(data) == 0 {
		return nil, NewError("validate", name, ErrEmptyInput, "")
	}
	out := append([]float64(nil), data...)

	nulls := 0
	for _, x := range out {
		if math.IsNaN(x) {
			nulls++
		}
	}
	if nulls > 0 {
		pct := float64(nulls) / float64(len(out)) * 100
		v.Warn(fmt.Sprintf("curve %s: %d null values (%.1f%%)", name, nulls, pct))
	}

	if validRange != nil {
		lo, hi := NanMin(out), NanMax(out)
		if !math.IsNaN(lo) && (lo < validRange.Min || hi > validRange.Max) {
			v.Warn(fmt.Sprintf("curve %s: values outside valid range [%g, %g], actual [%.2f, %.2f]",
				name, validRange.Min, validRange.Max, lo, hi))
		}
	}
	return out, nil
}

// ValidateOptionalCurve validates data when it is not nil and returns nil otherwise.
func (v *Validator) ValidateOptionalCurve(data []float64, name string, validRange *Range) ([]float64, error) {
	if data == nil {
		return nil, nil
	}
	return v.ValidateCurve(data, name, validRange)
}

// ValidateParameters fails with ErrInvalidParameter when any value is NaN or
// infinite and returns the parameters as a name to value map.
func (v *Validator) ValidateParameters(params ...Param) (map[string]float64, error) {
	validated := make(map[string]float64, len(params))
	for _, p := range params {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return nil, NewError("validate", p.Name, ErrInvalidParameter, "value %v is not finite", p.Value)
		}
		validated[p.Name] = p.Value
	}
	return validated, nil
}

// Warn records a warning and logs it.
func (v *Validator) Warn(msg string) {
	v.warnings = append(v.warnings, msg)
	v.logger.Warn(msg)
}

// Warnings returns a copy of the warnings recorded so far.
func (v *Validator) Warnings() []string {
	return append(make([]string, 0, len(v.warnings)), v.warnings...)
}

// ClearWarnings drops all recorded warnings.
func (v *Validator) ClearWarnings() {
	v.warnings = v.warnings[:0]
}
