package analysis

import (
	"time"

	"github.com/google/uuid"
)

// Range is an inclusive physical range used to flag suspect curve values.
type Range struct {
	Min float64
	Max float64
}

// Param is a named numeric parameter passed to ValidateParameters.
type Param struct {
	Name  string
	Value float64
}

// QCStats holds the descriptive statistics computed for a curve.
// Std and Variance are population values (divide by n).
type QCStats struct {
	CurveName      string  `yaml:"curve_name"`
	TotalPoints    int     `yaml:"total_points"`
	ValidPoints    int     `yaml:"valid_points"`
	NullCount      int     `yaml:"null_count"`
	NullPercentage float64 `yaml:"null_percentage"`
	Min            float64 `yaml:"min"`
	Max            float64 `yaml:"max"`
	Range          float64 `yaml:"range"`
	Mean           float64 `yaml:"mean"`
	Median         float64 `yaml:"median"`
	Std            float64 `yaml:"std"`
	Variance       float64 `yaml:"variance"`
	P10            float64 `yaml:"p10"`
	P25            float64 `yaml:"p25"`
	P50            float64 `yaml:"p50"`
	P75            float64 `yaml:"p75"`
	P90            float64 `yaml:"p90"`
}

// Quality is the qualitative assessment attached to a result.
type Quality string

const (
	QualityGood Quality = "good"
	QualityFair Quality = "fair"
	QualityPoor Quality = "poor"
)

// QualityFlags summarizes how trustworthy a calculation looks.
type QualityFlags struct {
	Overall         Quality  `yaml:"overall_quality"`
	Warnings        []string `yaml:"warnings"`
	Recommendations []string `yaml:"recommendations"`
}

// NewQualityFlags returns flags that start out as good.
func NewQualityFlags() QualityFlags {
	return QualityFlags{
		Overall:         QualityGood,
		Warnings:        make([]string, 0),
		Recommendations: make([]string, 0),
	}
}

// Downgrade lowers the overall quality to q if q is worse than the current value.
func (f *QualityFlags) Downgrade(q Quality) {
	if qualityRank(q) > qualityRank(f.Overall) {
		f.Overall = q
	}
}

// Warn appends a warning and, when rec is not empty, a recommendation.
func (f *QualityFlags) Warn(warning, rec string) {
	f.Warnings = append(f.Warnings, warning)
	if rec != "" {
		f.Recommendations = append(f.Recommendations, rec)
	}
}

func qualityRank(q Quality) int {
	switch q {
	case QualityPoor:
		return 2
	case QualityFair:
		return 1
	default:
		return 0
	}
}

// Result is the envelope shared by every calculator result. Typed results
// embed it and add their curves as fields.
type Result struct {
	Type       string             `yaml:"type"`
	Method     string             `yaml:"method,omitempty"`
	Parameters map[string]any     `yaml:"parameters"`
	InputStats map[string]QCStats `yaml:"input_stats,omitempty"`
	QC         map[string]QCStats `yaml:"qc_stats"`
	Warnings   []string           `yaml:"warnings"`
	Quality    QualityFlags       `yaml:"quality_flags"`
}

// NewResult creates an empty envelope for the given calculation type.
func NewResult(calcType, method string) Result {
	return Result{
		Type:       calcType,
		Method:     method,
		Parameters: make(map[string]any),
		InputStats: make(map[string]QCStats),
		QC:         make(map[string]QCStats),
		Warnings:   make([]string, 0),
		Quality:    NewQualityFlags(),
	}
}

// Envelope returns the shared part of a result. It is promoted to every
// typed result that embeds Result.
func (r *Result) Envelope() *Result {
	return r
}

// HistoryEntry is one calculation retained in a calculator's history.
type HistoryEntry struct {
	ID         uuid.UUID
	Timestamp  time.Time
	Type       string
	Method     string
	Parameters map[string]any
	QC         map[string]QCStats
	Warnings   []string
}

// HistorySummary aggregates the entries currently held in a History.
type HistorySummary struct {
	TotalCalculations int
	Types             []string
	TypeCounts        map[string]int
	First             time.Time
	Last              time.Time
}

// Correlation is the Pearson correlation between two curves.
type Correlation struct {
	R           float64
	PValue      float64
	Points      int
	Significant bool
}
