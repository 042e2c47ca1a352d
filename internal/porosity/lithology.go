package porosity

import (
	"math"

	"github.com/user/petro_engine_go/internal/analysis"
)

var lithologyRecommendations = map[string][]string{
	"clay/shale": {
		"Use aggressive clay correction",
		"Consider shale-specific methods",
		"Validate with core data when available",
	},
	"shaly_sand": {
		"Apply moderate clay correction",
		"Use sandstone matrix for calculations",
		"Consider effects of clay minerals",
	},
	"clean_sandstone": {
		"Use standard sandstone parameters",
		"Matrix density = 2.65 g/cm3",
		"Look for hydrocarbon effects",
	},
	"carbonate": {
		"Use carbonate matrix density (2.71-2.87)",
		"Consider dolomitization effects",
		"Validate porosity with imaging logs",
	},
	"mixed": {
		"Analyze intervals separately",
		"Use multiple lithological models",
		"Validate with additional data",
	},
}

// LithologyRecommendation interprets the mean PHIN - PHID separation over
// jointly valid samples. It fails with ErrNoValidData when no sample has
// both curves.
func LithologyRecommendation(phid, phin []float64) (*LithologyIndication, error) {
	if err := analysis.CheckSameLength("lithology recommendation", []string{"PHID", "PHIN"}, phid, phin); err != nil {
		return nil, err
	}
	d, n := analysis.JointValid(phid, phin)
	if len(d) == 0 {
		return nil, analysis.NewError("lithology recommendation", "PHID/PHIN", analysis.ErrNoValidData, "")
	}
	sep := analysis.Zip(n, d, func(x, y float64) float64 { return x - y })
	avg := analysis.NanMean(sep)

	out := &LithologyIndication{AvgSeparation: avg, SeparationStd: analysis.NanStd(sep)}
	switch {
	case avg > 0.05:
		out.Primary, out.Confidence = "clay/shale", "high"
	case avg > 0.02:
		out.Primary, out.Confidence = "shaly_sand", "medium"
	case math.Abs(avg) <= 0.02:
		out.Primary, out.Confidence = "clean_sandstone", "high"
	case avg < -0.02:
		out.Primary, out.Confidence = "carbonate", "medium"
	default:
		out.Primary, out.Confidence = "mixed", "low"
	}

	total := len(sep)
	out.CleanSandstonePct = analysis.Percent(analysis.CountWhere(sep, func(v float64) bool { return math.Abs(v) <= 0.02 }), total)
	out.ClayPct = analysis.Percent(analysis.CountWhere(sep, func(v float64) bool { return v > 0.05 }), total)
	out.CarbonatePct = analysis.Percent(analysis.CountWhere(sep, func(v float64) bool { return v < -0.02 }), total)
	out.Recommendations = append([]string(nil), lithologyRecommendations[out.Primary]...)
	return out, nil
}
