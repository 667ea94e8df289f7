package scorer

import (
	"math"

	"github.com/sells-group/bizhealth/internal/model"
)

// pillarFunc scores one pillar. annualRevenue is only read by the reputation
// pillar; nil means DefaultAnnualRevenue.
type pillarFunc func(in *model.BusinessInputData, bm *model.Benchmarks, annualRevenue *float64) model.PillarScore

// calculators returns the pillar functions in result order.
func calculators() []pillarFunc {
	return []pillarFunc{
		func(in *model.BusinessInputData, bm *model.Benchmarks, _ *float64) model.PillarScore {
			return ScoreDatabase(in, bm)
		},
		ScoreReputation,
		func(in *model.BusinessInputData, bm *model.Benchmarks, _ *float64) model.PillarScore {
			return ScoreLeadCapture(in, bm)
		},
		func(in *model.BusinessInputData, bm *model.Benchmarks, _ *float64) model.PillarScore {
			return ScoreOmnichannel(in, bm)
		},
		func(in *model.BusinessInputData, bm *model.Benchmarks, _ *float64) model.PillarScore {
			return ScoreWebsite(in, bm)
		},
	}
}

// newPillarScore assembles a PillarScore from a raw (unrounded) score and
// revenue impact. Both are rounded to integers here, before aggregation.
func newPillarScore(name model.PillarName, raw, revenueImpact float64, metrics model.PillarMetrics, recs []string) model.PillarScore {
	score := int(math.Round(clamp(raw, 0, model.PillarMaxScore)))
	return model.PillarScore{
		Name:            name,
		Score:           score,
		MaxScore:        model.PillarMaxScore,
		Percentage:      score,
		RevenueImpact:   roundMoney(revenueImpact),
		Metrics:         metrics,
		Recommendations: recs,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// roundMoney rounds half away from zero and floors at zero.
func roundMoney(v float64) int64 {
	r := math.Round(v)
	if r <= 0 {
		return 0
	}
	return int64(r)
}

func bonus(flag bool, points float64) float64 {
	if flag {
		return points
	}
	return 0
}
