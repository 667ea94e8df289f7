package scorer

import (
	"math"

	"github.com/sells-group/bizhealth/internal/model"
)

// lowConversionPercent marks a conversion rate that calls for a full landing
// page rework.
const lowConversionPercent = 2

// ScoreWebsite scores website conversion.
//
// Conversion relative to the benchmark earns up to 60 points; mobile
// optimisation and automated follow-up add 20 each. Revenue impact is the
// monthly visitors times the conversion gap to the benchmark, valued at the
// average project value.
func ScoreWebsite(in *model.BusinessInputData, bm *model.Benchmarks) model.PillarScore {
	targetPct := bm.Website.TargetConversionRate * 100
	conv := in.ConversionRate

	conversionPoints := math.Min((conv/targetPct)*60, 60)
	raw := math.Min(conversionPoints+bonus(in.IsMobileOptimized, 20)+bonus(in.HasAutomatedFollowUp, 20), 100)

	gap := math.Max(0, targetPct-conv) / 100
	impact := float64(in.MonthlyWebsiteVisitors) * gap * in.AverageProjectValue

	metrics := model.WebsiteMetrics{
		MonthlyVisitors:       in.MonthlyWebsiteVisitors,
		CurrentConversionRate: conv,
		TargetConversionRate:  targetPct,
		ConversionGap:         gap * 100,
	}
	return newPillarScore(model.PillarWebsite, raw, impact, metrics, websiteRecommendations(conv, targetPct))
}

func websiteRecommendations(current, target float64) []string {
	switch {
	case current < lowConversionPercent:
		return []string{
			"Rework your landing pages",
			"Simplify the conversion process",
			"Add clear calls to action",
		}
	case current < target:
		return []string{
			"A/B test your key page elements",
			"Improve page load speed",
			"Improve the mobile experience",
		}
	default:
		return []string{
			"Use heatmaps to find further improvements",
			"Personalise content based on visitor behaviour",
		}
	}
}
