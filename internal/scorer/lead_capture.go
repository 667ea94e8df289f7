package scorer

import (
	"math"

	"github.com/sells-group/bizhealth/internal/model"
)

// ScoreLeadCapture scores phone reachability.
//
// The answer rate earns up to 85 points and after-hours handling adds 15.
// Revenue impact is the yearly missed calls that would have converted at the
// benchmark rate, valued at the average project value.
func ScoreLeadCapture(in *model.BusinessInputData, bm *model.Benchmarks) model.PillarScore {
	answer := in.CallAnswerRate
	raw := math.Min((answer/100)*85+bonus(in.HasAfterHoursHandling, 15), 100)

	missedPerDay := float64(in.DailyCalls) * (1 - answer/100)
	missedPerYear := missedPerDay * 365
	impact := missedPerYear * bm.LeadCapture.ConversionRate * in.AverageProjectValue

	metrics := model.LeadCaptureMetrics{
		DailyCalls:         in.DailyCalls,
		AnswerRate:         answer,
		MissedCallsPerDay:  roundMoney(missedPerDay),
		MissedCallsPerYear: roundMoney(missedPerYear),
	}
	return newPillarScore(model.PillarLeadCapture, raw, impact, metrics, leadCaptureRecommendations(answer))
}

func leadCaptureRecommendations(answerRate float64) []string {
	switch {
	case answerRate < 60:
		return []string{
			"Introduce call tracking",
			"Consider an answering service",
			"Send automatic SMS call-backs for missed calls",
		}
	case answerRate < 85:
		return []string{
			"Align phone hours with your call patterns",
			"Train the team in efficient call handling",
		}
	default:
		return []string{
			"Analyse call quality and conversion rate",
			"Record calls for quality assurance",
		}
	}
}
