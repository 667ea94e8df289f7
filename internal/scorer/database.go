package scorer

import (
	"math"

	"github.com/sells-group/bizhealth/internal/model"
)

// contactsForFullFrequency is the yearly contact count that earns the full
// frequency component.
const contactsForFullFrequency = 12

// ScoreDatabase scores how actively the customer database is worked.
//
// The frequency component is 0 without any contact, then rises linearly from
// 40 to 100 up to 12 contacts per year. A reactivation process adds 15.
// Revenue impact is the value of reactivating the benchmark share of customers.
func ScoreDatabase(in *model.BusinessInputData, bm *model.Benchmarks) model.PillarScore {
	freq := in.ContactFrequencyPerYear

	var base float64
	switch {
	case freq <= 0:
		base = 0
	case freq < contactsForFullFrequency:
		base = 40 + (freq/contactsForFullFrequency)*60
	default:
		base = 100
	}
	raw := math.Min(base+bonus(in.HasReactivationProcess, 15), 100)

	potential := float64(in.TotalCustomers) * bm.Database.ReactivationRate
	impact := potential * in.AverageProjectValue

	metrics := model.DatabaseMetrics{
		TotalCustomers:        in.TotalCustomers,
		ContactFrequency:      freq,
		AverageProjectValue:   in.AverageProjectValue,
		ReactivationPotential: roundMoney(potential),
	}
	return newPillarScore(model.PillarDatabase, raw, impact, metrics, databaseRecommendations(raw))
}

func databaseRecommendations(score float64) []string {
	switch {
	case score < 50:
		return []string{
			"Introduce a CRM system to manage customer relationships systematically",
			"Start an email newsletter to stay in regular contact",
			"Segment your database by purchase behaviour",
		}
	case score < 80:
		return []string{
			"Raise contact frequency to at least once a month",
			"Personalise communication by customer segment",
		}
	default:
		return []string{
			"Optimise campaigns with A/B testing",
			"Use predictive analytics to reach customers proactively",
		}
	}
}
