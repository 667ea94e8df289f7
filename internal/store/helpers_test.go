package store

import (
	"fmt"
	"time"

	"github.com/sells-group/bizhealth/internal/model"
)

// testResult builds a minimal but complete result with the given id and score.
func testResult(id string, total int, status model.ScoreStatus) *model.BusinessHealthResult {
	return &model.BusinessHealthResult{
		TotalScore:           total,
		MaxScore:             model.TotalMaxScore,
		Percentage:           float64(total) / 5,
		Status:               status,
		AnnualRevenueLoss:    int64(total) * 1000,
		DailyOpportunityCost: int64(total) * 1000 / 365,
		Pillars: []model.PillarScore{
			{
				Name:            model.PillarDatabase,
				Score:           total / 5,
				MaxScore:        100,
				Percentage:      total / 5,
				RevenueImpact:   int64(total) * 1000,
				Metrics:         model.DatabaseMetrics{TotalCustomers: 10, ContactFrequency: 2, AverageProjectValue: 100},
				Recommendations: []string{"call them"},
			},
		},
		InputData: model.BusinessInputData{
			GoogleStarRating:  4,
			AvailableChannels: []model.Channel{model.ChannelPhone},
		},
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		ID:        id,
	}
}

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func ids(results []model.BusinessHealthResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func idN(i int) string { return fmt.Sprintf("a-%03d", i) }
