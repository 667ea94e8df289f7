package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/bizhealth/internal/model"
)

func TestScoreDatabase_FrequencyBands(t *testing.T) {
	bm := DefaultBenchmarks()
	tests := []struct {
		name         string
		freq         float64
		reactivation bool
		want         int
	}{
		{"no contact", 0, false, 0},
		{"no contact with reactivation", 0, true, 15},
		{"one contact", 1, false, 45},
		{"six contacts", 6, false, 70},
		{"monthly", 12, false, 100},
		{"weekly", 52, false, 100},
		{"monthly with reactivation capped", 12, true, 100},
		{"eleven with reactivation capped", 11, true, 100},
		{"quarterly with reactivation", 4, true, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := scenarioInput()
			in.ContactFrequencyPerYear = tt.freq
			in.HasReactivationProcess = tt.reactivation

			p := ScoreDatabase(&in, &bm)
			assert.Equal(t, model.PillarDatabase, p.Name)
			assert.Equal(t, tt.want, p.Score)
			assert.Equal(t, p.Score, p.Percentage)
			assert.Equal(t, 100, p.MaxScore)
		})
	}
}

func TestScoreDatabase_RevenueAndMetrics(t *testing.T) {
	bm := DefaultBenchmarks()
	in := scenarioInput()

	p := ScoreDatabase(&in, &bm)
	assert.Equal(t, int64(3_600_000), p.RevenueImpact)

	m, ok := p.Metrics.(model.DatabaseMetrics)
	require.True(t, ok)
	assert.Equal(t, 3200, m.TotalCustomers)
	assert.Equal(t, int64(800), m.ReactivationPotential)
	assert.InDelta(t, 4500, m.AverageProjectValue, 1e-9)
}

func TestScoreDatabase_RecommendationBands(t *testing.T) {
	low := databaseRecommendations(49.9)
	mid := databaseRecommendations(50)
	high := databaseRecommendations(80)
	assert.NotEmpty(t, low)
	assert.NotEmpty(t, mid)
	assert.NotEmpty(t, high)
	assert.NotEqual(t, low, mid)
	assert.NotEqual(t, mid, high)
}

func TestScoreReputation(t *testing.T) {
	bm := DefaultBenchmarks()

	t.Run("scenario", func(t *testing.T) {
		in := scenarioInput()
		p := ScoreReputation(&in, &bm, nil)
		assert.Equal(t, 41, p.Score) // 32 + 8.8
		assert.Equal(t, int64(21_000), p.RevenueImpact)

		m, ok := p.Metrics.(model.ReputationMetrics)
		require.True(t, ok)
		assert.InDelta(t, 0.6, m.RatingGap, 1e-9)
		assert.InDelta(t, 4.8, m.TargetRating, 1e-9)
	})

	t.Run("external revenue", func(t *testing.T) {
		in := scenarioInput()
		p := ScoreReputation(&in, &bm, ptrFloat64(1_000_000))
		assert.Equal(t, int64(42_000), p.RevenueImpact)
	})

	t.Run("above target has no impact", func(t *testing.T) {
		in := scenarioInput()
		in.GoogleStarRating = 4.9
		p := ScoreReputation(&in, &bm, nil)
		assert.Equal(t, int64(0), p.RevenueImpact)
	})

	t.Run("perfect", func(t *testing.T) {
		in := maximalInput()
		p := ScoreReputation(&in, &bm, nil)
		assert.Equal(t, 100, p.Score)
	})
}

func TestReputationRecommendations(t *testing.T) {
	tests := []struct {
		name     string
		rating   float64
		response float64
		wantLen  int
	}{
		{"low rating and responses", 3.5, 10, 4},
		{"low rating only", 3.9, 80, 2},
		{"mid rating low responses", 4.2, 22, 4},
		{"mid rating good responses", 4.4, 60, 2},
		{"strong profile falls back to maintenance", 4.7, 90, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := reputationRecommendations(tt.rating, tt.response)
			assert.Len(t, recs, tt.wantLen)
		})
	}
	assert.NotEqual(t, reputationRecommendations(4.7, 90), reputationRecommendations(4.4, 60))
}

func TestScoreLeadCapture(t *testing.T) {
	bm := DefaultBenchmarks()

	t.Run("scenario", func(t *testing.T) {
		in := scenarioInput()
		p := ScoreLeadCapture(&in, &bm)
		assert.Equal(t, 58, p.Score) // 68 * 0.85 = 57.8
		assert.Equal(t, int64(9_198_000), p.RevenueImpact)

		m, ok := p.Metrics.(model.LeadCaptureMetrics)
		require.True(t, ok)
		assert.Equal(t, int64(16), m.MissedCallsPerDay)
		assert.Equal(t, int64(5840), m.MissedCallsPerYear)
	})

	t.Run("after hours bonus", func(t *testing.T) {
		in := scenarioInput()
		in.HasAfterHoursHandling = true
		p := ScoreLeadCapture(&in, &bm)
		assert.Equal(t, 73, p.Score)
	})

	t.Run("every call answered", func(t *testing.T) {
		in := scenarioInput()
		in.CallAnswerRate = 100
		p := ScoreLeadCapture(&in, &bm)
		assert.Equal(t, 85, p.Score)
		assert.Equal(t, int64(0), p.RevenueImpact)
	})

	t.Run("recommendation bands", func(t *testing.T) {
		assert.NotEqual(t, leadCaptureRecommendations(59), leadCaptureRecommendations(60))
		assert.NotEqual(t, leadCaptureRecommendations(84), leadCaptureRecommendations(85))
	})
}

func TestScoreOmnichannel(t *testing.T) {
	bm := DefaultBenchmarks()
	tests := []struct {
		name     string
		channels []model.Channel
		hours    float64
		want     int
	}{
		{"two channels four hours", []model.Channel{model.ChannelPhone, model.ChannelEmail}, 4, 48},
		{"one channel slow", []model.Channel{model.ChannelPhone}, 48, 14},
		{"one channel a day", []model.Channel{model.ChannelPhone}, 24, 24},
		{"three channels under an hour", []model.Channel{model.ChannelPhone, model.ChannelEmail, model.ChannelSMS}, 0.5, 72},
		{"all channels one hour", model.AllChannels(), 1, 90},
		{"all channels instant", model.AllChannels(), 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := scenarioInput()
			in.AvailableChannels = tt.channels
			in.AverageResponseTimeHours = tt.hours

			p := ScoreOmnichannel(&in, &bm)
			assert.Equal(t, tt.want, p.Score)
		})
	}
}

// A single channel converts at the single-channel benchmark; any second
// channel is treated as converting at the omnichannel benchmark.
func TestScoreOmnichannel_RevenueGapOnlyForSingleChannel(t *testing.T) {
	bm := DefaultBenchmarks()
	in := scenarioInput()
	in.MonthlyWebsiteVisitors = 1000
	in.AverageProjectValue = 100

	in.AvailableChannels = []model.Channel{model.ChannelPhone}
	single := ScoreOmnichannel(&in, &bm)
	assert.Equal(t, int64(49_368), single.RevenueImpact) // 1000*0.1*12*0.4114*100

	m, ok := single.Metrics.(model.OmnichannelMetrics)
	require.True(t, ok)
	assert.InDelta(t, 0.22, m.CurrentConversionRate, 1e-9)
	assert.Equal(t, 1, m.ChannelCount)

	in.AvailableChannels = []model.Channel{model.ChannelPhone, model.ChannelEmail}
	multi := ScoreOmnichannel(&in, &bm)
	assert.Equal(t, int64(0), multi.RevenueImpact)
}

func TestScoreOmnichannel_CopiesChannels(t *testing.T) {
	bm := DefaultBenchmarks()
	in := scenarioInput()

	p := ScoreOmnichannel(&in, &bm)
	in.AvailableChannels[0] = model.ChannelSMS

	m := p.Metrics.(model.OmnichannelMetrics)
	assert.Equal(t, model.ChannelPhone, m.AvailableChannels[0])
}

func TestScoreWebsite(t *testing.T) {
	bm := DefaultBenchmarks()

	t.Run("scenario", func(t *testing.T) {
		in := scenarioInput()
		p := ScoreWebsite(&in, &bm)
		assert.Equal(t, 32, p.Score) // 2.8/5.2*60 = 32.3
		assert.Equal(t, int64(540_000), p.RevenueImpact)

		m, ok := p.Metrics.(model.WebsiteMetrics)
		require.True(t, ok)
		assert.InDelta(t, 5.2, m.TargetConversionRate, 1e-9)
		assert.InDelta(t, 2.4, m.ConversionGap, 1e-9)
	})

	t.Run("above target is capped", func(t *testing.T) {
		in := scenarioInput()
		in.ConversionRate = 10
		in.IsMobileOptimized = true
		p := ScoreWebsite(&in, &bm)
		assert.Equal(t, 80, p.Score)
		assert.Equal(t, int64(0), p.RevenueImpact)
	})

	t.Run("recommendation bands", func(t *testing.T) {
		low := websiteRecommendations(1.9, 5.2)
		mid := websiteRecommendations(2, 5.2)
		high := websiteRecommendations(5.2, 5.2)
		assert.NotEqual(t, low, mid)
		assert.NotEqual(t, mid, high)
	})
}

func TestOmnichannelRecommendations(t *testing.T) {
	assert.NotEqual(t, omnichannelRecommendations(2), omnichannelRecommendations(3))
	assert.NotEqual(t, omnichannelRecommendations(4), omnichannelRecommendations(5))
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, int64(0), roundMoney(-12))
	assert.Equal(t, int64(0), roundMoney(0.4))
	assert.Equal(t, int64(1), roundMoney(0.5))
	assert.Equal(t, int64(3), roundMoney(2.5))
}
