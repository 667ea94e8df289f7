package scorer

import (
	"encoding/json"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/bizhealth/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func TestCalculate_Scenario(t *testing.T) {
	e := NewEngine(WithClock(fixedClock))
	r := e.Calculate(scenarioInput(), Options{})

	require.Len(t, r.Pillars, 5)
	for i, name := range model.PillarNames() {
		assert.Equal(t, name, r.Pillars[i].Name)
	}

	assert.Equal(t, 45, r.Pillar(model.PillarDatabase).Score)
	assert.Equal(t, 41, r.Pillar(model.PillarReputation).Score)
	assert.Equal(t, 58, r.Pillar(model.PillarLeadCapture).Score)
	assert.Equal(t, 48, r.Pillar(model.PillarOmnichannel).Score)
	assert.Equal(t, 32, r.Pillar(model.PillarWebsite).Score)

	assert.Equal(t, 224, r.TotalScore)
	assert.Equal(t, 500, r.MaxScore)
	assert.InDelta(t, 44.8, r.Percentage, 1e-9)
	assert.Equal(t, model.StatusCritical, r.Status)
	assert.Equal(t, int64(13_359_000), r.AnnualRevenueLoss)
	assert.Equal(t, int64(36_600), r.DailyOpportunityCost)
	assert.Equal(t, fixedClock().UnixMilli(), r.Timestamp)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, scenarioInput(), r.InputData)
}

func TestCalculate_Extremes(t *testing.T) {
	t.Run("critical", func(t *testing.T) {
		r := Calculate(minimalInput(), DefaultBenchmarks(), nil)
		assert.Equal(t, 14, r.TotalScore) // one channel, nothing else
		assert.InDelta(t, 2.8, r.Percentage, 1e-9)
		assert.Equal(t, model.StatusCritical, r.Status)
	})

	t.Run("excellent", func(t *testing.T) {
		r := Calculate(maximalInput(), DefaultBenchmarks(), nil)
		assert.Equal(t, 500, r.TotalScore)
		assert.InDelta(t, 100.0, r.Percentage, 1e-9)
		assert.Equal(t, model.StatusExcellent, r.Status)
	})

	t.Run("good", func(t *testing.T) {
		in := maximalInput()
		in.ConversionRate = 0
		in.HasAutomatedFollowUp = false
		r := Calculate(in, DefaultBenchmarks(), nil)
		assert.Equal(t, 420, r.TotalScore)
		assert.InDelta(t, 84.0, r.Percentage, 1e-9)
		assert.Equal(t, model.StatusGood, r.Status)
	})
}

func TestCalculate_SumAndBoundsInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	all := model.AllChannels()

	for i := 0; i < 2000; i++ {
		rng.Shuffle(len(all), func(a, b int) { all[a], all[b] = all[b], all[a] })
		in := model.BusinessInputData{
			TotalCustomers:             rng.IntN(1_000_001),
			AverageProjectValue:        rng.Float64() * 10_000_000,
			ContactFrequencyPerYear:    rng.Float64() * 365,
			HasReactivationProcess:     rng.IntN(2) == 1,
			GoogleStarRating:           1 + rng.Float64()*4,
			ReviewResponseRate:         rng.Float64() * 100,
			SharesReviewsOnSocialMedia: rng.IntN(2) == 1,
			DailyCalls:                 rng.IntN(10_001),
			CallAnswerRate:             rng.Float64() * 100,
			HasAfterHoursHandling:      rng.IntN(2) == 1,
			AvailableChannels:          append([]model.Channel(nil), all[:1+rng.IntN(len(all))]...),
			AverageResponseTimeHours:   rng.Float64() * 168,
			MonthlyWebsiteVisitors:     rng.IntN(100_000_001),
			ConversionRate:             rng.Float64() * 100,
			IsMobileOptimized:          rng.IntN(2) == 1,
			HasAutomatedFollowUp:       rng.IntN(2) == 1,
		}

		r := Calculate(in, DefaultBenchmarks(), nil)

		var sum int
		var loss int64
		for _, p := range r.Pillars {
			require.GreaterOrEqual(t, p.Score, 0)
			require.LessOrEqual(t, p.Score, 100)
			require.GreaterOrEqual(t, p.RevenueImpact, int64(0))
			require.NotEmpty(t, p.Recommendations, "pillar %s", p.Name)
			require.Equal(t, p.Name, p.Metrics.Pillar())
			sum += p.Score
			loss += p.RevenueImpact
		}
		require.Equal(t, sum, r.TotalScore)
		require.Equal(t, loss, r.AnnualRevenueLoss)
		require.GreaterOrEqual(t, r.Percentage, 0.0)
		require.LessOrEqual(t, r.Percentage, 100.0)
		require.InDelta(t, roundTo(float64(r.TotalScore)/5, 1), r.Percentage, 1e-9)
		require.Equal(t, int64(float64(loss)/365+0.5), r.DailyOpportunityCost)
	}
}

func TestCalculate_Monotonicity(t *testing.T) {
	bm := DefaultBenchmarks()

	t.Run("contact frequency", func(t *testing.T) {
		prev := -1
		for f := 0.0; f <= 365; f += 0.5 {
			in := scenarioInput()
			in.ContactFrequencyPerYear = f
			s := ScoreDatabase(&in, &bm).Score
			assert.GreaterOrEqual(t, s, prev, "frequency %v", f)
			prev = s
		}
	})

	t.Run("star rating", func(t *testing.T) {
		prev := -1
		for r := 1.0; r <= 5.0; r += 0.05 {
			in := scenarioInput()
			in.GoogleStarRating = r
			s := ScoreReputation(&in, &bm, nil).Score
			assert.GreaterOrEqual(t, s, prev, "rating %v", r)
			prev = s
		}
	})
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		pct  float64
		want model.ScoreStatus
	}{
		{0, model.StatusCritical},
		{49.9, model.StatusCritical},
		{50, model.StatusNeedsImprovement},
		{79.9, model.StatusNeedsImprovement},
		{80, model.StatusGood},
		{89.9, model.StatusGood},
		{90, model.StatusExcellent},
		{100, model.StatusExcellent},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyStatus(tt.pct), "percentage %v", tt.pct)
	}
}

func TestCalculate_UniqueIDs(t *testing.T) {
	e := NewEngine(WithClock(fixedClock))
	in := scenarioInput()

	seen := make(map[string]struct{}, 10_000)
	for i := 0; i < 10_000; i++ {
		r := e.Calculate(in, Options{})
		_, dup := seen[r.ID]
		require.False(t, dup, "duplicate id %s", r.ID)
		seen[r.ID] = struct{}{}
	}
}

func TestCalculate_ConcurrentIDs(t *testing.T) {
	e := NewEngine()
	in := scenarioInput()

	var mu sync.Mutex
	seen := make(map[string]struct{})
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				id := e.Calculate(in, Options{}).ID
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 4000)
}

func TestCalculate_BenchmarkSensitivity(t *testing.T) {
	in := scenarioInput()
	base := Calculate(in, DefaultBenchmarks(), nil)

	bm := DefaultBenchmarks()
	bm.Reputation.TargetRating = 5.0
	custom := Calculate(in, bm, nil)

	assert.Greater(t,
		custom.Pillar(model.PillarReputation).RevenueImpact,
		base.Pillar(model.PillarReputation).RevenueImpact)
	assert.Equal(t, int64(28_000), custom.Pillar(model.PillarReputation).RevenueImpact)

	bm = DefaultBenchmarks()
	bm.Website.TargetConversionRate = 0.028
	custom = Calculate(in, bm, nil)
	assert.Equal(t, 60, custom.Pillar(model.PillarWebsite).Score)
	assert.Equal(t, int64(0), custom.Pillar(model.PillarWebsite).RevenueImpact)
}

func TestCalculate_PerCallBenchmarksOverrideEngine(t *testing.T) {
	bm := DefaultBenchmarks()
	bm.Database.ReactivationRate = 0.5
	e := NewEngine()

	r := e.Calculate(scenarioInput(), Options{Benchmarks: &bm})
	assert.Equal(t, int64(7_200_000), r.Pillar(model.PillarDatabase).RevenueImpact)
	assert.Equal(t, DefaultBenchmarks(), e.Benchmarks())
}

func TestCalculate_DoesNotAliasInput(t *testing.T) {
	in := scenarioInput()
	in.WebsiteLoadTime = ptrFloat64(2.5)
	r := Calculate(in, DefaultBenchmarks(), nil)

	in.AvailableChannels[0] = model.ChannelSMS
	*in.WebsiteLoadTime = 9

	assert.Equal(t, model.ChannelPhone, r.InputData.AvailableChannels[0])
	assert.InDelta(t, 2.5, *r.InputData.WebsiteLoadTime, 1e-9)
}

func TestCalculate_JSONRoundTrip(t *testing.T) {
	in := scenarioInput()
	in.WebsiteLoadTime = ptrFloat64(3.1)
	r := NewEngine(WithClock(fixedClock)).Calculate(in, Options{AnnualRevenue: ptrFloat64(750_000)})

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var back model.BusinessHealthResult
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *r, back)
}

func TestCalculate_CustomIDGenerator(t *testing.T) {
	e := NewEngine(WithIDGenerator(func() string { return "fixed" }))
	assert.Equal(t, "fixed", e.Calculate(scenarioInput(), Options{}).ID)
}
