package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/bizhealth/internal/model"
)

func TestDefaultBenchmarks(t *testing.T) {
	bm := DefaultBenchmarks()
	assert.InDelta(t, 0.25, bm.Database.ReactivationRate, 1e-9)
	assert.InDelta(t, 4.8, bm.Reputation.TargetRating, 1e-9)
	assert.InDelta(t, 0.07, bm.Reputation.RevenueIncreasePerStar, 1e-9)
	assert.InDelta(t, 0.35, bm.LeadCapture.ConversionRate, 1e-9)
	assert.InDelta(t, 0.6314, bm.Omnichannel.OmnichannelConversionRate, 1e-9)
	assert.InDelta(t, 0.22, bm.Omnichannel.SingleChannelConversionRate, 1e-9)
	assert.InDelta(t, 0.052, bm.Website.TargetConversionRate, 1e-9)
	require.NoError(t, ValidateBenchmarks(bm))

	// Callers get independent copies.
	bm.Database.ReactivationRate = 0.9
	assert.InDelta(t, 0.25, DefaultBenchmarks().Database.ReactivationRate, 1e-9)
}

func TestMergeBenchmarks(t *testing.T) {
	t.Run("nil overrides", func(t *testing.T) {
		assert.Equal(t, DefaultBenchmarks(), MergeBenchmarks(DefaultBenchmarks(), nil))
	})

	t.Run("partial overrides", func(t *testing.T) {
		o := &model.BenchmarkOverrides{
			Reputation: &model.ReputationOverrides{TargetRating: ptrFloat64(4.5)},
			Website:    &model.WebsiteOverrides{TargetConversionRate: ptrFloat64(0.04)},
		}
		got := MergeBenchmarks(DefaultBenchmarks(), o)
		assert.InDelta(t, 4.5, got.Reputation.TargetRating, 1e-9)
		assert.InDelta(t, 0.07, got.Reputation.RevenueIncreasePerStar, 1e-9)
		assert.InDelta(t, 0.04, got.Website.TargetConversionRate, 1e-9)
		assert.InDelta(t, 0.25, got.Database.ReactivationRate, 1e-9)
	})
}

func TestResolveBenchmarks_LaterLayersWin(t *testing.T) {
	cfg := &model.BenchmarkOverrides{
		Database:    &model.DatabaseOverrides{ReactivationRate: ptrFloat64(0.3)},
		LeadCapture: &model.LeadCaptureOverrides{ConversionRate: ptrFloat64(0.4)},
	}
	settings := &model.BenchmarkOverrides{
		Database: &model.DatabaseOverrides{ReactivationRate: ptrFloat64(0.2)},
	}

	got := ResolveBenchmarks(cfg, nil, settings)
	assert.InDelta(t, 0.2, got.Database.ReactivationRate, 1e-9)
	assert.InDelta(t, 0.4, got.LeadCapture.ConversionRate, 1e-9)
}

func TestValidateBenchmarks_CollectsAll(t *testing.T) {
	bm := DefaultBenchmarks()
	bm.Database.ReactivationRate = 1.5
	bm.Reputation.TargetRating = 7
	bm.Website.TargetConversionRate = 0

	err := ValidateBenchmarks(bm)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.reactivationRate")
	assert.Contains(t, err.Error(), "reputation.targetRating")
	assert.Contains(t, err.Error(), "website.targetConversionRate must be > 0")
}

func TestBenchmarkHash(t *testing.T) {
	a := BenchmarkHash(DefaultBenchmarks())
	assert.Len(t, a, 16)
	assert.Equal(t, a, BenchmarkHash(DefaultBenchmarks()))

	bm := DefaultBenchmarks()
	bm.Reputation.TargetRating = 4.9
	assert.NotEqual(t, a, BenchmarkHash(bm))
}
