package analysis

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/bizhealth/internal/model"
	"github.com/sells-group/bizhealth/internal/monitoring"
	"github.com/sells-group/bizhealth/internal/store"
	"github.com/sells-group/bizhealth/internal/validate"
)

const scenarioJSON = `{
  "totalCustomers": 3200, "averageProjectValue": 4500, "contactFrequencyPerYear": 1,
  "hasReactivationProcess": false, "googleStarRating": 4.2, "reviewResponseRate": 22,
  "sharesReviewsOnSocialMedia": false, "dailyCalls": 50, "callAnswerRate": 68,
  "hasAfterHoursHandling": false, "availableChannels": ["phone", "email"],
  "averageResponseTimeHours": 4, "monthlyWebsiteVisitors": 5000, "conversionRate": 2.8,
  "isMobileOptimized": false, "hasAutomatedFollowUp": false
}`

func ptr(v float64) *float64 { return &v }

func newTestService(t *testing.T, opts ...Option) (*Service, store.Store) {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "analysis.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { _ = st.Close() })

	v, err := validate.New()
	require.NoError(t, err)
	return New(st, v, opts...), st
}

func TestAnalyze_Scenario(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	r, err := svc.Analyze(ctx, Request{Document: []byte(scenarioJSON)})
	require.NoError(t, err)
	assert.Equal(t, 224, r.TotalScore)
	assert.Equal(t, model.StatusCritical, r.Status)
	assert.Equal(t, int64(13_359_000), r.AnnualRevenueLoss)

	cur, err := st.CurrentAnalysis(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur, "not saved without Save")
}

func TestAnalyze_Save(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	r, err := svc.Analyze(ctx, Request{Document: scenarioJSON, Save: true})
	require.NoError(t, err)

	cur, err := st.CurrentAnalysis(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, r.ID, cur.ID)

	history, err := st.ListHistory(ctx, store.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestAnalyze_ValidationFailure(t *testing.T) {
	metrics := monitoring.NewMetrics()
	svc, _ := newTestService(t, WithMetrics(metrics))

	_, err := svc.Analyze(context.Background(), Request{Document: `{"googleStarRating": 9}`, Source: "cli"})
	require.Error(t, err)
	ve, ok := validate.AsValidationError(err)
	require.True(t, ok)
	assert.NotEmpty(t, ve.Fields)
	n, err := testutil.GatherAndCount(metrics.Registry(), "bizhealth_validation_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAnalyze_RejectsNonPositiveRevenue(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Analyze(context.Background(), Request{Document: scenarioJSON, AnnualRevenue: ptr(0)})
	ve, ok := validate.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "annualRevenue", ve.Fields[0].Path)
}

func TestAnalyze_RevenueChangesReputationImpact(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	base, err := svc.Analyze(ctx, Request{Document: scenarioJSON})
	require.NoError(t, err)
	big, err := svc.Analyze(ctx, Request{Document: scenarioJSON, AnnualRevenue: ptr(10_000_000)})
	require.NoError(t, err)

	assert.Greater(t, big.Pillar(model.PillarReputation).RevenueImpact, base.Pillar(model.PillarReputation).RevenueImpact)
}

func TestBenchmarks_Layering(t *testing.T) {
	cfgOverride := &model.BenchmarkOverrides{
		Database: &model.DatabaseOverrides{ReactivationRate: ptr(0.3)},
		Website:  &model.WebsiteOverrides{TargetConversionRate: ptr(0.04)},
	}
	svc, _ := newTestService(t, WithBenchmarkOverrides(cfgOverride))
	ctx := context.Background()

	bm, err := svc.Benchmarks(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, bm.Database.ReactivationRate, 1e-12)
	assert.InDelta(t, 0.04, bm.Website.TargetConversionRate, 1e-12)

	settings := model.DefaultSettings()
	settings.CustomBenchmarks = &model.BenchmarkOverrides{
		Website: &model.WebsiteOverrides{TargetConversionRate: ptr(0.08)},
	}
	require.NoError(t, svc.UpdateSettings(ctx, settings))

	bm, err = svc.Benchmarks(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, bm.Database.ReactivationRate, 1e-12)
	assert.InDelta(t, 0.08, bm.Website.TargetConversionRate, 1e-12, "user settings win over config")
}

func TestUpdateSettings_Invalid(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	err := svc.UpdateSettings(ctx, model.AppSettings{Currency: "JPY", Language: "de", Theme: "auto"})
	require.True(t, validate.IsValidationError(err))

	got, err := st.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), got)
}
