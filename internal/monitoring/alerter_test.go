package monitoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/bizhealth/internal/config"
	"github.com/sells-group/bizhealth/internal/model"
	"github.com/sells-group/bizhealth/internal/resilience"
)

func testMonitoringConfig(url string) config.MonitoringConfig {
	return config.MonitoringConfig{
		CriticalShareThreshold: 0.5,
		MinAvgPercentage:       50,
		MinSample:              5,
		WebhookURL:             url,
	}
}

func fastAlerter(cfg config.MonitoringConfig) *Alerter {
	a := NewAlerter(cfg)
	a.retry = resilience.RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond}
	return a
}

func snapshot(count, critical int, avg float64) *Snapshot {
	return &Snapshot{
		Count:         count,
		AvgPercentage: avg,
		StatusCounts:  map[model.ScoreStatus]int{model.StatusCritical: critical},
		CriticalShare: float64(critical) / float64(count),
		WeakestPillar: model.PillarWebsite,
		LookbackHours: 24,
	}
}

func TestAlerter_Evaluate_NoAlerts(t *testing.T) {
	a := NewAlerter(testMonitoringConfig(""))
	assert.Empty(t, a.Evaluate(snapshot(10, 2, 70)))
	assert.Empty(t, a.Evaluate(nil))
	assert.Empty(t, a.Evaluate(&Snapshot{}))
}

func TestAlerter_Evaluate_BelowMinSample(t *testing.T) {
	a := NewAlerter(testMonitoringConfig(""))
	assert.Empty(t, a.Evaluate(snapshot(4, 4, 10)))
}

func TestAlerter_Evaluate_CriticalShare(t *testing.T) {
	a := NewAlerter(testMonitoringConfig(""))

	alerts := a.Evaluate(snapshot(10, 6, 55))
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertCriticalShare, alerts[0].Type)
	assert.Equal(t, "high", alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "60.0%")
	assert.Contains(t, alerts[0].Message, "6 of 10 in window 24h")

	// Exactly at threshold does not fire.
	assert.Empty(t, a.Evaluate(snapshot(10, 5, 55)))
}

func TestAlerter_Evaluate_LowAverage(t *testing.T) {
	a := NewAlerter(testMonitoringConfig(""))

	alerts := a.Evaluate(snapshot(10, 1, 42.5))
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertLowAverage, alerts[0].Type)
	assert.Contains(t, alerts[0].Message, "42.5%")
	assert.Contains(t, alerts[0].Message, "weakest pillar website")
}

func TestAlerter_Evaluate_Both(t *testing.T) {
	a := NewAlerter(testMonitoringConfig(""))
	alerts := a.Evaluate(snapshot(10, 9, 20))
	require.Len(t, alerts, 2)
	assert.Equal(t, AlertCriticalShare, alerts[0].Type)
	assert.Equal(t, AlertLowAverage, alerts[1].Type)
}

func TestAlerter_Evaluate_DisabledThresholds(t *testing.T) {
	a := NewAlerter(config.MonitoringConfig{MinSample: 1})
	assert.Empty(t, a.Evaluate(snapshot(10, 10, 0)))
}

func TestAlerter_SendAlerts_NoWebhook(t *testing.T) {
	a := NewAlerter(testMonitoringConfig(""))
	assert.Equal(t, 0, a.SendAlerts(context.Background(), []Alert{{Type: AlertCriticalShare}}))
}

func TestAlerter_SendAlerts_Success(t *testing.T) {
	var received atomic.Int32
	var got Alert
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := fastAlerter(testMonitoringConfig(srv.URL))
	alerts := a.Evaluate(snapshot(10, 9, 20))
	sent := a.SendAlerts(context.Background(), alerts)

	assert.Equal(t, 2, sent)
	assert.Equal(t, int32(2), received.Load())
	assert.Equal(t, AlertLowAverage, got.Type)
}

func TestAlerter_SendAlerts_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := fastAlerter(testMonitoringConfig(srv.URL))
	sent := a.SendAlerts(context.Background(), []Alert{{Type: AlertCriticalShare}})
	assert.Equal(t, 1, sent)
	assert.Equal(t, int32(3), calls.Load())
}

func TestAlerter_SendAlerts_PermanentFailureNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	a := fastAlerter(testMonitoringConfig(srv.URL))
	sent := a.SendAlerts(context.Background(), []Alert{{Type: AlertCriticalShare}})
	assert.Equal(t, 0, sent)
	assert.Equal(t, int32(1), calls.Load())
}
