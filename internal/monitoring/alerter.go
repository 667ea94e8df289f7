package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bizhealth/internal/config"
	"github.com/sells-group/bizhealth/internal/model"
	"github.com/sells-group/bizhealth/internal/resilience"
)

// AlertType identifies the kind of alert.
type AlertType string

const (
	AlertCriticalShare AlertType = "critical_share"
	AlertLowAverage    AlertType = "low_average_percentage"
)

// Alert represents a single alert to be sent.
type Alert struct {
	Type      AlertType      `json:"type"`
	Severity  string         `json:"severity"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Alerter evaluates a Snapshot against configured thresholds
// and sends alerts via webhook when thresholds are breached.
type Alerter struct {
	cfg    config.MonitoringConfig
	client *http.Client
	retry  resilience.RetryConfig
}

// NewAlerter creates a new Alerter with the given monitoring config.
func NewAlerter(cfg config.MonitoringConfig) *Alerter {
	retry := resilience.DefaultRetryConfig()
	retry.OnRetry = resilience.RetryLogger("monitoring", "webhook")
	return &Alerter{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		retry:  retry,
	}
}

// Evaluate checks the snapshot against thresholds and returns any alerts.
// Nothing fires until the window holds at least MinSample analyses.
func (a *Alerter) Evaluate(snap *Snapshot) []Alert {
	if snap == nil || snap.Count == 0 || snap.Count < a.cfg.MinSample {
		return nil
	}

	var alerts []Alert
	now := time.Now().UTC()

	if a.cfg.CriticalShareThreshold > 0 && snap.CriticalShare > a.cfg.CriticalShareThreshold {
		alerts = append(alerts, Alert{
			Type:     AlertCriticalShare,
			Severity: "high",
			Message: fmt.Sprintf(
				"%.1f%% of analyses are critical, above threshold %.1f%% (%d of %d in window %s)",
				snap.CriticalShare*100, a.cfg.CriticalShareThreshold*100,
				snap.StatusCounts[model.StatusCritical], snap.Count, windowLabel(snap.LookbackHours),
			),
			Details: map[string]any{
				"critical_share": snap.CriticalShare,
				"threshold":      a.cfg.CriticalShareThreshold,
				"critical":       snap.StatusCounts[model.StatusCritical],
				"count":          snap.Count,
			},
			Timestamp: now,
		})
	}

	if a.cfg.MinAvgPercentage > 0 && snap.AvgPercentage < a.cfg.MinAvgPercentage {
		alerts = append(alerts, Alert{
			Type:     AlertLowAverage,
			Severity: "medium",
			Message: fmt.Sprintf(
				"Average health %.1f%% is below %.1f%% (%d analyses in window %s, weakest pillar %s)",
				snap.AvgPercentage, a.cfg.MinAvgPercentage, snap.Count,
				windowLabel(snap.LookbackHours), snap.WeakestPillar,
			),
			Details: map[string]any{
				"avg_percentage":          snap.AvgPercentage,
				"threshold":               a.cfg.MinAvgPercentage,
				"avg_annual_revenue_loss": snap.AvgAnnualRevenueLoss,
				"weakest_pillar":          snap.WeakestPillar,
			},
			Timestamp: now,
		})
	}

	return alerts
}

func windowLabel(hours int) string {
	if hours <= 0 {
		return "all"
	}
	return fmt.Sprintf("%dh", hours)
}

// SendAlerts delivers alerts to the configured webhook URL.
// Returns the number of alerts successfully sent.
func (a *Alerter) SendAlerts(ctx context.Context, alerts []Alert) int {
	if a.cfg.WebhookURL == "" || len(alerts) == 0 {
		return 0
	}

	sent := 0
	for _, alert := range alerts {
		err := resilience.Do(ctx, a.retry, func(ctx context.Context) error {
			return a.sendWebhook(ctx, alert)
		})
		if err != nil {
			zap.L().Error("monitoring: failed to send alert",
				zap.String("type", string(alert.Type)),
				zap.Error(err),
			)
			continue
		}
		zap.L().Info("monitoring: alert sent",
			zap.String("type", string(alert.Type)),
			zap.String("severity", alert.Severity),
		)
		sent++
	}
	return sent
}

// sendWebhook posts a single alert to the webhook URL. Retryable statuses
// come back as resilience.TransientError.
func (a *Alerter) sendWebhook(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return eris.Wrap(err, "monitoring: marshal alert")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "monitoring: create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "monitoring: webhook request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		err := eris.Errorf("monitoring: webhook returned status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return resilience.NewTransientError(err, resp.StatusCode)
		}
		return err
	}
	return nil
}
