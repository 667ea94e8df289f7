// Package monitoring summarizes stored analysis history, raises alerts when
// portfolio health drops, and exposes Prometheus metrics.
package monitoring

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bizhealth/internal/model"
	"github.com/sells-group/bizhealth/internal/store"
)

// Snapshot holds a point-in-time view of stored analyses.
type Snapshot struct {
	Count                  int                          `json:"count"`
	AvgPercentage          float64                      `json:"avg_percentage"`
	StatusCounts           map[model.ScoreStatus]int    `json:"status_counts"`
	CriticalShare          float64                      `json:"critical_share"`
	TotalAnnualRevenueLoss int64                        `json:"total_annual_revenue_loss"`
	AvgAnnualRevenueLoss   int64                        `json:"avg_annual_revenue_loss"`
	AvgPillarPercentage    map[model.PillarName]float64 `json:"avg_pillar_percentage"`
	WeakestPillar          model.PillarName             `json:"weakest_pillar,omitempty"`

	// Metadata. LookbackHours 0 means the whole history.
	LookbackHours int       `json:"lookback_hours"`
	CollectedAt   time.Time `json:"collected_at"`
}

// HistoryLister is the part of the store the collector reads.
type HistoryLister interface {
	ListHistory(ctx context.Context, filter store.HistoryFilter) ([]model.BusinessHealthResult, error)
}

// Collector computes snapshots from stored history.
type Collector struct {
	store HistoryLister
	now   func() time.Time
}

// NewCollector creates a new history collector.
func NewCollector(st HistoryLister) *Collector {
	return &Collector{store: st, now: time.Now}
}

// Collect summarizes analyses whose timestamp falls within the lookback
// window. A non-positive lookbackHours includes everything.
func (c *Collector) Collect(ctx context.Context, lookbackHours int) (*Snapshot, error) {
	now := c.now().UTC()
	snap := &Snapshot{
		StatusCounts:        make(map[model.ScoreStatus]int),
		AvgPillarPercentage: make(map[model.PillarName]float64),
		LookbackHours:       max(lookbackHours, 0),
		CollectedAt:         now,
	}

	history, err := c.store.ListHistory(ctx, store.HistoryFilter{})
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list history")
	}

	var cutoff time.Time
	if lookbackHours > 0 {
		cutoff = now.Add(-time.Duration(lookbackHours) * time.Hour)
	}

	var pctSum float64
	pillarSums := make(map[model.PillarName]int)
	for i := range history {
		r := &history[i]
		if !cutoff.IsZero() && r.Time().Before(cutoff) {
			continue
		}
		snap.Count++
		pctSum += r.Percentage
		snap.StatusCounts[r.Status]++
		snap.TotalAnnualRevenueLoss += r.AnnualRevenueLoss
		for _, p := range r.Pillars {
			pillarSums[p.Name] += p.Percentage
		}
	}

	if snap.Count == 0 {
		return snap, nil
	}

	n := float64(snap.Count)
	snap.AvgPercentage = pctSum / n
	snap.CriticalShare = float64(snap.StatusCounts[model.StatusCritical]) / n
	snap.AvgAnnualRevenueLoss = snap.TotalAnnualRevenueLoss / int64(snap.Count)

	weakest := -1.0
	for _, name := range model.PillarNames() {
		avg := float64(pillarSums[name]) / n
		snap.AvgPillarPercentage[name] = avg
		if weakest < 0 || avg < weakest {
			weakest = avg
			snap.WeakestPillar = name
		}
	}
	return snap, nil
}
