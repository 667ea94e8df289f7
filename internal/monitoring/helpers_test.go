package monitoring

import (
	"context"
	"time"

	"github.com/sells-group/bizhealth/internal/model"
	"github.com/sells-group/bizhealth/internal/store"
)

var fixedNow = time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)

type mockHistory struct {
	results []model.BusinessHealthResult
	err     error
}

func (m *mockHistory) ListHistory(_ context.Context, _ store.HistoryFilter) ([]model.BusinessHealthResult, error) {
	return m.results, m.err
}

// result builds a history entry aged hoursAgo before fixedNow with every
// pillar at pillarPct.
func result(id string, pct float64, status model.ScoreStatus, loss int64, hoursAgo int, pillarPct int) model.BusinessHealthResult {
	r := model.BusinessHealthResult{
		ID:                id,
		Percentage:        pct,
		Status:            status,
		AnnualRevenueLoss: loss,
		Timestamp:         fixedNow.Add(-time.Duration(hoursAgo) * time.Hour).UnixMilli(),
	}
	for _, name := range model.PillarNames() {
		r.Pillars = append(r.Pillars, model.PillarScore{Name: name, Percentage: pillarPct})
	}
	return r
}

func newTestCollector(m *mockHistory) *Collector {
	c := NewCollector(m)
	c.now = func() time.Time { return fixedNow }
	return c
}
