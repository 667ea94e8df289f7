package export

import (
	"strconv"
	"time"

	"github.com/sells-group/bizhealth/internal/model"
)

// historyHeader is shared by CSV and the XLSX "History" sheet.
func historyHeader() []string {
	h := []string{"id", "timestamp", "status", "total_score", "max_score", "percentage", "annual_revenue_loss", "daily_opportunity_cost"}
	for _, p := range model.PillarNames() {
		h = append(h, string(p)+"_score", string(p)+"_revenue_impact")
	}
	return h
}

func historyRow(r *model.BusinessHealthResult) []string {
	row := []string{
		r.ID,
		r.Time().Format(time.RFC3339),
		string(r.Status),
		strconv.Itoa(r.TotalScore),
		strconv.Itoa(r.MaxScore),
		strconv.FormatFloat(r.Percentage, 'f', 1, 64),
		strconv.FormatInt(r.AnnualRevenueLoss, 10),
		strconv.FormatInt(r.DailyOpportunityCost, 10),
	}
	for _, name := range model.PillarNames() {
		p := r.Pillar(name)
		if p == nil {
			row = append(row, "", "")
			continue
		}
		row = append(row, strconv.Itoa(p.Score), strconv.FormatInt(p.RevenueImpact, 10))
	}
	return row
}
