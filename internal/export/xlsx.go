package export

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/bizhealth/internal/model"
)

// Sheet names in the XLSX workbook.
const (
	SheetHistory = "History"
	SheetPillars = "Pillars"
)

// WriteHistoryXLSX writes a workbook with a "History" sheet (same table as
// the CSV) and a "Pillars" sheet with one row per analysis and pillar.
func WriteHistoryXLSX(w io.Writer, history []model.BusinessHealthResult) error {
	f := xlsx.NewFile()

	hs, err := f.AddSheet(SheetHistory)
	if err != nil {
		return eris.Wrap(err, "export: add history sheet")
	}
	addStringRow(hs, historyHeader())
	for i := range history {
		r := &history[i]
		row := hs.AddRow()
		row.AddCell().SetString(r.ID)
		row.AddCell().SetDateTime(r.Time())
		row.AddCell().SetString(string(r.Status))
		row.AddCell().SetInt(r.TotalScore)
		row.AddCell().SetInt(r.MaxScore)
		row.AddCell().SetFloat(r.Percentage)
		row.AddCell().SetInt64(r.AnnualRevenueLoss)
		row.AddCell().SetInt64(r.DailyOpportunityCost)
		for _, name := range model.PillarNames() {
			p := r.Pillar(name)
			if p == nil {
				row.AddCell()
				row.AddCell()
				continue
			}
			row.AddCell().SetInt(p.Score)
			row.AddCell().SetInt64(p.RevenueImpact)
		}
	}

	ps, err := f.AddSheet(SheetPillars)
	if err != nil {
		return eris.Wrap(err, "export: add pillars sheet")
	}
	addStringRow(ps, []string{"analysis_id", "pillar", "score", "max_score", "percentage", "revenue_impact", "recommendations"})
	for i := range history {
		r := &history[i]
		for _, p := range r.Pillars {
			row := ps.AddRow()
			row.AddCell().SetString(r.ID)
			row.AddCell().SetString(string(p.Name))
			row.AddCell().SetInt(p.Score)
			row.AddCell().SetInt(p.MaxScore)
			row.AddCell().SetInt(p.Percentage)
			row.AddCell().SetInt64(p.RevenueImpact)
			row.AddCell().SetString(strings.Join(p.Recommendations, "\n"))
		}
	}

	return eris.Wrap(f.Write(w), "export: write xlsx")
}

func addStringRow(sheet *xlsx.Sheet, values []string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

