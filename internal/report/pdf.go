package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/rotisserie/eris"

	"github.com/sells-group/bizhealth/internal/model"
)

// PDF renders an A4 report with fpdf core fonts.
type PDF struct {
	opts Options
}

func (*PDF) ContentType() string { return "application/pdf" }

func (p *PDF) Render(w io.Writer, r *model.BusinessHealthResult) error {
	v := buildView(r, p.opts)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(v.Title, true)
	pdf.SetCreator("bizhealth", true)
	pdf.AddPage()

	// Core fonts are cp1252; translate umlauts and currency symbols.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, tr(v.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 5, tr(v.Date+"   "+r.ID), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	red, green, blue := statusRGB(r.Status)
	pdf.SetTextColor(red, green, blue)
	pdf.CellFormat(0, 8, tr(v.Status), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Arial", "", 10)
	summary := [][2]string{
		{v.Labels.Score, fmt.Sprintf("%s (%s)", v.Score, v.Percentage)},
		{v.Labels.Loss, v.Loss},
		{v.Labels.Daily, v.Daily},
	}
	for _, row := range summary {
		pdf.CellFormat(70, 6, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(60, 7, tr(v.Labels.Pillar), "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Score", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "%", "1", 0, "R", true, 0, "")
	pdf.CellFormat(0, 7, tr(v.Labels.Impact), "1", 1, "R", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, pv := range v.Pillars {
		pdf.CellFormat(60, 7, tr(pv.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, tr(pv.Score), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", pv.Percentage), "1", 0, "R", false, 0, "")
		pdf.CellFormat(0, 7, tr(pv.Impact), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	for _, pv := range v.Pillars {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, tr(pv.Name), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, rec := range pv.Recommendations {
			pdf.MultiCell(0, 5, tr("- "+rec), "", "L", false)
		}
		pdf.Ln(2)
	}

	if err := pdf.Error(); err != nil {
		return eris.Wrap(err, "report: build pdf")
	}
	return eris.Wrap(pdf.Output(w), "report: write pdf")
}

func statusRGB(s model.ScoreStatus) (int, int, int) {
	switch s {
	case model.StatusExcellent:
		return 22, 130, 60
	case model.StatusGood:
		return 30, 90, 180
	case model.StatusNeedsImprovement:
		return 200, 140, 0
	default:
		return 190, 30, 30
	}
}
