package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rotisserie/eris"

	"github.com/sells-group/bizhealth/internal/model"
)

// Console renders a terminal report with lipgloss styling.
type Console struct {
	opts Options
}

func (*Console) ContentType() string { return "text/plain; charset=utf-8" }

func statusColor(s model.ScoreStatus) lipgloss.Color {
	switch s {
	case model.StatusExcellent:
		return lipgloss.Color("10") // green
	case model.StatusGood:
		return lipgloss.Color("12") // blue
	case model.StatusNeedsImprovement:
		return lipgloss.Color("11") // yellow
	default:
		return lipgloss.Color("9") // red
	}
}

// bar draws a ten-cell progress bar for a 0-100 percentage.
func bar(pct int) string {
	filled := pct / 10
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func (c *Console) Render(w io.Writer, r *model.BusinessHealthResult) error {
	re := lipgloss.NewRenderer(w)
	plain := re.NewStyle()
	bold, dim, status := plain, plain, plain
	if c.opts.Color {
		bold = re.NewStyle().Bold(true)
		dim = re.NewStyle().Foreground(lipgloss.Color("8"))
		status = re.NewStyle().Bold(true).Foreground(statusColor(r.Status))
	}

	v := buildView(r, c.opts)
	var b strings.Builder

	b.WriteString(bold.Render(v.Title) + "\n")
	b.WriteString(dim.Render(v.Date+"  "+r.ID) + "\n\n")
	b.WriteString(status.Render(v.Status) + "\n")
	b.WriteString(fmt.Sprintf("%-30s %s (%s)\n", v.Labels.Score, v.Score, v.Percentage))
	b.WriteString(fmt.Sprintf("%-30s %s\n", v.Labels.Loss, v.Loss))
	b.WriteString(fmt.Sprintf("%-30s %s\n\n", v.Labels.Daily, v.Daily))

	for _, p := range v.Pillars {
		b.WriteString(fmt.Sprintf("%-20s %s %3d%%  %-10s %s\n", bold.Render(p.Name), bar(p.Percentage), p.Percentage, p.Score, p.Impact))
		for _, rec := range p.Recommendations {
			b.WriteString(dim.Render("  • "+rec) + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return eris.Wrap(err, "report: write console")
}
