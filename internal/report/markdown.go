package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bizhealth/internal/model"
)

// Markdown renders a summary table followed by one section per pillar.
type Markdown struct {
	opts Options
}

func (*Markdown) ContentType() string { return "text/markdown; charset=utf-8" }

func (m *Markdown) Render(w io.Writer, r *model.BusinessHealthResult) error {
	v := buildView(r, m.opts)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s\n\n", v.Title))
	b.WriteString(fmt.Sprintf("**%s**\n\n", v.Status))
	b.WriteString("| | |\n|---|---|\n")
	b.WriteString(fmt.Sprintf("| %s | %s (%s) |\n", v.Labels.Score, v.Score, v.Percentage))
	b.WriteString(fmt.Sprintf("| %s | %s |\n", v.Labels.Loss, v.Loss))
	b.WriteString(fmt.Sprintf("| %s | %s |\n", v.Labels.Daily, v.Daily))
	b.WriteString(fmt.Sprintf("| %s | %s |\n", v.Labels.Date, v.Date))
	b.WriteString(fmt.Sprintf("| ID | `%s` |\n\n", r.ID))

	b.WriteString(fmt.Sprintf("| %s | Score | %% | %s |\n", v.Labels.Pillar, v.Labels.Impact))
	b.WriteString("|---|---:|---:|---:|\n")
	for _, p := range v.Pillars {
		b.WriteString(fmt.Sprintf("| %s | %s | %d | %s |\n", p.Name, p.Score, p.Percentage, p.Impact))
	}
	b.WriteString("\n")

	for _, p := range v.Pillars {
		b.WriteString(fmt.Sprintf("## %s\n\n", p.Name))
		b.WriteString(fmt.Sprintf("### %s\n\n", v.Labels.Recommendations))
		for _, rec := range p.Recommendations {
			b.WriteString("- " + rec + "\n")
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return eris.Wrap(err, "report: write markdown")
}
