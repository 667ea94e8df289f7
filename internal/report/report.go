// Package report renders a BusinessHealthResult for people: styled console
// output, Markdown, indented JSON and PDF.
package report

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bizhealth/internal/format"
	"github.com/sells-group/bizhealth/internal/model"
)

// Renderer writes one analysis result to w.
type Renderer interface {
	Render(w io.Writer, r *model.BusinessHealthResult) error
	// ContentType is the MIME type of the rendered output.
	ContentType() string
}

// Supported format names.
const (
	FormatConsole  = "console"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatPDF      = "pdf"
)

// Options control localization of rendered reports.
type Options struct {
	Currency model.Currency
	Language model.Language
	// Color enables ANSI styling in console output.
	Color bool
}

func (o Options) withDefaults() Options {
	def := model.DefaultSettings()
	if o.Currency == "" {
		o.Currency = def.Currency
	}
	if o.Language == "" {
		o.Language = def.Language
	}
	return o
}

// Formats lists the format names accepted by New.
func Formats() []string {
	return []string{FormatConsole, FormatMarkdown, FormatJSON, FormatPDF}
}

// New returns the renderer for the named format.
func New(name string, opts Options) (Renderer, error) {
	opts = opts.withDefaults()
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatConsole, "":
		return &Console{opts: opts}, nil
	case FormatMarkdown, "md":
		return &Markdown{opts: opts}, nil
	case FormatJSON:
		return &JSON{}, nil
	case FormatPDF:
		return &PDF{opts: opts}, nil
	default:
		return nil, eris.Errorf("report: unknown format %q (want one of %s)", name, strings.Join(Formats(), ", "))
	}
}

// view holds the localized strings shared by the text renderers.
type view struct {
	Title      string
	Status     string
	Score      string
	Percentage string
	Loss       string
	Daily      string
	Date       string
	Pillars    []pillarView
	Labels     labels
}

type pillarView struct {
	Name            string
	Score           string
	Percentage      int
	Impact          string
	Recommendations []string
}

type labels struct {
	Score, Loss, Daily, Date, Pillar, Impact, Recommendations string
}

var labelSets = map[model.Language]labels{
	model.LanguageDE: {
		Score:           "Gesamtpunktzahl",
		Loss:            "Jährlicher Umsatzverlust",
		Daily:           "Tägliche Opportunitätskosten",
		Date:            "Analysiert am",
		Pillar:          "Säule",
		Impact:          "Umsatzpotenzial",
		Recommendations: "Empfehlungen",
	},
	model.LanguageEN: {
		Score:           "Total score",
		Loss:            "Annual revenue loss",
		Daily:           "Daily opportunity cost",
		Date:            "Analyzed at",
		Pillar:          "Pillar",
		Impact:          "Revenue impact",
		Recommendations: "Recommendations",
	},
}

func titleFor(lang model.Language) string {
	if lang == model.LanguageEN {
		return "Business Health Report"
	}
	return "Business-Health-Report"
}

func buildView(r *model.BusinessHealthResult, opts Options) view {
	lang := opts.Language
	lbl, ok := labelSets[lang]
	if !ok {
		lbl = labelSets[model.LanguageDE]
	}

	v := view{
		Title:      titleFor(lang),
		Status:     format.StatusHeadline(r.Status, lang),
		Score:      format.Number(int64(r.TotalScore), lang) + " / " + format.Number(int64(r.MaxScore), lang),
		Percentage: format.Percentage(r.Percentage, 1, lang),
		Loss:       format.Currency(r.AnnualRevenueLoss, opts.Currency, lang),
		Daily:      format.Currency(r.DailyOpportunityCost, opts.Currency, lang),
		Date:       format.Date(r.Time(), lang),
		Labels:     lbl,
	}
	for _, p := range r.Pillars {
		v.Pillars = append(v.Pillars, pillarView{
			Name:            format.PillarLabel(p.Name, lang),
			Score:           format.Number(int64(p.Score), lang) + " / " + format.Number(int64(p.MaxScore), lang),
			Percentage:      p.Percentage,
			Impact:          format.Currency(p.RevenueImpact, opts.Currency, lang),
			Recommendations: p.Recommendations,
		})
	}
	return v
}
