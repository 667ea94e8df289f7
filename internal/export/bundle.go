// Package export writes stored analyses out as a JSON bundle, CSV or XLSX.
package export

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bizhealth/internal/model"
	"github.com/sells-group/bizhealth/internal/store"
)

// Supported export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Bundle is a full snapshot of the stored state.
type Bundle struct {
	CurrentAnalysis *model.BusinessHealthResult  `json:"currentAnalysis"`
	History         []model.BusinessHealthResult `json:"history"`
	Settings        model.AppSettings            `json:"settings"`
	ExportDate      time.Time                    `json:"exportDate"`
}

// Source is the read side of a store needed to build a bundle.
type Source interface {
	CurrentAnalysis(ctx context.Context) (*model.BusinessHealthResult, error)
	ListHistory(ctx context.Context, filter store.HistoryFilter) ([]model.BusinessHealthResult, error)
	LoadSettings(ctx context.Context) (model.AppSettings, error)
}

// Collect reads current analysis, full history and settings from src.
func Collect(ctx context.Context, src Source, now time.Time) (*Bundle, error) {
	cur, err := src.CurrentAnalysis(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "export: load current analysis")
	}
	history, err := src.ListHistory(ctx, store.HistoryFilter{})
	if err != nil {
		return nil, eris.Wrap(err, "export: load history")
	}
	settings, err := src.LoadSettings(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "export: load settings")
	}
	if history == nil {
		history = []model.BusinessHealthResult{}
	}
	return &Bundle{
		CurrentAnalysis: cur,
		History:         history,
		Settings:        settings,
		ExportDate:      now.UTC(),
	}, nil
}

// WriteJSON writes the bundle as indented JSON.
func WriteJSON(w io.Writer, b *Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(b), "export: encode json")
}

// Write renders b in the named format.
func Write(w io.Writer, format string, b *Bundle) error {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		return WriteJSON(w, b)
	case FormatCSV:
		return WriteHistoryCSV(w, b.History)
	case FormatXLSX:
		return WriteHistoryXLSX(w, b.History)
	default:
		return eris.Errorf("export: unknown format %q", format)
	}
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// FileName returns a dated download name such as
// "business-health-export-2026-03-07.csv".
func FileName(format string, now time.Time) string {
	ext := strings.ToLower(format)
	if ext == "" {
		ext = FormatJSON
	}
	return "business-health-export-" + now.UTC().Format("2006-01-02") + "." + ext
}
