package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bizhealth/internal/analysis"
	"github.com/sells-group/bizhealth/internal/model"
	"github.com/sells-group/bizhealth/internal/monitoring"
	"github.com/sells-group/bizhealth/internal/report"
	"github.com/sells-group/bizhealth/internal/store"
	"github.com/sells-group/bizhealth/internal/validate"
)

// appEnv holds the store and service shared by the commands.
type appEnv struct {
	Store   store.Store
	Service *analysis.Service
	Metrics *monitoring.Metrics // nil outside serve
}

// Close releases resources held by the environment.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initEnv validates config for mode, opens and migrates the store, and builds
// the analysis service. Callers should defer env.Close().
func initEnv(ctx context.Context, mode string, metrics *monitoring.Metrics) (*appEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	v, err := validate.New()
	if err != nil {
		return nil, err
	}
	if err := v.ValidateOverrides(&cfg.Benchmarks); err != nil {
		return nil, eris.Wrap(err, "config: benchmarks")
	}

	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, store.WithHistoryLimit(cfg.History.Limit))
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}

	opts := []analysis.Option{analysis.WithBenchmarkOverrides(&cfg.Benchmarks)}
	if metrics != nil {
		opts = append(opts, analysis.WithMetrics(metrics))
	}

	return &appEnv{
		Store:   st,
		Service: analysis.New(st, v, opts...),
		Metrics: metrics,
	}, nil
}

// reportOptions picks currency and language: flag, then config, then the
// stored user settings.
func reportOptions(ctx context.Context, st store.Store, currency, language string, color bool) (report.Options, error) {
	settings, err := st.LoadSettings(ctx)
	if err != nil {
		return report.Options{}, eris.Wrap(err, "load settings")
	}
	opts := report.Options{Currency: settings.Currency, Language: settings.Language, Color: color}
	for _, c := range []string{cfg.Report.Currency, currency} {
		if c != "" {
			opts.Currency = model.Currency(c)
		}
	}
	for _, l := range []string{cfg.Report.Language, language} {
		if l != "" {
			opts.Language = model.Language(l)
		}
	}
	return opts, nil
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode json")
}
