// Package analysis ties validation, scoring and persistence together for the
// CLI and the HTTP API.
package analysis

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bizhealth/internal/model"
	"github.com/sells-group/bizhealth/internal/monitoring"
	"github.com/sells-group/bizhealth/internal/scorer"
	"github.com/sells-group/bizhealth/internal/store"
	"github.com/sells-group/bizhealth/internal/validate"
)

// Service runs analyses against a store.
type Service struct {
	store     store.Store
	validator *validate.Validator
	engine    *scorer.Engine
	metrics   *monitoring.Metrics
	overrides *model.BenchmarkOverrides
}

// Option configures a Service.
type Option func(*Service)

// WithEngine replaces the default scoring engine.
func WithEngine(e *scorer.Engine) Option {
	return func(s *Service) { s.engine = e }
}

// WithMetrics records analyses and validation failures.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithBenchmarkOverrides sets operator-level overrides that sit between the
// defaults and the user's stored custom benchmarks.
func WithBenchmarkOverrides(o *model.BenchmarkOverrides) Option {
	return func(s *Service) { s.overrides = o }
}

// New creates a Service.
func New(st store.Store, v *validate.Validator, opts ...Option) *Service {
	s := &Service{store: st, validator: v, engine: scorer.NewEngine()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store.
func (s *Service) Store() store.Store { return s.store }

// Request is one analysis to run.
type Request struct {
	// Document is the raw input: JSON or YAML bytes, a string, or a decoded map.
	Document any
	// AnnualRevenue overrides the default revenue baseline when set.
	AnnualRevenue *float64
	// Save persists the result as the current analysis and into history.
	Save bool
	// Source labels validation failure metrics ("api", "cli").
	Source string
}

// Benchmarks returns the effective benchmarks: defaults, then configured
// overrides, then the user's custom benchmarks.
func (s *Service) Benchmarks(ctx context.Context) (model.Benchmarks, error) {
	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return model.Benchmarks{}, eris.Wrap(err, "analysis: load settings")
	}
	bm := scorer.ResolveBenchmarks(s.overrides, settings.CustomBenchmarks)
	if err := scorer.ValidateBenchmarks(bm); err != nil {
		return model.Benchmarks{}, err
	}
	return bm, nil
}

// Analyze validates the document, scores it with the effective benchmarks and
// optionally saves it. Invalid input yields a *validate.ValidationError.
func (s *Service) Analyze(ctx context.Context, req Request) (*model.BusinessHealthResult, error) {
	in, err := s.validator.ValidateDocument(req.Document)
	if err == nil && req.AnnualRevenue != nil && *req.AnnualRevenue <= 0 {
		err = &validate.ValidationError{Fields: []validate.FieldError{
			{Path: "annualRevenue", Message: "must be greater than 0"},
		}}
	}
	if err != nil {
		if validate.IsValidationError(err) && s.metrics != nil {
			s.metrics.ObserveValidationFailure(req.Source)
		}
		return nil, err
	}

	bm, err := s.Benchmarks(ctx)
	if err != nil {
		return nil, err
	}

	result := s.engine.Calculate(*in, scorer.Options{Benchmarks: &bm, AnnualRevenue: req.AnnualRevenue})
	if s.metrics != nil {
		s.metrics.ObserveAnalysis(result)
	}

	if req.Save {
		if err := s.store.SaveAnalysis(ctx, result); err != nil {
			return nil, eris.Wrapf(err, "analysis: save %s", result.ID)
		}
		zap.L().Info("analysis: saved",
			zap.String("id", result.ID),
			zap.String("status", string(result.Status)),
			zap.Float64("percentage", result.Percentage),
		)
	}
	return result, nil
}

// UpdateSettings validates and stores settings.
func (s *Service) UpdateSettings(ctx context.Context, settings model.AppSettings) error {
	if err := s.validator.ValidateSettings(settings); err != nil {
		return err
	}
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return eris.Wrap(err, "analysis: save settings")
	}
	return nil
}
