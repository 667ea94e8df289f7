package scorer

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/bizhealth/internal/model"
)

// Options are per-calculation inputs besides the business data.
type Options struct {
	// Benchmarks replaces the engine's benchmarks for this call when set.
	Benchmarks *model.Benchmarks
	// AnnualRevenue is the business's actual revenue, used by the reputation
	// pillar. Nil means DefaultAnnualRevenue.
	AnnualRevenue *float64
}

// Engine computes business health results. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	benchmarks model.Benchmarks
	now        func() time.Time
	newID      func() string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithBenchmarks sets the engine's default benchmarks.
func WithBenchmarks(bm model.Benchmarks) EngineOption {
	return func(e *Engine) { e.benchmarks = bm }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides the result id source.
func WithIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) { e.newID = fn }
}

// NewEngine creates an Engine using DefaultBenchmarks unless overridden.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		benchmarks: DefaultBenchmarks(),
		now:        time.Now,
		newID:      NewID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Benchmarks returns the engine's default benchmarks.
func (e *Engine) Benchmarks() model.Benchmarks {
	return e.benchmarks
}

// Calculate scores validated input. The input is assumed to satisfy the
// validation rules; it is not checked again here.
func (e *Engine) Calculate(in model.BusinessInputData, opts Options) *model.BusinessHealthResult {
	bm := e.benchmarks
	if opts.Benchmarks != nil {
		bm = *opts.Benchmarks
	}

	input := cloneInput(in)
	pillars := make([]model.PillarScore, 0, len(model.PillarNames()))
	for _, calc := range calculators() {
		pillars = append(pillars, calc(&input, &bm, opts.AnnualRevenue))
	}

	result := aggregate(pillars)
	result.InputData = input
	result.Timestamp = e.now().UnixMilli()
	result.ID = e.newID()

	zap.L().Debug("scorer: analysis calculated",
		zap.String("id", result.ID),
		zap.Int("total_score", result.TotalScore),
		zap.Float64("percentage", result.Percentage),
		zap.String("status", string(result.Status)),
		zap.Int64("annual_revenue_loss", result.AnnualRevenueLoss),
		zap.String("benchmark_hash", BenchmarkHash(bm)),
	)
	return result
}

// Calculate scores in against bm with a fresh default engine.
// annualRevenue may be nil.
func Calculate(in model.BusinessInputData, bm model.Benchmarks, annualRevenue *float64) *model.BusinessHealthResult {
	return NewEngine(WithBenchmarks(bm)).Calculate(in, Options{AnnualRevenue: annualRevenue})
}

// aggregate sums already-rounded pillar values into a result. Identity and
// timestamp are left to the caller.
func aggregate(pillars []model.PillarScore) *model.BusinessHealthResult {
	var total int
	var loss int64
	for _, p := range pillars {
		total += p.Score
		loss += p.RevenueImpact
	}

	pct := roundTo(float64(total)/model.TotalMaxScore*100, 1)
	return &model.BusinessHealthResult{
		TotalScore:           total,
		MaxScore:             model.TotalMaxScore,
		Percentage:           pct,
		Status:               ClassifyStatus(pct),
		AnnualRevenueLoss:    loss,
		DailyOpportunityCost: int64(math.Round(float64(loss) / 365)),
		Pillars:              pillars,
	}
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func cloneInput(in model.BusinessInputData) model.BusinessInputData {
	out := in
	out.AvailableChannels = append([]model.Channel(nil), in.AvailableChannels...)
	if in.WebsiteLoadTime != nil {
		v := *in.WebsiteLoadTime
		out.WebsiteLoadTime = &v
	}
	return out
}
