// Package scorer implements the five-pillar business health scoring engine.
package scorer

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bizhealth/internal/model"
)

// DefaultAnnualRevenue is the revenue baseline used by the reputation pillar
// when the caller does not know the business's actual annual revenue.
const DefaultAnnualRevenue = 500_000.0

// DefaultBenchmarks returns the built-in benchmark targets.
// Each call returns a fresh value, so callers may modify their copy freely.
func DefaultBenchmarks() model.Benchmarks {
	return model.Benchmarks{
		Database: model.DatabaseBenchmark{
			ReactivationRate: 0.25, // 25% of dormant customers can be reactivated
		},
		Reputation: model.ReputationBenchmark{
			TargetRating:           4.8,
			RevenueIncreasePerStar: 0.07, // 7% revenue per additional star
		},
		LeadCapture: model.LeadCaptureBenchmark{
			ConversionRate: 0.35, // 35% of answered calls convert
		},
		Omnichannel: model.OmnichannelBenchmark{
			OmnichannelConversionRate:   0.6314,
			SingleChannelConversionRate: 0.22,
		},
		Website: model.WebsiteBenchmark{
			TargetConversionRate: 0.052, // 5.2%
		},
	}
}

// MergeBenchmarks applies each non-nil override on top of base field by field.
func MergeBenchmarks(base model.Benchmarks, o *model.BenchmarkOverrides) model.Benchmarks {
	if o.IsZero() {
		return base
	}
	out := base
	if d := o.Database; d != nil {
		setIf(&out.Database.ReactivationRate, d.ReactivationRate)
	}
	if r := o.Reputation; r != nil {
		setIf(&out.Reputation.TargetRating, r.TargetRating)
		setIf(&out.Reputation.RevenueIncreasePerStar, r.RevenueIncreasePerStar)
	}
	if l := o.LeadCapture; l != nil {
		setIf(&out.LeadCapture.ConversionRate, l.ConversionRate)
	}
	if oc := o.Omnichannel; oc != nil {
		setIf(&out.Omnichannel.OmnichannelConversionRate, oc.OmnichannelConversionRate)
		setIf(&out.Omnichannel.SingleChannelConversionRate, oc.SingleChannelConversionRate)
	}
	if w := o.Website; w != nil {
		setIf(&out.Website.TargetConversionRate, w.TargetConversionRate)
	}
	return out
}

// ResolveBenchmarks layers overrides over the defaults in order; later layers win.
func ResolveBenchmarks(layers ...*model.BenchmarkOverrides) model.Benchmarks {
	bm := DefaultBenchmarks()
	for _, l := range layers {
		bm = MergeBenchmarks(bm, l)
	}
	return bm
}

func setIf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// ValidateBenchmarks checks that a Benchmarks value is usable for scoring.
// Every violation is reported, not just the first.
func ValidateBenchmarks(bm model.Benchmarks) error {
	var errs []string

	ratios := []struct {
		name string
		v    float64
	}{
		{"database.reactivationRate", bm.Database.ReactivationRate},
		{"reputation.revenueIncreasePerStar", bm.Reputation.RevenueIncreasePerStar},
		{"leadCapture.conversionRate", bm.LeadCapture.ConversionRate},
		{"omnichannel.omnichannelConversionRate", bm.Omnichannel.OmnichannelConversionRate},
		{"omnichannel.singleChannelConversionRate", bm.Omnichannel.SingleChannelConversionRate},
		{"website.targetConversionRate", bm.Website.TargetConversionRate},
	}
	for _, r := range ratios {
		if r.v < 0 || r.v > 1 {
			errs = append(errs, fmt.Sprintf("%s must be between 0 and 1", r.name))
		}
	}

	if bm.Reputation.TargetRating < 1 || bm.Reputation.TargetRating > 5 {
		errs = append(errs, "reputation.targetRating must be between 1 and 5")
	}

	// The website target is a divisor in the conversion component.
	if bm.Website.TargetConversionRate == 0 {
		errs = append(errs, "website.targetConversionRate must be > 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: benchmark validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// BenchmarkHash returns a short SHA-256 hash of the benchmarks for log correlation.
func BenchmarkHash(bm model.Benchmarks) string {
	data, err := json.Marshal(bm)
	if err != nil {
		return ""
	}
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:8])
}
