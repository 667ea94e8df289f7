package model

// Benchmarks holds the best-practice targets the pillars are measured against.
// Ratios are fractions in [0,1]; TargetRating is on the 1-5 star scale.
type Benchmarks struct {
	Database    DatabaseBenchmark    `json:"database" yaml:"database" mapstructure:"database"`
	Reputation  ReputationBenchmark  `json:"reputation" yaml:"reputation" mapstructure:"reputation"`
	LeadCapture LeadCaptureBenchmark `json:"leadCapture" yaml:"leadCapture" mapstructure:"leadCapture"`
	Omnichannel OmnichannelBenchmark `json:"omnichannel" yaml:"omnichannel" mapstructure:"omnichannel"`
	Website     WebsiteBenchmark     `json:"website" yaml:"website" mapstructure:"website"`
}

// DatabaseBenchmark configures the database pillar.
type DatabaseBenchmark struct {
	ReactivationRate float64 `json:"reactivationRate" yaml:"reactivationRate" mapstructure:"reactivationRate"`
}

// ReputationBenchmark configures the reputation pillar.
type ReputationBenchmark struct {
	TargetRating           float64 `json:"targetRating" yaml:"targetRating" mapstructure:"targetRating"`
	RevenueIncreasePerStar float64 `json:"revenueIncreasePerStar" yaml:"revenueIncreasePerStar" mapstructure:"revenueIncreasePerStar"`
}

// LeadCaptureBenchmark configures the lead capture pillar.
type LeadCaptureBenchmark struct {
	ConversionRate float64 `json:"conversionRate" yaml:"conversionRate" mapstructure:"conversionRate"`
}

// OmnichannelBenchmark configures the omnichannel pillar.
type OmnichannelBenchmark struct {
	OmnichannelConversionRate   float64 `json:"omnichannelConversionRate" yaml:"omnichannelConversionRate" mapstructure:"omnichannelConversionRate"`
	SingleChannelConversionRate float64 `json:"singleChannelConversionRate" yaml:"singleChannelConversionRate" mapstructure:"singleChannelConversionRate"`
}

// WebsiteBenchmark configures the website pillar.
type WebsiteBenchmark struct {
	TargetConversionRate float64 `json:"targetConversionRate" yaml:"targetConversionRate" mapstructure:"targetConversionRate"`
}

// BenchmarkOverrides is a partial Benchmarks. A nil field keeps the base value.
type BenchmarkOverrides struct {
	Database    *DatabaseOverrides    `json:"database,omitempty" yaml:"database,omitempty" mapstructure:"database" validate:"omitempty"`
	Reputation  *ReputationOverrides  `json:"reputation,omitempty" yaml:"reputation,omitempty" mapstructure:"reputation" validate:"omitempty"`
	LeadCapture *LeadCaptureOverrides `json:"leadCapture,omitempty" yaml:"leadCapture,omitempty" mapstructure:"leadCapture" validate:"omitempty"`
	Omnichannel *OmnichannelOverrides `json:"omnichannel,omitempty" yaml:"omnichannel,omitempty" mapstructure:"omnichannel" validate:"omitempty"`
	Website     *WebsiteOverrides     `json:"website,omitempty" yaml:"website,omitempty" mapstructure:"website" validate:"omitempty"`
}

// DatabaseOverrides overrides DatabaseBenchmark fields.
type DatabaseOverrides struct {
	ReactivationRate *float64 `json:"reactivationRate,omitempty" yaml:"reactivationRate,omitempty" mapstructure:"reactivationRate" validate:"omitempty,gte=0,lte=1"`
}

// ReputationOverrides overrides ReputationBenchmark fields.
type ReputationOverrides struct {
	TargetRating           *float64 `json:"targetRating,omitempty" yaml:"targetRating,omitempty" mapstructure:"targetRating" validate:"omitempty,gte=1,lte=5"`
	RevenueIncreasePerStar *float64 `json:"revenueIncreasePerStar,omitempty" yaml:"revenueIncreasePerStar,omitempty" mapstructure:"revenueIncreasePerStar" validate:"omitempty,gte=0,lte=1"`
}

// LeadCaptureOverrides overrides LeadCaptureBenchmark fields.
type LeadCaptureOverrides struct {
	ConversionRate *float64 `json:"conversionRate,omitempty" yaml:"conversionRate,omitempty" mapstructure:"conversionRate" validate:"omitempty,gte=0,lte=1"`
}

// OmnichannelOverrides overrides OmnichannelBenchmark fields.
type OmnichannelOverrides struct {
	OmnichannelConversionRate   *float64 `json:"omnichannelConversionRate,omitempty" yaml:"omnichannelConversionRate,omitempty" mapstructure:"omnichannelConversionRate" validate:"omitempty,gte=0,lte=1"`
	SingleChannelConversionRate *float64 `json:"singleChannelConversionRate,omitempty" yaml:"singleChannelConversionRate,omitempty" mapstructure:"singleChannelConversionRate" validate:"omitempty,gte=0,lte=1"`
}

// WebsiteOverrides overrides WebsiteBenchmark fields.
type WebsiteOverrides struct {
	TargetConversionRate *float64 `json:"targetConversionRate,omitempty" yaml:"targetConversionRate,omitempty" mapstructure:"targetConversionRate" validate:"omitempty,gt=0,lte=1"`
}

// IsZero reports whether no override is set.
func (o *BenchmarkOverrides) IsZero() bool {
	return o == nil || (o.Database == nil && o.Reputation == nil && o.LeadCapture == nil &&
		o.Omnichannel == nil && o.Website == nil)
}
