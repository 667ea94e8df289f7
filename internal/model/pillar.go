package model

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// PillarName identifies one of the five scored business dimensions.
type PillarName string

const (
	PillarDatabase    PillarName = "database"
	PillarReputation  PillarName = "reputation"
	PillarLeadCapture PillarName = "lead_capture"
	PillarOmnichannel PillarName = "omnichannel"
	PillarWebsite     PillarName = "website"
)

// PillarMaxScore is the maximum score of a single pillar.
const PillarMaxScore = 100

// PillarNames returns the pillars in result order.
func PillarNames() []PillarName {
	return []PillarName{PillarDatabase, PillarReputation, PillarLeadCapture, PillarOmnichannel, PillarWebsite}
}

// PillarMetrics is the pillar-specific detail retained for display.
// Exactly one implementation exists per pillar.
type PillarMetrics interface {
	Pillar() PillarName
}

// DatabaseMetrics details the database pillar.
type DatabaseMetrics struct {
	TotalCustomers        int     `json:"totalCustomers"`
	ContactFrequency      float64 `json:"contactFrequency"`
	AverageProjectValue   float64 `json:"averageProjectValue"`
	ReactivationPotential int64   `json:"reactivationPotential"`
}

// ReputationMetrics details the reputation pillar.
type ReputationMetrics struct {
	CurrentRating float64 `json:"currentRating"`
	TargetRating  float64 `json:"targetRating"`
	ResponseRate  float64 `json:"responseRate"`
	RatingGap     float64 `json:"ratingGap"`
}

// LeadCaptureMetrics details the lead capture pillar.
type LeadCaptureMetrics struct {
	DailyCalls         int     `json:"dailyCalls"`
	AnswerRate         float64 `json:"answerRate"`
	MissedCallsPerDay  int64   `json:"missedCallsPerDay"`
	MissedCallsPerYear int64   `json:"missedCallsPerYear"`
}

// OmnichannelMetrics details the omnichannel pillar.
type OmnichannelMetrics struct {
	AvailableChannels     []Channel `json:"availableChannels"`
	ChannelCount          int       `json:"channelCount"`
	CurrentConversionRate float64   `json:"currentConversionRate"`
	TargetConversionRate  float64   `json:"targetConversionRate"`
}

// WebsiteMetrics details the website pillar. Rates are percentages.
type WebsiteMetrics struct {
	MonthlyVisitors       int     `json:"monthlyVisitors"`
	CurrentConversionRate float64 `json:"currentConversionRate"`
	TargetConversionRate  float64 `json:"targetConversionRate"`
	ConversionGap         float64 `json:"conversionGap"`
}

func (DatabaseMetrics) Pillar() PillarName    { return PillarDatabase }
func (ReputationMetrics) Pillar() PillarName  { return PillarReputation }
func (LeadCaptureMetrics) Pillar() PillarName { return PillarLeadCapture }
func (OmnichannelMetrics) Pillar() PillarName { return PillarOmnichannel }
func (WebsiteMetrics) Pillar() PillarName     { return PillarWebsite }

// PillarScore is the scored outcome of one pillar.
type PillarScore struct {
	Name            PillarName    `json:"name"`
	Score           int           `json:"score"`
	MaxScore        int           `json:"maxScore"`
	Percentage      int           `json:"percentage"`
	RevenueImpact   int64         `json:"revenueImpact"`
	Metrics         PillarMetrics `json:"metrics"`
	Recommendations []string      `json:"recommendations"`
}

// UnmarshalJSON decodes the metrics variant that matches the pillar name.
func (p *PillarScore) UnmarshalJSON(data []byte) error {
	type alias PillarScore
	aux := struct {
		*alias
		Metrics json.RawMessage `json:"metrics"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return eris.Wrap(err, "model: decode pillar score")
	}

	metrics, err := decodeMetrics(p.Name, aux.Metrics)
	if err != nil {
		return err
	}
	p.Metrics = metrics
	return nil
}

func decodeMetrics(name PillarName, raw json.RawMessage) (PillarMetrics, error) {
	var target PillarMetrics
	switch name {
	case PillarDatabase:
		m := DatabaseMetrics{}
		if err := unmarshalMetrics(raw, &m); err != nil {
			return nil, err
		}
		target = m
	case PillarReputation:
		m := ReputationMetrics{}
		if err := unmarshalMetrics(raw, &m); err != nil {
			return nil, err
		}
		target = m
	case PillarLeadCapture:
		m := LeadCaptureMetrics{}
		if err := unmarshalMetrics(raw, &m); err != nil {
			return nil, err
		}
		target = m
	case PillarOmnichannel:
		m := OmnichannelMetrics{}
		if err := unmarshalMetrics(raw, &m); err != nil {
			return nil, err
		}
		target = m
	case PillarWebsite:
		m := WebsiteMetrics{}
		if err := unmarshalMetrics(raw, &m); err != nil {
			return nil, err
		}
		target = m
	default:
		return nil, eris.Errorf("model: unknown pillar %q", name)
	}
	return target, nil
}

func unmarshalMetrics(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return eris.Wrap(json.Unmarshal(raw, v), "model: decode pillar metrics")
}
