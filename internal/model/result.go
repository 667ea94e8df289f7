package model

import "time"

// ScoreStatus is the ordinal health band derived from the overall percentage.
type ScoreStatus string

const (
	StatusCritical         ScoreStatus = "critical"
	StatusNeedsImprovement ScoreStatus = "needs_improvement"
	StatusGood             ScoreStatus = "good"
	StatusExcellent        ScoreStatus = "excellent"
)

// Valid reports whether s is a known status band.
func (s ScoreStatus) Valid() bool {
	switch s {
	case StatusCritical, StatusNeedsImprovement, StatusGood, StatusExcellent:
		return true
	}
	return false
}

// TotalMaxScore is the maximum aggregate score over all five pillars.
const TotalMaxScore = 500

// BusinessHealthResult is the complete, immutable outcome of one analysis.
type BusinessHealthResult struct {
	TotalScore           int               `json:"totalScore"`
	MaxScore             int               `json:"maxScore"`
	Percentage           float64           `json:"percentage"`
	Status               ScoreStatus       `json:"status"`
	AnnualRevenueLoss    int64             `json:"annualRevenueLoss"`
	DailyOpportunityCost int64             `json:"dailyOpportunityCost"`
	Pillars              []PillarScore     `json:"pillars"`
	InputData            BusinessInputData `json:"inputData"`
	Timestamp            int64             `json:"timestamp"` // Unix milliseconds
	ID                   string            `json:"id"`
}

// Time returns the capture instant.
func (r *BusinessHealthResult) Time() time.Time {
	return time.UnixMilli(r.Timestamp).UTC()
}

// Pillar returns the pillar with the given name, or nil.
func (r *BusinessHealthResult) Pillar(name PillarName) *PillarScore {
	for i := range r.Pillars {
		if r.Pillars[i].Name == name {
			return &r.Pillars[i]
		}
	}
	return nil
}
