// Package store persists analysis results, the current analysis and user
// settings.
package store

import (
	"context"
	"errors"

	"github.com/sells-group/bizhealth/internal/model"
)

// DefaultHistoryLimit is the number of analyses kept in history.
const DefaultHistoryLimit = 50

// ErrNotFound is returned when an analysis id does not exist.
var ErrNotFound = errors.New("store: not found")

// HistoryFilter specifies criteria for listing history.
type HistoryFilter struct {
	Status model.ScoreStatus `json:"status,omitempty"`
	Limit  int               `json:"limit,omitempty"`
	Offset int               `json:"offset,omitempty"`
}

// Store defines the persistence interface for analyses and settings.
type Store interface {
	// Analyses
	SaveAnalysis(ctx context.Context, r *model.BusinessHealthResult) error
	CurrentAnalysis(ctx context.Context) (*model.BusinessHealthResult, error)
	ClearCurrent(ctx context.Context) error
	GetAnalysis(ctx context.Context, id string) (*model.BusinessHealthResult, error)
	ListHistory(ctx context.Context, filter HistoryFilter) ([]model.BusinessHealthResult, error)
	DeleteAnalysis(ctx context.Context, id string) error
	ClearHistory(ctx context.Context) error

	// Settings
	LoadSettings(ctx context.Context) (model.AppSettings, error)
	SaveSettings(ctx context.Context, s model.AppSettings) error
	ResetSettings(ctx context.Context) error

	// ClearAll removes the current analysis, history and settings together.
	ClearAll(ctx context.Context) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Option configures a store.
type Option func(*options)

type options struct {
	historyLimit int
}

// WithHistoryLimit caps the number of analyses kept in history.
func WithHistoryLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.historyLimit = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{historyLimit: DefaultHistoryLimit}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
