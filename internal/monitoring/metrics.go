package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sells-group/bizhealth/internal/model"
)

// Metrics holds the Prometheus collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	analyses           *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	percentage         prometheus.Histogram
	revenueLoss        prometheus.Histogram
	httpDuration       *prometheus.HistogramVec
	historyCount       prometheus.Gauge
	historyAvg         prometheus.Gauge
	criticalShare      prometheus.Gauge
}

// NewMetrics registers all collectors on a fresh registry, together with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bizhealth_analyses_total",
			Help: "Analyses calculated, by status band",
		}, []string{"status"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bizhealth_validation_failures_total",
			Help: "Inputs rejected by validation, by source",
		}, []string{"source"}),
		percentage: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bizhealth_analysis_percentage",
			Help:    "Overall health percentage of calculated analyses",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
		revenueLoss: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bizhealth_annual_revenue_loss",
			Help:    "Estimated annual revenue loss of calculated analyses",
			Buckets: prometheus.ExponentialBuckets(10_000, 4, 8),
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bizhealth_http_request_duration_seconds",
			Help:    "HTTP request duration by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		historyCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bizhealth_history_analyses",
			Help: "Analyses in the monitoring lookback window",
		}),
		historyAvg: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bizhealth_history_avg_percentage",
			Help: "Average percentage in the monitoring lookback window",
		}),
		criticalShare: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bizhealth_history_critical_share",
			Help: "Share of critical analyses in the monitoring lookback window",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.analyses, m.validationFailures, m.percentage, m.revenueLoss,
		m.httpDuration, m.historyCount, m.historyAvg, m.criticalShare,
	)
	return m
}

// Registry exposes the underlying registry for tests and custom handlers.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveAnalysis records one calculated result.
func (m *Metrics) ObserveAnalysis(r *model.BusinessHealthResult) {
	m.analyses.WithLabelValues(string(r.Status)).Inc()
	m.percentage.Observe(r.Percentage)
	m.revenueLoss.Observe(float64(r.AnnualRevenueLoss))
}

// ObserveValidationFailure counts a rejected input from source ("api", "cli").
func (m *Metrics) ObserveValidationFailure(source string) {
	m.validationFailures.WithLabelValues(source).Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// ObserveSnapshot publishes the latest history snapshot as gauges.
func (m *Metrics) ObserveSnapshot(s *Snapshot) {
	m.historyCount.Set(float64(s.Count))
	m.historyAvg.Set(s.AvgPercentage)
	m.criticalShare.Set(s.CriticalShare)
}
