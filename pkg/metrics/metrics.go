// Package metrics provides Prometheus instruments for catalog builds.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Record sources as reported in the records_total metric.
const (
	SourceMerged  = "merged"
	SourceUser    = "user"
	SourceLegacy  = "legacy"
	SourceCompany = "company"
)

// Metrics tracks catalog builds: how many records each source contributed,
// how many inference calls failed, and how long builds take.
type Metrics struct {
	BuildsTotal       prometheus.Counter
	RecordsTotal      *prometheus.CounterVec
	DuplicateUsers    prometheus.Counter
	InferenceFailures prometheus.Counter
	CatalogSize       prometheus.Gauge
	BuildDuration     prometheus.Histogram
}

// New creates Metrics registered with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		BuildsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "skillmap_catalog_builds_total",
			Help: "Total number of catalog builds",
		}),
		RecordsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "skillmap_catalog_records_total",
			Help: "Records emitted into the catalog, by source",
		}, []string{"source"}),
		DuplicateUsers: factory.NewCounter(prometheus.CounterOpts{
			Name: "skillmap_duplicate_user_records_total",
			Help: "User records replaced by a later record with the same id",
		}),
		InferenceFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "skillmap_inference_failures_total",
			Help: "Records whose skill inference failed and fell back to manual values",
		}),
		CatalogSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "skillmap_catalog_institutions",
			Help: "Number of institutions in the most recently built catalog",
		}),
		BuildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "skillmap_catalog_build_duration_seconds",
			Help:    "Duration of catalog builds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5, 30},
		}),
	}
}

// ObserveRecords adds n records from source.
func (m *Metrics) ObserveRecords(source string, n int) {
	m.RecordsTotal.WithLabelValues(source).Add(float64(n))
}

// ObserveBuild records a completed build of size institutions.
// Call with time.Now() taken at the start of the build.
func (m *Metrics) ObserveBuild(start time.Time, size int) {
	m.BuildsTotal.Inc()
	m.CatalogSize.Set(float64(size))
	m.BuildDuration.Observe(time.Since(start).Seconds())
}
