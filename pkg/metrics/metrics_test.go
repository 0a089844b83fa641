package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRecords(SourceMerged, 3)
	m.ObserveRecords(SourceCompany, 2)
	m.ObserveRecords(SourceMerged, 1)
	m.InferenceFailures.Inc()
	m.ObserveBuild(time.Now(), 6)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues(SourceMerged)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues(SourceCompany)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InferenceFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildsTotal))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.CatalogSize))
	assert.Equal(t, 1, testutil.CollectAndCount(m.BuildDuration))
}

func TestNewRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
