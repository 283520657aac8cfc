package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records pipeline outcomes. A nil *Metrics is a valid no-op.
type Metrics struct {
	uploads           *prometheus.CounterVec
	variantFailures   *prometheus.CounterVec
	transcodeDuration *prometheus.HistogramVec
	storageOps        *prometheus.CounterVec
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// Default returns the recorder registered on the default Prometheus registry.
func Default() *Metrics {
	defaultMetricsOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})

	return defaultMetrics
}

// New builds a recorder on reg; tests pass their own registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		uploads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paintrack",
			Subsystem: "upload",
			Name:      "requests_total",
			Help:      "Image uploads by category and outcome",
		}, []string{"category", "outcome"}),
		variantFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paintrack",
			Subsystem: "image",
			Name:      "variant_failures_total",
			Help:      "Responsive variants skipped because transcoding failed",
		}, []string{"label"}),
		transcodeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "paintrack",
			Subsystem: "image",
			Name:      "transcode_duration_seconds",
			Help:      "Time spent decoding, resizing and encoding one image",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"format", "result"}),
		storageOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paintrack",
			Subsystem: "storage",
			Name:      "operations_total",
			Help:      "Object store calls by operation and result",
		}, []string{"operation", "result"}),
	}
}

func (m *Metrics) RecordUpload(category, outcome string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(category, outcome).Inc()
}

func (m *Metrics) RecordVariantFailure(label string) {
	if m == nil {
		return
	}
	m.variantFailures.WithLabelValues(label).Inc()
}

func (m *Metrics) ObserveTranscode(format string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.transcodeDuration.WithLabelValues(format, result(err)).Observe(d.Seconds())
}

func (m *Metrics) RecordStorage(operation string, err error) {
	if m == nil {
		return
	}
	m.storageOps.WithLabelValues(operation, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}
