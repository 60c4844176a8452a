package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline outcomes, used as the "outcome" label.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeStorage    = "storage_error"
	OutcomeConversion = "conversion_error"
	OutcomeInternal   = "internal_error"
)

// Metrics holds the prometheus collectors of the upload pipeline.
type Metrics struct {
	requests           *prometheus.CounterVec
	conversionDuration prometheus.Histogram
	storedBytes        prometheus.Counter
}

// NewMetrics creates and registers the pipeline collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "image_uploads_total",
				Help: "Total number of image uploads processed, by outcome.",
			},
			[]string{"outcome"},
		),
		conversionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "image_conversion_duration_seconds",
			Help:    "Time spent in the grayscale conversion backend.",
			Buckets: prometheus.DefBuckets,
		}),
		storedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "image_stored_bytes_total",
			Help: "Total number of bytes written to the originals directory.",
		}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.conversionDuration, m.storedBytes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeOutcome(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeConversion(seconds float64) {
	if m == nil {
		return
	}
	m.conversionDuration.Observe(seconds)
}

func (m *Metrics) observeStored(n int64) {
	if m == nil {
		return
	}
	m.storedBytes.Add(float64(n))
}
