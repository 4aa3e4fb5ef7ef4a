package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Connector status label values.
const (
	StatusSuccessful   = "successful"
	StatusUnsuccessful = "unsuccessful"
)

// Metrics contains all mapping-engine metrics.
type Metrics struct {
	ConnectorsMapped *prometheus.CounterVec
	MappingEntries   *prometheus.CounterVec
	TierMappings     *prometheus.CounterVec
	MappingDuration  prometheus.Histogram
	SimilarityScore  prometheus.Histogram
}

// NewMetrics creates a Metrics instance with all collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		ConnectorsMapped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "connectmap",
				Subsystem: "connectors",
				Name:      "mapped_total",
				Help:      "Total number of connectors mapped, by outcome status",
			},
			[]string{"status"},
		),

		MappingEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "connectmap",
				Subsystem: "mapping",
				Name:      "entries_total",
				Help:      "Total number of mapping errors and warnings, by taxonomy code",
			},
			[]string{"code"},
		),

		TierMappings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "connectmap",
				Subsystem: "mapping",
				Name:      "tier_mappings_total",
				Help:      "Total number of properties mapped, by mapping tier",
			},
			[]string{"tier"},
		),

		MappingDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "connectmap",
				Subsystem: "mapping",
				Name:      "duration_seconds",
				Help:      "Time spent mapping one connector",
				Buckets:   prometheus.DefBuckets,
			},
		),

		SimilarityScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "connectmap",
				Subsystem: "semantic",
				Name:      "similarity_score",
				Help:      "Best similarity score observed per semantic match attempt",
				Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
			},
		),
	}
}

// Register registers all collectors with a Prometheus registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.ConnectorsMapped,
		m.MappingEntries,
		m.TierMappings,
		m.MappingDuration,
		m.SimilarityScore,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry creates a Prometheus registry with the mapping metrics
// and Go runtime collectors registered.
func NewRegistry() (*prometheus.Registry, *Metrics, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics := NewMetrics()
	if err := metrics.Register(registry); err != nil {
		return nil, nil, err
	}
	return registry, metrics, nil
}

// RecordConnectorMapped increments the connector counter for a status.
func (m *Metrics) RecordConnectorMapped(status string) {
	m.ConnectorsMapped.WithLabelValues(status).Inc()
}

// RecordEntry increments the error/warning counter for a taxonomy code.
func (m *Metrics) RecordEntry(code string) {
	m.MappingEntries.WithLabelValues(code).Inc()
}

// RecordTierMapping increments the per-tier mapping counter.
func (m *Metrics) RecordTierMapping(tier string) {
	m.TierMappings.WithLabelValues(tier).Inc()
}

// RecordMappingDuration records the time mapping one connector took.
func (m *Metrics) RecordMappingDuration(duration time.Duration) {
	m.MappingDuration.Observe(duration.Seconds())
}

// RecordSimilarityScore records a semantic match attempt's best score.
func (m *Metrics) RecordSimilarityScore(score float64) {
	m.SimilarityScore.Observe(score)
}
