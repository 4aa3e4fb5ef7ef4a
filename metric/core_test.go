package metric

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Register(t *testing.T) {
	metrics := NewMetrics()
	registry := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(registry))

	// Re-registering the same collectors fails.
	assert.Error(t, metrics.Register(registry))
}

func TestNewRegistry(t *testing.T) {
	registry, metrics, err := NewRegistry()
	require.NoError(t, err)
	require.NotNil(t, registry)
	require.NotNil(t, metrics)

	metrics.RecordConnectorMapped(StatusSuccessful)
	metrics.RecordConnectorMapped(StatusSuccessful)
	metrics.RecordConnectorMapped(StatusUnsuccessful)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ConnectorsMapped.WithLabelValues(StatusSuccessful)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ConnectorsMapped.WithLabelValues(StatusUnsuccessful)))
}

func TestMetrics_RecordHelpers(t *testing.T) {
	metrics := NewMetrics()

	metrics.RecordEntry("template_not_found")
	metrics.RecordEntry("template_not_found")
	metrics.RecordTierMapping("direct")
	metrics.RecordMappingDuration(150 * time.Millisecond)
	metrics.RecordSimilarityScore(0.85)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.MappingEntries.WithLabelValues("template_not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TierMappings.WithLabelValues("direct")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.MappingDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.SimilarityScore))
}
