// Package metric defines the Prometheus metrics exposed by the mapping
// engine: connectors mapped by status, mapping entries by taxonomy
// code, property mappings by tier, and histograms for run duration and
// semantic similarity scores.
package metric
