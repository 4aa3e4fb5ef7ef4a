// Package config holds the engine configuration: template catalog
// location, semantic matching settings, worker parallelism, and the
// embedding backend. Configuration is YAML with explicit defaults;
// Load merges a file over the defaults and validates the result.
package config
