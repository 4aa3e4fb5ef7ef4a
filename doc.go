// Package connectmap translates self-managed (SM) Kafka Connect
// connector configurations into the configuration shape required by
// their fully-managed (FM) equivalents.
//
// # Architecture
//
// The engine is a pure, deterministic function from (SM config, FM
// template catalog) to (FM config, error list, warning list). It is
// built from small, flat packages:
//
//	┌─────────────────────────────────────┐
//	│        Mapping Orchestrator         │  mapping
//	│  (per-connector tier sequencing)    │
//	└─────────────────────────────────────┘
//	           ↓ drives, in priority order
//	┌─────────────────────────────────────┐
//	│  Direct → Template Rule → Static →  │  mapping
//	│  Semantic tiers                     │
//	└─────────────────────────────────────┘
//	           ↓ then
//	┌─────────────────────────────────────┐
//	│  Transform/Predicate Filter         │  mapping
//	│  Validator (required, config_defs)  │
//	└─────────────────────────────────────┘
//
// Supporting packages:
//   - connector: ordered SM config model and input shape normalization
//   - template: FM template catalog, mapping rules, transform registry
//   - similarity: pluggable text-similarity backends for the semantic tier
//   - errors: mapping error taxonomy with a stable message contract
//   - metric: Prometheus collectors for mapping runs
//   - config: YAML engine configuration
//
// # Determinism
//
// Mapping a single connector is single-threaded; tiers run strictly in
// priority order and a target property is written at most once per run.
// Across connectors the catalog and static tables are read-only, so
// batches may be mapped concurrently (see the mapping package's
// Mapper.MapAll).
//
// The engine performs no I/O beyond similarity computation, which is
// isolated behind the similarity.Provider interface and cached so that
// repeated runs over the same inputs produce byte-identical results.
package connectmap
