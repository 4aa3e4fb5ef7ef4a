// Package connector models self-managed Kafka Connect connector
// configurations as they arrive at the mapping engine boundary.
//
// Kafka Connect configs are uniformly string-valued regardless of
// logical type, and key order is significant for deterministic mapping
// output, so Config is an insertion-ordered string→string map with an
// order-preserving JSON round-trip.
//
// Parse normalizes the heterogeneous input document shapes exported by
// self-managed deployments (single object, list, object keyed by
// connector name, Info-wrapped object) into a uniform ordered sequence
// of (name, config) pairs; downstream mapping tiers never branch on
// input shape.
//
// ExtractChains lifts the transforms/predicates dotted key families
// (transforms.<name>.<attr>, predicates.<name>.<attr>) into ordered
// TransformSpec/PredicateSpec entries for the transform filter.
package connector
