// Package mapping implements the SM→FM translation engine.
//
// A Mapper drives, per connector, the ordered mapping tiers (direct,
// template-rule, static, semantic), then the transform/predicate
// filter and the validator, and assembles an immutable Result. Tier
// order is explicit data, not code order, so priority is enumerable
// and testable. A target FM key is written at most once per run; the
// first tier to claim it wins and later tiers never overwrite.
//
// Mapping one connector is synchronous; batches run on a bounded
// worker pool. A failure mapping one connector is converted into a
// single error entry on that connector's result and never stops the
// batch.
package mapping
