package mapping

import (
	"context"
	"strconv"

	"github.com/c360/connectmap/errors"
	"github.com/c360/connectmap/similarity"
	"github.com/c360/connectmap/template"
)

// smKeyText is the canonical text scored for an SM key. SM configs
// carry no descriptions, so the key name is framed with a short prefix
// to give the scorer some context words.
func smKeyText(key string) string {
	return similarity.NormalizeText("User config: " + key)
}

// propertyText is the canonical text scored for an FM property
// definition.
func propertyText(def template.PropertyDefinition) string {
	return similarity.NormalizeText(def.Name, def.Description, def.Section)
}

// applySemantic places leftover SM keys onto unclaimed FM properties by
// similarity score. Keys are considered in declaration order and each
// FM property can be won at most once, so results are deterministic for
// a fixed provider.
func applySemantic(ctx context.Context, r *run) {
	if r.mapper.provider == nil {
		return
	}

	// Candidate pool: declared, non-internal properties no earlier tier
	// has written.
	var pool []template.PropertyDefinition
	for _, def := range r.tmpl.ConfigDefs {
		if bool(def.Internal) || r.targetClaimed(def.Name) {
			continue
		}
		pool = append(pool, def)
	}

	for _, key := range r.sm.Keys() {
		if structuralKey(key) || r.sourceClaimed(key) {
			continue
		}
		if len(pool) == 0 {
			// Nothing left to match against; the validator reports the
			// leftover key.
			continue
		}

		smText := smKeyText(key)
		best := -1.0
		bestIdx := -1
		for i, def := range pool {
			score, err := r.mapper.provider.Similarity(ctx, smText, propertyText(def))
			if err != nil {
				r.mapper.logger.Warn("similarity scoring failed",
					"connector", r.name, "sm_key", key, "fm_property", def.Name, "error", err)
				continue
			}
			if score > best {
				best = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			// No candidate could be scored; leave the key unmapped.
			continue
		}
		if r.mapper.metrics != nil {
			r.mapper.metrics.RecordSimilarityScore(best)
		}

		def := pool[bestIdx]
		value := r.sm.Get(key)
		if best < r.mapper.threshold || !valueShapeCompatible(value, def) {
			r.record(errors.NewSemanticMatchFailure(key, best, r.mapper.threshold))
			r.semanticRejected[key] = struct{}{}
			continue
		}
		if r.setTarget(TierSemantic, def.Name, value) {
			r.claimSource(key)
			pool = append(pool[:bestIdx], pool[bestIdx+1:]...)
		}
	}
}

// valueShapeCompatible guards against plausible-text but wrong-shape
// matches: a boolean SM value must not land on a property whose
// recommended values are all non-boolean, and likewise for numbers.
// Properties without recommended values accept any shape.
func valueShapeCompatible(value string, def template.PropertyDefinition) bool {
	if len(def.RecommendedValues) == 0 {
		return true
	}
	if isBoolToken(value) {
		for _, rec := range def.RecommendedValues {
			if isBoolToken(rec) {
				return true
			}
		}
		return false
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		for _, rec := range def.RecommendedValues {
			if _, err := strconv.ParseFloat(rec, 64); err == nil {
				return true
			}
		}
		return false
	}
	return true
}

func isBoolToken(s string) bool {
	return s == "true" || s == "false"
}
