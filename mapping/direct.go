package mapping

import "github.com/c360/connectmap/errors"

// applyDirect copies SM keys whose names exactly match a declared FM
// property. Name matching is case-sensitive with no normalization.
// A value outside the property's recommended-values set is not copied
// and raises an invalid-value error; the source key is still claimed
// so later tiers do not re-place a rejected value.
func applyDirect(r *run) {
	for _, key := range r.sm.Keys() {
		if structuralKey(key) || r.sourceClaimed(key) {
			continue
		}
		def, ok := r.tmpl.Definition(key)
		if !ok {
			continue
		}
		if bool(def.Internal) {
			// Internal properties are inferred by the platform; the
			// validator reports the unused user value.
			continue
		}

		value := r.sm.Get(key)
		if !def.Accepts(value) {
			r.record(errors.NewInvalidValue(def.Name, value, def.RecommendedValues))
			r.claimSource(key)
			continue
		}
		if r.setTarget(TierDirect, key, value) {
			r.claimSource(key)
		}
	}
}
