package mapping

import "github.com/c360/connectmap/errors"

// validate finalizes a run: drops FM keys the template does not
// declare, fills defaults for required properties, re-checks written
// values against recommended lists, and reports leftover SM keys.
func validate(r *run) {
	filterUndeclared(r)
	fillRequired(r)
	checkRecommended(r)
	collectUnmapped(r)
}

// filterUndeclared removes produced keys absent from the template's
// config defs. Structural keys and chain keys are exempt.
func filterUndeclared(r *run) {
	for _, key := range r.out.Keys() {
		if structuralKey(key) || r.tmpl.Declares(key) {
			continue
		}
		r.record(errors.NewConfigDefFiltered(key))
		r.out.Delete(key)
	}
}

// fillRequired walks required non-internal properties that no tier
// produced: a declared default fills the gap, otherwise the property is
// reported missing.
func fillRequired(r *run) {
	for _, def := range r.tmpl.ConfigDefs {
		if !bool(def.Required) || bool(def.Internal) || r.out.Has(def.Name) {
			continue
		}
		if def.DefaultValue != "" {
			r.setTarget("", def.Name, string(def.DefaultValue))
			continue
		}
		r.record(errors.NewRequiredPropertyMissing(def.Name))
	}
}

// checkRecommended re-validates every produced value against its
// property's recommended list. Tiers past the direct one can write
// values the direct tier never saw; duplicate findings collapse in the
// error list.
func checkRecommended(r *run) {
	for _, key := range r.out.Keys() {
		if structuralKey(key) {
			continue
		}
		def, ok := r.tmpl.Definition(key)
		if !ok {
			continue
		}
		if value := r.out.Get(key); !def.Accepts(value) {
			r.record(errors.NewInvalidValue(def.Name, value, def.RecommendedValues))
		}
	}
}

// collectUnmapped lists SM keys no tier consumed, in declaration
// order. Keys already carrying a semantic-match failure are listed but
// not warned about a second time.
func collectUnmapped(r *run) {
	for _, key := range r.sm.Keys() {
		if structuralKey(key) || r.sourceClaimed(key) {
			continue
		}
		r.unmapped = append(r.unmapped, key)
		if _, rejected := r.semanticRejected[key]; rejected {
			continue
		}
		r.record(errors.NewUnmappedProperty(key))
	}
}
