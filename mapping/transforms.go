package mapping

import (
	"strings"

	"github.com/c360/connectmap/connector"
	"github.com/c360/connectmap/errors"
)

// applyTransformFilter rebuilds the transforms and predicates chains,
// keeping only transforms whose type the managed platform supports.
// Predicates survive only while at least one surviving transform still
// references them. Chain keys are claimed wholesale so dropped entries
// do not resurface as unmapped properties.
func applyTransformFilter(r *run) {
	chains := connector.ExtractChains(r.sm)
	if len(chains.Transforms) == 0 && len(chains.Predicates) == 0 {
		return
	}

	supported := map[string]struct{}{}
	if r.mapper.registry != nil {
		supported = r.mapper.registry.SupportedTransforms(r.tmpl)
	} else if len(r.tmpl.SupportedTransforms) > 0 {
		for _, t := range r.tmpl.SupportedTransforms {
			supported[t] = struct{}{}
		}
	}

	r.claimSource("transforms")
	r.claimSource("predicates")

	var surviving []connector.TransformSpec
	// Predicates referenced by a surviving transform stay; the rest are
	// reported against the transform that dragged them in, when there
	// is one.
	referenced := make(map[string]struct{})
	droppedBy := make(map[string]string)

	for _, spec := range chains.Transforms {
		for _, key := range spec.Attrs {
			r.claimSource(key)
		}

		switch {
		case spec.Type == "":
			r.record(errors.NewMissingTransformType(spec.Name))
		case !hasKey(supported, spec.Type):
			r.record(errors.NewTransformUnsupported(spec.Name, spec.Type))
			if spec.Predicate != "" {
				if _, taken := droppedBy[spec.Predicate]; !taken {
					droppedBy[spec.Predicate] = spec.Name
				}
			}
			continue
		default:
			surviving = append(surviving, spec)
			if spec.Predicate != "" {
				referenced[spec.Predicate] = struct{}{}
			}
			continue
		}
	}

	if len(surviving) > 0 {
		names := make([]string, 0, len(surviving))
		for _, spec := range surviving {
			names = append(names, spec.Name)
		}
		r.setTarget("", "transforms", strings.Join(names, ", "))
		for _, spec := range surviving {
			for _, key := range spec.Attrs {
				r.setTarget("", key, r.sm.Get(key))
			}
		}
	}

	var keptPredicates []connector.PredicateSpec
	for _, spec := range chains.Predicates {
		for _, key := range spec.Attrs {
			r.claimSource(key)
		}
		if hasKey(referenced, spec.Name) {
			keptPredicates = append(keptPredicates, spec)
			continue
		}
		r.record(errors.NewPredicateOrphaned(spec.Name, droppedBy[spec.Name]))
	}

	if len(keptPredicates) > 0 {
		names := make([]string, 0, len(keptPredicates))
		for _, spec := range keptPredicates {
			names = append(names, spec.Name)
		}
		r.setTarget("", "predicates", strings.Join(names, ", "))
		for _, spec := range keptPredicates {
			for _, key := range spec.Attrs {
				r.setTarget("", key, r.sm.Get(key))
			}
		}
	}
}

func hasKey(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
