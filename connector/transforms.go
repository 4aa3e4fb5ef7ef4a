package connector

import "strings"

// TransformSpec is one named single-message transform declared by the
// transforms chain together with its dotted attribute keys.
type TransformSpec struct {
	Name      string
	Type      string
	Predicate string
	// Attrs holds the transforms.<name>.* keys (full key form) in
	// config declaration order, type and predicate included.
	Attrs []string
}

// PredicateSpec is one named predicate declared by the predicates chain.
type PredicateSpec struct {
	Name string
	Type string
	// Attrs holds the predicates.<name>.* keys in declaration order.
	Attrs []string
}

// Chains holds the parsed transform and predicate chains of a config.
type Chains struct {
	// Transforms in chain declaration order.
	Transforms []TransformSpec
	// Predicates in chain declaration order.
	Predicates []PredicateSpec
}

const (
	transformsKey = "transforms"
	predicatesKey = "predicates"
)

// ExtractChains parses the transforms/predicates chain declarations and
// collects each entry's dotted attribute keys. Chain order follows the
// comma-separated list value; attribute order follows config key order.
// Attribute keys for names absent from the chain list are ignored here
// and surface later as unmapped properties.
func ExtractChains(cfg *Config) Chains {
	var chains Chains

	for _, name := range splitChain(cfg.Get(transformsKey)) {
		spec := TransformSpec{Name: name}
		prefix := transformsKey + "." + name + "."
		for _, key := range cfg.Keys() {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			spec.Attrs = append(spec.Attrs, key)
			switch key[len(prefix):] {
			case "type":
				spec.Type = cfg.Get(key)
			case "predicate":
				spec.Predicate = cfg.Get(key)
			}
		}
		chains.Transforms = append(chains.Transforms, spec)
	}

	for _, name := range splitChain(cfg.Get(predicatesKey)) {
		spec := PredicateSpec{Name: name}
		prefix := predicatesKey + "." + name + "."
		for _, key := range cfg.Keys() {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			spec.Attrs = append(spec.Attrs, key)
			if key[len(prefix):] == "type" {
				spec.Type = cfg.Get(key)
			}
		}
		chains.Predicates = append(chains.Predicates, spec)
	}

	return chains
}

// splitChain splits a comma-separated chain value, trimming whitespace
// and dropping empty entries.
func splitChain(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(value, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// IsChainKey reports whether key belongs to the transform or predicate
// key families, either a chain list key or a dotted attribute key.
func IsChainKey(key string) bool {
	return key == transformsKey || key == predicatesKey ||
		strings.HasPrefix(key, transformsKey+".") ||
		strings.HasPrefix(key, predicatesKey+".")
}
