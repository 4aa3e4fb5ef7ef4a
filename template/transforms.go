package template

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/c360/connectmap/errors"
)

// TransformRegistry records which single-message transform types the
// managed platform supports, keyed by plugin type. It serves as the
// fallback when a template carries no supported_transforms list of its
// own.
type TransformRegistry struct {
	byPlugin map[string]map[string]struct{}
}

// NewTransformRegistry returns an empty registry.
func NewTransformRegistry() *TransformRegistry {
	return &TransformRegistry{byPlugin: make(map[string]map[string]struct{})}
}

// Add registers transform types for a plugin type.
func (r *TransformRegistry) Add(pluginType string, transformTypes ...string) {
	set, ok := r.byPlugin[pluginType]
	if !ok {
		set = make(map[string]struct{})
		r.byPlugin[pluginType] = set
	}
	for _, t := range transformTypes {
		set[t] = struct{}{}
	}
}

// LoadFile merges a JSON file mapping plugin types to lists of
// supported transform types.
func (r *TransformRegistry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "registry", "LoadFile", "read transform list")
	}
	var byPlugin map[string][]string
	if err := json.Unmarshal(data, &byPlugin); err != nil {
		return errors.WrapInvalid(err, "registry", "LoadFile", "decode transform list")
	}
	for plugin, types := range byPlugin {
		r.Add(plugin, types...)
	}
	return nil
}

// Supports reports whether transformType is supported for pluginType.
func (r *TransformRegistry) Supports(pluginType, transformType string) bool {
	set, ok := r.byPlugin[pluginType]
	if !ok {
		return false
	}
	_, ok = set[transformType]
	return ok
}

// SupportedFor returns the sorted supported transform types for a
// plugin type.
func (r *TransformRegistry) SupportedFor(pluginType string) []string {
	set, ok := r.byPlugin[pluginType]
	if !ok {
		return nil
	}
	types := make([]string, 0, len(set))
	for t := range set {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// SupportedTransforms resolves the supported-transform set for a
// template: the template's bundled list when present, the registry
// fallback otherwise.
func (r *TransformRegistry) SupportedTransforms(t *Template) map[string]struct{} {
	out := make(map[string]struct{})
	if len(t.SupportedTransforms) > 0 {
		for _, tt := range t.SupportedTransforms {
			out[tt] = struct{}{}
		}
		return out
	}
	for tt := range r.byPlugin[t.PluginType()] {
		out[tt] = struct{}{}
	}
	return out
}
