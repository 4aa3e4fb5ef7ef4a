package template

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Connector type identifiers as they appear in template documents.
const (
	TypeSource = "SOURCE"
	TypeSink   = "SINK"
)

// PropertyDefinition is one declared FM property from a template's
// config_defs list.
type PropertyDefinition struct {
	Name              string     `json:"name"`
	Required          flexBool   `json:"required"`
	Internal          flexBool   `json:"internal"`
	DefaultValue      flexString `json:"default_value"`
	RecommendedValues []string   `json:"recommended_values"`
	Description       string     `json:"description"`
	Section           string     `json:"section"`
}

// Constrained reports whether the property carries a recommended-values
// set. An empty set means any value is acceptable.
func (p PropertyDefinition) Constrained() bool {
	return len(p.RecommendedValues) > 0
}

// Accepts reports whether value satisfies the recommended-values
// constraint. Membership is checked exactly first, then
// case-insensitively, since platforms accept case variants of enum
// tokens. Unconstrained properties accept everything.
func (p PropertyDefinition) Accepts(value string) bool {
	if !p.Constrained() {
		return true
	}
	for _, rec := range p.RecommendedValues {
		if rec == value {
			return true
		}
	}
	for _, rec := range p.RecommendedValues {
		if strings.EqualFold(rec, value) {
			return true
		}
	}
	return false
}

// Template is one fully-managed connector template.
type Template struct {
	TemplateID          string               `json:"template_id"`
	ConnectorClass      string               `json:"connector.class"`
	ConnectorType       string               `json:"connector_type"`
	ConfigDefs          []PropertyDefinition `json:"config_defs"`
	MappingRules        []MappingRule        `json:"connector_configs"`
	SupportedTransforms []string             `json:"supported_transforms"`
}

// IsSource reports whether the template targets a source connector.
// Templates without an explicit connector_type fall back to class-name
// indicators, defaulting to source.
func (t *Template) IsSource() bool {
	switch t.ConnectorType {
	case TypeSource:
		return true
	case TypeSink:
		return false
	}
	if strings.Contains(t.ConnectorClass, "Sink") {
		return false
	}
	return true
}

// PluginType is the connector.class value written to FM output: the
// template ID when present, the original class otherwise.
func (t *Template) PluginType() string {
	if t.TemplateID != "" {
		return t.TemplateID
	}
	return t.ConnectorClass
}

// Definition returns the config_defs entry for name.
func (t *Template) Definition(name string) (PropertyDefinition, bool) {
	for _, def := range t.ConfigDefs {
		if def.Name == name {
			return def, true
		}
	}
	return PropertyDefinition{}, false
}

// Declares reports whether name appears in config_defs.
func (t *Template) Declares(name string) bool {
	_, ok := t.Definition(name)
	return ok
}

// flexBool decodes JSON true/false, "true"/"false" (any case), and
// null. Template authors use both representations.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*b = false
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*b = flexBool(strings.EqualFold(s, "true"))
	default:
		var v bool
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*b = flexBool(v)
	}
	return nil
}

// flexString decodes any JSON scalar to its config-text form. Numbers
// and booleans become their literal text, null becomes the empty
// string.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*s = ""
	case trimmed[0] == '"':
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*s = flexString(v)
	default:
		// Numbers and booleans keep their literal JSON text. Floats
		// that are whole numbers render without the exponent.
		if f, err := strconv.ParseFloat(string(trimmed), 64); err == nil && f == float64(int64(f)) {
			*s = flexString(strconv.FormatInt(int64(f), 10))
			return nil
		}
		*s = flexString(trimmed)
	}
	return nil
}
