package template

import "regexp"

// RuleKind classifies a mapping rule by its shape.
type RuleKind int

const (
	// KindDirect copies the SM value under the same name.
	KindDirect RuleKind = iota
	// KindValue writes a fixed value to the target.
	KindValue
	// KindVariable writes a value containing ${key} placeholders
	// resolved against the SM config.
	KindVariable
	// KindSwitch looks the SM source key's value up in a condition
	// table and writes the matching entry.
	KindSwitch
)

func (k RuleKind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindValue:
		return "value"
	case KindVariable:
		return "variable"
	case KindSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

// SwitchDefault is the condition-table key selecting the branch used
// when the SM source key is absent or matches no condition.
const SwitchDefault = "default"

var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// MappingRule is one connector_configs entry of a template. Name is
// the target FM key. Exactly one of Value and Switch is set for
// value/variable/switch rules; a rule with neither is a direct
// same-name mapping.
type MappingRule struct {
	Name string `json:"name"`
	// Value is a fixed target value, possibly containing ${key}
	// placeholders.
	Value flexString `json:"value"`
	// Switch maps an SM source key to a condition table
	// (SM value → target value). Template documents carry a single
	// source key per rule.
	Switch map[string]map[string]string `json:"switch"`
	// ConnectorType limits the rule to SOURCE or SINK templates when
	// set.
	ConnectorType string `json:"connector_type"`
}

// Kind classifies the rule by shape.
func (r MappingRule) Kind() RuleKind {
	switch {
	case len(r.Switch) > 0:
		return KindSwitch
	case placeholderPattern.MatchString(string(r.Value)):
		return KindVariable
	case r.Value != "":
		return KindValue
	default:
		return KindDirect
	}
}

// Placeholders returns the ${key} names referenced by a variable
// rule's value, in order of appearance.
func (r MappingRule) Placeholders() []string {
	matches := placeholderPattern.FindAllStringSubmatch(string(r.Value), -1)
	if len(matches) == 0 {
		return nil
	}
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		keys = append(keys, m[1])
	}
	return keys
}

// Expand substitutes every ${key} in the rule's value using resolve.
// It returns ok=false naming the first unresolvable key.
func (r MappingRule) Expand(resolve func(key string) (string, bool)) (value, missing string, ok bool) {
	missing = ""
	value = placeholderPattern.ReplaceAllStringFunc(string(r.Value), func(ph string) string {
		key := ph[2 : len(ph)-1]
		v, found := resolve(key)
		if !found {
			if missing == "" {
				missing = key
			}
			return ph
		}
		return v
	})
	return value, missing, missing == ""
}

// AppliesTo reports whether the rule applies to a template of the
// given connector type. Rules without a connector_type apply to both.
func (r MappingRule) AppliesTo(connectorType string) bool {
	return r.ConnectorType == "" || r.ConnectorType == connectorType
}
