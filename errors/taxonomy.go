package errors

import (
	"fmt"
	"strings"
)

// Code identifies a class of mapping failure or deviation.
type Code int

const (
	// TemplateNotFound means no FM template exists for the connector
	// class; mapping for that connector is skipped entirely.
	TemplateNotFound Code = iota
	// RequiredPropertyMissing means a required FM property never
	// received a value, neither mapped nor defaulted.
	RequiredPropertyMissing
	// InvalidValue means an SM value violates a recommended-values
	// constraint on the FM property.
	InvalidValue
	// SemanticMatchFailure means no tier, including semantic matching,
	// could place an SM property.
	SemanticMatchFailure
	// TransformUnsupported means a transform was removed from the FM
	// chain because its type is not supported by the target platform.
	TransformUnsupported
	// MissingTransformType means a declared transform has no type and
	// was treated as unsupported.
	MissingTransformType
	// PredicateOrphaned means a predicate was removed because no
	// surviving transform references it.
	PredicateOrphaned
	// ConfigDefFiltered means a value was produced but does not
	// correspond to any declared FM property and was dropped.
	ConfigDefFiltered
	// MappingFailure means an unexpected failure inside a mapping tier
	// was caught and attached to the connector.
	MappingFailure
	// UnmappedProperty is a warning: an SM key found no destination and
	// was retained in unmapped_configs.
	UnmappedProperty
	// ValueMismatch is a warning: the FM property has a fixed value
	// that conflicts with the user-supplied SM value; the FM constant
	// wins.
	ValueMismatch
	// UnresolvedVariable is a warning: a variable mapping rule was
	// skipped because a ${key} placeholder had no SM value.
	UnresolvedVariable
)

// String returns the canonical name of the code.
func (c Code) String() string {
	switch c {
	case TemplateNotFound:
		return "template_not_found"
	case RequiredPropertyMissing:
		return "required_property_missing"
	case InvalidValue:
		return "invalid_value"
	case SemanticMatchFailure:
		return "semantic_match_failure"
	case TransformUnsupported:
		return "transform_unsupported"
	case MissingTransformType:
		return "missing_transform_type"
	case PredicateOrphaned:
		return "predicate_orphaned"
	case ConfigDefFiltered:
		return "config_def_filtered"
	case MappingFailure:
		return "mapping_failure"
	case UnmappedProperty:
		return "unmapped_property"
	case ValueMismatch:
		return "value_mismatch"
	case UnresolvedVariable:
		return "unresolved_variable"
	default:
		return "unknown"
	}
}

// Warning reports whether the code is warning severity. Warnings are
// reported but never block a connector from being classified
// successful.
func (c Code) Warning() bool {
	switch c {
	case UnmappedProperty, ValueMismatch, UnresolvedVariable:
		return true
	default:
		return false
	}
}

// Entry is one structured mapping error or warning attached to a
// connector. Key names the offending property, transform, or predicate.
type Entry struct {
	Code    Code
	Key     string
	Message string
}

// Error implements the error interface.
func (e Entry) Error() string {
	return e.Message
}

// NewTemplateNotFound reports that no FM template matches the
// connector class.
func NewTemplateNotFound(connectorClass string) Entry {
	return Entry{
		Code:    TemplateNotFound,
		Key:     connectorClass,
		Message: fmt.Sprintf("No FM template found for connector class: %s", connectorClass),
	}
}

// NewRequiredPropertyMissing reports a required FM property with no
// mapped or defaulted value.
func NewRequiredPropertyMissing(name string) Entry {
	return Entry{
		Code:    RequiredPropertyMissing,
		Key:     name,
		Message: fmt.Sprintf("Required FM Config '%s' could not be derived from given configs.", name),
	}
}

// NewInvalidValue reports a value outside the property's
// recommended-values set.
func NewInvalidValue(name, value string, recommended []string) Entry {
	return Entry{
		Code: InvalidValue,
		Key:  name,
		Message: fmt.Sprintf("FM Config '%s' value '%s' is not in the recommended values list: [%s]",
			name, value, strings.Join(recommended, ", ")),
	}
}

// NewSemanticMatchFailure reports that the semantic tier could not
// place an SM property. bestScore is the highest candidate score seen
// (0 when no candidate was available).
func NewSemanticMatchFailure(name string, bestScore, threshold float64) Entry {
	return Entry{
		Code: SemanticMatchFailure,
		Key:  name,
		Message: fmt.Sprintf("No semantic match found for config '%s' (best score %.2f below threshold %.2f)",
			name, bestScore, threshold),
	}
}

// NewTransformUnsupported reports a transform removed because its type
// is not in the supported-transform registry.
func NewTransformUnsupported(alias, transformType string) Entry {
	return Entry{
		Code: TransformUnsupported,
		Key:  alias,
		Message: fmt.Sprintf("Transform '%s' of type '%s' is not supported in Fully Managed Connector. "+
			"Potentially Custom SMT can be used.", alias, transformType),
	}
}

// NewMissingTransformType reports a declared transform with no type.
func NewMissingTransformType(alias string) Entry {
	return Entry{
		Code:    MissingTransformType,
		Key:     alias,
		Message: fmt.Sprintf("Transform '%s' has no type specified", alias),
	}
}

// NewPredicateOrphaned reports a predicate removed because the
// transform that referenced it was removed. transformAlias names the
// triggering transform; it may be empty when no transform ever
// referenced the predicate.
func NewPredicateOrphaned(alias, transformAlias string) Entry {
	msg := fmt.Sprintf("Predicate '%s' filtered out because no surviving transform references it.", alias)
	if transformAlias != "" {
		msg = fmt.Sprintf("Predicate '%s' filtered out because it's associated with unsupported transform '%s'.",
			alias, transformAlias)
	}
	return Entry{Code: PredicateOrphaned, Key: alias, Message: msg}
}

// NewConfigDefFiltered reports a produced FM key dropped because it is
// not declared in the template's config defs.
func NewConfigDefFiltered(name string) Entry {
	return Entry{
		Code:    ConfigDefFiltered,
		Key:     name,
		Message: fmt.Sprintf("FM Config '%s' is not declared in the template config defs. Value will be dropped.", name),
	}
}

// NewMappingFailure reports an unexpected internal failure converted
// into a single connector-level entry.
func NewMappingFailure(connectorName string, cause any) Entry {
	return Entry{
		Code:    MappingFailure,
		Key:     connectorName,
		Message: fmt.Sprintf("Error processing connector '%s': %v", connectorName, cause),
	}
}

// NewUnmappedProperty reports (as a warning) an SM key with no FM
// destination.
func NewUnmappedProperty(name string) Entry {
	return Entry{
		Code:    UnmappedProperty,
		Key:     name,
		Message: fmt.Sprintf("Unused connector config '%s'. Given value will be ignored. Default value will be used if any.", name),
	}
}

// NewValueMismatch reports (as a warning) a fixed FM value overriding a
// conflicting user-supplied SM value.
func NewValueMismatch(name, constant, userValue string) Entry {
	return Entry{
		Code: ValueMismatch,
		Key:  name,
		Message: fmt.Sprintf("%s : FM config has constant value '%s' but user provided '%s'. User given value will be ignored.",
			name, constant, userValue),
	}
}

// NewUnresolvedVariable reports (as a warning) a variable mapping rule
// skipped because a placeholder could not be resolved from the SM
// config.
func NewUnresolvedVariable(target, placeholder string) Entry {
	return Entry{
		Code:    UnresolvedVariable,
		Key:     target,
		Message: fmt.Sprintf("Mapping rule for '%s' skipped: no value for '${%s}'.", target, placeholder),
	}
}

// List is an ordered collection of entries. Entries keep insertion
// order; adding an entry whose message duplicates an existing one is a
// no-op, matching the engine's dedup policy for repeated validations.
type List struct {
	entries []Entry
	seen    map[string]struct{}
}

// Add appends an entry unless an identical message is already present.
func (l *List) Add(e Entry) {
	if l.seen == nil {
		l.seen = make(map[string]struct{})
	}
	if _, dup := l.seen[e.Message]; dup {
		return
	}
	l.seen[e.Message] = struct{}{}
	l.entries = append(l.entries, e)
}

// Entries returns the entries in insertion order.
func (l *List) Entries() []Entry {
	return l.entries
}

// Messages returns the message text of each entry in insertion order.
// The result is never nil.
func (l *List) Messages() []string {
	msgs := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.entries)
}
