package mapping

import (
	"github.com/c360/connectmap/errors"
	"github.com/c360/connectmap/template"
)

// applyRules evaluates the template's mapping rules in declared order.
// A rule never overwrites a target set by a higher-priority tier or by
// an earlier rule.
func applyRules(r *run) {
	connectorType := template.TypeSink
	if r.tmpl.IsSource() {
		connectorType = template.TypeSource
	}

	for _, rule := range r.tmpl.MappingRules {
		if !rule.AppliesTo(connectorType) {
			continue
		}
		switch rule.Kind() {
		case template.KindDirect:
			applyDirectRule(r, rule)
		case template.KindValue:
			applyValueRule(r, rule)
		case template.KindVariable:
			applyVariableRule(r, rule)
		case template.KindSwitch:
			applySwitchRule(r, rule)
		}
	}
}

// applyDirectRule copies a same-named SM key, the rule form templates
// use to opt a property into mapping without renaming it. Usually the
// direct tier has already claimed these.
func applyDirectRule(r *run, rule template.MappingRule) {
	value, ok := r.sm.Lookup(rule.Name)
	if !ok || r.targetClaimed(rule.Name) {
		return
	}
	if r.setTarget(TierTemplateRule, rule.Name, value) {
		r.claimSource(rule.Name)
	}
}

// applyValueRule writes the rule's fixed value. When the SM config
// supplies the same key with a different value, the FM constant wins
// and the deviation is reported as a warning.
func applyValueRule(r *run, rule template.MappingRule) {
	if r.targetClaimed(rule.Name) {
		return
	}
	constant := string(rule.Value)
	if userValue, ok := r.sm.Lookup(rule.Name); ok {
		if userValue != constant {
			r.record(errors.NewValueMismatch(rule.Name, constant, userValue))
		}
		r.claimSource(rule.Name)
	}
	r.setTarget(TierTemplateRule, rule.Name, constant)
}

// applyVariableRule substitutes ${key} placeholders from the SM
// config. An unresolvable placeholder skips the rule with a warning;
// the property may be legitimately optional.
func applyVariableRule(r *run, rule template.MappingRule) {
	if r.targetClaimed(rule.Name) {
		return
	}
	value, missing, ok := rule.Expand(r.sm.Lookup)
	if !ok {
		r.record(errors.NewUnresolvedVariable(rule.Name, missing))
		return
	}
	if r.setTarget(TierTemplateRule, rule.Name, value) {
		for _, key := range rule.Placeholders() {
			r.claimSource(key)
		}
	}
}

// applySwitchRule looks the SM source key's value up in the rule's
// condition table. A missing source key or unmatched value falls back
// to the table's default branch when declared, otherwise the rule is
// skipped; absence of a trigger is not a failure.
func applySwitchRule(r *run, rule template.MappingRule) {
	if r.targetClaimed(rule.Name) {
		return
	}
	for sourceKey, conditions := range rule.Switch {
		userValue, hasUser := r.sm.Lookup(sourceKey)
		if hasUser {
			if mapped, ok := conditions[userValue]; ok {
				if r.setTarget(TierTemplateRule, rule.Name, mapped) {
					r.claimSource(sourceKey)
				}
				return
			}
		}
		if fallback, ok := conditions[template.SwitchDefault]; ok {
			if r.setTarget(TierTemplateRule, rule.Name, fallback) && hasUser {
				r.claimSource(sourceKey)
			}
			return
		}
	}
}
