package dataprocessing

import (
	"sort"

	"demandcli/internal/config"
)

// RuleSet holds the domain validation rules for one pipeline run: the
// required-field enumeration, the closed-domain valid-value sets, and the
// per-field discovery sets that grow as validation encounters previously
// unseen values.
//
// A RuleSet is owned by the processor of one run and is not safe for
// concurrent mutation; the processor serializes validation over records.
type RuleSet struct {
	required   []config.RequiredField
	valid      map[string]map[string]struct{}
	discovered map[string]map[string]struct{}
}

// NewRuleSet builds a rule set from the required-field enumeration and the
// closed-domain value sets keyed by column. Values are canonicalized the
// same way normalized text is.
func NewRuleSet(required []config.RequiredField, valid map[string][]string) *RuleSet {
	r := &RuleSet{
		required:   required,
		valid:      make(map[string]map[string]struct{}, len(valid)),
		discovered: make(map[string]map[string]struct{}, len(valid)),
	}
	for column, values := range valid {
		column = NormalizeColumnName(column)
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[NormalizeColumnName(v)] = struct{}{}
		}
		r.valid[column] = set
	}
	return r
}

// RuleSetFromConfig builds a rule set from the pipeline configuration.
func RuleSetFromConfig(rules config.RulesConfig) *RuleSet {
	return NewRuleSet(rules.RequiredFields, rules.ValidValues())
}

// Required returns the required-field enumeration in validation order.
func (r *RuleSet) Required() []config.RequiredField {
	return r.required
}

// HasClosedDomain reports whether the column carries a valid-value set.
func (r *RuleSet) HasClosedDomain(column string) bool {
	_, ok := r.valid[column]
	return ok
}

// IsValid reports whether value belongs to the column's valid-value set.
func (r *RuleSet) IsValid(column, value string) bool {
	_, ok := r.valid[column][value]
	return ok
}

// Discover records a previously unseen closed-domain value for human review.
// Discovery is idempotent; re-discovering a value is a no-op.
func (r *RuleSet) Discover(column, value string) {
	set, ok := r.discovered[column]
	if !ok {
		set = make(map[string]struct{})
		r.discovered[column] = set
	}
	set[value] = struct{}{}
}

// Discovered returns a sorted snapshot of the discovery sets by column.
// Columns with no discoveries are omitted.
func (r *RuleSet) Discovered() map[string][]string {
	out := make(map[string][]string, len(r.discovered))
	for column, set := range r.discovered {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Strings(values)
		out[column] = values
	}
	return out
}

// ResetDiscovered clears the discovery sets. Discovery is append-only within
// a run; this separates runs from each other.
func (r *RuleSet) ResetDiscovered() {
	r.discovered = make(map[string]map[string]struct{}, len(r.valid))
}

// ValidValues returns a sorted copy of the closed-domain value sets,
// suitable for the report metadata block.
func (r *RuleSet) ValidValues() map[string][]string {
	out := make(map[string][]string, len(r.valid))
	for column, set := range r.valid {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Strings(values)
		out[column] = values
	}
	return out
}
