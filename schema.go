package rulekit

// Failure labels produced by the schema evaluator itself rather than by rules.
const (
	// KeyNotAllowed marks an object key that is absent from the schema in strict mode.
	KeyNotAllowed = "Key not allowed"
	// UnknownError marks a field (or OR-group alternative) whose evaluation
	// broke down for a reason other than a failing rule.
	UnknownError = "Unknown error occurred"
)

// Field is the rule specification of a single schema field: either one rule
// set, or an ordered OR-group of alternative rule sets of which any one must pass.
type Field struct {
	set          *RuleSet
	alternatives []*RuleSet
	group        bool
}

// Rules declares a field validated by a single rule set.
func Rules(set *RuleSet) Field {
	return Field{set: set}
}

// AnyOf declares a field that passes when at least one of the alternatives
// reports no failures.
func AnyOf(alternatives ...*RuleSet) Field {
	return Field{alternatives: alternatives, group: true}
}

// IsGroup reports whether the field was declared with AnyOf.
func (f Field) IsGroup() bool {
	return f.group
}

// RuleSet returns the single rule set of a field declared with Rules.
func (f Field) RuleSet() *RuleSet {
	return f.set
}

// Alternatives returns the rule sets of a field declared with AnyOf.
func (f Field) Alternatives() []*RuleSet {
	return f.alternatives
}

// IsAsync reports whether any rule of the field, in any alternative, is deferred.
func (f Field) IsAsync() bool {
	if !f.group {
		return f.set.IsAsync()
	}
	for _, set := range f.alternatives {
		if set.IsAsync() {
			return true
		}
	}
	return false
}

// Schema maps field names to their rule specifications.
type Schema map[string]Field

// IsAsync reports whether any field of the schema contains a deferred rule.
func (s Schema) IsAsync() bool {
	for _, f := range s {
		if f.IsAsync() {
			return true
		}
	}
	return false
}

// Object is a keyed value under validation. Keys missing from the object are
// evaluated as nil.
type Object map[string]any

// Options tunes schema evaluation.
type Options struct {
	// Strict reports object keys missing from the schema as KeyNotAllowed.
	Strict bool
}

// DefaultOptions returns the options used when the caller sets nothing.
func DefaultOptions() Options {
	return Options{Strict: false}
}

// MergeOptions layers overrides on top of base. Every option switched on in
// any layer stays on.
func MergeOptions(base Options, overrides ...Options) Options {
	out := base
	for _, o := range overrides {
		out.Strict = out.Strict || o.Strict
	}
	return out
}
