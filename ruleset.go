package rulekit

import "iter"

// RuleSet is a mapping of rule name to Rule that remembers insertion order.
// A nil *RuleSet behaves as an empty set.
type RuleSet struct {
	names []string
	rules map[string]Rule
}

// NewRuleSet returns an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{rules: make(map[string]Rule)}
}

// Add stores rule under name and returns the set for chaining.
// Adding an existing name replaces the rule but keeps its original position.
func (s *RuleSet) Add(name string, rule Rule) *RuleSet {
	if s.rules == nil {
		s.rules = make(map[string]Rule)
	}
	if _, exists := s.rules[name]; !exists {
		s.names = append(s.names, name)
	}
	s.rules[name] = rule
	return s
}

// Immediate is shorthand for Add(name, Immediate(fn)).
func (s *RuleSet) Immediate(name string, fn Check) *RuleSet {
	return s.Add(name, Immediate(fn))
}

// Deferred is shorthand for Add(name, Deferred(fn)).
func (s *RuleSet) Deferred(name string, fn DeferredCheck) *RuleSet {
	return s.Add(name, Deferred(fn))
}

// Get returns the rule stored under name.
func (s *RuleSet) Get(name string) (Rule, bool) {
	if s == nil {
		return Rule{}, false
	}
	r, ok := s.rules[name]
	return r, ok
}

// Len returns the number of rules in the set.
func (s *RuleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns rule names in insertion order.
func (s *RuleSet) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

// All iterates over the set in insertion order.
func (s *RuleSet) All() iter.Seq2[string, Rule] {
	return func(yield func(string, Rule) bool) {
		if s == nil {
			return
		}
		for _, name := range s.names {
			if !yield(name, s.rules[name]) {
				return
			}
		}
	}
}

// IsAsync reports whether any rule in the set is deferred.
// No rule is executed.
func (s *RuleSet) IsAsync() bool {
	for _, rule := range s.All() {
		if rule.IsDeferred() {
			return true
		}
	}
	return false
}

// Map returns a new set with fn applied to every rule, preserving names and order.
func (s *RuleSet) Map(fn func(name string, rule Rule) Rule) *RuleSet {
	out := NewRuleSet()
	for name, rule := range s.All() {
		out.Add(name, fn(name, rule))
	}
	return out
}
