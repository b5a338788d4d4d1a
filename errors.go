package rulekit

import "errors"

var (
	// ErrRulePanicked wraps the value recovered from a panicking rule.
	ErrRulePanicked = errors.New("rulekit: rule panicked")

	// ErrNilRule is reported when a rule set holds a zero Rule.
	ErrNilRule = errors.New("rulekit: rule has no predicate")
)
