package rulekit

import (
	"context"
	"fmt"
)

// Check is the calling convention of an immediate rule: it inspects value
// (plus any caller supplied extra arguments) and reports whether it passes.
type Check func(value any, extra ...any) bool

// DeferredCheck is the calling convention of a deferred rule. A non-nil error
// counts as a failure of the rule.
type DeferredCheck func(ctx context.Context, value any, extra ...any) (bool, error)

// Rule is a named predicate's body. It is one of two variants chosen at
// construction time: Immediate or Deferred. The zero Rule always fails.
type Rule struct {
	check    Check
	deferred DeferredCheck
}

// Immediate wraps a synchronous predicate.
func Immediate(fn Check) Rule {
	return Rule{check: fn}
}

// Deferred wraps a predicate that may block, for example on network I/O.
// Rule sets containing at least one deferred rule are evaluated concurrently
// by Evaluate and EvaluateSchema.
func Deferred(fn DeferredCheck) Rule {
	return Rule{deferred: fn}
}

// IsDeferred reports whether the rule was constructed with Deferred.
// It never invokes the rule.
func (r Rule) IsDeferred() bool {
	return r.deferred != nil
}

// IsZero reports whether the rule has no predicate at all.
func (r Rule) IsZero() bool {
	return r.check == nil && r.deferred == nil
}

// Run invokes the rule in the calling goroutine. A panic inside the predicate
// is recovered and returned as an error wrapping ErrRulePanicked.
func (r Rule) Run(ctx context.Context, value any, extra ...any) (ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			err = fmt.Errorf("%w: %v", ErrRulePanicked, rec)
		}
	}()

	switch {
	case r.deferred != nil:
		return r.deferred(ctx, value, extra...)
	case r.check != nil:
		return r.check(value, extra...), nil
	default:
		return false, ErrNilRule
	}
}
