package validator

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/dmitrymomot/rulekit"
)

// AllowUndefined returns a copy of set whose rules pass a nil value without
// running. Schema fields missing from the object are nil, so this makes a
// field optional while still checking it when present.
func AllowUndefined(set *rulekit.RuleSet) *rulekit.RuleSet {
	return Preprocess(nil, set, func(v any) bool { return v == nil })
}

// Preprocess returns a copy of set whose rules receive fn(value) instead of
// value. When skip is given and reports true for the original value, the rule
// passes without running. fn may be nil.
func Preprocess(fn func(any) any, set *rulekit.RuleSet, skip ...func(any) bool) *rulekit.RuleSet {
	skipped := func(v any) bool {
		for _, s := range skip {
			if s(v) {
				return true
			}
		}
		return false
	}
	transform := func(v any) any {
		if fn == nil {
			return v
		}
		return fn(v)
	}

	return set.Map(func(_ string, rule rulekit.Rule) rulekit.Rule {
		if rule.IsDeferred() {
			return rulekit.Deferred(func(ctx context.Context, v any, extra ...any) (bool, error) {
				if skipped(v) {
					return true, nil
				}
				return rule.Run(ctx, transform(v), extra...)
			})
		}
		return rulekit.Immediate(func(v any, extra ...any) bool {
			if skipped(v) {
				return true
			}
			ok, err := rule.Run(context.Background(), transform(v), extra...)
			return err == nil && ok
		})
	})
}

// Normalized returns a copy of set whose rules see strings trimmed and
// case-folded. Non-string values are passed unchanged.
func Normalized(set *rulekit.RuleSet) *rulekit.RuleSet {
	return Preprocess(func(v any) any {
		s, ok := v.(string)
		if !ok {
			return v
		}
		// Casers are stateful, so each call gets its own.
		return cases.Fold().String(strings.TrimSpace(s))
	}, set)
}
