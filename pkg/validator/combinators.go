package validator

import (
	"context"

	"github.com/dmitrymomot/rulekit"
	"github.com/dmitrymomot/rulekit/pkg/async"
)

// AcceptAny passes when at least one of rules passes. A member that errors or
// panics counts as not passing. With no rules it always fails.
// The result is deferred when any member is deferred; members then run
// concurrently.
func AcceptAny(rules ...rulekit.Rule) rulekit.Rule {
	for _, r := range rules {
		if r.IsDeferred() {
			return rulekit.Deferred(func(ctx context.Context, v any, extra ...any) (bool, error) {
				futures := make([]*async.Future[bool], len(rules))
				for i, r := range rules {
					futures[i] = async.Go(func() (bool, error) {
						return r.Run(ctx, v, extra...)
					})
				}
				for _, s := range async.SettleAll(futures...) {
					if s.OK() && s.Value {
						return true, nil
					}
				}
				return false, nil
			})
		}
	}

	return rulekit.Immediate(func(v any, extra ...any) bool {
		for _, r := range rules {
			if ok, err := r.Run(context.Background(), v, extra...); err == nil && ok {
				return true
			}
		}
		return false
	})
}

// Not inverts rule. Errors of a deferred rule are still failures.
func Not(rule rulekit.Rule) rulekit.Rule {
	if rule.IsDeferred() {
		return rulekit.Deferred(func(ctx context.Context, v any, extra ...any) (bool, error) {
			ok, err := rule.Run(ctx, v, extra...)
			if err != nil {
				return false, err
			}
			return !ok, nil
		})
	}
	return rulekit.Immediate(func(v any, extra ...any) bool {
		ok, err := rule.Run(context.Background(), v, extra...)
		return err == nil && !ok
	})
}
