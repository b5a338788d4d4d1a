package rulekit

import (
	"context"

	"github.com/dmitrymomot/rulekit/pkg/async"
	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// EvaluateSync runs every rule of set against value in declaration order and
// returns the names of the rules that did not pass. A rule that panics or
// returns an error is reported as failed; EvaluateSync itself never panics.
// Deferred rules, if present, are invoked inline.
func EvaluateSync(ctx context.Context, value any, set *RuleSet, extra ...any) []string {
	var failed []string
	for name, rule := range set.All() {
		if !passes(ctx, name, rule, value, extra) {
			failed = append(failed, name)
		}
	}
	return failed
}

// EvaluateAsync starts every rule of set in its own goroutine and returns a
// future for the names of the rules that did not pass, in declaration order.
// The future never completes with an error: rule errors and panics count as
// failures of the rule that produced them.
func EvaluateAsync(ctx context.Context, value any, set *RuleSet, extra ...any) *async.Future[[]string] {
	names := set.Names()
	futures := make([]*async.Future[bool], 0, len(names))
	for name, rule := range set.All() {
		futures = append(futures, async.Go(func() (bool, error) {
			return passes(ctx, name, rule, value, extra), nil
		}))
	}

	return async.Go(func() ([]string, error) {
		var failed []string
		for i, s := range async.SettleAll(futures...) {
			if !s.OK() || !s.Value {
				failed = append(failed, names[i])
			}
		}
		return failed, nil
	})
}

// Evaluate picks EvaluateAsync when set contains a deferred rule and
// EvaluateSync otherwise.
func Evaluate(ctx context.Context, value any, set *RuleSet, extra ...any) Outcome[[]string] {
	if set.IsAsync() {
		return deferredOutcome(EvaluateAsync(ctx, value, set, extra...))
	}
	return immediateOutcome(EvaluateSync(ctx, value, set, extra...))
}

func passes(ctx context.Context, name string, rule Rule, value any, extra []any) bool {
	ok, err := rule.Run(ctx, value, extra...)
	if err != nil {
		LoggerFromContext(ctx).DebugContext(ctx, "rule failed with error",
			logger.Rule(name),
			logger.Error(err),
		)
		return false
	}
	return ok
}
