// Package rulekit evaluates named predicate rules against values and keyed
// objects and reports which rules fail.
//
// Instead of returning a single boolean or stopping at the first problem,
// every evaluation returns the names of all failing rules, so callers can
// present or act on each one. Rules never abort an evaluation: a rule that
// panics or returns an error is simply reported as failed.
//
// # Rules
//
// A Rule is one of two explicit variants:
//
//   - Immediate wraps func(value any, extra ...any) bool
//   - Deferred wraps func(ctx context.Context, value any, extra ...any) (bool, error)
//
// Rules are grouped in a RuleSet, which keeps insertion order. The order is
// the order in which failures are reported, whatever the execution mode.
//
//	set := rulekit.NewRuleSet().
//	    Immediate("Is string", func(v any, _ ...any) bool { _, ok := v.(string); return ok }).
//	    Deferred("Is unique", func(ctx context.Context, v any, _ ...any) (bool, error) {
//	        return store.IsFree(ctx, v)
//	    })
//
// # Values
//
// EvaluateSync runs rules one after another in the calling goroutine.
// EvaluateAsync starts every rule concurrently and joins them with a
// settle-all join. Evaluate inspects the rule set and takes the asynchronous
// path only when a deferred rule is present; the returned Outcome reports
// which path was taken.
//
//	failed := rulekit.Evaluate(ctx, 10, set).Await() // ["Is string", ...]
//
// # Schemas
//
// A Schema maps field names to a Field declared with Rules (one rule set)
// or AnyOf (alternatives, one of which must pass). EvaluateSchemaSync,
// EvaluateSchemaAsync and EvaluateSchema mirror the value evaluators and
// return SchemaErrors. With Options.Strict, object keys missing from the
// schema are reported with the KeyNotAllowed label.
//
//	schema := rulekit.Schema{
//	    "email": rulekit.Rules(emailRules),
//	    "user":  rulekit.AnyOf(idRules, profileRules),
//	}
//	res := rulekit.EvaluateSchema(ctx, obj, schema, rulekit.Options{Strict: true}).Await()
//	if !res.Valid() {
//	    fmt.Println(res.Failed())
//	}
//
// Extra arguments passed after the options reach every rule unchanged, which
// lets a rule compare the value with data it cannot know on its own (a stored
// hash, a sibling field, a limit chosen at request time).
//
// # Concurrency
//
// The asynchronous paths start one goroutine per rule, alternative and field.
// The engine never cancels them and enforces no timeout; a caller wanting one
// can use the Future returned by Outcome.Future. Rules are expected to be
// pure predicates; each evaluation owns its own result accumulators.
//
// # Logging
//
// Errors and panics absorbed from rules are logged at debug level through the
// logger attached with WithLogger.
package rulekit
