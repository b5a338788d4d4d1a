package rulekit

import (
	"context"

	"github.com/dmitrymomot/rulekit/pkg/async"
	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// EvaluateSchemaSync validates every schema field of obj with EvaluateSync.
// OR-group fields pass when any alternative passes; otherwise every
// alternative's failure list is kept. With opts.Strict, keys of obj that are
// not in the schema are reported as KeyNotAllowed.
func EvaluateSchemaSync(ctx context.Context, obj Object, schema Schema, opts Options, extra ...any) SchemaErrors {
	opts = MergeOptions(DefaultOptions(), opts)

	result := make(SchemaErrors, len(schema))
	for name, field := range schema {
		value := obj[name]
		if !field.IsGroup() {
			result[name] = FieldErrors{Errors: EvaluateSync(ctx, value, field.set, extra...)}
			continue
		}

		alts := make([][]string, 0, len(field.alternatives))
		for _, set := range field.alternatives {
			alts = append(alts, EvaluateSync(ctx, value, set, extra...))
		}
		result[name] = groupErrors(alts)
	}

	if opts.Strict {
		markDisallowed(result, obj, schema)
	}
	return result
}

// EvaluateSchemaAsync is the concurrent counterpart of EvaluateSchemaSync.
// Fields, and the alternatives of OR-group fields, are evaluated
// concurrently and joined with a settle-all join. The future never completes
// with an error; a field whose evaluation broke down is reported as
// []string{UnknownError}.
func EvaluateSchemaAsync(ctx context.Context, obj Object, schema Schema, opts Options, extra ...any) *async.Future[SchemaErrors] {
	opts = MergeOptions(DefaultOptions(), opts)

	names := make([]string, 0, len(schema))
	futures := make([]*async.Future[FieldErrors], 0, len(schema))
	for name, field := range schema {
		names = append(names, name)
		futures = append(futures, evaluateFieldAsync(ctx, obj[name], field, extra))
	}

	return async.Go(func() (SchemaErrors, error) {
		result := collectFields(ctx, names, async.SettleAll(futures...))
		if opts.Strict {
			markDisallowed(result, obj, schema)
		}
		return result, nil
	})
}

// EvaluateSchema picks EvaluateSchemaAsync when any field of schema contains
// a deferred rule and EvaluateSchemaSync otherwise.
func EvaluateSchema(ctx context.Context, obj Object, schema Schema, opts Options, extra ...any) Outcome[SchemaErrors] {
	if schema.IsAsync() {
		return deferredOutcome(EvaluateSchemaAsync(ctx, obj, schema, opts, extra...))
	}
	return immediateOutcome(EvaluateSchemaSync(ctx, obj, schema, opts, extra...))
}

func evaluateFieldAsync(ctx context.Context, value any, field Field, extra []any) *async.Future[FieldErrors] {
	if !field.IsGroup() {
		return async.Then(EvaluateAsync(ctx, value, field.set, extra...), func(failed []string) (FieldErrors, error) {
			return FieldErrors{Errors: failed}, nil
		})
	}

	futures := make([]*async.Future[[]string], len(field.alternatives))
	for i, set := range field.alternatives {
		futures[i] = EvaluateAsync(ctx, value, set, extra...)
	}

	return async.Go(func() (FieldErrors, error) {
		return collectAlternatives(async.SettleAll(futures...)), nil
	})
}

// collectFields keys settled field results by name. A field whose future
// failed is reported as UnknownError.
func collectFields(ctx context.Context, names []string, settled []async.Settled[FieldErrors]) SchemaErrors {
	result := make(SchemaErrors, len(names))
	for i, s := range settled {
		if !s.OK() {
			LoggerFromContext(ctx).DebugContext(ctx, "field evaluation broke down",
				logger.Field(names[i]),
				logger.Error(s.Err),
			)
			result[names[i]] = FieldErrors{Errors: []string{UnknownError}}
			continue
		}
		result[names[i]] = s.Value
	}
	return result
}

// collectAlternatives turns settled OR-group alternatives into the field
// result. A failed alternative counts as []string{UnknownError}.
func collectAlternatives(settled []async.Settled[[]string]) FieldErrors {
	alts := make([][]string, len(settled))
	for i, s := range settled {
		if !s.OK() {
			alts[i] = []string{UnknownError}
			continue
		}
		alts[i] = s.Value
	}
	return groupErrors(alts)
}

// groupErrors collapses OR-group results: one passing alternative passes the field.
func groupErrors(alts [][]string) FieldErrors {
	for _, failed := range alts {
		if len(failed) == 0 {
			return FieldErrors{}
		}
	}
	return FieldErrors{Alternatives: alts}
}

func markDisallowed(result SchemaErrors, obj Object, schema Schema) {
	for key := range obj {
		if _, declared := schema[key]; !declared {
			result[key] = FieldErrors{Errors: []string{KeyNotAllowed}}
		}
	}
}
