// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// New creates a *slog.Logger configured by a set of Option functions that
// select the output format (text or json), the minimum level, static
// attributes and ContextExtractor callbacks pulling request-scoped values out
// of a context on every Handle call.
//
// Helper constructors such as Rule, Field, Schema, Failures and Error live in
// attr.go and keep attribute naming consistent across the engine, the HTTP
// API and the CLI.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "rulekit"),
//	    logger.WithLevelName(cfg.Level),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.DebugContext(ctx, "rule failed with error",
//	    logger.Rule("is email"),
//	    logger.Error(err),
//	)
//
// Error and Errors produce attributes only when the supplied error value is
// non-nil, so they can be passed without an additional nil check.
package logger
