// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run blocks until the context is canceled, SIGINT/SIGTERM arrives, or the
// listener fails, then drains in-flight requests for at most
// Config.ShutdownTimeout:
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// HealthHandler serves liveness and readiness probes from a set of named
// dependency checks.
package httpserver
