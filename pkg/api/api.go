// Package api serves schema catalogs over HTTP.
//
//	GET  /schemas               list schema definitions
//	POST /schemas/{name}/check  validate a JSON or YAML document
//	GET  /health                liveness
//	GET  /ready                 readiness of lookup backends
//	GET  /metrics               Prometheus metrics, when enabled
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/rulekit/pkg/httpserver"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/metrics"
	"github.com/dmitrymomot/rulekit/pkg/schemafile"
)

// Config holds request limits.
type Config struct {
	CheckTimeout time.Duration `env:"CHECK_TIMEOUT" envDefault:"5s"`        // CheckTimeout bounds one deferred evaluation.
	MaxBodyBytes int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"` // MaxBodyBytes caps the document size.
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithConfig overrides the default limits. Zero values keep the defaults.
func WithConfig(cfg Config) Option {
	return func(s *Server) {
		if cfg.CheckTimeout > 0 {
			s.cfg.CheckTimeout = cfg.CheckTimeout
		}
		if cfg.MaxBodyBytes > 0 {
			s.cfg.MaxBodyBytes = cfg.MaxBodyBytes
		}
	}
}

// WithMetrics records evaluations in rec and serves gatherer on /metrics.
func WithMetrics(rec *metrics.Recorder, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = rec
		s.gatherer = gatherer
	}
}

// WithReadinessCheck adds a named dependency check to /ready.
func WithReadinessCheck(name string, check httpserver.Check) Option {
	return func(s *Server) {
		s.checks[name] = check
	}
}

// Server exposes a schema catalog.
type Server struct {
	catalog  *schemafile.Catalog
	cfg      Config
	log      *slog.Logger
	metrics  *metrics.Recorder
	gatherer prometheus.Gatherer
	checks   map[string]httpserver.Check
}

// New returns a Server for catalog.
func New(catalog *schemafile.Catalog, opts ...Option) *Server {
	s := &Server{
		catalog: catalog,
		cfg: Config{
			CheckTimeout: 5 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		log:    logger.Discard(),
		checks: make(map[string]httpserver.Check),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)

	r.Get("/health", httpserver.HealthHandler(s.log, 0, nil))
	r.Get("/ready", httpserver.HealthHandler(s.log, s.cfg.CheckTimeout, s.checks))
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/schemas", func(r chi.Router) {
		r.Get("/", s.listSchemas)
		r.Post("/{name}/check", s.checkDocument)
	})

	return r
}
