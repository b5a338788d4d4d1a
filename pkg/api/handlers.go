package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/dmitrymomot/rulekit"
	"github.com/dmitrymomot/rulekit/pkg/async"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/metrics"
	"github.com/dmitrymomot/rulekit/pkg/schemafile"
)

// SchemaInfo describes one catalog entry.
type SchemaInfo struct {
	Name   string   `json:"name"`
	Strict bool     `json:"strict"`
	Async  bool     `json:"async"`
	Fields []string `json:"fields"`
}

// CheckResponse is the body of a completed check.
type CheckResponse struct {
	Schema string               `json:"schema"`
	Valid  bool                 `json:"valid"`
	Errors rulekit.SchemaErrors `json:"errors"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) listSchemas(w http.ResponseWriter, _ *http.Request) {
	infos := make([]SchemaInfo, 0, s.catalog.Len())
	for _, name := range s.catalog.Names() {
		def, _ := s.catalog.Get(name)
		fields := def.Fields
		if fields == nil {
			fields = []string{}
		}
		infos = append(infos, SchemaInfo{
			Name:   def.Name,
			Strict: def.Options.Strict,
			Async:  def.Schema.IsAsync(),
			Fields: fields,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"schemas": infos})
}

// checkDocument validates the request body against the named schema. Query
// parameters named "extra" are passed to every rule as extra arguments.
// Valid documents get 200, invalid ones 422.
func (s *Server) checkDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")
	log := rulekit.LoggerFromContext(ctx).With(logger.Schema(name))

	def, ok := s.catalog.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "schema not found"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "document too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read body"})
		return
	}
	obj, err := schemafile.DecodeDocument(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var extra []any
	for _, v := range r.URL.Query()["extra"] {
		extra = append(extra, v)
	}

	start := time.Now()
	outcome := rulekit.EvaluateSchema(ctx, obj, def.Schema, def.Options, extra...)
	mode := metrics.ModeSync
	if outcome.Deferred() {
		mode = metrics.ModeAsync
	}

	result, err := outcome.Future().AwaitWithTimeout(s.cfg.CheckTimeout)
	elapsed := time.Since(start)
	if errors.Is(err, async.ErrTimeout) {
		s.metrics.ObserveTimeout(name, mode, elapsed)
		log.WarnContext(ctx, "schema evaluation timed out", logger.Mode(mode), logger.Duration(elapsed))
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "evaluation timed out"})
		return
	}

	s.metrics.Observe(name, mode, def.Schema, result, elapsed)
	failed := result.Failed()
	log.DebugContext(ctx, "schema evaluated",
		logger.Mode(mode),
		logger.Failures(len(failed)),
		logger.Duration(elapsed),
	)

	status := http.StatusOK
	if len(failed) > 0 {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, CheckResponse{Schema: name, Valid: len(failed) == 0, Errors: result})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
