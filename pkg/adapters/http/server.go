package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/calcgate"
	"github.com/aretw0/calcgate/pkg/domain"
	"github.com/aretw0/calcgate/pkg/ports"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go openapi.yaml

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100

	errInvalidLimit = "limit must be a positive integer"
)

// Calculator is the slice of calcgate.Calculator the HTTP surface needs.
type Calculator interface {
	Calculate(ctx context.Context, expression string) (domain.Outcome, error)
}

// Server implements the generated ServerInterface.
type Server struct {
	Calculator Calculator
	Journal    ports.Journal
	logger     *slog.Logger
	metrics    http.Handler
	staticDir  string
	apiVersion string
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the server.
type Option func(*Server)

// WithJournal exposes GET /history backed by j.
func WithJournal(j ports.Journal) Option {
	return func(s *Server) {
		s.Journal = j
	}
}

// WithMetrics mounts h at GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithStaticDir serves files from dir for every unmatched GET, including "/".
func WithStaticDir(dir string) Option {
	return func(s *Server) {
		s.staticDir = dir
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the calculator.
func NewHandler(calc Calculator, opts ...Option) http.Handler {
	server := &Server{
		Calculator: calc,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}
	server.apiVersion = loadAPIVersion(server.logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			server.logger.Error("Failed to load OpenAPI spec", "error", err)
			return
		}
		w.Write(spec)
	})
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}
	if server.staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(server.staticDir)))
	}

	handler := HandlerWithOptions(server, ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: server.paramError,
	})
	return enableCORS(handler)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Calculate handles the POST /calculate request.
// Both the result and the "Invalid expression" outcome are answered with 200.
func (s *Server) Calculate(w http.ResponseWriter, r *http.Request) {
	var body CalculateJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("Calculate: Invalid request body", "error", err)
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if body.Expression == nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: domain.ErrMissingExpression.Error()})
		return
	}

	outcome, err := s.Calculator.Calculate(r.Context(), *body.Expression)
	if err != nil {
		s.logger.Error("Calculate failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: domain.ErrEvaluatorUnavailable.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, outcome)
}

// GetHistory handles the GET /history request.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request, params GetHistoryParams) {
	if s.Journal == nil {
		s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: domain.ErrJournalDisabled.Error()})
		return
	}

	limit := defaultHistoryLimit
	if params.Limit != nil {
		if *params.Limit < 1 {
			s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: errInvalidLimit})
			return
		}
		limit = min(*params.Limit, maxHistoryLimit)
	}

	recs, err := s.Journal.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("History failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "history unavailable"})
		return
	}
	if recs == nil {
		recs = []domain.Record{}
	}
	s.writeJSON(w, http.StatusOK, recs)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "calcgate-http",
		"version":     strings.TrimSpace(calcgate.Version),
		"api_version": s.apiVersion,
	})
}

// -- Helpers --

// paramError answers query parameters the generated wrapper could not bind.
func (s *Server) paramError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warn("Invalid request parameter", "path", r.URL.Path, "error", err)
	var invalid *InvalidParamFormatError
	if errors.As(err, &invalid) && invalid.ParamName == "limit" {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: errInvalidLimit})
		return
	}
	s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

// LoadSpec returns the embedded OpenAPI document, rejecting one without an info section.
func LoadSpec() (*openapi3.T, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	if doc.Info == nil {
		return nil, errors.New("openapi document has no info section")
	}
	return doc, nil
}

func loadAPIVersion(logger *slog.Logger) string {
	doc, err := LoadSpec()
	if err != nil {
		logger.Error("Failed to load OpenAPI spec", "error", err)
		return "unknown"
	}
	return doc.Info.Version
}
