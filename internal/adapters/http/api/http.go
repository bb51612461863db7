// Package api declares the public HTTP routes and their registration helpers.
package api

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/okian/greeter/pkg/logger"
)

// Public paths.
const (
	RootPath   = "/"
	HealthPath = "/healthz"
)

// allowedMethods lists what every registered path answers to.
const allowedMethods = "GET, HEAD, OPTIONS"

// Server wires HTTP routes for the public API.
type Server struct {
	rootHandler     *RootHandler
	healthHandler   *HealthHandler
	fallbackHandler *FallbackHandler
	logger          logger.Logger
}

// NewServer creates a new API server with all handlers. A nil logger
// disables access logging.
func NewServer(log logger.Logger) *Server {
	return &Server{
		rootHandler:     NewRootHandler(),
		healthHandler:   NewHealthHandler(),
		fallbackHandler: NewFallbackHandler(RootPath, HealthPath),
		logger:          log,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// GET patterns also match HEAD. Everything else lands on the fallback,
	// which renders 404 for unknown paths and 405/OPTIONS for known ones.
	mux.HandleFunc("GET /{$}", MetricsMiddleware(s.rootHandler.HandleRoot, "root"))
	mux.HandleFunc("GET "+HealthPath, MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/", MetricsMiddleware(s.fallbackHandler.HandleFallback, "fallback"))
}

// Handler returns the complete public handler: routes plus request-id and
// access-log middleware.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	s.Register(ctx, mux)

	var h http.Handler = mux
	if s.logger != nil {
		h = AccessLogMiddleware(s.logger, h)
	}
	return RequestIDMiddleware(h)
}

func writeText(w http.ResponseWriter, status int, body string) {
	writeBody(w, status, "text/plain; charset=utf-8", body)
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	writeBody(w, status, "text/html; charset=utf-8", body)
}

func writeBody(w http.ResponseWriter, status int, contentType, body string) {
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
