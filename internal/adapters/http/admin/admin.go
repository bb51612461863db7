// Package admin serves operator-facing routes on a separate listener so the
// public surface stays limited to the greeting and health routes.
package admin

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register attaches the admin routes to mux.
// Routes:
//
//	GET /metrics       -> Prometheus exposition of gatherer
//	GET /openapi.yaml  -> Embedded OpenAPI document
func Register(_ context.Context, mux *http.ServeMux, gatherer prometheus.Gatherer) {
	if mux == nil {
		panic("mux is nil")
	}
	if gatherer == nil {
		panic("gatherer is nil")
	}

	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))

	mux.HandleFunc("GET /openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})
}

// Handler returns a mux with the admin routes registered.
func Handler(ctx context.Context, gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	Register(ctx, mux, gatherer)
	return mux
}
