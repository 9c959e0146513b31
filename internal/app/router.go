package app

import (
	"net/http"

	"github.com/heartmarshall/info-backend/internal/transport/rest"
)

// newRouter registers every route on a ServeMux. Method-qualified patterns
// make the mux answer 405 for unsupported methods.
func newRouter(records *rest.RecordHandler, health *rest.HealthHandler, metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /info", records.Create)
	mux.HandleFunc("GET /info", records.List)
	mux.HandleFunc("GET /info/{id}", records.Get)
	mux.HandleFunc("PUT /info/{id}", records.Replace)
	mux.HandleFunc("PATCH /info/{id}", records.Patch)
	mux.HandleFunc("DELETE /info/{id}", records.Delete)

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)

	mux.Handle("GET /metrics", metrics)

	return mux
}
