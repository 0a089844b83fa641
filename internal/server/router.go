package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agentstation/skillmap/internal/server/middleware"
	"github.com/agentstation/skillmap/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(s.logger))
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(s.logger))
	if s.config.RequestTimeout > 0 {
		r.Use(chimw.Timeout(s.config.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found", r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, r.Method)
	})

	r.Get("/health", s.handleHealth)
	if s.config.MetricsEnabled {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route(s.config.PathPrefix, func(api chi.Router) {
		api.Get("/institutions", s.handleListInstitutions)
		api.Get("/institutions/{id}", s.handleGetInstitution)
		api.Get("/stats", s.handleStats)
	})

	return r
}
