// Package server provides the read-only HTTP API over the built catalog.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/agentstation/skillmap/pkg/institutions"
	"github.com/agentstation/skillmap/pkg/reconciler"
)

// Source provides the catalog and its build result. skillmap.Client
// implements it.
type Source interface {
	Catalog(ctx context.Context) (*institutions.Collection, error)
	Result(ctx context.Context) (*reconciler.Result, error)
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	source    Source
	gatherer  prometheus.Gatherer
	logger    *zerolog.Logger
	config    Config
	startTime time.Time
}

// New creates a new server instance. A nil gatherer serves the default
// Prometheus registry.
func New(source Source, cfg Config, gatherer prometheus.Gatherer, logger *zerolog.Logger) *Server {
	defaults := DefaultConfig()
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = defaults.PathPrefix
	}
	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return &Server{
		source:    source,
		gatherer:  gatherer,
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.config.Addr).Msg("Serving catalog API")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down catalog API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
