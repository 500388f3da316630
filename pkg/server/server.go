package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Server is the Prometheus exposition endpoint. It serves the current
// metric state on /metrics and liveness/readiness probes on /health and
// /ready. It performs no metric writes itself; the reconciliation loop is
// the single writer, scrapes read through the registry.
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	httpMetrics *httpMetrics
	mu          sync.RWMutex
	ready       bool
}

// New creates a server exposing the given registry. The registry doubles
// as the registerer for the server's own HTTP instrumentation.
func New(config *Config, registry *prometheus.Registry) *Server {
	if config == nil {
		config = NewConfig()
	}

	s := &Server{
		config:      config,
		rateLimiter: rate.NewLimiter(config.RateLimit, config.RateLimitBurst),
		httpMetrics: newHTTPMetrics(registry),
	}

	mux := http.NewServeMux()

	// Probes bypass the middleware chain so kubelet checks are never
	// rate limited.
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)

	mux.Handle("/metrics", s.withMiddleware(
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{
			Registry: registry,
		}).ServeHTTP,
	))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Address, config.Port),
		Handler:      mux,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return s
}

// SetReady marks the server as ready to serve traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Handler exposes the configured mux for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until the context is canceled or the listener fails.
// Shutdown on cancellation is graceful within the configured timeout.
func (s *Server) Start(ctx context.Context) error {
	s.SetReady(true)

	slog.Info("starting metrics server",
		slog.String("name", s.config.Name),
		slog.String("addr", s.httpServer.Addr))

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down metrics server")
	return s.httpServer.Shutdown(shutdownCtx)
}
