// Package httpapi exposes the public chart API plus the operational
// endpoints (health, readiness, metrics).
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/astromapa/natal-chart-service/internal/domain"
	"github.com/astromapa/natal-chart-service/internal/observability"
)

const banner = "mapa-astral-service: POST /api/mapa | POST /api/pdf | GET /api/contador\n"

// ChartService assembles charts for incoming requests.
type ChartService interface {
	Assemble(ctx context.Context, q domain.BirthQuery) (domain.ChartResult, error)
}

// CounterReader reads the durable access counter without incrementing.
type CounterReader interface {
	Read(ctx context.Context) (int64, error)
}

// Renderer turns chart lines into a downloadable document.
type Renderer interface {
	Render(name string, lines []string) ([]byte, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the chart API over HTTP.
type Server struct {
	httpServer     *http.Server
	charts         ChartService
	counter        CounterReader
	renderer       Renderer
	requestTimeout time.Duration
	logger         *slog.Logger
	metrics        *observability.Metrics
}

// NewServer builds the server and its route table. counter may be nil, in
// which case /api/contador reports 0.
func NewServer(
	addr string,
	charts ChartService,
	counter CounterReader,
	renderer Renderer,
	ready ReadinessChecker,
	requestTimeout time.Duration,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Server {
	s := &Server{
		charts:         charts,
		counter:        counter,
		renderer:       renderer,
		requestTimeout: requestTimeout,
		logger:         logger,
		metrics:        metrics,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleBanner)
	mux.HandleFunc("POST /api/mapa", s.handleMapa)
	mux.HandleFunc("POST /api/pdf", s.handlePDF)
	mux.HandleFunc("GET /api/contador", s.handleContador)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := withRequestID(withAccessLog(logger, withCORS(mux)))

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleBanner(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(banner))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
