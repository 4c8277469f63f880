// Package httpadapter serves the bulletin, refresh, and bora endpoints
// together with health, readiness, and metrics routes.
package httpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/marine-bulletin-service/internal/bulletin"
	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
	"github.com/couchcryptid/marine-bulletin-service/internal/forecast"
)

// BulletinReader answers bulletin requests from the cache.
type BulletinReader interface {
	Read(ctx context.Context, lang string) (bulletin.ReadResult, error)
}

// Refresher runs an authorized cache refresh.
type Refresher interface {
	Authorize(r *http.Request) bool
	Refresh(ctx context.Context) bulletin.Report
}

// Forecaster builds the bora charts.
type Forecaster interface {
	Forecast(ctx context.Context) (forecast.Charts, error)
}

// Deps are the services behind the API routes.
type Deps struct {
	Reader     BulletinReader
	Refresher  Refresher
	Forecaster Forecaster
	Objects    domain.ObjectStore
	Ready      sharedobs.ReadinessChecker
}

// Server exposes the API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	deps       Deps
	logger     *slog.Logger
}

// NewServer creates an HTTP server with all routes registered.
func NewServer(addr string, deps Deps, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr: addr,
			Handler: handlers.RecoveryHandler(
				handlers.RecoveryLogger(recoveryLogger{logger}),
			)(mux),
			ReadTimeout: 10 * time.Second,
			// A refresh walks every language sequentially.
			WriteTimeout: 2 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
		deps:   deps,
		logger: logger,
	}

	mux.HandleFunc("GET /api/bulletin", s.handleBulletin)
	mux.HandleFunc("GET /api/bulletin/refresh", s.handleRefresh)
	mux.HandleFunc("POST /api/bulletin/refresh", s.handleRefresh)
	mux.HandleFunc("GET /api/bora", s.handleBora)
	mux.HandleFunc("GET /objects/{key...}", s.handleObject)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(deps.Ready))
	mux.Handle("GET /metrics", promhttp.Handler())

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

type errorResponse struct {
	OK    bool        `json:"ok"`
	Error string      `json:"error"`
	Lang  domain.Lang `json:"lang,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v) //nolint:errcheck // client may have gone away
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Error: code})
}

// recoveryLogger routes recovered panics into slog.
type recoveryLogger struct {
	logger *slog.Logger
}

func (l recoveryLogger) Println(v ...any) {
	l.logger.Error("http handler panic", "panic", fmt.Sprint(v...))
}
