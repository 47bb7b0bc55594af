// Package api exposes the engine over HTTP JSON and a gRPC health service.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/xtding233/loot-economy/internal/economy"
)

// Server handles HTTP requests against one engine.
type Server struct {
	engine *economy.Engine
	logger *zap.Logger
}

// NewServer creates an API server. A nil logger is replaced by a no-op one.
func NewServer(engine *economy.Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{engine: engine, logger: logger}
}

// Routes sets up the HTTP routes
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleGetCatalog)
		r.Put("/catalog", s.handleReplaceCatalog)
		r.Post("/catalog/refresh", s.handleRefreshCatalog)

		r.Get("/inventory", s.handleInventory)
		r.Get("/balance", s.handleBalance)
		r.Post("/balance/credit", s.handleCredit)

		r.Post("/draw", s.handleDraw)
		r.Post("/craft", s.handleCraft)

		r.Get("/reveal", s.handleRevealState)
		r.Post("/reveal/complete", s.handleRevealComplete)
		r.Post("/reveal/cancel", s.handleRevealCancel)
		r.Get("/reveal/idle", s.handleIdle)
	})
	return r
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
