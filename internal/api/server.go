package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	adminapi "github.com/ModawnAI/samsung-geo-tool-sub004/internal/api/admin"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/api/docs"
	generateapi "github.com/ModawnAI/samsung-geo-tool-sub004/internal/api/generate"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/api/middleware"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	generateHandler *generateapi.Handler,
	adminHandler *adminapi.Handler,
	requestTimeout time.Duration,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)               // Recover from panics
	r.Use(chimiddleware.RequestID)               // Add request ID
	r.Use(middleware.Logger(logger))             // Log requests
	r.Use(middleware.CORS)                       // Handle CORS
	r.Use(chimiddleware.Timeout(requestTimeout)) // Bound the whole pipeline run

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	generateapi.RegisterRoutes(r, generateHandler)
	adminapi.RegisterRoutes(r, adminHandler)

	return r
}
