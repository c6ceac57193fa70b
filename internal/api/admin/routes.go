package admin

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers admin routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/config/refresh", h.RefreshConfig)
	})
}
