package web

import (
	"net/http"

	"github.com/javaBin/speechrank/internal/adapters/web/handlers"
)

// RegisterRoutes registers the dashboard routes with the provided mux
func RegisterRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("GET /{$}", h.HandleDashboard)
	mux.HandleFunc("GET /conferences/{id}", h.HandleConference)
}
