package api

import (
	"log/slog"
	"net/http"
)

// RegisterRoutes registers all API routes with the provided mux.
// Reads are public; every write goes through protect.
// Reindex routes are only registered when search indexing is enabled.
func (a *Adapter) RegisterRoutes(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /health", a.HandleHealth)

	mux.HandleFunc("GET /api/conferences", a.HandleListConferences)
	mux.HandleFunc("GET /api/conferences/{id}", a.HandleGetConference)
	mux.HandleFunc("GET /api/years", a.HandleListYears)

	mux.Handle("POST /api/conferences", protect(http.HandlerFunc(a.HandleAddConference)))
	mux.Handle("POST /api/presentations/{id}/rates", protect(http.HandlerFunc(a.HandleAddRate)))
	mux.Handle("POST /api/presentations/{id}/comments", protect(http.HandlerFunc(a.HandleAddComment)))
	mux.Handle("POST /api/imports", protect(http.HandlerFunc(a.HandleImport)))
	mux.Handle("POST /api/imports/bootstrap", protect(http.HandlerFunc(a.HandleImportBootstrap)))

	if a.searchEnabled() {
		mux.Handle("POST /api/reindex", protect(http.HandlerFunc(a.HandleReindexAll)))
		mux.Handle("POST /api/reindex/conferences/{id}", protect(http.HandlerFunc(a.HandleReindexConference)))
		mux.Handle("POST /api/reindex/presentations/{id}", protect(http.HandlerFunc(a.HandleReindexPresentation)))
		slog.Info("reindex routes enabled")
	} else {
		slog.Info("reindex routes disabled (search indexing off)")
	}
}
