package api

import (
	"net/http"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string `json:"status"`
	Mode        string `json:"mode"`
	Conferences int    `json:"conferences"`
	Search      bool   `json:"search"`
}

// HandleHealth handles the health check endpoint
func (a *Adapter) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Mode:        string(a.cfg.Mode),
		Conferences: len(a.catalog.Conferences()),
		Search:      a.searchEnabled(),
	})
}
