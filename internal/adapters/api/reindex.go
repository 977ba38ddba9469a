package api

import (
	"log/slog"
	"net/http"
)

// ReindexResponse represents the response for reindex operations
type ReindexResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HandleReindexAll handles the full reindex endpoint
func (a *Adapter) HandleReindexAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slog.Info("starting full reindex")

	if err := a.indexer.ReindexAll(ctx); err != nil {
		slog.Error("failed to reindex catalog", "error", err)
		writeError(w, "failed to reindex catalog", err)
		return
	}

	writeJSON(w, http.StatusOK, ReindexResponse{
		Status:  "success",
		Message: "successfully reindexed all conferences",
	})
	slog.Info("full reindex completed successfully")
}

// HandleReindexConference handles the reindex endpoint for a specific conference
func (a *Adapter) HandleReindexConference(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	slog.Info("starting conference reindex", "conferenceID", id)

	if err := a.indexer.ReindexConference(ctx, id); err != nil {
		slog.Error("failed to reindex conference", "conferenceID", id, "error", err)
		writeError(w, "failed to reindex conference", err)
		return
	}

	writeJSON(w, http.StatusOK, ReindexResponse{
		Status:  "success",
		Message: "successfully reindexed conference: " + id,
	})
}

// HandleReindexPresentation handles the reindex endpoint for a specific presentation
func (a *Adapter) HandleReindexPresentation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := a.indexer.ReindexPresentation(ctx, id); err != nil {
		slog.Error("failed to reindex presentation", "presentationID", id, "error", err)
		writeError(w, "failed to reindex presentation", err)
		return
	}

	writeJSON(w, http.StatusOK, ReindexResponse{
		Status:  "success",
		Message: "successfully reindexed presentation: " + id,
	})
}
