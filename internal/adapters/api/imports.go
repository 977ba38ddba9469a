package api

import (
	"net/http"

	"github.com/javaBin/speechrank/internal/domain"
)

// ImportResponse summarises one import
type ImportResponse struct {
	ConferenceID  string   `json:"conferenceId"`
	Name          string   `json:"name"`
	Year          string   `json:"year"`
	Presentations int      `json:"presentations"`
	Added         bool     `json:"added"`
	YearAssigned  bool     `json:"yearAssigned"`
	Dropped       []string `json:"dropped,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// BootstrapResponse summarises a run of the bootstrap table
type BootstrapResponse struct {
	Status  string           `json:"status"`
	Failed  int              `json:"failed"`
	Imports []ImportResponse `json:"imports"`
}

func newImportResponse(result domain.ImportResult) ImportResponse {
	resp := ImportResponse{
		Year:         result.Year,
		Added:        result.Added,
		YearAssigned: result.YearAssigned,
		Dropped:      result.Dropped,
	}
	if result.Conference != nil {
		resp.ConferenceID = result.Conference.ID
		resp.Name = result.Conference.Name
		resp.Presentations = len(result.Conference.Presentations)
	}
	if result.Err != nil {
		resp.Error = result.Err.Error()
	}
	return resp
}

// HandleImport imports one playlist as a new conference.
// A playlist the source could not deliver still yields an empty conference;
// the response then carries the source error with status 201.
func (a *Adapter) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.ImportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "failed to import playlist", err)
		return
	}

	result, err := a.catalog.ImportOne(ctx, req)
	if err != nil {
		writeError(w, "failed to import playlist", err)
		return
	}

	a.logger.Info("playlist imported",
		"conferenceID", result.Conference.ID,
		"name", result.Conference.Name,
		"presentations", len(result.Conference.Presentations),
		"sourceFailed", result.Failed(),
	)

	a.reindexConference(ctx, result.Conference.ID)

	writeJSON(w, http.StatusCreated, newImportResponse(result))
}

// HandleImportBootstrap runs the bootstrap import table.
// Conferences already present are reported as rejected, not imported twice.
func (a *Adapter) HandleImportBootstrap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	results := a.catalog.ImportAll(ctx)

	resp := BootstrapResponse{
		Status:  "success",
		Imports: make([]ImportResponse, 0, len(results)),
	}
	for _, result := range results {
		if result.Failed() {
			resp.Failed++
		}
		if result.Added {
			a.reindexConference(ctx, result.Conference.ID)
		}
		resp.Imports = append(resp.Imports, newImportResponse(result))
	}
	if resp.Failed > 0 {
		resp.Status = "partial"
	}

	writeJSON(w, http.StatusOK, resp)
}
