package api

import (
	"net/http"

	"github.com/javaBin/speechrank/internal/domain"
)

// PresentationInput is one presentation of a conference submitted directly
type PresentationInput struct {
	ID          string `json:"id" validate:"notblank"`
	Title       string `json:"title" validate:"max=500"`
	Description string `json:"description"`
}

// AddConferenceRequest adds a conference with a known id and presentation list
type AddConferenceRequest struct {
	Year          string              `json:"year" validate:"notblank"`
	ID            string              `json:"id" validate:"notblank"`
	Name          string              `json:"name" validate:"notblank,max=200"`
	Presentations []PresentationInput `json:"presentations" validate:"dive"`
}

// AddConferenceResponse reports where a new conference was placed
type AddConferenceResponse struct {
	Conference   domain.Conference `json:"conference"`
	Year         string            `json:"year"`
	YearAssigned bool              `json:"yearAssigned"`
}

// HandleListConferences returns every conference in insertion order
func (a *Adapter) HandleListConferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.catalog.Conferences())
}

// HandleGetConference returns one conference with its presentations
func (a *Adapter) HandleGetConference(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	conf, err := a.catalog.Conference(id)
	if err != nil {
		writeError(w, "failed to get conference", err)
		return
	}

	writeJSON(w, http.StatusOK, conf)
}

// HandleListYears returns the supported years with the conferences grouped under each
func (a *Adapter) HandleListYears(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.catalog.Years())
}

// HandleAddConference adds a conference built from the request body
func (a *Adapter) HandleAddConference(w http.ResponseWriter, r *http.Request) {
	var req AddConferenceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "failed to add conference", err)
		return
	}
	if err := domain.Validate(req); err != nil {
		writeError(w, "failed to add conference", err)
		return
	}

	videos := make([]domain.VideoRecord, 0, len(req.Presentations))
	for _, p := range req.Presentations {
		videos = append(videos, domain.VideoRecord{VideoID: p.ID, Title: p.Title, Description: p.Description})
	}
	conf := domain.NewConference(req.ID, req.Name, videos)

	assigned, err := a.catalog.AddConference(req.Year, conf)
	if err != nil {
		a.logger.Warn("conference rejected", "conferenceID", req.ID, "error", err)
		writeError(w, "failed to add conference", err)
		return
	}

	a.reindexConference(r.Context(), conf.ID)

	writeJSON(w, http.StatusCreated, AddConferenceResponse{
		Conference:   *conf,
		Year:         req.Year,
		YearAssigned: assigned,
	})
}
