package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/javaBin/speechrank/internal/adapters/web/components"
	"github.com/javaBin/speechrank/internal/domain"
	"github.com/javaBin/speechrank/internal/ports"
)

// Handler handles web UI requests for the read-only dashboard
type Handler struct {
	catalog ports.CatalogReader
	logger  *slog.Logger
}

// NewHandler creates a new web Handler with the provided catalog
func NewHandler(catalog ports.CatalogReader) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  slog.Default().With("component", "web"),
	}
}

// HandleDashboard renders every year with its conferences.
// Conferences outside the supported years are listed separately.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	var ungrouped []domain.Conference
	for _, c := range h.catalog.Conferences() {
		if _, ok := h.catalog.YearOf(c.ID); !ok {
			ungrouped = append(ungrouped, c)
		}
	}

	page := components.Layout("Conferences", components.Dashboard(h.catalog.Years(), ungrouped))
	templ.Handler(page).ServeHTTP(w, r)
}

// HandleConference renders one conference with the rating of each presentation
func (h *Handler) HandleConference(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	conf, err := h.catalog.Conference(id)
	if err != nil {
		if errors.Is(err, domain.ErrConferenceNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("failed to load conference", "conferenceID", id, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	year, _ := h.catalog.YearOf(id)
	page := components.Layout(conf.Name, components.ConferencePage(year, conf))
	templ.Handler(page).ServeHTTP(w, r)
}
