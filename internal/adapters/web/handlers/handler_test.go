package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/javaBin/speechrank/internal/app"
	"github.com/javaBin/speechrank/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noSource is a video source that is never reached
type noSource struct{}

func (noSource) FetchPlaylist(ctx context.Context, playlistID string) ([]domain.VideoRecord, error) {
	return nil, nil
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	repo := app.NewRepositoryWithConfig(app.NewImporterWithConfig(noSource{}, 1), []string{"2016", "2015"}, nil)

	_, err := repo.AddConference("2015", domain.NewConference("11", "Confitura", []domain.VideoRecord{
		{VideoID: "v1", Title: "Talk one"},
	}))
	require.NoError(t, err)
	_, err = repo.AddConference("2010", domain.NewConference("99", "Archive", nil))
	require.NoError(t, err)
	require.NoError(t, repo.AddRate(domain.Rate{PresentationID: "v1", Value: 3}))

	return NewHandler(repo)
}

func TestHandleDashboard(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	h.HandleDashboard(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, "<h2>2016</h2>")
	assert.Contains(t, body, "<h2>2015</h2>")
	assert.Contains(t, body, "Confitura")
	assert.Contains(t, body, "<h2>Other</h2>")
	assert.Contains(t, body, "Archive")
}

func TestHandleConference(t *testing.T) {
	h := newTestHandler(t)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/conferences/11", nil)
		req.SetPathValue("id", "11")
		w := httptest.NewRecorder()

		h.HandleConference(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Talk one")
		assert.Contains(t, w.Body.String(), "<td>3.0</td>")
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/conferences/nope", nil)
		req.SetPathValue("id", "nope")
		w := httptest.NewRecorder()

		h.HandleConference(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
