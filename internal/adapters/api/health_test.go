package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/javaBin/speechrank/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleHealth(t *testing.T) {
	catalog := &mockCatalog{
		conferencesFunc: func() []domain.Conference {
			return []domain.Conference{{ID: "11"}, {ID: "12"}}
		},
	}
	adapter := New(testContext(), catalog, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	adapter.HandleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "development", response.Mode)
	assert.Equal(t, 2, response.Conferences)
	assert.False(t, response.Search)
}
