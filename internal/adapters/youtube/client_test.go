package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/javaBin/speechrank/internal/config"
	"github.com/javaBin/speechrank/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig creates a test config with the given YouTube URL
func testConfig(youtubeURL, apiKey string) *config.Config {
	return &config.Config{
		YouTube: config.YouTubeConfig{
			URL:        youtubeURL,
			APIKey:     apiKey,
			Timeout:    5 * time.Second,
			MaxRetries: 3,
		},
	}
}

func writeItems(w http.ResponseWriter, items []PlaylistItem) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PlaylistItemListResponse{Items: items})
}

func item(id, title, description string) PlaylistItem {
	return PlaylistItem{
		Snippet:        &Snippet{Title: title, Description: description},
		ContentDetails: &ContentDetails{VideoID: id},
	}
}

func TestNew(t *testing.T) {
	t.Run("successful creation with context config", func(t *testing.T) {
		cfg := testConfig("https://yt.example.com", "key")
		ctx := config.WithConfig(context.Background(), cfg)

		client, err := New(ctx)

		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "https://yt.example.com", client.baseURL)
		assert.Equal(t, "key", client.apiKey)
		assert.Equal(t, uint64(3), client.maxRetries)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("panics when config not in context", func(t *testing.T) {
		ctx := context.Background()
		assert.Panics(t, func() {
			New(ctx)
		})
	})
}

func TestClient_FetchPlaylist(t *testing.T) {
	t.Run("successful fetch keeps playlist order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/playlistItems", r.URL.Path)
			assert.Equal(t, "PL_X", r.URL.Query().Get("playlistId"))
			assert.Equal(t, "contentDetails,snippet", r.URL.Query().Get("part"))
			assert.Equal(t, "25", r.URL.Query().Get("maxResults"))
			assert.Equal(t, "secret", r.URL.Query().Get("key"))

			writeItems(w, []PlaylistItem{
				item("v1", "T1", "D1"),
				item("v2", "T2", "D2"),
			})
		}))
		defer server.Close()

		client := NewWithHTTPClient(server.URL, "secret", &http.Client{})
		videos, err := client.FetchPlaylist(context.Background(), "PL_X")

		require.NoError(t, err)
		assert.Equal(t, []domain.VideoRecord{
			{VideoID: "v1", Title: "T1", Description: "D1"},
			{VideoID: "v2", Title: "T2", Description: "D2"},
		}, videos)
	})

	t.Run("omits key when not configured", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, hasKey := r.URL.Query()["key"]
			assert.False(t, hasKey)
			writeItems(w, nil)
		}))
		defer server.Close()

		client := NewWithHTTPClient(server.URL, "", &http.Client{})
		videos, err := client.FetchPlaylist(context.Background(), "PL_X")

		require.NoError(t, err)
		assert.Empty(t, videos)
	})

	t.Run("missing snippet defaults to empty strings", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeItems(w, []PlaylistItem{
				{ContentDetails: &ContentDetails{VideoID: "v1"}},
			})
		}))
		defer server.Close()

		client := NewWithHTTPClient(server.URL, "", &http.Client{})
		videos, err := client.FetchPlaylist(context.Background(), "PL_X")

		require.NoError(t, err)
		require.Len(t, videos, 1)
		assert.Equal(t, domain.VideoRecord{VideoID: "v1"}, videos[0])
	})

	t.Run("service error is typed and not retried", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded","errors":[{"reason":"quotaExceeded"}]}}`))
		}))
		defer server.Close()

		client := NewWithHTTPClient(server.URL, "", &http.Client{})
		videos, err := client.FetchPlaylist(context.Background(), "PL_X")

		require.Error(t, err)
		assert.Nil(t, videos)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))

		var serviceErr *ServiceError
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, 403, serviceErr.Code)
		assert.Equal(t, "quotaExceeded", serviceErr.Reason)
		assert.Equal(t, "quota exceeded", serviceErr.Message)
	})

	t.Run("server error is retried until success", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			writeItems(w, []PlaylistItem{item("v1", "T1", "D1")})
		}))
		defer server.Close()

		client := NewWithHTTPClient(server.URL, "", &http.Client{})
		videos, err := client.FetchPlaylist(context.Background(), "PL_X")

		require.NoError(t, err)
		assert.Len(t, videos, 1)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("server error gives up after max retries", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal server error"))
		}))
		defer server.Close()

		client := NewWithHTTPClient(server.URL, "", &http.Client{})
		client.SetMaxRetries(1)
		_, err := client.FetchPlaylist(context.Background(), "PL_X")

		require.Error(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

		var serviceErr *ServiceError
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, http.StatusInternalServerError, serviceErr.StatusCode)
		assert.Equal(t, "Internal Server Error", serviceErr.Message)
	})

	t.Run("invalid json response", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte("invalid json"))
		}))
		defer server.Close()

		client := NewWithHTTPClient(server.URL, "", &http.Client{})
		videos, err := client.FetchPlaylist(context.Background(), "PL_X")

		require.Error(t, err)
		assert.Nil(t, videos)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
		assert.Contains(t, err.Error(), "failed to unmarshal playlist items")
	})

	t.Run("transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		client := NewWithHTTPClient(url, "", &http.Client{})
		client.SetMaxRetries(0)
		videos, err := client.FetchPlaylist(context.Background(), "PL_X")

		require.Error(t, err)
		assert.Nil(t, videos)
		assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
		assert.Contains(t, err.Error(), "failed to execute request")
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeItems(w, nil)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := NewWithHTTPClient(server.URL, "", &http.Client{})
		_, err := client.FetchPlaylist(ctx, "PL_X")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
	})
}

func TestMapVideos(t *testing.T) {
	t.Run("falls back to snippet resource id", func(t *testing.T) {
		videos := MapVideos([]PlaylistItem{
			{Snippet: &Snippet{Title: "T", ResourceID: &ResourceID{Kind: "youtube#video", VideoID: "v9"}}},
		})
		require.Len(t, videos, 1)
		assert.Equal(t, "v9", videos[0].VideoID)
		assert.Equal(t, "T", videos[0].Title)
	})

	t.Run("drops items without video id", func(t *testing.T) {
		videos := MapVideos([]PlaylistItem{
			{Snippet: &Snippet{Title: "deleted video"}},
			item("v1", "T1", "D1"),
		})
		require.Len(t, videos, 1)
		assert.Equal(t, "v1", videos[0].VideoID)
	})

	t.Run("caps at page size", func(t *testing.T) {
		items := make([]PlaylistItem, 0, PageSize+5)
		for i := 0; i < PageSize+5; i++ {
			items = append(items, item(fmt.Sprintf("v%d", i), "T", "D"))
		}

		videos := MapVideos(items)

		assert.Len(t, videos, PageSize)
		assert.Equal(t, "v0", videos[0].VideoID)
	})
}

func TestServiceError(t *testing.T) {
	tests := []struct {
		name      string
		err       *ServiceError
		temporary bool
		message   string
	}{
		{
			name:      "not found",
			err:       &ServiceError{StatusCode: 404, Code: 404, Reason: "playlistNotFound", Message: "not found"},
			temporary: false,
			message:   "youtube service error 404 (playlistNotFound): not found",
		},
		{
			name:      "rate limited",
			err:       &ServiceError{StatusCode: 429, Code: 429, Message: "slow down"},
			temporary: true,
			message:   "youtube service error 429: slow down",
		},
		{
			name:      "backend error",
			err:       &ServiceError{StatusCode: 503, Code: 503, Message: "unavailable"},
			temporary: true,
			message:   "youtube service error 503: unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.temporary, tt.err.Temporary())
			assert.Equal(t, tt.message, tt.err.Error())
			assert.True(t, errors.Is(tt.err, domain.ErrSourceUnavailable))
		})
	}
}
