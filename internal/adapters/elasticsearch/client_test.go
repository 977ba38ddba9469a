package elasticsearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/javaBin/speechrank/internal/config"
	"github.com/javaBin/speechrank/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("successful connection with context config", func(t *testing.T) {
		var authHeader string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" {
				authHeader = r.Header.Get("Authorization")
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Elastic-Product", "Elasticsearch")
				json.NewEncoder(w).Encode(map[string]any{
					"name":         "test-cluster",
					"cluster_name": "elasticsearch",
					"version": map[string]any{
						"number": "9.0.0",
					},
				})
			}
		}))
		defer server.Close()

		ctx := config.WithConfig(context.Background(), &config.Config{
			Elasticsearch: config.ElasticsearchConfig{
				URL:      server.URL,
				User:     "elastic",
				Password: "changeme",
			},
		})

		client, err := New(ctx)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.NotNil(t, client.es)
		assert.NotNil(t, client.logger)
		assert.True(t, strings.HasPrefix(authHeader, "Basic "))
	})

	t.Run("panics when config not in context", func(t *testing.T) {
		assert.Panics(t, func() {
			New(context.Background())
		})
	})

	t.Run("connection failure", func(t *testing.T) {
		client, err := NewWithURL("http://invalid-host:9999", "", "")
		assert.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("error response from server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Elastic-Product", "Elasticsearch")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal server error"))
		}))
		defer server.Close()

		client, err := NewWithURL(server.URL, "", "")
		assert.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), "elasticsearch connection error")
	})
}

func TestClient_CreateIndex(t *testing.T) {
	t.Run("successful index creation", func(t *testing.T) {
		var receivedMapping map[string]any
		server := createMockESServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == "PUT" && r.URL.Path == "/test-index" {
				json.NewDecoder(r.Body).Decode(&receivedMapping)
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"acknowledged":        true,
					"shards_acknowledged": true,
					"index":               "test-index",
				})
			}
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		err := client.CreateIndex(context.Background(), "test-index", PresentationIndexMapping)
		assert.NoError(t, err)
		require.Contains(t, receivedMapping, "mappings")
	})

	t.Run("index creation error", func(t *testing.T) {
		server := createMockESServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == "PUT" && r.URL.Path == "/test-index" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"invalid mapping"}`))
			}
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		err := client.CreateIndex(context.Background(), "test-index", "invalid-json")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "create index error")
	})
}

func TestClient_DeleteIndex(t *testing.T) {
	t.Run("successful deletion", func(t *testing.T) {
		server := createMockESServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == "DELETE" && r.URL.Path == "/test-index" {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{"acknowledged": true})
			}
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		err := client.DeleteIndex(context.Background(), "test-index")
		assert.NoError(t, err)
	})

	t.Run("index not found (acceptable)", func(t *testing.T) {
		server := createMockESServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == "DELETE" && r.URL.Path == "/test-index" {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"error":"index_not_found_exception"}`))
			}
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		err := client.DeleteIndex(context.Background(), "test-index")
		assert.NoError(t, err)
	})

	t.Run("other error", func(t *testing.T) {
		server := createMockESServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == "DELETE" && r.URL.Path == "/test-index" {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"server error"}`))
			}
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		err := client.DeleteIndex(context.Background(), "test-index")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "delete index error")
	})
}

func TestClient_IndexExists(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		exists    bool
		expectErr bool
	}{
		{name: "index exists", status: http.StatusOK, exists: true},
		{name: "index does not exist", status: http.StatusNotFound, exists: false},
		{name: "server error", status: http.StatusInternalServerError, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := createMockESServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == "HEAD" && r.URL.Path == "/test-index" {
					w.WriteHeader(tt.status)
				}
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			exists, err := client.IndexExists(context.Background(), "test-index")
			if tt.expectErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "index exists check error")
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.exists, exists)
		})
	}
}

func TestClient_BulkIndex(t *testing.T) {
	t.Run("successful bulk indexing", func(t *testing.T) {
		var receivedBody string
		server := createMockESServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == "POST" && r.URL.Path == "/_bulk" {
				bodyBytes, _ := io.ReadAll(r.Body)
				receivedBody = string(bodyBytes)

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"took":   5,
					"errors": false,
					"items": []map[string]any{
						{"index": map[string]any{"_id": "v1", "status": 201, "result": "created"}},
						{"index": map[string]any{"_id": "v2", "status": 201, "result": "created"}},
					},
				})
			}
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		err := client.BulkIndex(context.Background(), "test-index", createTestDocuments(2))
		assert.NoError(t, err)

		assert.Contains(t, receivedBody, `"_index":"test-index"`)
		assert.Contains(t, receivedBody, `"_id":"v1"`)
		assert.Contains(t, receivedBody, `"_id":"v2"`)
		assert.Contains(t, receivedBody, `"title":"Presentation 1"`)
	})

	t.Run("empty document list", func(t *testing.T) {
		called := false
		server := createMockESServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		err := client.BulkIndex(context.Background(), "test-index", []domain.PresentationDocument{})
		assert.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("bulk indexing with errors", func(t *testing.T) {
		server := createMockESServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == "POST" && r.URL.Path == "/_bulk" {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"took":   5,
					"errors": true,
					"items": []map[string]any{
						{"index": map[string]any{"_id": "v1", "status": 201, "result": "created"}},
						{
							"index": map[string]any{
								"_id":    "v2",
								"status": 400,
								"error": map[string]any{
									"type":   "mapper_parsing_exception",
									"reason": "failed to parse field [averageRate]",
								},
							},
						},
					},
				})
			}
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		err := client.BulkIndex(context.Background(), "test-index", createTestDocuments(2))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "bulk index had errors")
		assert.Contains(t, err.Error(), "mapper_parsing_exception")
		assert.Contains(t, err.Error(), "v2")
	})

	t.Run("http error response", func(t *testing.T) {
		server := createMockESServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == "POST" && r.URL.Path == "/_bulk" {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"server error"}`))
			}
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		err := client.BulkIndex(context.Background(), "test-index", createTestDocuments(1))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "bulk index error")
	})
}

func TestEncodeBulk(t *testing.T) {
	body, err := encodeBulk("test-index", createTestDocuments(1))
	require.NoError(t, err)

	// action line, source line, trailing newline
	lines := strings.Split(string(body), "\n")
	require.Len(t, lines, 3)
	assert.Empty(t, lines[2])

	var action map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &action))
	assert.Equal(t, "test-index", action["index"]["_index"])
	assert.Equal(t, "v1", action["index"]["_id"])

	var doc domain.PresentationDocument
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &doc))
	assert.Equal(t, createTestDocuments(1)[0], doc)
}

func TestPresentationIndexMapping(t *testing.T) {
	var mapping struct {
		Mappings struct {
			Properties map[string]map[string]any `json:"properties"`
		} `json:"mappings"`
	}
	require.NoError(t, json.Unmarshal([]byte(PresentationIndexMapping), &mapping))

	// every document field has a mapping
	raw, err := json.Marshal(createTestDocuments(1)[0])
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	for field := range fields {
		assert.Contains(t, mapping.Mappings.Properties, field)
	}
	assert.Equal(t, "keyword", mapping.Mappings.Properties["year"]["type"])
}

// createMockESServer wraps handler with the product header and info endpoint the client expects
func createMockESServer(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")

		if r.Method == "GET" && r.URL.Path == "/" {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"version": map[string]any{"number": "9.0.0"},
			})
			return
		}

		handler(w, r)
	}))
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	client, err := NewWithURL(url, "", "")
	require.NoError(t, err)
	return client
}

func createTestDocuments(count int) []domain.PresentationDocument {
	docs := make([]domain.PresentationDocument, 0, count)
	for i := 1; i <= count; i++ {
		docs = append(docs, domain.PresentationDocument{
			ID:             "v" + string(rune('0'+i)),
			ConferenceID:   "11",
			ConferenceName: "Confitura",
			Year:           "2015",
			Title:          "Presentation " + string(rune('0'+i)),
			Description:    "Description",
			RateCount:      2,
			AverageRate:    3.5,
			CommentCount:   1,
		})
	}
	return docs
}
