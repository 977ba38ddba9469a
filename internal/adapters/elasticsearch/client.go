package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
	"github.com/javaBin/speechrank/internal/config"
	"github.com/javaBin/speechrank/internal/domain"
)

// Client implements the SearchIndex interface for Elasticsearch operations.
type Client struct {
	es     *elasticsearch.Client
	logger *slog.Logger
}

// New creates a new Elasticsearch client, retrieving configuration from context.
func New(ctx context.Context) (*Client, error) {
	appCfg := config.GetConfig(ctx)

	esCfg := elasticsearch.Config{
		Addresses: []string{appCfg.Elasticsearch.URL},
	}

	// Add authentication if credentials are provided
	if appCfg.Elasticsearch.HasCredentials() {
		esCfg.Username = appCfg.Elasticsearch.User
		esCfg.Password = appCfg.Elasticsearch.Password
	}

	return connect(esCfg)
}

// NewWithURL creates a new Elasticsearch client with explicit URL and credentials.
// This constructor is primarily intended for testing purposes.
func NewWithURL(elasticsearchURL, username, password string) (*Client, error) {
	esCfg := elasticsearch.Config{
		Addresses: []string{elasticsearchURL},
	}

	if username != "" && password != "" {
		esCfg.Username = username
		esCfg.Password = password
	}

	return connect(esCfg)
}

// connect builds the client and verifies the cluster answers
func connect(esCfg elasticsearch.Config) (*Client, error) {
	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch connection error: %s - %s", res.Status(), string(body))
	}

	logger := slog.Default().With("component", "elasticsearch")
	logger.Info("connected to elasticsearch",
		"url", strings.Join(esCfg.Addresses, ","),
		"authenticated", esCfg.Username != "",
	)

	return &Client{
		es:     es,
		logger: logger,
	}, nil
}

// bulkResponse is the part of the Bulk API response needed to report item failures
type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// BulkIndex upserts presentation documents using the Bulk API.
// Each document is indexed with the presentation id as document id, so
// reindexing a presentation replaces the previous version.
func (c *Client) BulkIndex(ctx context.Context, indexName string, docs []domain.PresentationDocument) error {
	if len(docs) == 0 {
		c.logger.Info("no presentations to index", "index", indexName)
		return nil
	}

	body, err := encodeBulk(indexName, docs)
	if err != nil {
		return err
	}

	req := esapi.BulkRequest{
		Body:    bytes.NewReader(body),
		Refresh: "true",
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("failed to execute bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("bulk index error: %s - %s", res.Status(), string(body))
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to parse bulk response: %w", err)
	}

	if parsed.Errors {
		var errorDetails []string
		for _, item := range parsed.Items {
			for action, details := range item {
				if details.Status >= 400 {
					errorDetails = append(errorDetails, fmt.Sprintf(
						"%s failed for doc %s (status %d): %s - %s",
						action, details.ID, details.Status, details.Error.Type, details.Error.Reason,
					))
				}
			}
		}
		return fmt.Errorf("bulk index had errors: %s", strings.Join(errorDetails, "; "))
	}

	c.logger.Info("bulk indexed presentations", "index", indexName, "count", len(docs))
	return nil
}

// encodeBulk writes the newline-delimited action and source lines of a bulk request
func encodeBulk(indexName string, docs []domain.PresentationDocument) ([]byte, error) {
	var buf bytes.Buffer

	for _, doc := range docs {
		meta := map[string]any{
			"index": map[string]any{
				"_index": indexName,
				"_id":    doc.ID,
			},
		}
		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal bulk metadata for presentation %s: %w", doc.ID, err)
		}

		docJSON, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal presentation %s: %w", doc.ID, err)
		}

		buf.Write(metaJSON)
		buf.WriteByte('\n')
		buf.Write(docJSON)
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

// DeleteIndex removes an index from Elasticsearch.
func (c *Client) DeleteIndex(ctx context.Context, indexName string) error {
	req := esapi.IndicesDeleteRequest{
		Index: []string{indexName},
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("failed to delete index %s: %w", indexName, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		// 404 is acceptable - index already doesn't exist
		if res.StatusCode == http.StatusNotFound {
			c.logger.Info("index does not exist (already deleted)", "index", indexName)
			return nil
		}

		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("delete index error: %s - %s", res.Status(), string(body))
	}

	c.logger.Info("deleted index", "index", indexName)
	return nil
}

// CreateIndex creates a new index with the specified mapping.
func (c *Client) CreateIndex(ctx context.Context, indexName string, mapping string) error {
	req := esapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(mapping),
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", indexName, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("create index error: %s - %s", res.Status(), string(body))
	}

	c.logger.Info("created index", "index", indexName)
	return nil
}

// IndexExists checks if an index exists in Elasticsearch.
func (c *Client) IndexExists(ctx context.Context, indexName string) (bool, error) {
	req := esapi.IndicesExistsRequest{
		Index: []string{indexName},
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return false, fmt.Errorf("failed to check if index exists %s: %w", indexName, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	}

	body, _ := io.ReadAll(res.Body)
	return false, fmt.Errorf("index exists check error: %s - %s", res.Status(), string(body))
}
