package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/javaBin/speechrank/internal/config"
	"github.com/javaBin/speechrank/internal/domain"
)

// PageSize is the number of playlist items requested per import. Further pages are not fetched.
const PageSize = 25

// Client implements the VideoSource interface for the YouTube Data API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries uint64
	newBackOff func() backoff.BackOff
	logger     *slog.Logger
}

// New creates a new YouTube Client, retrieving configuration from context
func New(ctx context.Context) (*Client, error) {
	cfg := config.GetConfig(ctx)
	if _, err := url.Parse(cfg.YouTube.URL); err != nil {
		return nil, fmt.Errorf("invalid youtube url: %w", err)
	}

	return &Client{
		baseURL: cfg.YouTube.URL,
		apiKey:  cfg.YouTube.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.YouTube.Timeout,
		},
		maxRetries: cfg.YouTube.MaxRetries,
		newBackOff: defaultBackOff,
		logger:     slog.Default().With("component", "youtube"),
	}, nil
}

// NewWithHTTPClient creates a new YouTube Client with a custom HTTP client.
// Retries happen immediately, without waiting between attempts.
// This constructor is primarily intended for testing purposes.
func NewWithHTTPClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		maxRetries: 2,
		newBackOff: func() backoff.BackOff { return &backoff.ZeroBackOff{} },
		logger:     slog.Default().With("component", "youtube"),
	}
}

// SetLogger sets a custom logger for the client
func (c *Client) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// SetMaxRetries sets how many times a failed request is retried
func (c *Client) SetMaxRetries(n uint64) {
	c.maxRetries = n
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	return b
}

// FetchPlaylist retrieves the first page of a playlist.
// Transport failures, 429 and 5xx answers are retried with exponential backoff;
// every failure wraps domain.ErrSourceUnavailable.
func (c *Client) FetchPlaylist(ctx context.Context, playlistID string) ([]domain.VideoRecord, error) {
	c.logger.InfoContext(ctx, "Fetching playlist from YouTube API",
		"playlistID", playlistID,
	)

	var videos []domain.VideoRecord
	operation := func() error {
		var err error
		videos, err = c.fetchOnce(ctx, playlistID)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.maxRetries), ctx)
	notify := func(err error, wait time.Duration) {
		c.logger.WarnContext(ctx, "YouTube request failed, retrying",
			"playlistID", playlistID,
			"error", err,
			"wait", wait,
		)
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		if !errors.Is(err, domain.ErrSourceUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
		}
		return nil, fmt.Errorf("failed to fetch playlist %s: %w", playlistID, err)
	}

	c.logger.InfoContext(ctx, "Successfully fetched playlist",
		"playlistID", playlistID,
		"count", len(videos),
	)

	return videos, nil
}

// fetchOnce performs a single playlistItems request.
// Errors that must not be retried are wrapped with backoff.Permanent.
func (c *Client) fetchOnce(ctx context.Context, playlistID string) ([]domain.VideoRecord, error) {
	query := url.Values{}
	query.Set("part", "contentDetails,snippet")
	query.Set("playlistId", playlistID)
	query.Set("maxResults", strconv.Itoa(PageSize))
	if c.apiKey != "" {
		query.Set("key", c.apiKey)
	}
	endpoint := c.baseURL + "/playlistItems?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: failed to create request: %w", domain.ErrSourceUnavailable, err))
	}
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "Making HTTP request",
		"method", http.MethodGet,
		"playlistID", playlistID,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", domain.ErrSourceUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		serviceErr := newServiceError(resp.StatusCode, body)
		c.logger.ErrorContext(ctx, "YouTube request failed",
			"status", resp.StatusCode,
			"playlistID", playlistID,
			"error", serviceErr,
		)
		if serviceErr.Temporary() {
			return nil, serviceErr
		}
		return nil, backoff.Permanent(serviceErr)
	}

	var response PlaylistItemListResponse
	if err := json.Unmarshal(body, &response); err != nil {
		c.logger.ErrorContext(ctx, "Failed to unmarshal playlist response",
			"error", err,
			"playlistID", playlistID,
		)
		return nil, backoff.Permanent(fmt.Errorf("%w: failed to unmarshal playlist items: %w", domain.ErrSourceUnavailable, err))
	}

	return MapVideos(response.Items), nil
}

func newServiceError(status int, body []byte) *ServiceError {
	serviceErr := &ServiceError{
		StatusCode: status,
		Code:       status,
		Message:    http.StatusText(status),
	}

	var envelope ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Code != 0 {
		serviceErr.Code = envelope.Error.Code
		serviceErr.Message = envelope.Error.Message
		if len(envelope.Error.Errors) > 0 {
			serviceErr.Reason = envelope.Error.Errors[0].Reason
		}
	}

	return serviceErr
}
