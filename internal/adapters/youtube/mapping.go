package youtube

import (
	"fmt"

	"github.com/javaBin/speechrank/internal/domain"
)

// PlaylistItemListResponse is the playlistItems.list response shape
type PlaylistItemListResponse struct {
	Items         []PlaylistItem `json:"items"`
	NextPageToken string         `json:"nextPageToken,omitempty"`
}

// PlaylistItem is one entry of a playlist
type PlaylistItem struct {
	Snippet        *Snippet        `json:"snippet,omitempty"`
	ContentDetails *ContentDetails `json:"contentDetails,omitempty"`
}

// Snippet carries the human readable part of a playlist item
type Snippet struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ResourceID  *ResourceID `json:"resourceId,omitempty"`
}

// ResourceID points at the video a playlist item refers to
type ResourceID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

// ContentDetails carries the video id of a playlist item
type ContentDetails struct {
	VideoID string `json:"videoId"`
}

// ErrorResponse is the error envelope returned by Google APIs
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// ServiceError is returned when the YouTube API answers with a non-200 status
type ServiceError struct {
	StatusCode int
	Code       int
	Reason     string
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("youtube service error %d (%s): %s", e.Code, e.Reason, e.Message)
	}
	return fmt.Sprintf("youtube service error %d: %s", e.Code, e.Message)
}

// Unwrap lets errors.Is match domain.ErrSourceUnavailable
func (e *ServiceError) Unwrap() error {
	return domain.ErrSourceUnavailable
}

// Temporary reports whether the request is worth retrying
func (e *ServiceError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// MapVideo converts a playlist item to a video record.
// It returns false when the item carries no video id.
func MapVideo(item PlaylistItem) (domain.VideoRecord, bool) {
	var v domain.VideoRecord

	if item.ContentDetails != nil {
		v.VideoID = item.ContentDetails.VideoID
	}
	if item.Snippet != nil {
		v.Title = item.Snippet.Title
		v.Description = item.Snippet.Description
		if v.VideoID == "" && item.Snippet.ResourceID != nil {
			v.VideoID = item.Snippet.ResourceID.VideoID
		}
	}

	return v, v.VideoID != ""
}

// MapVideos converts playlist items in order, dropping items without a video id
// and keeping at most PageSize records
func MapVideos(items []PlaylistItem) []domain.VideoRecord {
	videos := make([]domain.VideoRecord, 0, len(items))
	for _, item := range items {
		if len(videos) == PageSize {
			break
		}
		if v, ok := MapVideo(item); ok {
			videos = append(videos, v)
		}
	}
	return videos
}
