package ports

import (
	"context"

	"github.com/javaBin/speechrank/internal/domain"
)

// VideoSource defines the interface for fetching playlist contents from a video-hosting service
type VideoSource interface {
	// FetchPlaylist returns the videos of a playlist in playlist order.
	// Failures wrap domain.ErrSourceUnavailable.
	FetchPlaylist(ctx context.Context, playlistID string) ([]domain.VideoRecord, error)
}
