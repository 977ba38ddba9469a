package domain

import (
	"net/url"
	"strings"
)

// ImportJob describes one playlist import into a known conference id and year
type ImportJob struct {
	Year         string `yaml:"year" validate:"year"`
	ConferenceID string `yaml:"id" validate:"notblank"`
	Name         string `yaml:"name" validate:"notblank"`
	PlaylistID   string `yaml:"playlist" validate:"notblank"`
}

// ImportRequest is an ad-hoc import. PlaylistLink may be a bare playlist id or a YouTube URL.
type ImportRequest struct {
	Name         string `json:"name" validate:"notblank,max=200"`
	Year         string `json:"year" validate:"year"`
	PlaylistLink string `json:"playlistLink" validate:"notblank"`
}

// ImportResult is the outcome of one import.
// Conference is always set; Err is set when the source failed and the conference was
// created without presentations, or when the repository rejected it.
// Dropped lists video ids left out because the playlist repeated them or another
// conference already held them.
type ImportResult struct {
	Year         string
	Conference   *Conference
	YearAssigned bool
	Added        bool
	Dropped      []string
	Err          error
}

// Failed reports whether the import did not complete cleanly
func (r ImportResult) Failed() bool {
	return r.Err != nil
}

// ParsePlaylistID extracts the playlist id from a YouTube link.
// Anything that is not a URL with a "list" query parameter is returned trimmed, as is.
func ParsePlaylistID(link string) string {
	link = strings.TrimSpace(link)
	if !strings.Contains(link, "://") {
		return link
	}

	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	if list := u.Query().Get("list"); list != "" {
		return list
	}
	return link
}
