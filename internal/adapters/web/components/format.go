package components

//go:generate go tool templ generate

import (
	"fmt"
	"net/url"

	"github.com/a-h/templ"

	"github.com/javaBin/speechrank/internal/domain"
)

// ConferenceURL is the dashboard path of one conference
func ConferenceURL(id string) templ.SafeURL {
	return templ.URL("/conferences/" + url.PathEscape(id))
}

// WatchURL links a presentation to its video
func WatchURL(id string) templ.SafeURL {
	return templ.URL("https://www.youtube.com/watch?v=" + url.QueryEscape(id))
}

// FormatRating renders the average rate with one decimal, or a dash when unrated
func FormatRating(p *domain.Presentation) string {
	if len(p.Rates) == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", p.AverageRate())
}

func presentationCount(c domain.Conference) string {
	return fmt.Sprintf("%d presentations", len(c.Presentations))
}

func titleOf(p *domain.Presentation) string {
	if p.Title == "" {
		return p.ID
	}
	return p.Title
}
