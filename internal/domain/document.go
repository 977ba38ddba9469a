package domain

// PresentationDocument is the flattened form of a presentation stored in the search index
type PresentationDocument struct {
	ID             string  `json:"id"`
	ConferenceID   string  `json:"conferenceId"`
	ConferenceName string  `json:"conferenceName"`
	Year           string  `json:"year,omitempty"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	RateCount      int     `json:"rateCount"`
	AverageRate    float64 `json:"averageRate"`
	CommentCount   int     `json:"commentCount"`
}

// NewPresentationDocument flattens p with its conference and year
func NewPresentationDocument(year string, c *Conference, p *Presentation) PresentationDocument {
	return PresentationDocument{
		ID:             p.ID,
		ConferenceID:   c.ID,
		ConferenceName: c.Name,
		Year:           year,
		Title:          p.Title,
		Description:    p.Description,
		RateCount:      len(p.Rates),
		AverageRate:    p.AverageRate(),
		CommentCount:   len(p.Comments),
	}
}
