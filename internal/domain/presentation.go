package domain

import "time"

// VideoRecord is one video as delivered by the video source
type VideoRecord struct {
	VideoID     string
	Title       string
	Description string
}

// Rate is a score given to a presentation, referenced by presentation id
type Rate struct {
	PresentationID string `json:"presentationId" validate:"notblank"`
	Value          int    `json:"value" validate:"min=1,max=5"`
	UserID         string `json:"userId,omitempty"`
}

// Comment is free-text feedback on a presentation, referenced by presentation id
type Comment struct {
	PresentationID string    `json:"presentationId" validate:"notblank"`
	Text           string    `json:"text" validate:"notblank,max=4000"`
	Author         string    `json:"author,omitempty" validate:"max=200"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Presentation is a single talk. It owns the rates and comments attached to it.
type Presentation struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Rates       []Rate    `json:"rates"`
	Comments    []Comment `json:"comments"`
}

// NewPresentation maps a video record to a presentation with no feedback attached
func NewPresentation(v VideoRecord) *Presentation {
	return &Presentation{
		ID:          v.VideoID,
		Title:       v.Title,
		Description: v.Description,
		Rates:       []Rate{},
		Comments:    []Comment{},
	}
}

// AddRate attaches a rate
func (p *Presentation) AddRate(r Rate) {
	p.Rates = append(p.Rates, r)
}

// AddComment attaches a comment
func (p *Presentation) AddComment(c Comment) {
	p.Comments = append(p.Comments, c)
}

// AverageRate returns the mean rate value, or 0 when nothing has been rated
func (p *Presentation) AverageRate() float64 {
	if len(p.Rates) == 0 {
		return 0
	}
	sum := 0
	for _, r := range p.Rates {
		sum += r.Value
	}
	return float64(sum) / float64(len(p.Rates))
}

// Clone returns a deep copy
func (p *Presentation) Clone() *Presentation {
	c := *p
	c.Rates = append([]Rate{}, p.Rates...)
	c.Comments = append([]Comment{}, p.Comments...)
	return &c
}
