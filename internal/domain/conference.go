package domain

// Conference is a named event owning an ordered list of presentations.
// The presentation list is fixed once the conference is constructed.
type Conference struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Presentations []*Presentation `json:"presentations"`
}

// NewConference builds a conference from video records, keeping source order
func NewConference(id, name string, videos []VideoRecord) *Conference {
	presentations := make([]*Presentation, 0, len(videos))
	for _, v := range videos {
		presentations = append(presentations, NewPresentation(v))
	}
	return &Conference{
		ID:            id,
		Name:          name,
		Presentations: presentations,
	}
}

// FindPresentation returns the presentation with the given id, if the conference holds it
func (c *Conference) FindPresentation(id string) (*Presentation, bool) {
	for _, p := range c.Presentations {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Clone returns a deep copy, presentations included
func (c *Conference) Clone() *Conference {
	out := &Conference{
		ID:            c.ID,
		Name:          c.Name,
		Presentations: make([]*Presentation, len(c.Presentations)),
	}
	for i, p := range c.Presentations {
		out.Presentations[i] = p.Clone()
	}
	return out
}

// Without returns a copy of the conference minus the presentations with the given ids
func (c *Conference) Without(ids ...string) *Conference {
	skip := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		skip[id] = struct{}{}
	}

	out := &Conference{
		ID:            c.ID,
		Name:          c.Name,
		Presentations: make([]*Presentation, 0, len(c.Presentations)),
	}
	for _, p := range c.Presentations {
		if _, ok := skip[p.ID]; ok {
			continue
		}
		out.Presentations = append(out.Presentations, p.Clone())
	}
	return out
}
