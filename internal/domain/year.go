package domain

// Year groups the conferences assigned to it
type Year struct {
	Year        string
	Conferences []*Conference
}

// YearView is a read-only copy of a Year
type YearView struct {
	Year        string       `json:"year"`
	Conferences []Conference `json:"conferences"`
}

// YearIndex is the fixed set of supported years, created once and never shrunk
type YearIndex struct {
	years []*Year
}

// NewYearIndex creates one empty Year per supported year, in the given order
func NewYearIndex(years ...string) *YearIndex {
	idx := &YearIndex{years: make([]*Year, 0, len(years))}
	for _, y := range years {
		idx.years = append(idx.years, &Year{Year: y, Conferences: []*Conference{}})
	}
	return idx
}

// Assign appends the conference to every Year matching year.
// It reports whether any Year matched; no match leaves the index unchanged.
func (idx *YearIndex) Assign(year string, c *Conference) bool {
	assigned := false
	for _, y := range idx.years {
		if y.Year == year {
			y.Conferences = append(y.Conferences, c)
			assigned = true
		}
	}
	return assigned
}

// Supports reports whether year has an entry in the index
func (idx *YearIndex) Supports(year string) bool {
	for _, y := range idx.years {
		if y.Year == year {
			return true
		}
	}
	return false
}

// YearOf returns the year a conference was assigned to, if any
func (idx *YearIndex) YearOf(conferenceID string) (string, bool) {
	for _, y := range idx.years {
		for _, c := range y.Conferences {
			if c.ID == conferenceID {
				return y.Year, true
			}
		}
	}
	return "", false
}

// Years returns the supported year strings in index order
func (idx *YearIndex) Years() []string {
	out := make([]string, len(idx.years))
	for i, y := range idx.years {
		out[i] = y.Year
	}
	return out
}

// Views returns deep copies of every Year in index order
func (idx *YearIndex) Views() []YearView {
	out := make([]YearView, 0, len(idx.years))
	for _, y := range idx.years {
		view := YearView{Year: y.Year, Conferences: make([]Conference, 0, len(y.Conferences))}
		for _, c := range y.Conferences {
			view.Conferences = append(view.Conferences, *c.Clone())
		}
		out = append(out, view)
	}
	return out
}
