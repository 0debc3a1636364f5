package models

// Deck is the deck-level result of an extraction run.
type Deck struct {
	// Name is the deck file name (no path).
	Name string `json:"name"`
	// SlideTitles maps slide number to its resolved title.
	SlideTitles map[int]string `json:"slide_titles"`
	// Charts holds every chart part, ordered by path.
	Charts []ChartData `json:"-"`
}

// TitleFor returns the title of the given slide, or "" when unknown.
func (d *Deck) TitleFor(slide int) string {
	if d == nil {
		return ""
	}
	return d.SlideTitles[slide]
}
