package result

// Story is a single search hit shaped for display.
type Story struct {
	id          string
	score       float64
	title       string
	description string
}

// New creates a story result.
func New(id string, score float64, title, description string) Story {
	return Story{id: id, score: score, title: title, description: description}
}

// ID returns the document identifier.
func (s *Story) ID() string { return s.id }

// Score returns the similarity score reported by the index.
func (s *Story) Score() float64 { return s.score }

// Title returns the display title.
func (s *Story) Title() string { return s.title }

// Description returns the display description.
func (s *Story) Description() string { return s.description }
