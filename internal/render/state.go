package render

// State records what a session has already drawn. It is the ledger that keeps
// a segment index from ever being created twice.
type State struct {
	lastRendered int
	total        int
	finalized    bool
	segments     []*Segment
}

// NewState returns an empty ledger for a new polling session.
func NewState() *State {
	return &State{}
}

// LastRendered is the highest segment index drawn so far (0 = none).
func (s *State) LastRendered() int { return s.lastRendered }

// Total is the segment count fixed for the session, 0 until known.
func (s *State) Total() int { return s.total }

// Finalized reports whether the terminal redraw has happened.
func (s *State) Finalized() bool { return s.finalized }

// Segments returns a copy of the drawn segments in index order.
func (s *State) Segments() []Segment {
	out := make([]Segment, 0, len(s.segments))
	for _, seg := range s.segments {
		out = append(out, *seg)
	}
	return out
}

// fixTotal sets the total once; later values are ignored.
func (s *State) fixTotal(n int) bool {
	if s.total > 0 || n <= 0 {
		return false
	}
	s.total = n
	return true
}

func (s *State) advance(index int) {
	if index > s.lastRendered {
		s.lastRendered = index
	}
}

func (s *State) widthPercent() float64 {
	if s.total <= 0 {
		return 0
	}
	return 100 / float64(s.total)
}
