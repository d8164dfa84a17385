package render

import (
	"fmt"

	"ydwatch/internal/progress"
)

// InvariantError reports a status that contradicted what was already drawn.
// The renderer has clamped the value; the error is informational.
type InvariantError struct {
	Field    string
	Reported int
	Kept     int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("render: server reported %s=%d, kept %d", e.Field, e.Reported, e.Kept)
}

// Renderer turns parsed counts into segments on a Surface.
type Renderer struct {
	surface  Surface
	animator *Animator
}

// NewRenderer returns a renderer drawing into surface and handing the
// active segment to animator.
func NewRenderer(surface Surface, animator *Animator) *Renderer {
	return &Renderer{surface: surface, animator: animator}
}

// Reconcile draws the segments finished since the last call at full fill and
// starts the fill animation of the newly active one. Indexes at or below
// st.LastRendered() are never drawn again, so replaying a snapshot is a no-op.
func (r *Renderer) Reconcile(st *State, c progress.Counts, outcomes string) error {
	if st.finalized {
		return nil
	}
	st.fixTotal(c.Total)
	if st.total == 0 {
		if c.Downloaded > 0 {
			return &InvariantError{Field: "total", Reported: c.Total, Kept: 0}
		}
		return nil
	}

	var inv error
	if c.Total != st.total {
		inv = &InvariantError{Field: "total", Reported: c.Total, Kept: st.total}
	}
	downloaded := c.Downloaded
	switch {
	case downloaded > st.total:
		inv = &InvariantError{Field: "downloaded", Reported: downloaded, Kept: st.total}
		downloaded = st.total
	case downloaded < st.lastRendered:
		inv = &InvariantError{Field: "downloaded", Reported: downloaded, Kept: st.lastRendered}
	}

	for st.lastRendered < downloaded-1 {
		idx := st.lastRendered + 1
		r.appendSegment(st, idx, outcomes, 100)
		st.advance(idx)
	}
	if st.lastRendered < downloaded {
		idx := st.lastRendered + 1
		seg := r.appendSegment(st, idx, outcomes, 0)
		r.animator.Animate(seg)
		st.advance(idx)
	}
	return inv
}

// Redraw replaces everything drawn so far with exactly total full segments
// colored from outcomes. It is the terminal backstop: the final bar matches
// the server regardless of which intermediate snapshots were seen.
func (r *Renderer) Redraw(st *State, total int, outcomes string) {
	r.animator.Stop()
	r.surface.ClearSegments()
	st.segments = nil
	st.finalized = true
	if total <= 0 {
		return
	}
	width := 100 / float64(total)
	for i := 1; i <= total; i++ {
		o, _ := progress.OutcomeAt(outcomes, i)
		seg := &Segment{Index: i, WidthPercent: width, Outcome: o, Fill: 100}
		st.segments = append(st.segments, seg)
		r.surface.AppendSegment(*seg)
	}
	st.advance(total)
	// The terminal total replaces the one fixed earlier, but never drops
	// below an index already rendered.
	st.total = max(total, st.lastRendered)
}

func (r *Renderer) appendSegment(st *State, idx int, outcomes string, fill int) *Segment {
	o, _ := progress.OutcomeAt(outcomes, idx)
	seg := &Segment{Index: idx, WidthPercent: st.widthPercent(), Outcome: o, Fill: fill}
	st.segments = append(st.segments, seg)
	r.surface.AppendSegment(*seg)
	return seg
}
