// Package rendertest provides a Surface that records what was drawn.
package rendertest

import (
	"sync"

	"ydwatch/internal/render"
)

// Recorder implements render.Surface in memory. It is safe for concurrent use
// so tests can inspect it while a session runs.
type Recorder struct {
	mu sync.Mutex

	segments []render.Segment
	appends  int
	clears   int
	labels   []string
	hidden   bool
	enabled  bool
}

func (r *Recorder) AppendSegment(seg render.Segment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments = append(r.segments, seg)
	r.appends++
}

func (r *Recorder) SetFill(index, fill int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.segments {
		if r.segments[i].Index == index {
			r.segments[i].Fill = fill
		}
	}
}

func (r *Recorder) ClearSegments() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments = nil
	r.clears++
}

func (r *Recorder) SetLabel(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.labels = append(r.labels, text)
}

func (r *Recorder) HideProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hidden = true
}

func (r *Recorder) EnableControls() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = true
}

// Segments returns a copy of the currently drawn segments.
func (r *Recorder) Segments() []render.Segment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]render.Segment(nil), r.segments...)
}

// Appends counts every AppendSegment call, including ones later cleared.
func (r *Recorder) Appends() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appends
}

// Clears counts ClearSegments calls.
func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}

// Labels returns every label set, oldest first.
func (r *Recorder) Labels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.labels...)
}

// Hidden reports whether HideProgress was called.
func (r *Recorder) Hidden() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hidden
}

// ControlsEnabled reports whether EnableControls was called.
func (r *Recorder) ControlsEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}
