// Package render keeps the segmented progress bar in step with the job status.
//
// A session owns one State, one Renderer and one Animator. They are not safe
// for concurrent use; the poller drives all three from a single goroutine.
package render

import "ydwatch/internal/progress"

// Segment is one drawn unit of the segmented bar.
type Segment struct {
	Index        int // 1-based, left to right
	WidthPercent float64
	Outcome      progress.Outcome
	Fill         int // 0..100
}

// Surface is the set of display elements a session draws into.
// Segments are addressed by their index.
type Surface interface {
	AppendSegment(seg Segment)
	SetFill(index, fill int)
	ClearSegments()
	SetLabel(text string)
	HideProgress()
	EnableControls()
}
