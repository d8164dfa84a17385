package render

import "time"

// DefaultFillStep is the delay between one-percent fill increments.
const DefaultFillStep = 35 * time.Millisecond

// Animator fills the active segment from 0 to 100 one percent per tick.
// It is the only writer of that segment's fill while the animation runs,
// and at most one segment animates at a time.
type Animator struct {
	step    time.Duration
	surface Surface
	ticker  *time.Ticker
	seg     *Segment
}

// NewAnimator returns an idle animator drawing into surface.
func NewAnimator(surface Surface, step time.Duration) *Animator {
	if step <= 0 {
		step = DefaultFillStep
	}
	return &Animator{step: step, surface: surface}
}

// Animate starts filling seg. A segment that was still animating is no longer
// the active one, so it is completed immediately before its timer is dropped.
func (a *Animator) Animate(seg *Segment) {
	if a.seg != nil && a.seg != seg {
		a.seg.Fill = 100
		a.surface.SetFill(a.seg.Index, 100)
	}
	a.release()
	if seg == nil || seg.Fill >= 100 {
		return
	}
	a.seg = seg
	a.ticker = time.NewTicker(a.step)
}

// C delivers animation ticks. It returns nil while idle so a select on it blocks.
func (a *Animator) C() <-chan time.Time {
	if a.ticker == nil {
		return nil
	}
	return a.ticker.C
}

// Step advances the active segment by one percent and reports whether the
// animation is still running afterwards.
func (a *Animator) Step() bool {
	if a.seg == nil {
		return false
	}
	if a.seg.Fill < 100 {
		a.seg.Fill++
		a.surface.SetFill(a.seg.Index, a.seg.Fill)
	}
	if a.seg.Fill >= 100 {
		a.release()
		return false
	}
	return true
}

// Active returns the index of the animating segment.
func (a *Animator) Active() (int, bool) {
	if a.seg == nil {
		return 0, false
	}
	return a.seg.Index, true
}

// Stop cancels the running animation and leaves the segment where it is.
func (a *Animator) Stop() {
	a.release()
}

func (a *Animator) release() {
	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
	}
	a.seg = nil
}
