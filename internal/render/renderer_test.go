package render_test

import (
	"errors"
	"testing"

	"ydwatch/internal/progress"
	"ydwatch/internal/render"
	"ydwatch/internal/render/rendertest"
)

func newRenderer() (*render.Renderer, *render.Animator, *rendertest.Recorder) {
	rec := &rendertest.Recorder{}
	anim := render.NewAnimator(rec, render.DefaultFillStep)
	return render.NewRenderer(rec, anim), anim, rec
}

func TestReconcileDrawsFinishedAndActive(t *testing.T) {
	r, anim, rec := newRenderer()
	defer anim.Stop()
	st := render.NewState()

	if err := r.Reconcile(st, progress.Counts{Downloaded: 3, Total: 5}, "02"); err != nil {
		t.Fatalf("Reconcile() unexpected error: %v", err)
	}

	segs := rec.Segments()
	if len(segs) != 3 {
		t.Fatalf("drawn segments = %d, want 3", len(segs))
	}
	wantFill := []int{100, 100, 0}
	wantOutcome := []progress.Outcome{progress.OutcomeOK, progress.OutcomePartialFailure, progress.OutcomeOK}
	for i, seg := range segs {
		if seg.Index != i+1 {
			t.Errorf("segment %d Index = %d, want %d", i, seg.Index, i+1)
		}
		if seg.Fill != wantFill[i] {
			t.Errorf("segment %d Fill = %d, want %d", seg.Index, seg.Fill, wantFill[i])
		}
		if seg.Outcome != wantOutcome[i] {
			t.Errorf("segment %d Outcome = %v, want %v", seg.Index, seg.Outcome, wantOutcome[i])
		}
		if seg.WidthPercent != 20 {
			t.Errorf("segment %d WidthPercent = %v, want 20", seg.Index, seg.WidthPercent)
		}
	}
	if st.LastRendered() != 3 {
		t.Errorf("LastRendered() = %d, want 3", st.LastRendered())
	}
	if idx, ok := anim.Active(); !ok || idx != 3 {
		t.Errorf("Active() = %d, %v, want 3, true", idx, ok)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	r, anim, rec := newRenderer()
	defer anim.Stop()
	st := render.NewState()
	c := progress.Counts{Downloaded: 4, Total: 10}

	if err := r.Reconcile(st, c, "000"); err != nil {
		t.Fatalf("Reconcile() unexpected error: %v", err)
	}
	first := rec.Appends()
	if err := r.Reconcile(st, c, "000"); err != nil {
		t.Fatalf("Reconcile() replay unexpected error: %v", err)
	}
	if got := rec.Appends(); got != first {
		t.Errorf("Appends() after replay = %d, want %d", got, first)
	}
	if got := len(st.Segments()); got != 4 {
		t.Errorf("state segments = %d, want 4", got)
	}
}

func TestReconcileMonotonic(t *testing.T) {
	r, anim, _ := newRenderer()
	defer anim.Stop()
	st := render.NewState()

	seq := []progress.Counts{
		{Downloaded: 2, Total: 6},
		{Downloaded: 5, Total: 6},
		{Downloaded: 3, Total: 6}, // stale response arriving late
		{Downloaded: 5, Total: 6},
		{Downloaded: 6, Total: 6},
	}
	last := 0
	for i, c := range seq {
		err := r.Reconcile(st, c, "")
		if c.Downloaded < last {
			var inv *render.InvariantError
			if !errors.As(err, &inv) {
				t.Errorf("step %d: Reconcile() error = %v, want *InvariantError", i, err)
			}
		}
		if st.LastRendered() < last {
			t.Fatalf("step %d: LastRendered() decreased from %d to %d", i, last, st.LastRendered())
		}
		last = st.LastRendered()
	}
	if last != 6 {
		t.Errorf("final LastRendered() = %d, want 6", last)
	}
	segs := st.Segments()
	for i, seg := range segs {
		if seg.Index != i+1 {
			t.Errorf("segment %d has Index %d; indexes must be unique and ordered", i, seg.Index)
		}
	}
}

func TestReconcileClampsDownloaded(t *testing.T) {
	r, anim, rec := newRenderer()
	defer anim.Stop()
	st := render.NewState()

	err := r.Reconcile(st, progress.Counts{Downloaded: 7, Total: 5}, "")
	var inv *render.InvariantError
	if !errors.As(err, &inv) || inv.Field != "downloaded" {
		t.Fatalf("Reconcile() error = %v, want downloaded InvariantError", err)
	}
	if got := len(rec.Segments()); got != 5 {
		t.Errorf("drawn segments = %d, want 5", got)
	}
	if st.LastRendered() > st.Total() {
		t.Errorf("LastRendered() = %d exceeds Total() = %d", st.LastRendered(), st.Total())
	}
}

func TestReconcileKeepsFirstTotal(t *testing.T) {
	r, anim, rec := newRenderer()
	defer anim.Stop()
	st := render.NewState()

	_ = r.Reconcile(st, progress.Counts{Downloaded: 1, Total: 4}, "")
	err := r.Reconcile(st, progress.Counts{Downloaded: 2, Total: 8}, "")
	var inv *render.InvariantError
	if !errors.As(err, &inv) || inv.Field != "total" || inv.Kept != 4 {
		t.Fatalf("Reconcile() error = %v, want total InvariantError keeping 4", err)
	}
	if st.Total() != 4 {
		t.Errorf("Total() = %d, want 4", st.Total())
	}
	for _, seg := range rec.Segments() {
		if seg.WidthPercent != 25 {
			t.Errorf("segment %d WidthPercent = %v, want 25", seg.Index, seg.WidthPercent)
		}
	}
}

func TestReconcileUnknownTotal(t *testing.T) {
	r, anim, rec := newRenderer()
	defer anim.Stop()
	st := render.NewState()

	if err := r.Reconcile(st, progress.Counts{}, ""); err != nil {
		t.Errorf("Reconcile() with zero counts error = %v, want nil", err)
	}
	if err := r.Reconcile(st, progress.Counts{Downloaded: 2}, ""); err == nil {
		t.Errorf("Reconcile() with downloaded but no total expected error")
	}
	if got := rec.Appends(); got != 0 {
		t.Errorf("Appends() = %d, want 0", got)
	}
}

func TestRedrawMatchesOutcomes(t *testing.T) {
	histories := map[string][]progress.Counts{
		"no snapshots":   nil,
		"partial":        {{Downloaded: 1, Total: 4}},
		"all seen":       {{Downloaded: 2, Total: 4}, {Downloaded: 4, Total: 4}},
		"wrong total":    {{Downloaded: 3, Total: 9}},
		"regressing run": {{Downloaded: 3, Total: 4}, {Downloaded: 1, Total: 4}},
	}
	const outcomes = "0020"

	for name, history := range histories {
		t.Run(name, func(t *testing.T) {
			r, anim, rec := newRenderer()
			st := render.NewState()
			for _, c := range history {
				_ = r.Reconcile(st, c, outcomes)
			}
			r.Redraw(st, 4, outcomes)

			if _, ok := anim.Active(); ok {
				t.Errorf("animator still active after Redraw")
			}
			segs := rec.Segments()
			if len(segs) != 4 {
				t.Fatalf("drawn segments = %d, want 4", len(segs))
			}
			for i, seg := range segs {
				want := progress.OutcomeFromCode(outcomes[i])
				if seg.Outcome != want {
					t.Errorf("segment %d Outcome = %v, want %v", seg.Index, seg.Outcome, want)
				}
				if seg.Fill != 100 {
					t.Errorf("segment %d Fill = %d, want 100", seg.Index, seg.Fill)
				}
			}
			if !st.Finalized() {
				t.Errorf("Finalized() = false after Redraw")
			}
		})
	}
}

func TestRedrawWithoutOutcomes(t *testing.T) {
	r, _, rec := newRenderer()
	st := render.NewState()
	r.Redraw(st, 3, "")

	segs := rec.Segments()
	if len(segs) != 3 {
		t.Fatalf("drawn segments = %d, want 3", len(segs))
	}
	for _, seg := range segs {
		if seg.Outcome != progress.OutcomeOK || seg.Fill != 100 {
			t.Errorf("segment %d = %+v, want plain full fill", seg.Index, seg)
		}
	}
}

func TestRedrawZeroTotal(t *testing.T) {
	r, _, rec := newRenderer()
	st := render.NewState()
	_ = r.Reconcile(st, progress.Counts{Downloaded: 2, Total: 3}, "")
	r.Redraw(st, 0, "")

	if got := len(rec.Segments()); got != 0 {
		t.Errorf("drawn segments = %d, want 0", got)
	}
	if err := r.Reconcile(st, progress.Counts{Downloaded: 3, Total: 3}, ""); err != nil {
		t.Errorf("Reconcile() after Redraw error = %v, want nil", err)
	}
	if got := len(rec.Segments()); got != 0 {
		t.Errorf("Reconcile() after Redraw drew %d segments", got)
	}
}

func TestRedrawAdoptsTerminalTotal(t *testing.T) {
	tests := []struct {
		name       string
		downloaded int
		total      int
		final      int
		outcomes   string
		wantTotal  int
		wantLast   int
		wantDrawn  int
	}{
		{name: "grown", downloaded: 1, total: 3, final: 5, outcomes: "00200", wantTotal: 5, wantLast: 5, wantDrawn: 5},
		{name: "same", downloaded: 2, total: 4, final: 4, outcomes: "0120", wantTotal: 4, wantLast: 4, wantDrawn: 4},
		{name: "shrunk", downloaded: 3, total: 3, final: 2, outcomes: "11", wantTotal: 3, wantLast: 3, wantDrawn: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, rec := newRenderer()
			st := render.NewState()
			_ = r.Reconcile(st, progress.Counts{Downloaded: tt.downloaded, Total: tt.total}, "")
			r.Redraw(st, tt.final, tt.outcomes)

			if st.Total() != tt.wantTotal {
				t.Errorf("Total() = %d, want %d", st.Total(), tt.wantTotal)
			}
			if st.LastRendered() != tt.wantLast {
				t.Errorf("LastRendered() = %d, want %d", st.LastRendered(), tt.wantLast)
			}
			if st.LastRendered() > st.Total() {
				t.Errorf("LastRendered() = %d exceeds Total() = %d", st.LastRendered(), st.Total())
			}
			if got := len(rec.Segments()); got != tt.wantDrawn {
				t.Errorf("drawn segments = %d, want %d", got, tt.wantDrawn)
			}
		})
	}
}
