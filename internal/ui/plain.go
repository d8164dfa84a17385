package ui

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"ydwatch/internal/progress"
	"ydwatch/internal/render"
)

// plainSurface prints to a writer that is not a terminal UI: the label sits on
// a spinner line, and the bar is printed as a new line whenever a segment is
// added or finishes filling. Intermediate fill steps are not printed.
type plainSurface struct {
	out      io.Writer
	kind     progress.Kind
	width    int
	styles   Styles
	spinner  *progressbar.ProgressBar
	segments []render.Segment
	lastBar  string
	closed   bool
}

func newPlainSurface(out io.Writer, kind progress.Kind, width int) *plainSurface {
	if width <= 0 {
		width = defaultBarWidth
	}
	return &plainSurface{
		out:    out,
		kind:   kind,
		width:  width,
		styles: defaultStyles(),
		spinner: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetRenderBlankState(false),
		),
	}
}

func (p *plainSurface) AppendSegment(seg render.Segment) {
	p.segments = append(p.segments, seg)
	p.printBar()
}

func (p *plainSurface) SetFill(index, fill int) {
	for i := range p.segments {
		if p.segments[i].Index == index {
			p.segments[i].Fill = fill
		}
	}
	if fill >= 100 {
		p.printBar()
	}
}

func (p *plainSurface) ClearSegments() {
	p.segments = nil
}

func (p *plainSurface) SetLabel(text string) {
	if p.closed {
		fmt.Fprintln(p.out, p.styles.Label.Render(text))
		return
	}
	p.spinner.Describe(text)
	_ = p.spinner.Add(1)
}

func (p *plainSurface) HideProgress() {
	p.Close()
}

func (p *plainSurface) EnableControls() {
	p.printBar()
	fmt.Fprintln(p.out, p.styles.Success.Render("✓ finished"))
}

// Close clears the spinner line. It is safe to call more than once.
func (p *plainSurface) Close() {
	if p.closed {
		return
	}
	p.closed = true
	_ = p.spinner.Finish()
}

func (p *plainSurface) printBar() {
	if p.kind != progress.KindPlaylist || len(p.segments) == 0 {
		return
	}
	line := plainBar(p.segments, p.width, p.styles)
	if line == p.lastBar {
		return
	}
	p.lastBar = line
	if !p.closed {
		_ = p.spinner.Clear()
	}
	fmt.Fprintf(p.out, "%s %d segment(s)\n", line, len(p.segments))
}
