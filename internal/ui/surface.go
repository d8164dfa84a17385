package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"ydwatch/internal/render"
)

// teaSurface forwards Surface calls to the model as tea messages. Sends block
// so no redraw is lost, and give up once ctx is done.
type teaSurface struct {
	ctx context.Context
	ch  chan<- tea.Msg
}

func (s teaSurface) send(msg tea.Msg) {
	select {
	case s.ch <- msg:
	case <-s.ctx.Done():
	}
}

func (s teaSurface) AppendSegment(seg render.Segment) { s.send(segmentAppendMsg{Seg: seg}) }
func (s teaSurface) SetFill(index, fill int)          { s.send(segmentFillMsg{Index: index, Fill: fill}) }
func (s teaSurface) ClearSegments()                   { s.send(segmentsClearMsg{}) }
func (s teaSurface) SetLabel(text string)             { s.send(labelMsg{Text: text}) }
func (s teaSurface) HideProgress()                    { s.send(hideProgressMsg{}) }
func (s teaSurface) EnableControls()                  { s.send(controlsMsg{}) }
