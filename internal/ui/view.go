package ui

import (
	"fmt"
	"strings"

	"ydwatch/internal/progress"
)

func (m Model) viewHeader() string {
	title := m.styles.Title.Render(fmt.Sprintf("ydwatch — %s download", m.kind))
	sub := m.styles.Subtitle.Render(fmt.Sprintf("%s • q: quit", m.source))
	return title + "\n" + sub
}

func (m Model) viewProgress() string {
	var b strings.Builder
	if !m.hidden {
		label := m.label
		if label == "" {
			label = "waiting for status"
		}
		b.WriteString(m.styles.Spinner.Render(m.spinner.View()))
		b.WriteString(" ")
		b.WriteString(m.styles.Label.Render(label))
		b.WriteString("\n")
	}
	if m.kind == progress.KindPlaylist {
		b.WriteString(m.viewBar())
		b.WriteString("\n")
	}
	return m.styles.Box.Render(b.String())
}

// viewBar draws every segment as its own bar, sized by its width share and
// colored by its outcome.
func (m Model) viewBar() string {
	if len(m.segments) == 0 {
		return m.styles.Faint.Render(strings.Repeat("░", barWidth(m.width)))
	}
	var b strings.Builder
	for i, n := range segmentCells(m.segments, barWidth(m.width)) {
		if n == 0 {
			continue
		}
		seg := m.segments[i]
		bar := m.bars[seg.Outcome]
		bar.Width = n
		b.WriteString(bar.ViewAs(float64(clampFill(seg.Fill)) / 100))
	}
	return b.String()
}

func (m Model) viewControls() string {
	switch {
	case m.err != nil:
		return m.styles.Error.Render("✗ " + m.err.Error())
	case m.enabled:
		return m.styles.Success.Render("✓ finished, ready for the next download")
	default:
		return m.styles.Faint.Render("controls locked while the job runs")
	}
}
