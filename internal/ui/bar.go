package ui

import (
	"math"
	"strings"

	"ydwatch/internal/render"
)

const (
	defaultBarWidth = 60
	minBarWidth     = 20
	maxBarWidth     = 120
)

// barWidth fits the bar to a terminal of the given width; 0 means unknown.
func barWidth(termWidth int) int {
	if termWidth <= 0 {
		return defaultBarWidth
	}
	w := termWidth - 4
	if w < minBarWidth {
		return minBarWidth
	}
	if w > maxBarWidth {
		return maxBarWidth
	}
	return w
}

// segmentCells splits width into one cell count per segment, proportional to
// each segment's WidthPercent. Rounding is cumulative so the counts add up to
// the share of the bar the segments cover.
func segmentCells(segs []render.Segment, width int) []int {
	cells := make([]int, len(segs))
	var cum float64
	for i, s := range segs {
		start := int(math.Round(cum * float64(width) / 100))
		cum += s.WidthPercent
		end := int(math.Round(cum * float64(width) / 100))
		if end > width {
			end = width
		}
		if end > start {
			cells[i] = end - start
		}
	}
	return cells
}

// plainBar draws segments with block glyphs for output that is not a TUI.
func plainBar(segs []render.Segment, width int, styles Styles) string {
	var b strings.Builder
	for i, n := range segmentCells(segs, width) {
		if n == 0 {
			continue
		}
		s := segs[i]
		filled := n * clampFill(s.Fill) / 100
		b.WriteString(styles.outcome(s.Outcome).Render(strings.Repeat("█", filled)))
		b.WriteString(styles.Empty.Render(strings.Repeat("░", n-filled)))
	}
	return b.String()
}

func clampFill(f int) int {
	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return f
}
