package ui

import (
	"github.com/charmbracelet/lipgloss"

	"ydwatch/internal/progress"
)

// Segment fill colors.
const (
	colorOK      = "#22C55E"
	colorPartial = "#e36d12"
	colorEmpty   = "#3F3F46"
)

type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Faint    lipgloss.Style
	Box      lipgloss.Style
	Spinner  lipgloss.Style
	OK       lipgloss.Style
	Partial  lipgloss.Style
	Empty    lipgloss.Style
}

func defaultStyles() Styles {
	base := lipgloss.NewStyle()
	return Styles{
		Title:    base.Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Subtitle: base.Faint(true),
		Label:    base.Foreground(lipgloss.Color("#D1D5DB")),
		Success:  base.Foreground(lipgloss.Color("#22C55E")),
		Error:    base.Foreground(lipgloss.Color("#EF4444")),
		Faint:    base.Faint(true),
		Box:      base.Padding(0, 1),
		Spinner:  base.Foreground(lipgloss.Color("#22D3EE")),
		OK:       base.Foreground(lipgloss.Color(colorOK)),
		Partial:  base.Foreground(lipgloss.Color(colorPartial)),
		Empty:    base.Foreground(lipgloss.Color(colorEmpty)),
	}
}

func outcomeColor(o progress.Outcome) string {
	if o == progress.OutcomePartialFailure {
		return colorPartial
	}
	return colorOK
}

func (s Styles) outcome(o progress.Outcome) lipgloss.Style {
	if o == progress.OutcomePartialFailure {
		return s.Partial
	}
	return s.OK
}
