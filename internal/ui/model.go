package ui

import (
	"context"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"ydwatch/internal/progress"
	"ydwatch/internal/render"
)

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	kind   progress.Kind
	source string

	// Surface state
	label    string
	hidden   bool
	enabled  bool
	segments []render.Segment

	// Session outcome
	done bool
	err  error

	// UI
	width   int
	spinner spinner.Model
	bars    map[progress.Outcome]bubblesprogress.Model
	styles  Styles

	// Surface calls arrive here from the session goroutine
	eventCh chan tea.Msg
}

// NewModel returns a model for a session of kind reading from source.
// Cancelling the model (q, ctrl+c) cancels the context derived from ctx.
func NewModel(ctx context.Context, kind progress.Kind, source string) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sty.Spinner

	bars := make(map[progress.Outcome]bubblesprogress.Model, 2)
	for _, o := range []progress.Outcome{progress.OutcomeOK, progress.OutcomePartialFailure} {
		bar := bubblesprogress.New(
			bubblesprogress.WithSolidFill(outcomeColor(o)),
			bubblesprogress.WithoutPercentage(),
		)
		bar.EmptyColor = colorEmpty
		bars[o] = bar
	}

	return Model{
		ctx:     c,
		cancel:  cancel,
		kind:    kind,
		source:  source,
		spinner: sp,
		bars:    bars,
		styles:  sty,
		eventCh: make(chan tea.Msg, 256),
	}
}

// Surface returns the render.Surface that feeds this model.
func (m Model) Surface() render.Surface {
	return teaSurface{ctx: m.ctx, ch: m.eventCh}
}

// Context is cancelled when the user quits.
func (m Model) Context() context.Context { return m.ctx }

// Err is the session error, if any, once the program has exited.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenEventsCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case segmentAppendMsg:
		m.segments = append(m.segments, msg.Seg)
	case segmentFillMsg:
		for i := range m.segments {
			if m.segments[i].Index == msg.Index {
				m.segments[i].Fill = msg.Fill
			}
		}
	case segmentsClearMsg:
		m.segments = nil
	case labelMsg:
		m.label = msg.Text
	case hideProgressMsg:
		m.hidden = true
	case controlsMsg:
		m.enabled = true

	case sessionDoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	case allDoneMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		var c tea.Cmd
		m.spinner, c = m.spinner.Update(msg)
		return m, c
	default:
		return m, nil
	}

	// Keep listening for surface events
	return m, m.listenEventsCmd()
}

func (m Model) View() string {
	return m.viewHeader() + "\n\n" + m.viewProgress() + "\n" + m.viewControls() + "\n"
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return allDoneMsg{}
		case msg := <-m.eventCh:
			return msg
		}
	}
}
