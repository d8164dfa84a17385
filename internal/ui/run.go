package ui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ydwatch/internal/poller"
	"ydwatch/internal/progress"
)

// Options describes the session a surface is shown for.
type Options struct {
	Kind    progress.Kind
	Fetcher poller.Fetcher
	// Source is shown in the header, typically the endpoint URL.
	Source string
	// Session options passed through to poller.New.
	Session []poller.Option
	// Output is used by RunPlain. Default: os.Stdout.
	Output io.Writer
	// Width of the plain bar in cells. Default: 60.
	Width int
}

// Run shows the session in a full-screen TUI until it terminates or the user
// quits. Quitting cancels the session and returns context.Canceled.
func Run(ctx context.Context, opts Options) error {
	m := NewModel(ctx, opts.Kind, opts.Source)
	sess := poller.New(opts.Kind, opts.Fetcher, m.Surface(), opts.Session...)

	sessDone := make(chan error, 1)
	go func() {
		err := sess.Run(m.Context())
		sessDone <- err
		select {
		case m.eventCh <- sessionDoneMsg{Err: err}:
		case <-m.Context().Done():
		}
	}()

	prog := tea.NewProgram(m, tea.WithContext(ctx))
	_, runErr := prog.Run()
	m.cancel()
	sessErr := <-sessDone

	// A cancelled parent kills the program; that is reported by the session.
	if runErr != nil && ctx.Err() == nil {
		return runErr
	}
	return sessErr
}

// RunPlain runs the session printing to opts.Output without a TUI.
func RunPlain(ctx context.Context, opts Options) error {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	surface := newPlainSurface(out, opts.Kind, opts.Width)
	defer surface.Close()
	sess := poller.New(opts.Kind, opts.Fetcher, surface, opts.Session...)
	return sess.Run(ctx)
}
