// Package poller runs the status polling sessions that drive a Surface.
package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ydwatch/internal/progress"
	"ydwatch/internal/render"
)

// ErrSessionUsed is returned when Run is called on a session that already ran.
var ErrSessionUsed = errors.New("poller: session already started")

// Fetcher reads the current job status.
type Fetcher interface {
	Fetch(ctx context.Context) (progress.Snapshot, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (progress.Snapshot, error)

func (f FetcherFunc) Fetch(ctx context.Context) (progress.Snapshot, error) { return f(ctx) }

// State is the lifecycle of a session.
type State int32

const (
	StateIdle State = iota
	StatePolling
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Option configures a session.
type Option func(*settings)

type settings struct {
	interval time.Duration
	fillStep time.Duration
	log      zerolog.Logger
	id       string
}

// WithInterval overrides the polling cadence.
func WithInterval(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithFillStep overrides the fill animation tick (playlist sessions only).
func WithFillStep(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.fillStep = d
		}
	}
}

// WithLogger attaches a logger. Sessions log nothing by default.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) {
		s.log = l
	}
}

// WithID sets the session ID used in log lines.
func WithID(id string) Option {
	return func(s *settings) {
		s.id = id
	}
}

func newSettings(kind progress.Kind, opts []Option) settings {
	s := settings{
		interval: kind.Interval(),
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(&s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	s.log = s.log.With().Str("session", s.id).Str("kind", kind.String()).Logger()
	return s
}

type fetchResult struct {
	snap progress.Snapshot
	err  error
}

// lifecycle holds the state shared by both session kinds.
type lifecycle struct {
	state atomic.Int32
}

func (l *lifecycle) State() State { return State(l.state.Load()) }

func (l *lifecycle) start() bool {
	return l.state.CompareAndSwap(int32(StateIdle), int32(StatePolling))
}

func (l *lifecycle) terminate() { l.state.Store(int32(StateTerminated)) }

// fetchAsync issues one request without blocking the loop. Responses are not
// sequenced: a slow one may arrive after a later tick's response.
func fetchAsync(ctx context.Context, f Fetcher, out chan<- fetchResult) {
	go func() {
		snap, err := f.Fetch(ctx)
		select {
		case out <- fetchResult{snap: snap, err: err}:
		case <-ctx.Done():
		}
	}()
}

// Runner is a polling session of either kind.
type Runner interface {
	Run(ctx context.Context) error
	State() State
	ID() string
}

// New returns an idle session for kind drawing into surface.
func New(kind progress.Kind, f Fetcher, surface render.Surface, opts ...Option) Runner {
	if kind == progress.KindPlaylist {
		return NewSession(f, surface, opts...)
	}
	return NewLabelSession(f, surface, opts...)
}
