package poller

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"ydwatch/internal/progress"
	"ydwatch/internal/render"
)

// Session tracks a playlist job: it reconciles every snapshot into the
// segmented bar until the job reaches a terminal phase.
type Session struct {
	lifecycle

	fetcher  Fetcher
	surface  render.Surface
	state    *render.State
	animator *render.Animator
	renderer *render.Renderer
	opts     settings
}

// NewSession returns an idle playlist session drawing into surface.
func NewSession(f Fetcher, surface render.Surface, opts ...Option) *Session {
	s := &Session{
		fetcher: f,
		surface: surface,
		opts:    newSettings(progress.KindPlaylist, opts),
	}
	s.animator = render.NewAnimator(surface, s.opts.fillStep)
	s.renderer = render.NewRenderer(surface, s.animator)
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.opts.id }

// RenderState exposes the ledger. It must only be read after Run returns.
func (s *Session) RenderState() *render.State { return s.state }

// Run polls once immediately, then on every interval, until the job ends or
// ctx is cancelled. It returns nil when the job reached a terminal phase.
func (s *Session) Run(ctx context.Context) error {
	if !s.start() {
		return ErrSessionUsed
	}
	s.state = render.NewState()
	log := s.opts.log
	log.Debug().Dur("interval", s.opts.interval).Msg("polling started")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.animator.Stop()

	results := make(chan fetchResult)
	fetchAsync(ctx, s.fetcher, results)

	ticker := time.NewTicker(s.opts.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("polling cancelled")
			return ctx.Err()
		case <-ticker.C:
			fetchAsync(ctx, s.fetcher, results)
		case <-s.animator.C():
			s.animator.Step()
		case res := <-results:
			if s.handle(res) {
				ticker.Stop()
				s.terminate()
				log.Info().Int("segments", len(s.state.Segments())).Msg("job finished, polling stopped")
				return nil
			}
		}
	}
}

// handle applies one response and reports whether the session is over.
func (s *Session) handle(res fetchResult) bool {
	log := s.opts.log
	if res.err != nil {
		log.Debug().Err(res.err).Msg("status check failed, retrying on next tick")
		return false
	}
	snap := res.snap
	if progress.KindPlaylist.Active(snap.Phase) {
		if progress.IsActiveText(snap.Progress) {
			s.reconcile(snap, log)
		}
		s.surface.SetLabel(snap.Progress)
		return false
	}

	total := 0
	if c, err := progress.ParseTerminal(snap.Progress); err != nil {
		log.Warn().Err(err).Int("phase", int(snap.Phase)).Msg("terminal status unreadable, hiding bar")
	} else {
		total = c.Total
	}
	s.renderer.Redraw(s.state, total, snap.Outcomes)
	s.surface.HideProgress()
	s.surface.EnableControls()
	return true
}

func (s *Session) reconcile(snap progress.Snapshot, log zerolog.Logger) {
	c, err := progress.ParseActive(snap.Progress)
	if err != nil {
		log.Warn().Err(err).Msg("skipping render for malformed status")
		return
	}
	err = s.renderer.Reconcile(s.state, c, snap.Outcomes)
	var inv *render.InvariantError
	if errors.As(err, &inv) {
		log.Warn().Err(err).Int("downloaded", c.Downloaded).Int("total", c.Total).Msg("status contradicts drawn bar, clamped")
	}
	log.Debug().
		Int("downloaded", c.Downloaded).
		Int("total", c.Total).
		Int("last_rendered", s.state.LastRendered()).
		Msg("reconciled")
}
