package poller

import (
	"context"
	"time"

	"ydwatch/internal/progress"
	"ydwatch/internal/render"
)

// InitialLabel is shown before the first single-job response arrives.
const InitialLabel = "Downloading"

// LabelSession tracks a single-file job. It has no segments: it mirrors the
// status text into the label and releases the controls when the job ends.
type LabelSession struct {
	lifecycle

	fetcher Fetcher
	surface render.Surface
	opts    settings
}

// NewLabelSession returns an idle single-job session.
func NewLabelSession(f Fetcher, surface render.Surface, opts ...Option) *LabelSession {
	return &LabelSession{
		fetcher: f,
		surface: surface,
		opts:    newSettings(progress.KindSingle, opts),
	}
}

// ID identifies the session in logs.
func (s *LabelSession) ID() string { return s.opts.id }

// Run polls on every interval until the job leaves the running phase or ctx
// is cancelled. The first check happens one interval after start.
func (s *LabelSession) Run(ctx context.Context) error {
	if !s.start() {
		return ErrSessionUsed
	}
	log := s.opts.log
	s.surface.SetLabel(InitialLabel)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan fetchResult)
	ticker := time.NewTicker(s.opts.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fetchAsync(ctx, s.fetcher, results)
		case res := <-results:
			if res.err != nil {
				log.Debug().Err(res.err).Msg("status check failed, retrying on next tick")
				continue
			}
			if progress.KindSingle.Active(res.snap.Phase) {
				s.surface.SetLabel(res.snap.Progress)
				continue
			}
			s.surface.HideProgress()
			s.surface.EnableControls()
			s.terminate()
			log.Info().Str("status", res.snap.Progress).Msg("job finished, polling stopped")
			return nil
		}
	}
}
