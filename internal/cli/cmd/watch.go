package cmd

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ydwatch/internal/poller"
	"ydwatch/internal/progress"
	"ydwatch/internal/status"
	"ydwatch/internal/ui"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "watch",
		Short:         "Watch the playlist job as a segmented progress bar",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, a, progress.KindPlaylist)
		},
	}
	bindWatchFlags(cmd.Flags())
	return cmd
}

func newSingleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "single",
		Short:         "Follow the single-video job's status label",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, a, progress.KindSingle)
		},
	}
	bindWatchFlags(cmd.Flags())
	return cmd
}

func bindWatchFlags(fs *pflag.FlagSet) {
	fs.Duration("interval", 0, "Polling interval (default 9s for playlists, 2s for single jobs)")
	fs.Duration("fill-step", 0, "Fill animation tick (default 35ms)")
	fs.Bool("tui", false, "Force TUI mode even when stdout is not a terminal")
}

func runWatch(cmd *cobra.Command, a *app, kind progress.Kind) error {
	s := a.settings

	interval := s.PollInterval
	path := status.PlaylistPath
	if kind == progress.KindSingle {
		interval = s.SingleInterval
		path = status.SinglePath
	}
	if d, _ := cmd.Flags().GetDuration("interval"); d > 0 {
		interval = d
	}
	fillStep := s.FillStep
	if d, _ := cmd.Flags().GetDuration("fill-step"); d > 0 {
		fillStep = d
	}
	forceTUI, _ := cmd.Flags().GetBool("tui")
	useTUI := forceTUI || (!s.NoUI && isTerminal())

	// Console logs would corrupt the TUI.
	log := a.log
	if useTUI && s.LogFile == "" {
		log = zerolog.Nop()
	}

	client := status.NewClient(clientOptions(s.BaseURL, s.Timeout, s.RetryMax), log)
	ep := client.Endpoint(path)
	id := uuid.NewString()

	opts := ui.Options{
		Kind:    kind,
		Fetcher: ep,
		Source:  ep.URL(),
		Output:  cmd.OutOrStdout(),
		Session: []poller.Option{
			poller.WithInterval(interval),
			poller.WithFillStep(fillStep),
			poller.WithLogger(log),
			poller.WithID(id),
		},
	}

	log.Info().
		Str("session", id).
		Str("kind", kind.String()).
		Str("url", ep.URL()).
		Dur("interval", interval).
		Msg("watching job")

	start := time.Now()
	var err error
	if useTUI {
		err = ui.Run(cmd.Context(), opts)
	} else {
		err = ui.RunPlain(cmd.Context(), opts)
	}
	log.Info().Str("session", id).Dur("elapsed", time.Since(start)).Err(err).Msg("session ended")
	return exitFor(err)
}

func clientOptions(baseURL string, timeout time.Duration, retryMax int) status.Options {
	opts := status.DefaultOptions()
	if baseURL != "" {
		opts.BaseURL = baseURL
	}
	if timeout > 0 {
		opts.Timeout = timeout
	}
	if retryMax >= 0 {
		opts.RetryMax = retryMax
	}
	return opts
}
