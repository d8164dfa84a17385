package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"ydwatch/internal/config"
	"ydwatch/internal/logging"
	"ydwatch/internal/progress"
)

const (
	ExitOK          = 0
	ExitCLIError    = 1
	ExitUnreachable = 2
	ExitInterrupted = 130
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// app is the state resolved once per invocation, before any subcommand runs.
type app struct {
	v        *viper.Viper
	settings config.Settings
	log      zerolog.Logger
	closeLog func() error
}

func (a *app) close() {
	if a.closeLog != nil {
		_ = a.closeLog()
		a.closeLog = nil
	}
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{v: viper.New(), log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "ydwatch",
		Short: "Watch a download server's job progress as a segmented bar",
		Long: "ydwatch polls a download server's status endpoints and draws the job as a segmented " +
			"progress bar: one segment per playlist item, colored by how it finished. " +
			"Without a subcommand it watches the playlist job.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, a, progress.KindPlaylist)
		},
	}

	// Persistent flags available to all subcommands
	bindGlobalFlags(root.PersistentFlags())
	// `ydwatch` alone behaves like `ydwatch watch`.
	bindWatchFlags(root.Flags())

	// Subcommands
	root.AddCommand(newWatchCmd(a))
	root.AddCommand(newSingleCmd(a))
	root.AddCommand(newDemoCmd(a))
	root.AddCommand(newDoctorCmd(a))
	root.AddCommand(newCompletionCmd())

	return root, a
}

func bindGlobalFlags(fs *pflag.FlagSet) {
	fs.String("base-url", "", "Download server base URL (default http://127.0.0.1:5000)")
	fs.Bool("no-ui", false, "Disable TUI; use plain textual output")
	fs.String("log-level", "", "Log level: trace, debug, info, warn, error")
	fs.String("log-format", "", "Log format: console, json")
	fs.String("log-file", "", "Write logs to this file (required to see logs in TUI mode)")
	fs.Duration("timeout", 0, "Timeout for one status request")
	fs.Int("retry-max", 0, "Extra attempts for a failed status request within one poll")
}

// setup resolves configuration and logging for the invoked command.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.Init(a.v, cmd.Root()); err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	a.settings = config.Load(a.v)
	baseURL, err := config.NormalizeBaseURL(a.settings.BaseURL)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	a.settings.BaseURL = baseURL

	log, closeFn, err := logging.New(logging.Options{
		Level:  a.settings.LogLevel,
		Format: a.settings.LogFormat,
		File:   a.settings.LogFile,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	a.log = log
	a.closeLog = closeFn
	return nil
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root, a := newRootCmd()
	defer a.close()
	return root.ExecuteContext(ctx)
}

// exitFor maps a session error to a process exit code.
func exitFor(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &ExitError{Code: ExitInterrupted}
	default:
		var ee *ExitError
		if errors.As(err, &ee) {
			return ee
		}
		return &ExitError{Code: ExitCLIError, Err: err}
	}
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
