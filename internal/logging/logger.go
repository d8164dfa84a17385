// Package logging builds the zerolog logger shared by the CLI, sessions and
// the demo server.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// TimeFormat is used by the console writer.
const TimeFormat = "15:04:05"

// Options selects where and how logs are written.
type Options struct {
	Level  string // trace, debug, info, warn, error; default info
	Format string // console or json; default console
	// File receives logs when set. Otherwise Output is used.
	File   string
	Output io.Writer
}

// New returns a timestamped logger and a close func for any opened file.
func New(opts Options) (zerolog.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), noop, err
	}

	out := opts.Output
	closeFn := noop
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(opts.Format) {
	case "", "console":
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: TimeFormat,
			NoColor:    opts.File != "",
		}
	case "json":
	default:
		_ = closeFn()
		return zerolog.Nop(), noop, fmt.Errorf("invalid log format %q (valid: console|json)", opts.Format)
	}

	// The global level defaults to debug and would swallow trace events.
	if level < zerolog.GlobalLevel() {
		zerolog.SetGlobalLevel(level)
	}
	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closeFn, nil
}

// ParseLevel maps a level name to zerolog; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

func noop() error { return nil }
