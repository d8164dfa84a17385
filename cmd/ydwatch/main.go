// Command ydwatch follows a download server's job from the terminal.
//
// It polls the server's status endpoints and draws a playlist job as a
// segmented progress bar, one segment per item, or mirrors a single-video
// job's status label. Run "ydwatch demo" for a local server that replays
// scripted jobs.
//
// Exit codes: 0 success, 1 usage or runtime error, 2 status endpoints
// unreachable (doctor), 130 interrupted.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	ydwatchcmd "ydwatch/internal/cli/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ydwatchcmd.Execute(ctx); err != nil {
		var ee *ydwatchcmd.ExitError
		if errors.As(err, &ee) {
			if ee.Err != nil {
				fmt.Fprintln(os.Stderr, ee.Err)
			}
			os.Exit(ee.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ydwatchcmd.ExitCLIError)
	}
	os.Exit(ydwatchcmd.ExitOK)
}
