package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ydwatch/internal/status"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Check that both status endpoints answer",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.settings
			opts := clientOptions(s.BaseURL, s.Timeout, s.RetryMax)
			// One attempt each; doctor reports, it does not wait out outages.
			opts.RetryMax = 0
			client := status.NewClient(opts, a.log)

			out := cmd.OutOrStdout()
			var failed int
			for _, path := range []string{status.SinglePath, status.PlaylistPath} {
				ep := client.Endpoint(path)
				ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
				snap, err := ep.Fetch(ctx)
				cancel()
				if err != nil {
					failed++
					fmt.Fprintf(out, "✗ %s: %v\n", ep.URL(), err)
					continue
				}
				fmt.Fprintf(out, "✓ %s: code %d (%s) %q\n", ep.URL(), int(snap.Phase), snap.Phase, snap.Progress)
			}
			if failed > 0 {
				return &ExitError{Code: ExitUnreachable, Err: fmt.Errorf("%d of 2 status endpoints failed at %s", failed, opts.BaseURL)}
			}
			return nil
		},
	}
}
