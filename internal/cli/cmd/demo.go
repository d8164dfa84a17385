package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ydwatch/internal/demo"
)

func newDemoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Serve scripted jobs on the two status endpoints",
		Long: "demo runs a local stand-in for the download server. Every request to a status " +
			"endpoint returns the next step of a scripted job and then repeats the last step; " +
			"POST /reset starts the scripts over.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			segments, _ := cmd.Flags().GetInt("segments")
			failRaw, _ := cmd.Flags().GetString("fail")
			origins, _ := cmd.Flags().GetStringSlice("allow-origin")

			if segments < 0 {
				return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("invalid --segments: %d", segments)}
			}
			failed, err := demo.ParseFailed(failRaw)
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("invalid --fail: %w", err)}
			}

			srv := demo.NewServer(demo.SingleScript(), demo.PlaylistScript(segments, failed), a.log)
			srv.AllowOrigins = origins
			if err := srv.ListenAndServe(cmd.Context(), addr); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			return nil
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().Int("segments", 10, "Number of playlist items")
	cmd.Flags().String("fail", "", "Comma-separated 1-based items that finish with errors, e.g. 3,7")
	cmd.Flags().StringSlice("allow-origin", nil, "Browser origins allowed to poll (default any)")
	return cmd
}
