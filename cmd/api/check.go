package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chaudl113/uptime-web-api/internals/app"
	"github.com/chaudl113/uptime-web-api/pkg/logger"
	"github.com/spf13/cobra"
)

// checkCmd runs one cycle and prints the summary as JSON, for cron jobs that
// do not go through HTTP.
func checkCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run one check cycle and print the summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			log := logger.New(cmd.ErrOrStderr(), cfg)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			container, err := app.NewContainer(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer container.Shutdown(context.Background())

			summary, err := container.Runner.RunCycle(ctx, time.Now().UTC())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
}
