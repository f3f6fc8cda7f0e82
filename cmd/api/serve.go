package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/chaudl113/uptime-web-api/internals/app"
	"github.com/chaudl113/uptime-web-api/internals/server"
	"github.com/chaudl113/uptime-web-api/pkg/logger"
	"github.com/spf13/cobra"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the check trigger over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			// Done is closed on SIGINT or SIGTERM
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log := logger.Init(cfg)
			log.Info().Msg("logger initialized")

			container, err := app.NewContainer(ctx, cfg, log)
			if err != nil {
				log.Error().Err(err).Msg("failed to initialize dependencies")
				return err
			}
			log.Info().Msg("dependencies initialized")

			container.StartScheduler()

			router := app.RegisterRoutes(container)
			srv := server.New(fmt.Sprintf(":%d", cfg.Port), router, log)
			errCh := srv.Start()

			select {
			case <-ctx.Done():
				log.Info().Msg("shutdown signal received")
			case err := <-errCh:
				log.Error().Err(err).Msg("HTTP server crashed")
				stop()
			}

			// 1. stop accepting requests
			if err := srv.Shutdown(context.Background()); err != nil {
				log.Error().Err(err).Msg("server shutdown failed")
			}

			// 2. background work and infrastructure
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := container.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("dependencies shutdown failed")
			}

			log.Info().Msg("graceful shutdown complete")
			return nil
		},
	}
}
