package main

import (
	"context"

	"github.com/chaudl113/uptime-web-api/config"
	"github.com/chaudl113/uptime-web-api/pkg/db"
	"github.com/chaudl113/uptime-web-api/pkg/logger"
	"github.com/chaudl113/uptime-web-api/pkg/sqlitestore"
	"github.com/spf13/cobra"
)

func migrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tables the service reads and writes",
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

			if cfg.DB.Driver == config.DriverSQLite {
				// Open applies the schema
				store, err := sqlitestore.Open(cfg.DB.URL)
				if err != nil {
					return err
				}
				log.Info().Str("path", cfg.DB.URL).Msg("sqlite schema applied")
				return store.Close()
			}

			pool, err := db.ConnectToDB(ctx, &cfg.DB, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Migrate(ctx, pool); err != nil {
				return err
			}
			log.Info().Msg("postgres schema applied")
			return nil
		},
	}
}
