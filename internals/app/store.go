package app

import (
	"context"

	"github.com/chaudl113/uptime-web-api/config"
	"github.com/chaudl113/uptime-web-api/internals/modules/cycle"
	"github.com/chaudl113/uptime-web-api/internals/modules/monitor"
	"github.com/chaudl113/uptime-web-api/internals/modules/result"
	"github.com/chaudl113/uptime-web-api/internals/modules/settings"
	"github.com/chaudl113/uptime-web-api/pkg/db"
	"github.com/chaudl113/uptime-web-api/pkg/sqlitestore"
	"github.com/rs/zerolog"
)

// dataStore is the set of store operations the pipeline needs, whatever the driver.
type dataStore struct {
	monitors cycle.MonitorLister
	lastSeen result.MonitorStore
	results  result.ResultStore
	settings settings.Source
	ping     func(ctx context.Context) error
	close    func()
}

func openStore(ctx context.Context, cfg *config.DBConfig, logger *zerolog.Logger) (*dataStore, error) {
	if cfg.Driver == config.DriverSQLite {
		store, err := sqlitestore.Open(cfg.URL)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.URL).Msg("sqlite store opened")

		return &dataStore{
			monitors: store,
			lastSeen: store,
			results:  store,
			settings: store,
			ping:     store.Ping,
			close:    func() { _ = store.Close() },
		}, nil
	}

	pool, err := db.ConnectToDB(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	monitorRepo := monitor.NewRepository(pool, logger)
	return &dataStore{
		monitors: monitorRepo,
		lastSeen: monitorRepo,
		results:  result.NewRepository(pool, logger),
		settings: settings.NewRepository(pool, logger),
		ping:     pool.Ping,
		close:    pool.Close,
	}, nil
}
