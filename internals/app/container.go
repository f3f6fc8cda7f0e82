package app

import (
	"context"
	"net/http"

	"github.com/chaudl113/uptime-web-api/config"
	middle "github.com/chaudl113/uptime-web-api/internals/middleware"
	"github.com/chaudl113/uptime-web-api/internals/modules/alert"
	"github.com/chaudl113/uptime-web-api/internals/modules/cycle"
	"github.com/chaudl113/uptime-web-api/internals/modules/executor"
	"github.com/chaudl113/uptime-web-api/internals/modules/result"
	"github.com/chaudl113/uptime-web-api/internals/modules/scheduler"
	"github.com/chaudl113/uptime-web-api/internals/modules/settings"
	"github.com/chaudl113/uptime-web-api/internals/security"
	"github.com/chaudl113/uptime-web-api/pkg/httpclient"
	"github.com/chaudl113/uptime-web-api/pkg/rabbitmq"
	"github.com/chaudl113/uptime-web-api/pkg/redisstore"
	"github.com/chaudl113/uptime-web-api/pkg/telegram"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Container struct {
	Config       *config.Config
	Logger       *zerolog.Logger
	Runner       cycle.Runner
	store        *dataStore
	redisClient  *redisstore.Client
	amqpConn     *amqp091.Connection
	publisher    *rabbitmq.Publisher
	scheduler    *scheduler.Scheduler
	cycleHandler *cycle.Handler
	authMW       *middle.AuthMiddleware
}

// NewContainer wires the pipeline. Redis, RabbitMQ, trigger auth and the
// in-process scheduler are only set up when configured.
func NewContainer(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (_ *Container, err error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
	}
	defer func() {
		if err != nil {
			c.release()
		}
	}()

	c.store, err = openStore(ctx, &cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	var settingsSrc alert.SettingsStore = c.store.settings
	recorder := result.NewRecorder(c.store.results, c.store.lastSeen, logger)

	if cfg.RedisEnabled() {
		c.redisClient, err = redisstore.New(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		recorder.SetStatusCache(c.redisClient)
		settingsSrc = settings.NewCachedRepository(c.store.settings, c.redisClient, cfg.Redis.SettingsTTL, logger)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("redis enabled")
	}

	if cfg.RabbitMQEnabled() {
		c.amqpConn, err = rabbitmq.NewConnection(&cfg.RabbitMQ, logger)
		if err != nil {
			return nil, err
		}
		if err = rabbitmq.SetupTopology(c.amqpConn, &cfg.RabbitMQ); err != nil {
			return nil, err
		}
		c.publisher, err = rabbitmq.NewPublisher(c.amqpConn, cfg.RabbitMQ.ExchangeName, cfg.RabbitMQ.RoutingKey)
		if err != nil {
			return nil, err
		}
		recorder.SetPublisher(c.publisher)
		logger.Info().Str("exchange", cfg.RabbitMQ.ExchangeName).Msg("rabbitmq enabled")
	}

	// probes are bounded by the executor deadline, not by the client
	exec := executor.NewExecutor(httpclient.NewHttpClient(0), cfg.Probe.Timeout, cfg.Probe.UserAgent, logger)
	messenger := telegram.New(cfg.Telegram.BaseURL, httpclient.NewHttpClient(cfg.Telegram.Timeout))
	alertSvc := alert.NewService(settingsSrc, messenger, logger)

	orchestrator := cycle.NewOrchestrator(c.store.monitors, exec, recorder, alertSvc, logger)
	c.Runner = cycle.NewGuarded(orchestrator)
	c.cycleHandler = cycle.NewHandler(c.Runner, logger)

	if cfg.AuthEnabled() {
		tokenSvc, tokenErr := security.NewTokenService(&cfg.Auth)
		if tokenErr != nil {
			return nil, tokenErr
		}
		c.authMW = middle.NewAuthMiddleware(tokenSvc, logger)
	}

	if cfg.Scheduler.Interval > 0 {
		c.scheduler = scheduler.NewScheduler(ctx, cfg.Scheduler.Interval, c.Runner, logger)
	}

	return c, nil
}

// StartScheduler is a no-op when no interval is configured.
func (c *Container) StartScheduler() {
	if c.scheduler != nil {
		c.scheduler.StartScheduler()
	}
}

func (c *Container) Ping(ctx context.Context) error {
	return c.store.ping(ctx)
}

func (c *Container) triggerMiddlewares() []func(http.Handler) http.Handler {
	if c.authMW == nil {
		return nil
	}
	return []func(http.Handler) http.Handler{c.authMW.Handle}
}

// Shutdown waits for the scheduler, whose context must already be cancelled,
// then releases infrastructure.
func (c *Container) Shutdown(ctx context.Context) error {
	if c.scheduler != nil {
		done := make(chan struct{})
		go func() {
			c.scheduler.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			c.Logger.Warn().Msg("scheduler did not stop in time")
		}
	}

	c.release()
	return nil
}

func (c *Container) release() {
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			c.Logger.Warn().Err(err).Msg("failed to close rabbitmq publisher")
		}
	}
	if c.amqpConn != nil {
		if err := c.amqpConn.Close(); err != nil {
			c.Logger.Warn().Err(err).Msg("failed to close rabbitmq connection")
		}
	}
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			c.Logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	if c.store != nil {
		c.store.close()
	}
}
