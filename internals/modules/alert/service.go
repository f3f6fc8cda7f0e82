package alert

import (
	"context"
	"fmt"

	"github.com/chaudl113/uptime-web-api/internals/modules/monitor"
	"github.com/chaudl113/uptime-web-api/internals/modules/result"
	"github.com/chaudl113/uptime-web-api/internals/modules/settings"
	"github.com/chaudl113/uptime-web-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type SettingsStore interface {
	GetChannelConfig(ctx context.Context, userID uuid.UUID) (settings.ChannelConfig, error)
}

type Messenger interface {
	SendMessage(ctx context.Context, botToken, chatID, text string) error
}

// Service sends an alert to the monitor owner for every down result.
type Service struct {
	settings  SettingsStore
	messenger Messenger
	logger    *zerolog.Logger
}

func NewService(settings SettingsStore, messenger Messenger, logger *zerolog.Logger) *Service {
	return &Service{
		settings:  settings,
		messenger: messenger,
		logger:    logger,
	}
}

// NotifyIfDown is a no-op for up results and for owners without a usable
// channel. Returned errors are meant for logging only.
func (s *Service) NotifyIfDown(ctx context.Context, m monitor.Monitor, r result.CheckResult) error {
	const op string = "service.alert.notify_if_down"

	if !r.IsDown() {
		return nil
	}

	cfg, err := s.settings.GetChannelConfig(ctx, m.UserID)
	if err != nil {
		if apperror.IsKind(err, apperror.NotFound) {
			s.logger.Debug().
				Str("monitor_id", m.ID.String()).
				Str("user_id", m.UserID.String()).
				Msg("no notification settings for owner")
			return nil
		}
		return apperror.New(apperror.Dependency, op, "failed to load notification settings", err)
	}

	if !cfg.Deliverable() {
		return nil
	}

	if err := s.messenger.SendMessage(ctx, *cfg.BotToken, *cfg.ChatID, ComposeDownMessage(m, r)); err != nil {
		return apperror.New(apperror.Dependency, op, "failed to send alert", fmt.Errorf("monitor %s: %w", m.ID, err))
	}

	s.logger.Info().
		Str("monitor_id", m.ID.String()).
		Str("url", m.URL).
		Msg("down alert sent")
	return nil
}
