package settings

import (
	"context"

	"github.com/chaudl113/uptime-web-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const getChannelConfigQuery = `
SELECT user_id, telegram_notifications_enabled, telegram_chat_id, telegram_bot_token
FROM user_settings
WHERE user_id = $1`

type Repository struct {
	pool   *pgxpool.Pool
	logger *zerolog.Logger
}

func NewRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *Repository {
	return &Repository{
		pool:   pool,
		logger: logger,
	}
}

// GetChannelConfig returns a not_found apperror when the owner has no settings row.
func (r *Repository) GetChannelConfig(ctx context.Context, userID uuid.UUID) (ChannelConfig, error) {
	const op string = "repo.settings.get_channel_config"

	var (
		id       pgtype.UUID
		enabled  pgtype.Bool
		chatID   pgtype.Text
		botToken pgtype.Text
	)
	err := r.pool.QueryRow(ctx, getChannelConfigQuery, utils.ToPgUUID(userID)).
		Scan(&id, &enabled, &chatID, &botToken)
	if err != nil {
		return ChannelConfig{}, utils.WrapRepoError(op, err, true, r.logger)
	}

	return ChannelConfig{
		UserID:   utils.FromPgUUID(id),
		Enabled:  utils.FromPgBool(enabled),
		ChatID:   utils.FromPgText(chatID),
		BotToken: utils.FromPgText(botToken),
	}, nil
}
