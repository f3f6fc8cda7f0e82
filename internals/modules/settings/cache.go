package settings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Source interface {
	GetChannelConfig(ctx context.Context, userID uuid.UUID) (ChannelConfig, error)
}

type Cache interface {
	GetChannelConfig(ctx context.Context, userID uuid.UUID) (ChannelConfig, bool)
	SetChannelConfig(ctx context.Context, cfg ChannelConfig, ttl time.Duration) error
}

// CachedRepository keeps owners with notifications switched off in cache, so
// their down monitors do not hit the store on every cycle. Enabled owners are
// always read from source: the bot token stays in the store and switching
// notifications off applies to the next alert. Switching them on waits for the
// cached entry to expire. Failed lookups are never cached.
type CachedRepository struct {
	source Source
	cache  Cache
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewCachedRepository(source Source, cache Cache, ttl time.Duration, logger *zerolog.Logger) *CachedRepository {
	return &CachedRepository{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CachedRepository) GetChannelConfig(ctx context.Context, userID uuid.UUID) (ChannelConfig, error) {
	if cfg, ok := r.cache.GetChannelConfig(ctx, userID); ok && !cfg.Enabled {
		return cfg, nil
	}

	cfg, err := r.source.GetChannelConfig(ctx, userID)
	if err != nil {
		return ChannelConfig{}, err
	}

	if r.ttl > 0 && !cfg.Enabled {
		entry := cfg
		entry.BotToken = nil
		if err := r.cache.SetChannelConfig(ctx, entry, r.ttl); err != nil {
			r.logger.Warn().
				Err(err).
				Str("user_id", userID.String()).
				Msg("failed to cache channel config")
		}
	}
	return cfg, nil
}
