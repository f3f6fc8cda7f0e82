package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chaudl113/uptime-web-api/internals/modules/settings"
	"github.com/google/uuid"
)

func settingsKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:settings:%v", userID)
}

// SetChannelConfig stores cfg as JSON; the bot token is not part of it.
func (c *Client) SetChannelConfig(ctx context.Context, cfg settings.ChannelConfig, ttl time.Duration) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	return retry(ctx, 2, func() error {
		return c.rdb.Set(ctx, settingsKey(cfg.UserID), raw, ttl).Err()
	})
}

// GetChannelConfig reports a miss for absent keys and for any read or decode error.
func (c *Client) GetChannelConfig(ctx context.Context, userID uuid.UUID) (settings.ChannelConfig, bool) {
	raw, err := c.rdb.Get(ctx, settingsKey(userID)).Bytes()
	if err != nil {
		return settings.ChannelConfig{}, false
	}

	var cfg settings.ChannelConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return settings.ChannelConfig{}, false
	}
	return cfg, true
}
