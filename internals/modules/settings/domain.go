package settings

import "github.com/google/uuid"

// ChannelConfig is an owner's Telegram destination. The core only reads it.
// BotToken is never serialised.
type ChannelConfig struct {
	UserID   uuid.UUID `json:"user_id"`
	Enabled  bool      `json:"telegram_notifications_enabled"`
	ChatID   *string   `json:"telegram_chat_id"`
	BotToken *string   `json:"-"`
}

// Deliverable is true when an alert can actually be sent.
func (c ChannelConfig) Deliverable() bool {
	return c.Enabled &&
		c.ChatID != nil && *c.ChatID != "" &&
		c.BotToken != nil && *c.BotToken != ""
}
