package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is idempotent; Migrate may run on every start.
const Schema = `
CREATE TABLE IF NOT EXISTS monitors (
	id              UUID        PRIMARY KEY,
	user_id         UUID        NOT NULL,
	name            TEXT        NOT NULL DEFAULT '',
	url             TEXT        NOT NULL,
	check_interval  INTEGER     NOT NULL CHECK (check_interval > 0),
	is_active       BOOLEAN     NOT NULL DEFAULT true,
	last_checked_at TIMESTAMPTZ,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_monitors_active ON monitors(is_active) WHERE is_active;

CREATE TABLE IF NOT EXISTS monitor_checks (
	id            UUID        PRIMARY KEY,
	monitor_id    UUID        NOT NULL REFERENCES monitors(id) ON DELETE CASCADE,
	status        TEXT        NOT NULL CHECK (status IN ('up', 'down')),
	response_time BIGINT      NOT NULL CHECK (response_time >= 0),
	status_code   INTEGER,
	error_message TEXT,
	checked_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_monitor_checks_monitor_time
	ON monitor_checks(monitor_id, checked_at DESC);

CREATE TABLE IF NOT EXISTS user_settings (
	user_id                        UUID    PRIMARY KEY,
	telegram_chat_id               TEXT,
	telegram_notifications_enabled BOOLEAN NOT NULL DEFAULT false,
	telegram_bot_token             TEXT
);
`

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
