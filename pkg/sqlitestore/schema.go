package sqlitestore

const schema = `
CREATE TABLE IF NOT EXISTS monitors (
    id              TEXT    PRIMARY KEY,
    user_id         TEXT    NOT NULL,
    name            TEXT    NOT NULL DEFAULT '',
    url             TEXT    NOT NULL,
    check_interval  INTEGER NOT NULL CHECK(check_interval > 0),
    is_active       INTEGER NOT NULL DEFAULT 1,
    last_checked_at TEXT,
    created_at      TEXT    NOT NULL,
    updated_at      TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_monitors_active ON monitors(is_active);

CREATE TABLE IF NOT EXISTS monitor_checks (
    id            TEXT    PRIMARY KEY,
    monitor_id    TEXT    NOT NULL REFERENCES monitors(id) ON DELETE CASCADE,
    status        TEXT    NOT NULL CHECK(status IN ('up', 'down')),
    response_time INTEGER NOT NULL CHECK(response_time >= 0),
    status_code   INTEGER,
    error_message TEXT,
    checked_at    TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_monitor_checks_monitor_checked ON monitor_checks(monitor_id, checked_at DESC);

CREATE TABLE IF NOT EXISTS user_settings (
    user_id                        TEXT    PRIMARY KEY,
    telegram_chat_id               TEXT,
    telegram_notifications_enabled INTEGER NOT NULL DEFAULT 0,
    telegram_bot_token             TEXT
);
`
