package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chaudl113/uptime-web-api/internals/modules/monitor"
	"github.com/chaudl113/uptime-web-api/internals/modules/result"
	"github.com/chaudl113/uptime-web-api/internals/modules/settings"
	"github.com/chaudl113/uptime-web-api/pkg/apperror"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// timeLayout is fixed width and always UTC, so stored timestamps compare
// correctly as strings.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store keeps monitors, check history and channel settings in one SQLite file.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path and applies the schema.
// ":memory:" gives a private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite at %q: %w", path, err)
	}
	// pragmas are per connection and :memory: databases are per connection too
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) ListActive(ctx context.Context) ([]monitor.Monitor, error) {
	const op string = "sqlite.monitor.list_active"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, url, check_interval, is_active, last_checked_at
		FROM monitors
		WHERE is_active = 1
		ORDER BY created_at, rowid`)
	if err != nil {
		return nil, wrapError(op, err, false)
	}
	defer rows.Close()

	monitors := make([]monitor.Monitor, 0)
	for rows.Next() {
		m, err := scanMonitor(rows)
		if err != nil {
			return nil, wrapError(op, err, false)
		}
		monitors = append(monitors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(op, err, false)
	}
	return monitors, nil
}

func (s *Store) GetMonitor(ctx context.Context, id uuid.UUID) (monitor.Monitor, error) {
	const op string = "sqlite.monitor.get"

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, url, check_interval, is_active, last_checked_at
		FROM monitors
		WHERE id = ?`, id)
	m, err := scanMonitor(row)
	if err != nil {
		return monitor.Monitor{}, wrapError(op, err, true)
	}
	return m, nil
}

// UpdateLastChecked never moves last_checked_at backwards; an older at is
// ignored. The stored value is compared as a parsed time, since rows written by
// hand may carry zone offsets, and is rewritten in the canonical layout.
func (s *Store) UpdateLastChecked(ctx context.Context, monitorID uuid.UUID, at time.Time) error {
	const op string = "sqlite.monitor.update_last_checked"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapError(op, err, false)
	}
	defer tx.Rollback()

	var current sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT last_checked_at FROM monitors WHERE id = ?`, monitorID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return wrapError(op, err, false)
	}
	if current.Valid {
		// an unparseable value is replaced
		if prev, err := parseTime(current.String); err == nil && at.Before(prev) {
			return nil
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE monitors
		SET last_checked_at = ?, updated_at = ?
		WHERE id = ?`,
		formatTime(at), formatTime(s.now()), monitorID); err != nil {
		return wrapError(op, err, false)
	}
	if err := tx.Commit(); err != nil {
		return wrapError(op, err, false)
	}
	return nil
}

// CreateMonitor registers a monitor. Registration belongs to the dashboard in
// production; the add-monitor command uses this for local setups.
func (s *Store) CreateMonitor(ctx context.Context, m monitor.Monitor) error {
	const op string = "sqlite.monitor.create"

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := formatTime(s.now())

	var lastChecked any
	if m.LastCheckedAt != nil {
		lastChecked = formatTime(*m.LastCheckedAt)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO monitors (id, user_id, name, url, check_interval, is_active, last_checked_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.Name, m.URL, m.IntervalSec, m.Active, lastChecked, now, now)
	if err != nil {
		return wrapError(op, err, false)
	}
	return nil
}

// InsertCheckResult appends one history row with a fresh id.
func (s *Store) InsertCheckResult(ctx context.Context, res result.CheckResult) error {
	const op string = "sqlite.result.insert_check_result"

	var statusCode, errorMessage any
	if res.StatusCode != nil {
		statusCode = *res.StatusCode
	}
	if res.ErrorMessage != nil {
		errorMessage = *res.ErrorMessage
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO monitor_checks (id, monitor_id, status, response_time, status_code, error_message, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.New(), res.MonitorID, string(res.Status), res.ResponseTime, statusCode, errorMessage, formatTime(res.CheckedAt))
	if err != nil {
		return wrapError(op, err, false)
	}
	return nil
}

// ListCheckResults returns a monitor's history, oldest first.
func (s *Store) ListCheckResults(ctx context.Context, monitorID uuid.UUID) ([]result.CheckResult, error) {
	const op string = "sqlite.result.list"

	rows, err := s.db.QueryContext(ctx, `
		SELECT monitor_id, status, status_code, response_time, error_message, checked_at
		FROM monitor_checks
		WHERE monitor_id = ?
		ORDER BY checked_at, rowid`, monitorID)
	if err != nil {
		return nil, wrapError(op, err, false)
	}
	defer rows.Close()

	results := make([]result.CheckResult, 0)
	for rows.Next() {
		var (
			r            result.CheckResult
			status       string
			statusCode   sql.NullInt64
			errorMessage sql.NullString
			checkedAt    string
		)
		if err := rows.Scan(&r.MonitorID, &status, &statusCode, &r.ResponseTime, &errorMessage, &checkedAt); err != nil {
			return nil, wrapError(op, err, false)
		}
		r.Status = result.Status(status)
		if statusCode.Valid {
			code := int(statusCode.Int64)
			r.StatusCode = &code
		}
		if errorMessage.Valid {
			msg := errorMessage.String
			r.ErrorMessage = &msg
		}
		if r.CheckedAt, err = parseTime(checkedAt); err != nil {
			return nil, wrapError(op, err, false)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(op, err, false)
	}
	return results, nil
}

func (s *Store) GetChannelConfig(ctx context.Context, userID uuid.UUID) (settings.ChannelConfig, error) {
	const op string = "sqlite.settings.get_channel_config"

	var (
		cfg      settings.ChannelConfig
		chatID   sql.NullString
		botToken sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, telegram_notifications_enabled, telegram_chat_id, telegram_bot_token
		FROM user_settings
		WHERE user_id = ?`, userID).
		Scan(&cfg.UserID, &cfg.Enabled, &chatID, &botToken)
	if err != nil {
		return settings.ChannelConfig{}, wrapError(op, err, true)
	}

	cfg.ChatID = nullableString(chatID)
	cfg.BotToken = nullableString(botToken)
	return cfg, nil
}

func (s *Store) UpsertChannelConfig(ctx context.Context, cfg settings.ChannelConfig) error {
	const op string = "sqlite.settings.upsert_channel_config"

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, telegram_chat_id, telegram_notifications_enabled, telegram_bot_token)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			telegram_chat_id = excluded.telegram_chat_id,
			telegram_notifications_enabled = excluded.telegram_notifications_enabled,
			telegram_bot_token = excluded.telegram_bot_token`,
		cfg.UserID, stringOrNil(cfg.ChatID), cfg.Enabled, stringOrNil(cfg.BotToken))
	if err != nil {
		return wrapError(op, err, false)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMonitor(row scanner) (monitor.Monitor, error) {
	var (
		m           monitor.Monitor
		lastChecked sql.NullString
	)
	if err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.URL, &m.IntervalSec, &m.Active, &lastChecked); err != nil {
		return monitor.Monitor{}, err
	}
	if lastChecked.Valid {
		t, err := parseTime(lastChecked.String)
		if err != nil {
			return monitor.Monitor{}, err
		}
		m.LastCheckedAt = &t
	}
	return m, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// rows written by hand may carry plain RFC 3339
		t, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
		}
	}
	return t.UTC(), nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	v := ns.String
	return &v
}

func stringOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func wrapError(op string, err error, notFoundPossible bool) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &apperror.Error{
			Kind:    apperror.RequestTimeout,
			Op:      op,
			Message: "request cancelled or timed out",
			Err:     err,
		}
	}
	if notFoundPossible && errors.Is(err, sql.ErrNoRows) {
		return &apperror.Error{
			Kind:    apperror.NotFound,
			Op:      op,
			Message: "resource not found",
		}
	}
	return &apperror.Error{
		Kind:    apperror.DatabaseErr,
		Op:      op,
		Message: "database error",
		Err:     err,
	}
}
