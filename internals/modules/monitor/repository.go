package monitor

import (
	"context"
	"time"

	"github.com/chaudl113/uptime-web-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const listActiveQuery = `
SELECT id, user_id, name, url, check_interval, is_active, last_checked_at
FROM monitors
WHERE is_active = true
ORDER BY created_at, id`

// The guard keeps last_checked_at from ever moving backwards.
const updateLastCheckedQuery = `
UPDATE monitors
SET last_checked_at = $2, updated_at = now()
WHERE id = $1 AND (last_checked_at IS NULL OR last_checked_at <= $2)`

// Repository is the Postgres view of the monitors table.
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

func (r *Repository) ListActive(ctx context.Context) ([]Monitor, error) {
	const op string = "repo.monitor.list_active"

	rows, err := r.pool.Query(ctx, listActiveQuery)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	monitors := make([]Monitor, 0)
	for rows.Next() {
		var (
			id, userID    pgtype.UUID
			name          pgtype.Text
			m             Monitor
			lastCheckedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &userID, &name, &m.URL, &m.IntervalSec, &m.Active, &lastCheckedAt); err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}
		m.ID = utils.FromPgUUID(id)
		m.UserID = utils.FromPgUUID(userID)
		m.Name = name.String
		m.LastCheckedAt = utils.FromPgTimestamptz(lastCheckedAt)
		monitors = append(monitors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return monitors, nil
}

func (r *Repository) UpdateLastChecked(ctx context.Context, monitorID uuid.UUID, at time.Time) error {
	const op string = "repo.monitor.update_last_checked"

	tag, err := r.pool.Exec(ctx, updateLastCheckedQuery, utils.ToPgUUID(monitorID), utils.ToPgTimestamptz(at))
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Debug().
			Str("op", op).
			Str("monitor_id", monitorID.String()).
			Msg("last_checked_at not advanced")
	}
	return nil
}
