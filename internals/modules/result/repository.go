package result

import (
	"context"

	"github.com/chaudl113/uptime-web-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const insertCheckResultQuery = `
INSERT INTO monitor_checks (id, monitor_id, status, response_time, status_code, error_message, checked_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Repository appends check history rows to Postgres. Rows are never updated.
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

func (r *Repository) InsertCheckResult(ctx context.Context, res CheckResult) error {
	const op string = "repo.result.insert_check_result"

	_, err := r.pool.Exec(ctx, insertCheckResultQuery,
		utils.ToPgUUID(uuid.New()),
		utils.ToPgUUID(res.MonitorID),
		string(res.Status),
		res.ResponseTime,
		utils.ToPgInt4(res.StatusCode),
		utils.ToPgText(res.ErrorMessage),
		utils.ToPgTimestamptz(res.CheckedAt),
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	return nil
}
