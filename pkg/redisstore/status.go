package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func statusKey(monitorID uuid.UUID) string {
	return fmt.Sprintf("monitor:status:%v", monitorID)
}

// StoreStatus overwrites the latest-status snapshot of a monitor.
func (c *Client) StoreStatus(ctx context.Context, monitorID uuid.UUID, status string, statusCode int, latencyMs int64, checkedAt time.Time) error {
	key := statusKey(monitorID)

	return retry(ctx, 2, func() error {
		return c.rdb.HSet(ctx, key, map[string]any{
			"status":      status,
			"status_code": statusCode,
			"latency_ms":  latencyMs,
			"checked_at":  checkedAt.Unix(),
		}).Err()
	})
}
