package result

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chaudl113/uptime-web-api/internals/modules/monitor"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const EventCheckRecorded = "check.recorded"

type ResultStore interface {
	InsertCheckResult(ctx context.Context, res CheckResult) error
}

type MonitorStore interface {
	UpdateLastChecked(ctx context.Context, monitorID uuid.UUID, at time.Time) error
}

// StatusCache keeps the latest outcome per monitor for readers outside the cycle.
type StatusCache interface {
	StoreStatus(ctx context.Context, monitorID uuid.UUID, status string, statusCode int, latencyMs int64, checkedAt time.Time) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, payload any) error
}

// Recorder persists probe outcomes. The history insert and the last-checked update
// are independent: both are attempted and their failures are joined.
type Recorder struct {
	results   ResultStore
	monitors  MonitorStore
	status    StatusCache
	publisher EventPublisher
	logger    *zerolog.Logger
}

func NewRecorder(results ResultStore, monitors MonitorStore, logger *zerolog.Logger) *Recorder {
	return &Recorder{
		results:  results,
		monitors: monitors,
		logger:   logger,
	}
}

func (rc *Recorder) SetStatusCache(c StatusCache) {
	rc.status = c
}

func (rc *Recorder) SetPublisher(p EventPublisher) {
	rc.publisher = p
}

func (rc *Recorder) Record(ctx context.Context, m monitor.Monitor, res CheckResult, now time.Time) error {
	var errs []error

	if err := rc.results.InsertCheckResult(ctx, res); err != nil {
		errs = append(errs, fmt.Errorf("insert check result: %w", err))
	}

	if err := rc.monitors.UpdateLastChecked(ctx, m.ID, now); err != nil {
		errs = append(errs, fmt.Errorf("update last checked: %w", err))
	}

	rc.storeStatus(ctx, res)
	rc.publish(ctx, res)

	return errors.Join(errs...)
}

func (rc *Recorder) storeStatus(ctx context.Context, res CheckResult) {
	if rc.status == nil {
		return
	}

	code := 0
	if res.StatusCode != nil {
		code = *res.StatusCode
	}
	if err := rc.status.StoreStatus(ctx, res.MonitorID, string(res.Status), code, res.ResponseTime, res.CheckedAt); err != nil {
		rc.logger.Warn().
			Err(err).
			Str("monitor_id", res.MonitorID.String()).
			Msg("failed to store status snapshot")
	}
}

func (rc *Recorder) publish(ctx context.Context, res CheckResult) {
	if rc.publisher == nil {
		return
	}

	if err := rc.publisher.PublishEvent(ctx, EventCheckRecorded, res); err != nil {
		rc.logger.Warn().
			Err(err).
			Str("monitor_id", res.MonitorID.String()).
			Msg("failed to publish check event")
	}
}
