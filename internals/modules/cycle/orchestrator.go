package cycle

import (
	"context"
	"fmt"
	"time"

	"github.com/chaudl113/uptime-web-api/internals/modules/monitor"
	"github.com/chaudl113/uptime-web-api/internals/modules/result"
	"github.com/chaudl113/uptime-web-api/pkg/apperror"
	"github.com/chaudl113/uptime-web-api/pkg/utils"
	"github.com/rs/zerolog"
)

type MonitorLister interface {
	ListActive(ctx context.Context) ([]monitor.Monitor, error)
}

type Prober interface {
	Probe(ctx context.Context, url string) result.CheckResult
}

type Recorder interface {
	Record(ctx context.Context, m monitor.Monitor, res result.CheckResult, now time.Time) error
}

type Notifier interface {
	NotifyIfDown(ctx context.Context, m monitor.Monitor, res result.CheckResult) error
}

// Runner is anything that can run one cycle.
type Runner interface {
	RunCycle(ctx context.Context, now time.Time) (Summary, error)
}

// Orchestrator runs the check pipeline over every due monitor, one at a time.
type Orchestrator struct {
	monitors MonitorLister
	prober   Prober
	recorder Recorder
	notifier Notifier
	logger   *zerolog.Logger
}

func NewOrchestrator(monitors MonitorLister, prober Prober, recorder Recorder, notifier Notifier, logger *zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		monitors: monitors,
		prober:   prober,
		recorder: recorder,
		notifier: notifier,
		logger:   logger,
	}
}

// RunCycle fails only when the active monitors cannot be listed. Failures of a
// single monitor are logged and the loop moves on.
func (o *Orchestrator) RunCycle(ctx context.Context, now time.Time) (Summary, error) {
	const op string = "service.cycle.run"

	monitors, err := o.monitors.ListActive(ctx)
	if err != nil {
		o.logger.Error().Err(err).Str("op", op).Msg("failed to list active monitors")
		return Summary{}, apperror.New(apperror.Dependency, op, fmt.Sprintf("failed to list active monitors: %v", err), err)
	}

	summary := Summary{
		Message:     utils.CycleCompleted,
		TotalActive: len(monitors),
		Results:     make([]result.CheckResult, 0),
	}
	if len(monitors) == 0 {
		summary.Message = utils.NoActiveMonitors
		return summary, nil
	}

	valid := make([]monitor.Monitor, 0, len(monitors))
	for _, m := range monitors {
		if err := m.Validate(); err != nil {
			o.logger.Warn().
				Err(err).
				Str("monitor_id", m.ID.String()).
				Msg("skipping invalid monitor")
			continue
		}
		valid = append(valid, m)
	}

	due := monitor.SelectDue(valid, now)
	summary.Checked = len(due)
	summary.Skipped = summary.TotalActive - summary.Checked

	for _, m := range due {
		if res, ok := o.process(ctx, m, now); ok {
			summary.Results = append(summary.Results, res)
		}
	}

	o.logger.Info().
		Int("total_active", summary.TotalActive).
		Int("checked", summary.Checked).
		Int("skipped", summary.Skipped).
		Msg("cycle finished")

	return summary, nil
}

// process returns ok=false only when no result could be produced.
func (o *Orchestrator) process(ctx context.Context, m monitor.Monitor, now time.Time) (res result.CheckResult, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			o.logger.Error().
				Str("monitor_id", m.ID.String()).
				Interface("panic", rec).
				Msg("monitor processing panicked")
		}
	}()

	res = o.prober.Probe(ctx, m.URL)
	res.MonitorID = m.ID
	ok = true

	if err := o.recorder.Record(ctx, m, res, now); err != nil {
		o.logger.Error().
			Err(err).
			Str("monitor_id", m.ID.String()).
			Msg("failed to record check result")
	}

	if err := o.notifier.NotifyIfDown(ctx, m, res); err != nil {
		o.logger.Error().
			Err(err).
			Str("monitor_id", m.ID.String()).
			Msg("failed to send down alert")
	}

	return res, ok
}
