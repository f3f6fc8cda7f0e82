package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/chaudl113/uptime-web-api/internals/modules/cycle"
	"github.com/chaudl113/uptime-web-api/pkg/apperror"
	"github.com/rs/zerolog"
)

// Scheduler triggers a check cycle on every tick until ctx is cancelled.
// It is only started when no external trigger drives the service.
type Scheduler struct {
	// lifecycle
	ctx      context.Context
	interval time.Duration
	wg       sync.WaitGroup

	// services
	runner cycle.Runner

	// misc
	now    func() time.Time
	logger *zerolog.Logger
}

func NewScheduler(ctx context.Context, interval time.Duration, runner cycle.Runner, logger *zerolog.Logger) *Scheduler {
	return &Scheduler{
		ctx:      ctx,
		interval: interval,
		runner:   runner,
		now:      time.Now,
		logger:   logger,
	}
}

func (sc *Scheduler) StartScheduler() {
	sc.wg.Add(1)

	go func() {
		defer sc.wg.Done()

		ticker := time.NewTicker(sc.interval)
		defer ticker.Stop()

		sc.logger.Info().Dur("interval", sc.interval).Msg("scheduler started")
		for {
			select {
			case <-sc.ctx.Done():
				sc.logger.Info().Msg("scheduler stopped")
				return

			case <-ticker.C:
				sc.tick()
			}
		}
	}()
}

// Wait blocks until the scheduler loop has returned.
func (sc *Scheduler) Wait() {
	sc.wg.Wait()
}

func (sc *Scheduler) tick() {
	summary, err := sc.runner.RunCycle(sc.ctx, sc.now().UTC())
	if err != nil {
		if apperror.IsKind(err, apperror.Conflict) {
			// previous cycle still running; try again next tick
			sc.logger.Debug().Msg("scheduled cycle skipped, another one is running")
			return
		}
		sc.logger.Error().Err(err).Msg("scheduled cycle failed")
		return
	}

	sc.logger.Debug().
		Int("checked", summary.Checked).
		Int("skipped", summary.Skipped).
		Msg("scheduled cycle done")
}
