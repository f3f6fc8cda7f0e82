package cycle

import (
	"context"
	"sync"
	"time"

	"github.com/chaudl113/uptime-web-api/pkg/apperror"
)

// Guarded lets at most one cycle run at a time within this process.
type Guarded struct {
	mu    sync.Mutex
	inner Runner
}

func NewGuarded(inner Runner) *Guarded {
	return &Guarded{inner: inner}
}

func (g *Guarded) RunCycle(ctx context.Context, now time.Time) (Summary, error) {
	if !g.mu.TryLock() {
		return Summary{}, apperror.New(apperror.Conflict, "service.cycle.guard", "a check cycle is already running", nil)
	}
	defer g.mu.Unlock()

	return g.inner.RunCycle(ctx, now)
}
