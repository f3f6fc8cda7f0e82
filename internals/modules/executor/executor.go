package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chaudl113/uptime-web-api/internals/modules/result"
	"github.com/rs/zerolog"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "UptimeMonitor/1.0"

	// upper bound of body bytes read before closing, so the connection can be reused
	maxDrainBytes = 64 << 10
)

// Executor performs bounded HTTP GET probes.
type Executor struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	now        func() time.Time
	logger     *zerolog.Logger
}

func NewExecutor(httpClient *http.Client, timeout time.Duration, userAgent string, logger *zerolog.Logger) *Executor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Executor{
		httpClient: httpClient,
		timeout:    timeout,
		userAgent:  userAgent,
		now:        time.Now,
		logger:     logger,
	}
}

// Probe issues one GET against url and classifies the outcome. It never fails:
// every error becomes a down result. MonitorID is left for the caller to set.
func (ex *Executor) Probe(ctx context.Context, url string) result.CheckResult {
	start := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, ex.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return ex.down(start, nil, err.Error())
	}
	req.Header.Set("User-Agent", ex.userAgent)

	resp, err := ex.httpClient.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return ex.down(start, nil, fmt.Sprintf("Request timeout (%s)", ex.timeout))
		}
		return ex.down(start, nil, err.Error())
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
		resp.Body.Close()
	}()

	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return result.CheckResult{
			Status:       result.StatusUp,
			StatusCode:   &code,
			ResponseTime: elapsedMs(start),
			CheckedAt:    ex.now().UTC(),
		}
	}

	return ex.down(start, &code, fmt.Sprintf("HTTP %d", code))
}

func (ex *Executor) down(start time.Time, code *int, msg string) result.CheckResult {
	ex.logger.Debug().Str("reason", msg).Msg("probe failed")

	return result.CheckResult{
		Status:       result.StatusDown,
		StatusCode:   code,
		ResponseTime: elapsedMs(start),
		ErrorMessage: &msg,
		CheckedAt:    ex.now().UTC(),
	}
}

func elapsedMs(start time.Time) int64 {
	ms := time.Since(start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}
