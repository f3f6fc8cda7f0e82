package result

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// CheckResult is the immutable outcome of one probe.
type CheckResult struct {
	MonitorID    uuid.UUID `json:"monitor_id"`
	Status       Status    `json:"status"`
	StatusCode   *int      `json:"status_code"`
	ResponseTime int64     `json:"response_time"`
	ErrorMessage *string   `json:"error_message"`
	CheckedAt    time.Time `json:"checked_at"`
}

func (r CheckResult) IsDown() bool {
	return r.Status == StatusDown
}

// Error returns the error message or an empty string.
func (r CheckResult) Error() string {
	if r.ErrorMessage == nil {
		return ""
	}
	return *r.ErrorMessage
}
