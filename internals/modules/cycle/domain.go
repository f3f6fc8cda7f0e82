package cycle

import "github.com/chaudl113/uptime-web-api/internals/modules/result"

// Summary is the outcome of one cycle and the body of a successful trigger.
type Summary struct {
	Message     string               `json:"message"`
	TotalActive int                  `json:"total_active"`
	Checked     int                  `json:"checked"`
	Skipped     int                  `json:"skipped"`
	Results     []result.CheckResult `json:"results"`
}
