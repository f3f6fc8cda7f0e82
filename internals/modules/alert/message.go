package alert

import (
	"fmt"
	"html"

	"github.com/chaudl113/uptime-web-api/internals/modules/monitor"
	"github.com/chaudl113/uptime-web-api/internals/modules/result"
)

const (
	unknownError = "Unknown error"
	timeLayout   = "2006-01-02 15:04:05 UTC"
)

// ComposeDownMessage renders the HTML text sent for a down result. Monitor
// fields and request errors are user controlled, so every one is escaped.
func ComposeDownMessage(m monitor.Monitor, r result.CheckResult) string {
	reason := r.Error()
	if reason == "" {
		reason = unknownError
	}

	return fmt.Sprintf("🚨 <b>Monitor Alert</b>\n\n<b>%s</b> is DOWN!\n\nURL: %s\nStatus: %s\nTime: %s",
		html.EscapeString(m.Name),
		html.EscapeString(m.URL),
		html.EscapeString(reason),
		r.CheckedAt.UTC().Format(timeLayout),
	)
}
