package monitor

import "time"

// IsDue reports whether m must be probed at now. Inactive monitors are never due;
// a monitor that was never checked always is.
func IsDue(m Monitor, now time.Time) bool {
	if !m.Active {
		return false
	}
	if m.LastCheckedAt == nil {
		return true
	}
	return now.Sub(*m.LastCheckedAt) >= m.Interval()
}

// SelectDue returns the monitors due at now, keeping their input order.
func SelectDue(monitors []Monitor, now time.Time) []Monitor {
	due := make([]Monitor, 0, len(monitors))
	for _, m := range monitors {
		if IsDue(m, now) {
			due = append(due, m)
		}
	}
	return due
}
