package utils

const (
	CycleCompleted   = "Monitors checked successfully"
	NoActiveMonitors = "No active monitors found"
)
