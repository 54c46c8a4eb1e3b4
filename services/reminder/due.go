package reminder

import (
	"time"

	"taskpilot/models"
)

// ShouldFire decides whether a reminder with the given cadence is due at now.
// It is evaluated once per wall-clock minute, so the minute-boundary checks
// below are exhaustive: minutes fire on every interval-aligned minute, hours
// fire at minute 0 of every interval-aligned hour, and days fire at midnight.
// A days interval beyond 1 is accepted but behaves like 1; the unit carries no
// anchor date to count days from.
func ShouldFire(now time.Time, interval int, unit string) bool {
	if interval <= 0 {
		interval = 1
	}

	minute := now.Minute()
	hour := now.Hour()

	switch unit {
	case models.UnitMinutes:
		return minute%interval == 0
	case models.UnitHours:
		return minute == 0 && hour%interval == 0
	case models.UnitDays:
		return minute == 0 && hour == 0
	default:
		return false
	}
}
