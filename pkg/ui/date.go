package ui

import "time"

// recentLimit is the age below which ShortDate shows day and month
const recentLimit = 180 * 24 * time.Hour

// ShortDate formats t relative to now: the time of day within the last
// 24 hours, "dd.mm." within the last 180 days, the year otherwise
func ShortDate(t, now time.Time) string {
	age := now.Sub(t)
	switch {
	case age < 24*time.Hour:
		return t.Format("15:04")
	case age < recentLimit:
		return t.Format("02.01.")
	default:
		return t.Format("2006")
	}
}
