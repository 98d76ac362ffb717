package board

import (
	"time"
)

// MinutesUntil converts an RFC3339 timestamp into whole minutes from now,
// truncated toward zero and clamped at 0 so an overdue arrival reads as due
// now. ok is false when the timestamp does not parse; callers treat the
// value as absent rather than failing.
func MinutesUntil(timestamp string, now time.Time) (int, bool) {
	arrival, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return 0, false
	}

	minutes := int(arrival.Sub(now) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}

	return minutes, true
}

// LocalTimeLabel formats an RFC3339 timestamp as "HH:MM" in the given zone.
// The "--:--" placeholder, not an error, is the failure contract.
func LocalTimeLabel(timestamp string, zone *time.Location) string {
	arrival, err := time.Parse(time.RFC3339, timestamp)
	if err != nil || zone == nil {
		return "--:--"
	}

	return arrival.In(zone).Format("15:04")
}

// IsDelayed reports whether the expected arrival is strictly later than the
// aimed one. Any parse failure means no delay is shown.
func IsDelayed(aimed string, expected string) bool {
	aimedTime, err := time.Parse(time.RFC3339, aimed)
	if err != nil {
		return false
	}

	expectedTime, err := time.Parse(time.RFC3339, expected)
	if err != nil {
		return false
	}

	return expectedTime.After(aimedTime)
}
