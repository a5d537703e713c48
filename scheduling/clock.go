package scheduling

import (
	"fmt"
	"time"
)

const MinutesPerDay = 24 * 60

// ParseClock converts a "HH:MM" wall-clock string to minutes since midnight.
// "24:00" is accepted as the end-of-day sentinel for block end times.
func ParseClock(s string) (int, error) {
	if s == "24:00" {
		return MinutesPerDay, nil
	}

	if len(s) != 5 || s[2] != ':' {
		return 0, &ValidationError{Reason: fmt.Sprintf("invalid time %q, expected HH:MM", s)}
	}
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &hour, &minute); err != nil {
		return 0, &ValidationError{Reason: fmt.Sprintf("invalid time %q, expected HH:MM", s)}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, &ValidationError{Reason: fmt.Sprintf("invalid time %q, expected HH:MM", s)}
	}
	return hour*60 + minute, nil
}

// FormatClock is the inverse of ParseClock.
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// MinuteOfDay returns the UTC minute-of-day of an instant.
func MinuteOfDay(t time.Time) int {
	t = t.UTC()
	return t.Hour()*60 + t.Minute()
}
