package services

import (
	"fmt"
	"math"
	"time"
)

// ParseDate parses a date string into a midnight-UTC time. The primary format
// is ISO 8601 (YYYY-MM-DD, standard for HTML5 date inputs); full timestamps
// are tolerated as a fallback and truncated to their UTC calendar date.
func ParseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err == nil {
		return parsed, nil
	}

	// Fallback: generic timestamp parse, normalized to midnight UTC
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, dateStr); err == nil {
			return time.Date(ts.UTC().Year(), ts.UTC().Month(), ts.UTC().Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
}

// TodayUTC returns the current calendar date at midnight UTC
func TodayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// DiffDays returns the whole-day difference to - from, rounding up.
// Both arguments are expected to be midnight-UTC dates.
func DiffDays(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// YMD formats a time as YYYY-MM-DD in UTC
func YMD(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// FormatBR formats a YYYY-MM-DD date string as DD/MM/YYYY for display.
// Empty input renders as an em dash; unparseable input is returned as-is.
func FormatBR(dateStr string) string {
	if dateStr == "" {
		return "—"
	}
	parsed, err := ParseDate(dateStr)
	if err != nil {
		return dateStr
	}
	return parsed.Format("02/01/2006")
}
