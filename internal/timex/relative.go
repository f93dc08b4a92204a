package timex

import (
	"fmt"
	"time"
)

// BackendLayout is the timestamp layout the backend uses for heartbeats,
// sync times and last-login values.
const BackendLayout = "2006-01-02 15:04:05"

// ParseTimestamp accepts BackendLayout or RFC 3339.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(BackendLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
	}
	return t, nil
}

// RelativeTime renders the age of t as seen at now: "Just now", "N min ago",
// "N hour(s) ago" or "N day(s) ago". Future timestamps render as "Just now".
func RelativeTime(now, t time.Time) string {
	minutes := int(now.Sub(t) / time.Minute)
	if minutes < 1 {
		return "Just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min ago", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d %s ago", hours, plural(hours, "hour"))
	}

	days := hours / 24
	return fmt.Sprintf("%d %s ago", days, plural(days, "day"))
}

// RelativeTimestamp parses s and renders it relative to now. Values that do
// not parse (e.g. "Never") are returned unchanged.
func RelativeTimestamp(now time.Time, s string) string {
	t, err := ParseTimestamp(s)
	if err != nil {
		return s
	}
	return RelativeTime(now, t)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
