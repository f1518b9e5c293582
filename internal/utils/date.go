package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// dayLength is the inclusive width of a day window: the last millisecond of the day is included.
const dayLength = 24*time.Hour - time.Millisecond

// isoLayouts are the accepted ISO-8601 forms, tried in order. Values without an offset are UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 date or timestamp. Calendar-invalid values such as 2021-02-30 are rejected.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 date %q", value)
}

// ValidDate reports whether value is a string or time.Time that parses as a valid
// timestamp and is not later than now.
func ValidDate(value any, now time.Time) bool {
	var t time.Time
	switch v := value.(type) {
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return false
		}
		t = parsed
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return false
		}
		t = *v
	default:
		return false
	}
	if t.IsZero() {
		return false
	}
	return !t.After(now)
}

// DayWindow returns the inclusive UTC bounds [00:00:00.000Z, 23:59:59.999Z] of the
// UTC calendar day containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(dayLength)
}

// NormalizeTime converts t to UTC at millisecond precision, the resolution entries are stored at.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
