package todo

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for Item.Time and Item.Deadline, tried in order.
const (
	LayoutDateTime = "2006-01-02T15:04"
	LayoutDate     = "2006-01-02"
)

var whenLayouts = []string{
	LayoutDateTime,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	LayoutDate,
}

// ParseWhen parses a stored time value. Zone-qualified RFC 3339 values are
// converted to loc; wall-clock values are interpreted in loc. A bare date is
// local midnight.
func ParseWhen(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), true
	}
	for _, layout := range whenLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatWhen renders t as M/D HH:MM, or M/D all day.
func FormatWhen(t time.Time, allDay bool) string {
	if allDay {
		return fmt.Sprintf("%d/%d all day", t.Month(), t.Day())
	}
	return fmt.Sprintf("%d/%d %s", t.Month(), t.Day(), t.Format("15:04"))
}

// FormatClock renders t as HH:MM.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}
