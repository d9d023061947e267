// Package calendar holds local-time date helpers shared by the planner views.
//
// All comparisons use the location carried by the time values, never UTC, so
// that an item at 00:30 local time does not drift onto the previous day.
package calendar

import "time"

// KeyLayout is the layout produced by DateKey.
const KeyLayout = "2006-01-02"

// DateKey formats the local calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(KeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key as local midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(KeyLayout, key, loc)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// At returns the given wall-clock time on t's calendar day. Hour 24 yields
// midnight of the following day.
func At(t time.Time, hour, minute int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day, comparing
// b in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WeekDays returns the Monday-to-Sunday week containing t.
func WeekDays(t time.Time) []time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	monday := StartOfDay(t).AddDate(0, 0, -offset)

	week := make([]time.Time, 7)
	for i := range week {
		week[i] = monday.AddDate(0, 0, i)
	}
	return week
}

// DayName returns the three-letter weekday abbreviation of t.
func DayName(t time.Time) string {
	return t.Weekday().String()[:3]
}
