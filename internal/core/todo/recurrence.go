package todo

import (
	"time"

	"github.com/Yamikowu/studdy/internal/core/calendar"
)

// LunchID is the fixed ID of the daily recurring lunch item.
const LunchID = "lunch"

// SkipMarkerTTL bounds how long a skipped lunch stays skipped.
const SkipMarkerTTL = 12 * time.Hour

// SkipMarker records that the user removed today's lunch item so it is not
// re-created on the next load.
type SkipMarker struct {
	Date  string    `json:"date"`
	SetAt time.Time `json:"ts"`
}

// NewSkipMarker returns a marker for now's calendar day.
func NewSkipMarker(now time.Time) SkipMarker {
	return SkipMarker{Date: calendar.DateKey(now), SetAt: now}
}

// ValidAt reports whether the marker still suppresses lunch at now: it must be
// for today and younger than SkipMarkerTTL. Markers without a timestamp are
// never valid.
func (m SkipMarker) ValidAt(now time.Time) bool {
	if m.SetAt.IsZero() || m.Date != calendar.DateKey(now) {
		return false
	}
	return now.Sub(m.SetAt) < SkipMarkerTTL
}

// LunchRule describes the daily recurring item.
type LunchRule struct {
	Enabled  bool
	Title    string
	Hour     int
	Minute   int
	Duration int // minutes
}

// DefaultLunchRule is a one-hour lunch at 12:00.
func DefaultLunchRule() LunchRule {
	return LunchRule{Enabled: true, Title: "Lunch", Hour: 12, Minute: 0, Duration: 60}
}

// NormalizeDailyRecurrence makes sure the lunch item sits on now's calendar
// day. A missing lunch is re-created unless skip is valid at now; a lunch on
// another day is moved to today at its own clock time. The input slice is not
// modified.
func NormalizeDailyRecurrence(items []Item, now time.Time, skip *SkipMarker, rule LunchRule) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	if !rule.Enabled {
		return out
	}

	idx := Find(out, LunchID)
	if idx < 0 {
		if skip != nil && skip.ValidAt(now) {
			return out
		}
		return append(out, Item{
			ID:       LunchID,
			Title:    rule.Title,
			Time:     calendar.At(now, rule.Hour, rule.Minute).Format(LayoutDateTime),
			Duration: rule.Duration,
		})
	}

	lunch := out[idx]
	start, ok := lunch.StartTime(now.Location())
	if ok && calendar.SameDay(now, start) {
		return out
	}

	hour, minute := rule.Hour, rule.Minute
	if ok {
		hour, minute = start.Hour(), start.Minute()
	}
	lunch.Time = calendar.At(now, hour, minute).Format(LayoutDateTime)
	lunch.AllDay = false
	out[idx] = lunch
	return out
}
