package timeline

import (
	"time"

	"github.com/Yamikowu/studdy/internal/core/calendar"
	"github.com/Yamikowu/studdy/internal/core/todo"
)

// Day is everything the day view needs for one date.
type Day struct {
	Date     time.Time   `json:"date"`
	AllDay   []todo.Item `json:"all_day"`
	Segments []Segment   `json:"segments"`
}

// Build computes the day view for selected.
func Build(items []todo.Item, selected time.Time) Day {
	return Day{
		Date:     calendar.StartOfDay(selected),
		AllDay:   AllDay(items, selected),
		Segments: Segments(items, selected),
	}
}

// AllDay returns the all-day items dated on selected's calendar day, in
// input order.
func AllDay(items []todo.Item, selected time.Time) []todo.Item {
	out := []todo.Item{}
	for _, it := range items {
		if !it.AllDay {
			continue
		}
		start, ok := it.StartTime(selected.Location())
		if ok && calendar.SameDay(selected, start) {
			out = append(out, it)
		}
	}
	return out
}

// WeekDay is one cell of the week strip.
type WeekDay struct {
	Date     time.Time `json:"date"`
	Name     string    `json:"name"`
	Count    int       `json:"count"`
	Selected bool      `json:"selected"`
	Today    bool      `json:"today"`
}

// Week returns the Monday-first week containing selected with the number of
// items dated on each day.
func Week(items []todo.Item, selected, now time.Time) []WeekDay {
	days := calendar.WeekDays(selected)
	out := make([]WeekDay, len(days))
	for i, d := range days {
		out[i] = WeekDay{
			Date:     d,
			Name:     calendar.DayName(d),
			Selected: calendar.SameDay(d, selected),
			Today:    calendar.SameDay(d, now),
		}
	}

	for _, it := range items {
		start, ok := it.StartTime(selected.Location())
		if !ok {
			continue
		}
		for i := range out {
			if calendar.SameDay(out[i].Date, start) {
				out[i].Count++
				break
			}
		}
	}
	return out
}
