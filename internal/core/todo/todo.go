// Package todo defines the study-planner item model and its persistence in
// the key-value store.
package todo

import (
	"time"
)

// DefaultDuration is used for timed items that carry no duration.
const DefaultDuration = 60 * time.Minute

// Subtask is a checklist line attached to an item.
type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Item is a single to-do. Time and Deadline are kept as the strings the user
// entered so that malformed values survive a round trip; they are parsed on
// demand with StartTime and DeadlineTime.
type Item struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Category       Category  `json:"category"`
	CourseID       string    `json:"course_id,omitempty"`
	Time           string    `json:"time,omitempty"`
	AllDay         bool      `json:"all_day,omitempty"`
	Duration       int       `json:"duration,omitempty"` // minutes
	Deadline       string    `json:"deadline,omitempty"`
	DeadlineAllDay bool      `json:"deadline_all_day,omitempty"`
	Subtasks       []Subtask `json:"subtasks,omitempty"`
}

// StartTime parses Time in loc. ok is false when Time is empty or malformed.
func (it Item) StartTime(loc *time.Location) (time.Time, bool) {
	return ParseWhen(it.Time, loc)
}

// DeadlineTime parses Deadline in loc.
func (it Item) DeadlineTime(loc *time.Location) (time.Time, bool) {
	return ParseWhen(it.Deadline, loc)
}

// Length returns the scheduled length, falling back to DefaultDuration when
// Duration is unset or not positive.
func (it Item) Length() time.Duration {
	if it.Duration <= 0 {
		return DefaultDuration
	}
	return time.Duration(it.Duration) * time.Minute
}

// EndTime returns StartTime plus Length.
func (it Item) EndTime(loc *time.Location) (time.Time, bool) {
	start, ok := it.StartTime(loc)
	if !ok {
		return time.Time{}, false
	}
	return start.Add(it.Length()), true
}

// Clone returns a deep copy of it.
func (it Item) Clone() Item {
	if it.Subtasks != nil {
		it.Subtasks = append([]Subtask(nil), it.Subtasks...)
	}
	return it
}

// Find returns the index of the item with the given id, or -1.
func Find(items []Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
