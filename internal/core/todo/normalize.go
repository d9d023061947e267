package todo

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/Yamikowu/studdy/internal/core/validate"
)

// Normalize applies the add/edit form rules to an item:
//   - title and subtask text are trimmed, empty subtasks dropped
//   - an all-day time keeps only its date and loses its duration
//   - a timed item given only a date starts at 00:00
//   - an all-day deadline keeps only its date
//   - a timed deadline given only a date is due at 23:59
func Normalize(it Item) Item {
	it = it.Clone()
	it.Title = strings.TrimSpace(it.Title)
	it.Time = strings.TrimSpace(it.Time)
	it.Deadline = strings.TrimSpace(it.Deadline)

	if it.AllDay {
		it.Time = datePart(it.Time)
		it.Duration = 0
	} else if len(it.Time) == len(LayoutDate) {
		it.Time += "T00:00"
	}

	if it.DeadlineAllDay {
		it.Deadline = datePart(it.Deadline)
	} else if len(it.Deadline) == len(LayoutDate) {
		it.Deadline += "T23:59"
	}

	if len(it.Subtasks) > 0 {
		kept := it.Subtasks[:0]
		for _, st := range it.Subtasks {
			st.Text = strings.TrimSpace(st.Text)
			if st.Text != "" {
				kept = append(kept, st)
			}
		}
		it.Subtasks = kept
	}

	return it
}

func datePart(s string) string {
	if len(s) < len(LayoutDate) {
		return ""
	}
	return s[:len(LayoutDate)]
}

// Validate checks an item as submitted by a form. Stored items are never
// rejected on read; a malformed time just keeps them off the timeline.
func Validate(it Item) error {
	return criterio.ValidateStruct(
		validate.RequiredField("title", it.Title),
		criterio.Run("duration", it.Duration, validate.NonNegative),
		criterio.Run("time", it.Time, parseableOrEmpty),
		criterio.Run("deadline", it.Deadline, parseableOrEmpty),
	)
}

func parseableOrEmpty(s string) error {
	if s == "" {
		return nil
	}
	if _, ok := ParseWhen(s, nil); !ok {
		return fmt.Errorf("unrecognized date/time %q (use YYYY-MM-DD or YYYY-MM-DDTHH:MM)", s)
	}
	return nil
}
