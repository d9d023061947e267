package todo

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Item
		want Item
	}{
		{
			name: "all day truncates time and clears duration",
			in:   Item{Title: " report ", Time: "2025-12-11T09:00", AllDay: true, Duration: 30},
			want: Item{Title: "report", Time: "2025-12-11", AllDay: true},
		},
		{
			name: "timed date only starts at midnight",
			in:   Item{Title: "a", Time: "2025-12-11"},
			want: Item{Title: "a", Time: "2025-12-11T00:00"},
		},
		{
			name: "all day deadline truncated",
			in:   Item{Title: "a", Deadline: "2025-12-11T18:00", DeadlineAllDay: true},
			want: Item{Title: "a", Deadline: "2025-12-11", DeadlineAllDay: true},
		},
		{
			name: "timed deadline date only is end of day",
			in:   Item{Title: "a", Deadline: "2025-12-11"},
			want: Item{Title: "a", Deadline: "2025-12-11T23:59"},
		},
		{
			name: "full datetime untouched",
			in:   Item{Title: "a", Time: "2025-12-11T10:00", Duration: 45},
			want: Item{Title: "a", Time: "2025-12-11T10:00", Duration: 45},
		},
		{
			name: "blank subtasks dropped",
			in:   Item{Title: "a", Subtasks: []Subtask{{ID: "s1", Text: " read "}, {ID: "s2", Text: "  "}}},
			want: Item{Title: "a", Subtasks: []Subtask{{ID: "s1", Text: "read"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := Item{Title: "a", Subtasks: []Subtask{{ID: "s1", Text: " x "}, {ID: "s2", Text: ""}}}
	_ = Normalize(in)
	assert.Equal(t, " x ", in.Subtasks[0].Text)
	assert.Len(t, in.Subtasks, 2)
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Validate(Item{Title: "ok", Time: "2025-12-11T10:00"}))
	})

	t.Run("empty title", func(t *testing.T) {
		err := Validate(Item{Title: "   "})
		require.Error(t, err)

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		require.Len(t, fieldErrs, 1)
		assert.Equal(t, "title", fieldErrs[0].Field)
	})

	t.Run("bad time and negative duration", func(t *testing.T) {
		err := Validate(Item{Title: "x", Time: "soon", Duration: -5})
		require.Error(t, err)

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Len(t, fieldErrs, 2)
	})
}
