package timeline

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yamikowu/studdy/internal/core/todo"
)

func TestBuild_SplitsAllDay(t *testing.T) {
	items := []todo.Item{
		{ID: "report", Title: "report", Time: "2025-11-12", AllDay: true},
		{ID: "other-day", Title: "x", Time: "2025-11-13", AllDay: true},
		timed("1", 14, 0, 60),
	}

	d := Build(items, day)

	assert.Equal(t, time.Date(2025, 11, 12, 0, 0, 0, 0, time.Local), d.Date)
	require.Len(t, d.AllDay, 1)
	assert.Equal(t, "report", d.AllDay[0].ID)

	var groups int
	for _, s := range d.Segments {
		if s.Kind == KindGroup {
			groups++
			assert.Equal(t, "1", s.Items[0].ID)
		}
	}
	assert.Equal(t, 1, groups)
}

func TestWeek(t *testing.T) {
	items := []todo.Item{
		timed("1", 8, 0, 60),
		{ID: "2", Time: "2025-11-12", AllDay: true},
		{ID: "3", Time: "2025-11-10T09:00"},
		{ID: "4", Time: "2025-11-20T09:00"},
		{ID: "5"},
	}
	now := time.Date(2025, 11, 14, 9, 0, 0, 0, time.Local)

	week := Week(items, day, now)
	require.Len(t, week, 7)

	assert.Equal(t, "Mon", week[0].Name)
	assert.Equal(t, 10, week[0].Date.Day())
	assert.Equal(t, 1, week[0].Count)

	assert.True(t, week[2].Selected)
	assert.Equal(t, 2, week[2].Count)

	assert.True(t, week[4].Today)
	assert.Equal(t, "Sun", week[6].Name)
}

func TestSegment_JSON(t *testing.T) {
	segs := Segments([]todo.Item{timed("1", 8, 0, 60)}, day)

	b, err := json.Marshal(segs[1])
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "group", got["kind"])
	assert.Equal(t, "08:00", got["label"])
	assert.Len(t, got["items"], 1)
}

func TestSegment_Label(t *testing.T) {
	ts := func(h, m int) time.Time { return time.Date(2025, 11, 12, h, m, 0, 0, time.Local) }

	tests := []struct {
		name string
		seg  Segment
		want string
	}{
		{"anchor", Segment{Kind: KindAnchor, AnchorHour: 7}, "07:00"},
		{"end of day anchor", Segment{Kind: KindAnchor, AnchorHour: 24}, "00:00"},
		{"gap on the hour", Segment{Kind: KindGap, Start: ts(9, 0)}, "09:00"},
		{"gap rounds up", Segment{Kind: KindGap, Start: ts(9, 30)}, "10:00"},
		{"gap rounds past midnight", Segment{Kind: KindGap, Start: ts(23, 30)}, "00:00"},
		{"group exact", Segment{Kind: KindGroup, Start: ts(9, 5)}, "09:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.seg.Label())
		})
	}
}
