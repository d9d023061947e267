package todo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipMarker_ValidAt(t *testing.T) {
	now := time.Date(2025, 11, 12, 14, 0, 0, 0, time.Local)

	tests := []struct {
		name   string
		marker SkipMarker
		want   bool
	}{
		{"fresh today", NewSkipMarker(now.Add(-time.Hour)), true},
		{"older than ttl", SkipMarker{Date: "2025-11-12", SetAt: now.Add(-13 * time.Hour)}, false},
		{"yesterday", NewSkipMarker(now.AddDate(0, 0, -1)), false},
		{"no timestamp", SkipMarker{Date: "2025-11-12"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.marker.ValidAt(now))
		})
	}
}

func TestNormalizeDailyRecurrence(t *testing.T) {
	now := time.Date(2025, 11, 12, 9, 0, 0, 0, time.Local)
	rule := DefaultLunchRule()
	other := Item{ID: "1", Title: "poster"}

	t.Run("creates missing lunch at rule time", func(t *testing.T) {
		got := NormalizeDailyRecurrence([]Item{other}, now, nil, rule)
		require.Len(t, got, 2)

		lunch := got[Find(got, LunchID)]
		assert.Equal(t, "Lunch", lunch.Title)
		assert.Equal(t, "2025-11-12T12:00", lunch.Time)
		assert.Equal(t, 60, lunch.Duration)
	})

	t.Run("valid skip marker suppresses lunch", func(t *testing.T) {
		skip := NewSkipMarker(now.Add(-time.Hour))
		got := NormalizeDailyRecurrence([]Item{other}, now, &skip, rule)
		assert.Equal(t, -1, Find(got, LunchID))
	})

	t.Run("stale skip marker is ignored", func(t *testing.T) {
		skip := NewSkipMarker(now.AddDate(0, 0, -1))
		got := NormalizeDailyRecurrence([]Item{other}, now, &skip, rule)
		assert.NotEqual(t, -1, Find(got, LunchID))
	})

	t.Run("lunch today untouched", func(t *testing.T) {
		in := []Item{{ID: LunchID, Title: "Lunch", Time: "2025-11-12T12:30", Duration: 45}}
		got := NormalizeDailyRecurrence(in, now, nil, rule)
		assert.Equal(t, in, got)
	})

	t.Run("lunch on another day moves to today keeping its clock", func(t *testing.T) {
		in := []Item{{ID: LunchID, Title: "Lunch", Time: "2025-11-10T12:30", Duration: 45}}
		got := NormalizeDailyRecurrence(in, now, nil, rule)
		require.Len(t, got, 1)
		assert.Equal(t, "2025-11-12T12:30", got[0].Time)
		assert.Equal(t, "2025-11-10T12:30", in[0].Time, "input must not change")
	})

	t.Run("unparseable lunch time falls back to rule", func(t *testing.T) {
		in := []Item{{ID: LunchID, Title: "Lunch", Time: "noonish"}}
		got := NormalizeDailyRecurrence(in, now, nil, rule)
		assert.Equal(t, "2025-11-12T12:00", got[0].Time)
	})

	t.Run("disabled rule is a copy", func(t *testing.T) {
		rule := rule
		rule.Enabled = false
		got := NormalizeDailyRecurrence([]Item{other}, now, nil, rule)
		assert.Equal(t, []Item{other}, got)
	})
}
