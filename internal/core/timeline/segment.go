// Package timeline lays out one day's scheduled items as a vertical list of
// groups, fixed-hour anchors and gaps.
package timeline

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Yamikowu/studdy/internal/core/todo"
)

// Kind is the type of a timeline segment. Higher values win when two
// adjacent segments show the same clock time.
type Kind int

const (
	KindGap Kind = iota
	KindAnchor
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindAnchor:
		return "anchor"
	case KindGroup:
		return "group"
	default:
		return "gap"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Segment is one renderable row of the timeline.
type Segment struct {
	Kind  Kind
	Start time.Time
	End   time.Time
	// Items is set for groups only, ordered by start time.
	Items []todo.Item
	// AnchorHour is the displayed hour of an anchor; the end-of-day anchor
	// is 0, not 24.
	AnchorHour int
}

// Label is the clock time shown next to the segment. Gaps are labelled with
// their start rounded up to the next whole hour.
func (s Segment) Label() string {
	switch s.Kind {
	case KindAnchor:
		return fmt.Sprintf("%02d:00", s.AnchorHour%24)
	case KindGap:
		h := s.Start.Hour()
		if s.Start.Minute() != 0 {
			h++
		}
		return fmt.Sprintf("%02d:00", h%24)
	default:
		return s.Start.Format("15:04")
	}
}

func (s Segment) MarshalJSON() ([]byte, error) {
	type view struct {
		Kind  Kind        `json:"kind"`
		Label string      `json:"label"`
		Start time.Time   `json:"start"`
		End   time.Time   `json:"end"`
		Items []todo.Item `json:"items,omitempty"`
	}
	return json.Marshal(view{Kind: s.Kind, Label: s.Label(), Start: s.Start, End: s.End, Items: s.Items})
}

// Anchor hours, in order. 24 is midnight at the end of the selected day.
var anchorHours = []int{7, 12, 24}

type entry struct {
	start, end time.Time
	item       *todo.Item
	hour       int
}

func (e entry) isAnchor() bool { return e.item == nil }
