package timeline

import (
	"slices"
	"time"

	"github.com/Yamikowu/studdy/internal/core/calendar"
	"github.com/Yamikowu/studdy/internal/core/todo"
)

// Segments lays out the timed items that start on selected's calendar day.
// All-day items and items whose time is missing or malformed are ignored.
// The result is ordered by start time and always contains the fixed anchors
// unless an overlapping group covers them. items is not modified.
func Segments(items []todo.Item, selected time.Time) []Segment {
	merged := append(timedEntries(items, selected), anchors(selected)...)
	// Items precede anchors on equal starts so a group opening at an
	// anchor's hour absorbs it.
	slices.SortStableFunc(merged, func(a, b entry) int { return a.start.Compare(b.start) })

	return collapse(walk(merged))
}

func timedEntries(items []todo.Item, selected time.Time) []entry {
	loc := selected.Location()

	out := make([]entry, 0, len(items))
	for i := range items {
		it := items[i]
		if it.AllDay {
			continue
		}
		start, ok := it.StartTime(loc)
		if !ok || !calendar.SameDay(selected, start) {
			continue
		}
		out = append(out, entry{start: start, end: start.Add(it.Length()), item: &it})
	}
	return out
}

func anchors(selected time.Time) []entry {
	out := make([]entry, len(anchorHours))
	for i, h := range anchorHours {
		at := calendar.At(selected, h, 0)
		out[i] = entry{start: at, end: at, hour: h % 24}
	}
	return out
}

func walk(merged []entry) []Segment {
	var (
		segs    []Segment
		lastEnd time.Time
		started bool
	)

	for _, e := range merged {
		if started && e.start.After(lastEnd) {
			segs = append(segs, Segment{Kind: KindGap, Start: lastEnd, End: e.start})
		}

		overlapsGroup := started && e.start.Before(lastEnd) &&
			len(segs) > 0 && segs[len(segs)-1].Kind == KindGroup

		switch {
		case overlapsGroup && e.isAnchor():
			// covered by the open group
		case overlapsGroup:
			g := &segs[len(segs)-1]
			g.Items = append(g.Items, *e.item)
			if e.end.After(g.End) {
				g.End = e.end
			}
		case e.isAnchor():
			segs = append(segs, Segment{Kind: KindAnchor, Start: e.start, End: e.end, AnchorHour: e.hour})
		default:
			segs = append(segs, Segment{Kind: KindGroup, Start: e.start, End: e.end, Items: []todo.Item{*e.item}})
		}

		if !started || e.end.After(lastEnd) {
			lastEnd = e.end
		}
		started = true
	}

	return segs
}

// collapse resolves adjacent segments with the same label: the higher Kind
// replaces the lower, equal kinds keep the earlier one, and two groups are
// merged. Empty groups are dropped.
func collapse(segs []Segment) []Segment {
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if s.Kind == KindGroup && len(s.Items) == 0 {
			continue
		}

		n := len(out)
		if n == 0 || out[n-1].Label() != s.Label() {
			out = append(out, s)
			continue
		}

		prev := &out[n-1]
		switch {
		case s.Kind > prev.Kind:
			*prev = s
		case s.Kind == KindGroup && prev.Kind == KindGroup:
			prev.Items = append(prev.Items, s.Items...)
			if s.End.After(prev.End) {
				prev.End = s.End
			}
		}
	}
	return out
}
