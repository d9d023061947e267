// Package render draws planner views as styled terminal text.
package render

import (
	"fmt"
	"strings"
	"time"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/Yamikowu/studdy/internal/core/course"
	"github.com/Yamikowu/studdy/internal/core/styles"
	"github.com/Yamikowu/studdy/internal/core/timeline"
	"github.com/Yamikowu/studdy/internal/core/todo"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 60

// Renderer draws views at a fixed width in a fixed location.
type Renderer struct {
	Width int
	Loc   *time.Location
	// Courses maps course IDs to names for item lines.
	Courses map[string]string
}

// New returns a Renderer. A width below 20 falls back to DefaultWidth.
func New(width int, loc *time.Location) *Renderer {
	if width < 20 {
		width = DefaultWidth
	}
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{Width: width, Loc: loc, Courses: map[string]string{}}
}

// WithCourses sets the course names shown next to items.
func (r *Renderer) WithCourses(courses []course.Course) *Renderer {
	r.Courses = make(map[string]string, len(courses))
	for _, c := range courses {
		r.Courses[c.ID] = c.Name
	}
	return r
}

// Week renders the Monday-first week strip.
func (r *Renderer) Week(days []timeline.WeekDay) string {
	cells := make([]string, 0, len(days))
	for _, d := range days {
		label := fmt.Sprintf("%s %d", d.Name, d.Date.Day())
		if d.Count > 0 {
			label += fmt.Sprintf(" (%d)", d.Count)
		}

		style := styles.DayStyle
		switch {
		case d.Selected:
			style = styles.DaySelectedStyle
		case d.Today:
			style = styles.DayTodayStyle
		}
		cells = append(cells, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// Day renders the all-day list followed by the timeline segments.
func (r *Renderer) Day(day timeline.Day) string {
	var b strings.Builder

	b.WriteString(styles.HeaderStyle.Render(day.Date.Format("Monday, January 2")))
	b.WriteString("\n")

	if len(day.AllDay) > 0 {
		b.WriteString(styles.MutedStyle.Render("All day"))
		b.WriteString("\n")
		for _, it := range day.AllDay {
			b.WriteString("  ")
			b.WriteString(r.itemTitle(it))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	for _, s := range day.Segments {
		b.WriteString(r.Segment(s))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// Segment renders one timeline row: anchors as a solid rule, gaps as a
// dotted connector and groups as a box of items.
func (r *Renderer) Segment(s timeline.Segment) string {
	label := styles.TimeLabelStyle.Render(s.Label())
	rule := max(r.Width-lipgloss.Width(label)-1, 1)

	switch s.Kind {
	case timeline.KindAnchor:
		return label + " " + styles.AnchorStyle.Render(strings.Repeat("━", rule))
	case timeline.KindGap:
		return label + " " + styles.GapStyle.Render(strings.Repeat("┈", rule))
	}

	lines := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		lines = append(lines, r.groupItem(it))
	}
	box := styles.GroupBoxStyle.
		Width(max(rule-styles.GroupBoxStyle.GetHorizontalBorderSize(), 1)).
		BorderForeground(styles.Category(dominant(s.Items)).GetForeground()).
		Render(strings.Join(lines, "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", box)
}

func (r *Renderer) groupItem(it todo.Item) string {
	parts := []string{r.itemTitle(it)}

	if start, ok := it.StartTime(r.Loc); ok {
		end := start.Add(it.Length())
		parts = append(parts, styles.MutedStyle.Render(
			fmt.Sprintf("%s %s–%s", styles.IconClock, todo.FormatClock(start), todo.FormatClock(end))))
	}
	if d := r.deadline(it); d != "" {
		parts = append(parts, d)
	}

	return strings.Join(parts, "\n")
}

func (r *Renderer) itemTitle(it todo.Item) string {
	icon := styles.CategoryIcon(it.Category)
	if it.ID == todo.LunchID {
		icon = styles.IconLunch
	}

	title := styles.Category(it.Category).Render(icon + " " + it.Title)
	if name, ok := r.Courses[it.CourseID]; ok {
		title += " " + styles.MutedStyle.Render("· "+name)
	}
	if n := len(it.Subtasks); n > 0 {
		done := 0
		for _, st := range it.Subtasks {
			if st.Completed {
				done++
			}
		}
		title += " " + styles.MutedStyle.Render(fmt.Sprintf("[%d/%d]", done, n))
	}
	return title
}

func (r *Renderer) deadline(it todo.Item) string {
	t, ok := it.DeadlineTime(r.Loc)
	if !ok {
		return ""
	}
	return styles.DeadlineStyle.Render(fmt.Sprintf("%s due %s", styles.IconDeadline, todo.FormatWhen(t, it.DeadlineAllDay)))
}

// dominant picks the category that colors a group's border: quiz over
// homework over uncategorized.
func dominant(items []todo.Item) todo.Category {
	for _, c := range todo.Categories {
		for _, it := range items {
			if it.Category == c {
				return c
			}
		}
	}
	return todo.Uncategorized
}
