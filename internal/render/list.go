package render

import (
	"fmt"
	"strings"

	"github.com/Yamikowu/studdy/internal/core/course"
	"github.com/Yamikowu/studdy/internal/core/styles"
	"github.com/Yamikowu/studdy/internal/core/todo"
)

// Sections renders the to-do list under Quiz, HW and Uncategorized headings.
func (r *Renderer) Sections(sections []todo.Section) string {
	if len(sections) == 0 {
		return styles.MutedStyle.Render("Nothing to do.")
	}

	var b strings.Builder
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.Category(sec.Category).Render(fmt.Sprintf("%s (%d)", sec.Category.Title(), len(sec.Items))))
		b.WriteString("\n")
		for _, it := range sec.Items {
			b.WriteString(r.Item(it))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Item renders one list line with its ID, schedule, deadline and subtasks.
func (r *Renderer) Item(it todo.Item) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(styles.MutedStyle.Render(it.ID))
	b.WriteString(" ")
	b.WriteString(r.itemTitle(it))

	if start, ok := it.StartTime(r.Loc); ok {
		b.WriteString(" ")
		b.WriteString(styles.MutedStyle.Render(todo.FormatWhen(start, it.AllDay)))
	}
	if d := r.deadline(it); d != "" {
		b.WriteString(" ")
		b.WriteString(d)
	}

	for _, st := range it.Subtasks {
		box := styles.IconBox
		if st.Completed {
			box = styles.IconCheck
		}
		b.WriteString("\n      ")
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%s %s %s", box, st.ID, st.Text)))
	}
	return b.String()
}

// Courses renders the course list with quiz and homework counts.
func (r *Renderer) Courses(summaries []course.Summary) string {
	if len(summaries) == 0 {
		return styles.MutedStyle.Render("No courses yet.")
	}

	lines := make([]string, 0, len(summaries))
	for _, s := range summaries {
		lines = append(lines, fmt.Sprintf("%s %s %s  %s  %s",
			styles.MutedStyle.Render(s.Course.ID),
			styles.IconCourse,
			styles.HeaderStyle.Render(s.Course.Name),
			styles.Category(todo.Quiz).Render(fmt.Sprintf("%d quiz", s.Quiz)),
			styles.Category(todo.Homework).Render(fmt.Sprintf("%d hw", s.Homework)),
		))
	}
	return strings.Join(lines, "\n")
}

// CourseMarkdown renders a course summary as markdown for glamour.
func (r *Renderer) CourseMarkdown(s course.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Course.Name)
	fmt.Fprintf(&b, "**%d** quiz · **%d** hw\n", s.Quiz, s.Homework)

	for _, sec := range todo.GroupByCategory(s.Items) {
		fmt.Fprintf(&b, "\n## %s\n\n", sec.Category.Title())
		for _, it := range sec.Items {
			fmt.Fprintf(&b, "- %s", it.Title)
			if start, ok := it.StartTime(r.Loc); ok {
				fmt.Fprintf(&b, " (%s)", todo.FormatWhen(start, it.AllDay))
			}
			if t, ok := it.DeadlineTime(r.Loc); ok {
				fmt.Fprintf(&b, " · due *%s*", todo.FormatWhen(t, it.DeadlineAllDay))
			}
			b.WriteString("\n")
			for _, st := range it.Subtasks {
				mark := " "
				if st.Completed {
					mark = "x"
				}
				fmt.Fprintf(&b, "  - [%s] %s\n", mark, st.Text)
			}
		}
	}

	if len(s.Items) == 0 {
		b.WriteString("\n_No linked items._\n")
	}
	return b.String()
}
