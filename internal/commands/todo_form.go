package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Yamikowu/studdy/internal/core/course"
	"github.com/Yamikowu/studdy/internal/core/styles"
	"github.com/Yamikowu/studdy/internal/core/todo"
	"github.com/Yamikowu/studdy/internal/core/validate"
)

// itemForm holds the string-typed values edited by the huh form.
type itemForm struct {
	title          string
	category       todo.Category
	courseID       string
	time           string
	allDay         bool
	duration       string
	deadline       string
	deadlineAllDay bool
}

func newItemForm(it todo.Item) *itemForm {
	f := &itemForm{
		title:          it.Title,
		category:       it.Category,
		courseID:       it.CourseID,
		time:           it.Time,
		allDay:         it.AllDay,
		deadline:       it.Deadline,
		deadlineAllDay: it.DeadlineAllDay,
	}
	if it.Duration > 0 {
		f.duration = strconv.Itoa(it.Duration)
	}
	return f
}

// item returns it with the form values applied.
func (f *itemForm) item(it todo.Item) todo.Item {
	it.Title = f.title
	it.Category = f.category
	it.CourseID = f.courseID
	it.Time = strings.TrimSpace(f.time)
	it.AllDay = f.allDay
	it.Duration, _ = strconv.Atoi(strings.TrimSpace(f.duration))
	it.Deadline = strings.TrimSpace(f.deadline)
	it.DeadlineAllDay = f.deadlineAllDay
	if !it.Category.HasDeadline() {
		it.CourseID = ""
	}
	return it
}

func (cmd *TodoCmd) runForm(ctx context.Context, it todo.Item) (todo.Item, error) {
	courses, err := cmd.app.Courses.List(ctx)
	if err != nil {
		return it, fmt.Errorf("list courses: %w", err)
	}

	f := newItemForm(it)
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(validateTitle).
				Value(&f.title),
			huh.NewSelect[todo.Category]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&f.category),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Course").
				Options(courseOptions(courses)...).
				Value(&f.courseID),
			huh.NewInput().
				Title("Deadline").
				Description("YYYY-MM-DDTHH:MM or YYYY-MM-DD").
				Validate(validateWhen).
				Value(&f.deadline),
			huh.NewConfirm().
				Title("Deadline is all day?").
				Value(&f.deadlineAllDay),
		).WithHideFunc(func() bool { return !f.category.HasDeadline() }),
		huh.NewGroup(
			huh.NewInput().
				Title("Time").
				Description("YYYY-MM-DDTHH:MM, or YYYY-MM-DD for all-day items").
				Validate(validateWhen).
				Value(&f.time),
			huh.NewConfirm().
				Title("All day?").
				Value(&f.allDay),
			huh.NewInput().
				Title("Duration (minutes)").
				Placeholder(strconv.Itoa(int(todo.DefaultDuration.Minutes()))).
				Validate(validateDuration).
				Value(&f.duration),
		),
	).WithTheme(styles.FormTheme()).RunWithContext(ctx)
	if err != nil {
		return it, err
	}

	return f.item(it), nil
}

func categoryOptions() []huh.Option[todo.Category] {
	opts := make([]huh.Option[todo.Category], 0, len(todo.Categories))
	for _, c := range todo.Categories {
		opts = append(opts, huh.NewOption(c.Title(), c))
	}
	return opts
}

func courseOptions(courses []course.Course) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, c := range courses {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}
	return opts
}

func validateTitle(s string) error {
	if err := validate.Required(s); err != nil {
		return fmt.Errorf("title %w", err)
	}
	return nil
}

func validateWhen(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, ok := todo.ParseWhen(s, nil); !ok {
		return errors.New("expected YYYY-MM-DDTHH:MM or YYYY-MM-DD")
	}
	return nil
}

func validateDuration(s string) error {
	return validate.Minutes(s)
}
