package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Yamikowu/studdy/internal/core/course"
	"github.com/Yamikowu/studdy/internal/core/todo"
)

// ItemLister lists the stored to-do items.
type ItemLister interface {
	List(ctx context.Context) ([]todo.Item, error)
}

// CourseLister lists the stored courses.
type CourseLister interface {
	List(ctx context.Context) ([]course.Course, error)
}

// ItemsCheck reports items the views cannot place: unrecognized times or
// deadlines and links to courses that no longer exist.
type ItemsCheck struct {
	items   ItemLister
	courses CourseLister
	loc     *time.Location
}

// NewItemsCheck creates a new item data check.
func NewItemsCheck(items ItemLister, courses CourseLister, loc *time.Location) *ItemsCheck {
	return &ItemsCheck{items: items, courses: courses, loc: loc}
}

func (c *ItemsCheck) Name() string {
	return "Items"
}

func (c *ItemsCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	items, err := c.items.List(ctx)
	if err != nil {
		result.Items = append(result.Items, CheckItem{Label: "todos", Status: StatusFail, Detail: err.Error()})
		return result
	}
	courses, err := c.courses.List(ctx)
	if err != nil {
		result.Items = append(result.Items, CheckItem{Label: "courses", Status: StatusFail, Detail: err.Error()})
		return result
	}

	known := make(map[string]bool, len(courses))
	for _, co := range courses {
		known[co.ID] = true
	}

	var issues []CheckItem
	for _, it := range items {
		label := fmt.Sprintf("%s %s", it.ID, it.Title)
		if strings.TrimSpace(it.Time) != "" {
			if _, ok := it.StartTime(c.loc); !ok {
				issues = append(issues, CheckItem{
					Label:  label,
					Status: StatusWarn,
					Detail: fmt.Sprintf("time %q not recognized, item is hidden from the timeline", it.Time),
				})
			}
		}
		if strings.TrimSpace(it.Deadline) != "" {
			if _, ok := it.DeadlineTime(c.loc); !ok {
				issues = append(issues, CheckItem{
					Label:  label,
					Status: StatusWarn,
					Detail: fmt.Sprintf("deadline %q not recognized", it.Deadline),
				})
			}
		}
		if it.CourseID != "" && !known[it.CourseID] {
			issues = append(issues, CheckItem{
				Label:  label,
				Status: StatusWarn,
				Detail: fmt.Sprintf("links to unknown course %q", it.CourseID),
			})
		}
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "todos",
		Status: StatusPass,
		Detail: fmt.Sprintf("%d items, %d courses", len(items), len(courses)),
	})
	result.Items = append(result.Items, issues...)
	return result
}
