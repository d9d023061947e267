package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/Yamikowu/studdy/internal/core/todo"
)

// itemFlags holds the item fields shared by todo add and todo edit.
type itemFlags struct {
	title          string
	category       string
	course         string
	time           string
	allDay         bool
	duration       int
	deadline       string
	deadlineAllDay bool
}

func (f *itemFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "title",
			Aliases:     []string{"t"},
			Usage:       "item title",
			Destination: &f.title,
		},
		&cli.StringFlag{
			Name:        "category",
			Aliases:     []string{"C"},
			Usage:       "category (quiz, hw, none)",
			Destination: &f.category,
		},
		&cli.StringFlag{
			Name:        "course",
			Usage:       "course ID",
			Destination: &f.course,
		},
		&cli.StringFlag{
			Name:        "time",
			Usage:       "start time (YYYY-MM-DDTHH:MM, or YYYY-MM-DD with --all-day)",
			Destination: &f.time,
		},
		&cli.BoolFlag{
			Name:        "all-day",
			Usage:       "item spans the whole day",
			Destination: &f.allDay,
		},
		&cli.IntFlag{
			Name:        "duration",
			Aliases:     []string{"d"},
			Usage:       "length in minutes (default 60)",
			Destination: &f.duration,
		},
		&cli.StringFlag{
			Name:        "deadline",
			Usage:       "deadline (YYYY-MM-DDTHH:MM or YYYY-MM-DD)",
			Destination: &f.deadline,
		},
		&cli.BoolFlag{
			Name:        "deadline-all-day",
			Usage:       "deadline is a whole day",
			Destination: &f.deadlineAllDay,
		},
	}
}

// apply copies every flag given on the command line onto it.
func (f *itemFlags) apply(c *cli.Command, it todo.Item) todo.Item {
	if c.IsSet("title") {
		it.Title = f.title
	}
	if c.IsSet("category") {
		it.Category = todo.ParseCategory(f.category)
	}
	if c.IsSet("course") {
		it.CourseID = f.course
	}
	if c.IsSet("time") {
		it.Time = f.time
	}
	if c.IsSet("all-day") {
		it.AllDay = f.allDay
	}
	if c.IsSet("duration") {
		it.Duration = f.duration
	}
	if c.IsSet("deadline") {
		it.Deadline = f.deadline
	}
	if c.IsSet("deadline-all-day") {
		it.DeadlineAllDay = f.deadlineAllDay
	}
	return it
}

// readItemGlobs reads items from every file matching the patterns, in pattern
// then match order. Markdown files hold one item each; anything else is read
// as a JSON array.
func readItemGlobs(patterns []string) ([]todo.Item, error) {
	var items []todo.Item
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}

		for _, path := range matches {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}

			if strings.EqualFold(filepath.Ext(path), ".md") {
				it, err := todo.ParseMarkdown(string(data))
				if err != nil {
					return nil, fmt.Errorf("decode %s: %w", path, err)
				}
				items = append(items, it)
				continue
			}

			var batch []todo.Item
			if err := json.Unmarshal(data, &batch); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
			items = append(items, batch...)
		}
	}
	return items, nil
}
