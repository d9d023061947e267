package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/Yamikowu/studdy/internal/core/calendar"
	"github.com/Yamikowu/studdy/internal/render"
	"github.com/Yamikowu/studdy/internal/studdy"
)

// TimelineCmd implements the timeline and week commands.
type TimelineCmd struct {
	flags *Flags
	app   *studdy.App

	date       string
	jsonOutput bool
}

// NewTimelineCmd creates a new timeline command.
func NewTimelineCmd(flags *Flags, app *studdy.App) *TimelineCmd {
	return &TimelineCmd{flags: flags, app: app}
}

// Register adds the timeline and week commands to the application.
func (cmd *TimelineCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "timeline",
			Aliases:   []string{"tl"},
			Usage:     "Show one day as a timeline",
			UsageText: "studdy timeline [--date YYYY-MM-DD] [--json]",
			Description: `Shows the week strip, the day's all-day items and its timeline.

Timed items that overlap are drawn as one group. The 07:00, 12:00 and 24:00
anchors are always present, and idle stretches between them are drawn as
gaps.`,
			Flags:  cmd.flagSet(),
			Action: cmd.runTimeline,
		},
		&cli.Command{
			Name:      "week",
			Usage:     "Show the week strip with item counts",
			UsageText: "studdy week [--date YYYY-MM-DD] [--json]",
			Flags:     cmd.flagSet(),
			Action:    cmd.runWeek,
		},
	)

	return app
}

func (cmd *TimelineCmd) flagSet() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "date",
			Usage:       "day to show (YYYY-MM-DD, default today)",
			Destination: &cmd.date,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "output as JSON",
			Destination: &cmd.jsonOutput,
		},
	}
}

// selected returns the requested day in the service clock's location.
func (cmd *TimelineCmd) selected() (time.Time, error) {
	now := cmd.app.Todos.Now()
	if cmd.date == "" {
		return now, nil
	}
	d, err := calendar.ParseDateKey(cmd.date, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", cmd.date)
	}
	return d, nil
}

// Today renders today's timeline. Used as the default command.
func (cmd *TimelineCmd) Today(ctx context.Context, c *cli.Command) error {
	cmd.date = ""
	return cmd.runTimeline(ctx, c)
}

func (cmd *TimelineCmd) runTimeline(ctx context.Context, c *cli.Command) error {
	selected, err := cmd.selected()
	if err != nil {
		return err
	}

	day, err := cmd.app.Todos.Day(ctx, selected)
	if err != nil {
		return fmt.Errorf("build timeline: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return writeJSON(out, day)
	}

	week, err := cmd.app.Todos.Week(ctx, selected)
	if err != nil {
		return fmt.Errorf("build week: %w", err)
	}

	r, err := cmd.renderer(ctx, selected.Location())
	if err != nil {
		return err
	}
	printStyled(out, r.Week(week))
	printStyled(out, "")
	printStyled(out, r.Day(day))
	return nil
}

func (cmd *TimelineCmd) runWeek(ctx context.Context, c *cli.Command) error {
	selected, err := cmd.selected()
	if err != nil {
		return err
	}

	week, err := cmd.app.Todos.Week(ctx, selected)
	if err != nil {
		return fmt.Errorf("build week: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return writeJSON(out, week)
	}

	printStyled(out, render.New(termWidth(), selected.Location()).Week(week))
	return nil
}

func (cmd *TimelineCmd) renderer(ctx context.Context, loc *time.Location) (*render.Renderer, error) {
	courses, err := cmd.app.Courses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return render.New(termWidth(), loc).WithCourses(courses), nil
}
