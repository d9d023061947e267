package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Yamikowu/studdy/internal/render"
	"github.com/Yamikowu/studdy/internal/studdy"
	"github.com/Yamikowu/studdy/pkg/iojson"
)

// CourseCmd implements the studdy course command group.
type CourseCmd struct {
	flags *Flags
	app   *studdy.App

	jsonOutput bool
}

// NewCourseCmd creates a new course command.
func NewCourseCmd(flags *Flags, app *studdy.App) *CourseCmd {
	return &CourseCmd{flags: flags, app: app}
}

// Register adds the course command to the application.
func (cmd *CourseCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "course",
		Usage: "Manage the course catalog",
		Description: `Examples:
  studdy course ls                        # courses with quiz and hw counts
  studdy course add "Linear Algebra"      # new course, listed first
  studdy course show <id>                 # course page with linked items`,
		Commands: []*cli.Command{
			{
				Name:      "list",
				Aliases:   []string{"ls"},
				Usage:     "List courses",
				UsageText: "studdy course ls [--json]",
				Flags:     []cli.Flag{cmd.jsonFlag()},
				Action:    cmd.runList,
			},
			{
				Name:      "add",
				Usage:     "Add a course",
				UsageText: "studdy course add <name>",
				Flags:     []cli.Flag{cmd.jsonFlag()},
				Action:    cmd.runAdd,
			},
			{
				Name:          "show",
				Usage:         "Show a course with its quizzes and homework",
				UsageText:     "studdy course show <id> [--json]",
				Flags:         []cli.Flag{cmd.jsonFlag()},
				ShellComplete: CourseIDCompleter(cmd.app),
				Action:        cmd.runShow,
			},
		},
	})

	return app
}

func (cmd *CourseCmd) jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:        "json",
		Usage:       "output as JSON lines",
		Destination: &cmd.jsonOutput,
	}
}

func (cmd *CourseCmd) renderer() *render.Renderer {
	return render.New(termWidth(), cmd.app.Todos.Now().Location())
}

func (cmd *CourseCmd) runList(ctx context.Context, c *cli.Command) error {
	summaries, err := cmd.app.Courses.Summaries(ctx)
	if err != nil {
		return fmt.Errorf("list courses: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		for _, s := range summaries {
			if err := iojson.WriteLine(out, s); err != nil {
				return err
			}
		}
		return nil
	}

	printStyled(out, cmd.renderer().Courses(summaries))
	return nil
}

func (cmd *CourseCmd) runAdd(ctx context.Context, c *cli.Command) error {
	name := strings.Join(c.Args().Slice(), " ")

	created, err := cmd.app.Courses.Add(ctx, name)
	if err != nil {
		return fmt.Errorf("add course: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.WriteLine(c.Root().Writer, created)
	}
	_, _ = fmt.Fprintln(c.Root().Writer, created.ID)
	return nil
}

func (cmd *CourseCmd) runShow(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: studdy course show <id>")
	}

	summary, err := cmd.app.Courses.Show(ctx, c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("show course: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLine(out, summary)
	}

	r := cmd.renderer()
	printStyled(out, r.Markdown(r.CourseMarkdown(summary)))
	return nil
}
