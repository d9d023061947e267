package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/Yamikowu/studdy/internal/core/logging"
	"github.com/Yamikowu/studdy/internal/core/todo"
	"github.com/Yamikowu/studdy/internal/render"
	"github.com/Yamikowu/studdy/internal/studdy"
	"github.com/Yamikowu/studdy/pkg/iojson"
)

// TodoCmd implements the studdy todo command group.
type TodoCmd struct {
	flags *Flags
	app   *studdy.App

	jsonOutput  bool
	interactive bool
	item        itemFlags

	importReader iojson.FileReader[[]todo.Item]
}

// NewTodoCmd creates a new todo command.
func NewTodoCmd(flags *Flags, app *studdy.App) *TodoCmd {
	return &TodoCmd{flags: flags, app: app}
}

func (cmd *TodoCmd) todos() *studdy.TodoService {
	return cmd.app.Todos
}

// Register adds the todo command to the application.
func (cmd *TodoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "todo",
		Usage: "Manage to-do items",
		Description: `Commands for the to-do list.

Items belong to one of three categories: quiz, hw or none. Quiz and homework
items may carry a deadline and a course. A recurring lunch item is placed on
today's timeline; removing it skips lunch until tomorrow.

Examples:
  studdy todo ls                                          # grouped list
  studdy todo add --title "Read ch. 4" --time 2025-11-12T14:00 --duration 90
  studdy todo add -i                                      # interactive form
  studdy todo done <id>                                   # check an item off
  studdy todo import -f todos.json                        # bulk import`,
		Commands: []*cli.Command{
			cmd.listCmd(),
			cmd.addCmd(),
			cmd.editCmd(),
			cmd.removeCmd("rm", "Delete a to-do item", "deleted"),
			cmd.removeCmd("done", "Check a to-do item off the list", "completed"),
			cmd.importCmd(),
			cmd.subtaskCmd(),
		},
	})

	return app
}

func (cmd *TodoCmd) jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:        "json",
		Usage:       "output as JSON lines",
		Destination: &cmd.jsonOutput,
	}
}

func (cmd *TodoCmd) interactiveFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:        "interactive",
		Aliases:     []string{"i"},
		Usage:       "fill in the item with an interactive form",
		Destination: &cmd.interactive,
	}
}

func (cmd *TodoCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List to-do items grouped by category",
		UsageText: "studdy todo ls [--json]",
		Flags:     []cli.Flag{cmd.jsonFlag()},
		Action:    cmd.runList,
	}
}

func (cmd *TodoCmd) addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Create a to-do item",
		UsageText: "studdy todo add --title <title> [options]",
		Description: `Creates a to-do item.

Times are entered as YYYY-MM-DDTHH:MM, or YYYY-MM-DD together with --all-day.
Deadlines follow the same format; a date-only deadline means 23:59.`,
		Flags:  append(cmd.item.flags(), cmd.interactiveFlag(), cmd.jsonFlag()),
		Action: cmd.runAdd,
	}
}

func (cmd *TodoCmd) editCmd() *cli.Command {
	return &cli.Command{
		Name:          "edit",
		Usage:         "Edit a to-do item",
		UsageText:     "studdy todo edit <id> [options]",
		Description:   "Only the flags that are given change the item.",
		Flags:         append(cmd.item.flags(), cmd.interactiveFlag(), cmd.jsonFlag()),
		ShellComplete: ItemIDCompleter(cmd.app),
		Action:        cmd.runEdit,
	}
}

func (cmd *TodoCmd) removeCmd(name, usage, verb string) *cli.Command {
	return &cli.Command{
		Name:          name,
		Usage:         usage,
		UsageText:     fmt.Sprintf("studdy todo %s <id>", name),
		ShellComplete: ItemIDCompleter(cmd.app),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() < 1 {
				return fmt.Errorf("usage: studdy todo %s <id>", name)
			}

			id := c.Args().Get(0)
			ctx = logging.WithItemID(ctx, id)
			if err := cmd.todos().Delete(ctx, id); err != nil {
				return fmt.Errorf("%s todo: %w", name, err)
			}

			_, _ = fmt.Fprintln(c.Root().Writer, verb)
			return nil
		},
	}
}

func (cmd *TodoCmd) importCmd() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import to-do items from JSON or Markdown",
		UsageText: "studdy todo import [-f file] [glob...]",
		Description: `Appends a JSON array of items to the list.

Reads from --file, from every file matching the glob arguments, or from
stdin. Matched .md files are read as one item each: the YAML front matter
sets the fields, the first "# " heading is the fallback title and "- [ ]"
lines become subtasks. Nothing is stored when any item is invalid.

Examples:
  studdy todo import -f week.json
  studdy todo import 'plans/**/*.json'
  studdy todo import 'notes/**/*.md'
  cat week.json | studdy todo import`,
		Flags:  []cli.Flag{cmd.importReader.Flag(), cmd.jsonFlag()},
		Action: cmd.runImport,
	}
}

func (cmd *TodoCmd) runList(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer

	if cmd.jsonOutput {
		items, err := cmd.todos().List(ctx)
		if err != nil {
			return fmt.Errorf("list todos: %w", err)
		}
		for _, it := range items {
			if err := iojson.WriteLine(out, it); err != nil {
				return err
			}
		}
		return nil
	}

	sections, err := cmd.todos().Sections(ctx)
	if err != nil {
		return fmt.Errorf("list todos: %w", err)
	}
	if len(sections) == 0 {
		_, _ = fmt.Fprintln(os.Stderr, "No to-do items")
		return nil
	}

	r, err := cmd.renderer(ctx)
	if err != nil {
		return err
	}
	printStyled(out, r.Sections(sections))
	return nil
}

func (cmd *TodoCmd) runAdd(ctx context.Context, c *cli.Command) error {
	it := cmd.item.apply(c, todo.Item{})

	if cmd.interactive {
		var err error
		if it, err = cmd.runForm(ctx, it); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	created, err := cmd.todos().Create(ctx, it)
	if err != nil {
		return fmt.Errorf("create todo: %w", err)
	}

	return cmd.writeItem(ctx, c, created)
}

func (cmd *TodoCmd) runEdit(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: studdy todo edit <id>")
	}

	id := c.Args().Get(0)
	ctx = logging.WithItemID(ctx, id)

	existing, err := cmd.todos().Get(ctx, id)
	if err != nil {
		return fmt.Errorf("edit todo: %w", err)
	}

	it := cmd.item.apply(c, existing)
	if cmd.interactive {
		if it, err = cmd.runForm(ctx, it); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	updated, err := cmd.todos().Update(ctx, it)
	if err != nil {
		return fmt.Errorf("edit todo: %w", err)
	}

	return cmd.writeItem(ctx, c, updated)
}

func (cmd *TodoCmd) runImport(ctx context.Context, c *cli.Command) error {
	var (
		items []todo.Item
		err   error
	)
	if c.NArg() > 0 {
		items, err = readItemGlobs(c.Args().Slice())
	} else {
		items, err = cmd.importReader.Read()
	}
	if err != nil {
		return fmt.Errorf("read items: %w", err)
	}

	added, err := cmd.todos().Import(ctx, items)
	if err != nil {
		return fmt.Errorf("import todos: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		for _, it := range added {
			if err := iojson.WriteLine(out, it); err != nil {
				return err
			}
		}
		return nil
	}

	_, _ = fmt.Fprintf(out, "imported %d item(s)\n", len(added))
	return nil
}

func (cmd *TodoCmd) writeItem(ctx context.Context, c *cli.Command, it todo.Item) error {
	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLine(out, it)
	}

	r, err := cmd.renderer(ctx)
	if err != nil {
		return err
	}
	printStyled(out, r.Item(it))
	return nil
}

func (cmd *TodoCmd) renderer(ctx context.Context) (*render.Renderer, error) {
	courses, err := cmd.app.Courses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return render.New(termWidth(), cmd.todos().Now().Location()).WithCourses(courses), nil
}
