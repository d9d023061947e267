package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Yamikowu/studdy/internal/core/logging"
	"github.com/Yamikowu/studdy/pkg/iojson"
)

func (cmd *TodoCmd) subtaskCmd() *cli.Command {
	return &cli.Command{
		Name:    "subtask",
		Aliases: []string{"st"},
		Usage:   "Manage an item's checklist",
		Description: `Examples:
  studdy todo subtask add <item-id> "outline slides"
  studdy todo subtask toggle <item-id> <subtask-id>
  studdy todo subtask rm <item-id> <subtask-id>`,
		Commands: []*cli.Command{
			{
				Name:          "add",
				Usage:         "Append a subtask",
				UsageText:     "studdy todo subtask add <item-id> <text>",
				Flags:         []cli.Flag{cmd.jsonFlag()},
				ShellComplete: ItemIDCompleter(cmd.app),
				Action:        cmd.runSubtaskAdd,
			},
			{
				Name:      "toggle",
				Usage:     "Flip a subtask between done and open",
				UsageText: "studdy todo subtask toggle <item-id> <subtask-id>",
				Flags:     []cli.Flag{cmd.jsonFlag()},
				Action:    cmd.runSubtaskToggle,
			},
			{
				Name:      "rm",
				Usage:     "Remove a subtask",
				UsageText: "studdy todo subtask rm <item-id> <subtask-id>",
				Action:    cmd.runSubtaskRemove,
			},
		},
	}
}

func (cmd *TodoCmd) runSubtaskAdd(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: studdy todo subtask add <item-id> <text>")
	}

	id := c.Args().Get(0)
	ctx = logging.WithItemID(ctx, id)

	st, err := cmd.todos().AddSubtask(ctx, id, strings.Join(c.Args().Slice()[1:], " "))
	if err != nil {
		return fmt.Errorf("add subtask: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.WriteLine(c.Root().Writer, st)
	}
	_, _ = fmt.Fprintln(c.Root().Writer, st.ID)
	return nil
}

func (cmd *TodoCmd) runSubtaskToggle(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: studdy todo subtask toggle <item-id> <subtask-id>")
	}

	id := c.Args().Get(0)
	ctx = logging.WithItemID(ctx, id)

	st, err := cmd.todos().ToggleSubtask(ctx, id, c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("toggle subtask: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.WriteLine(c.Root().Writer, st)
	}

	state := "open"
	if st.Completed {
		state = "done"
	}
	_, _ = fmt.Fprintln(c.Root().Writer, state)
	return nil
}

func (cmd *TodoCmd) runSubtaskRemove(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: studdy todo subtask rm <item-id> <subtask-id>")
	}

	id := c.Args().Get(0)
	ctx = logging.WithItemID(ctx, id)

	if err := cmd.todos().RemoveSubtask(ctx, id, c.Args().Get(1)); err != nil {
		return fmt.Errorf("remove subtask: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, "removed")
	return nil
}
