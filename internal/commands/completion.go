package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Yamikowu/studdy/internal/studdy"
)

// ItemIDCompleter returns a ShellCompleteFunc that suggests to-do item IDs
// with their titles as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func ItemIDCompleter(app *studdy.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if flagCompletion(ctx, cmd) {
			return
		}

		items, err := app.Todos.List(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, it := range items {
			_, _ = fmt.Fprintf(w, "%s:%s\n", it.ID, it.Title)
		}
	}
}

// CourseIDCompleter suggests course IDs with their names.
func CourseIDCompleter(app *studdy.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if flagCompletion(ctx, cmd) {
			return
		}

		courses, err := app.Courses.List(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, c := range courses {
			_, _ = fmt.Fprintf(w, "%s:%s\n", c.ID, c.Name)
		}
	}
}

func flagCompletion(ctx context.Context, cmd *cli.Command) bool {
	if args := cmd.Args(); args.Present() {
		last := args.Slice()[args.Len()-1]
		if len(last) > 0 && last[0] == '-' {
			cli.DefaultCompleteWithFlags(ctx, cmd)
			return true
		}
	}
	return false
}
