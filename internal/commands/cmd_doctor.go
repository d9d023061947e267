package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Yamikowu/studdy/internal/core/doctor"
	"github.com/Yamikowu/studdy/internal/core/styles"
	"github.com/Yamikowu/studdy/internal/data/db"
	"github.com/Yamikowu/studdy/internal/studdy"
)

type DoctorCmd struct {
	flags   *Flags
	app     *studdy.App
	format  string
	autofix bool
}

func NewDoctorCmd(flags *Flags, app *studdy.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your studdy setup",
		UsageText:   "studdy doctor [options]",
		Description: "Runs diagnostic checks on the configuration, the data store and the stored items.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "autofix",
				Usage:       "sweep expired keys from the store",
				Destination: &cmd.autofix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) checks() []doctor.Check {
	location := "in-memory"
	if cmd.app.DB != nil {
		location = filepath.Join(cmd.app.Config.DataDir, db.FileName)
	}

	return []doctor.Check{
		doctor.NewConfigCheck(cmd.app.Config, cmd.flags.ConfigPath),
		doctor.NewStorageCheck(cmd.app.KV, location, cmd.autofix),
		doctor.NewItemsCheck(cmd.app.Todos, cmd.app.Courses, cmd.app.Todos.Now().Location()),
	}
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := doctor.RunAll(ctx, cmd.checks())

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(os.Stderr, results)
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	return writeJSON(c.Root().Writer, out)
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputText(w io.Writer, results []doctor.Result) error {
	divider := styles.MutedStyle.Render(strings.Repeat("─", 40))

	printStyled(w, "")
	printStyled(w, styles.HeaderStyle.Render("Studdy Doctor"))
	printStyled(w, divider)
	printStyled(w, "")

	for _, result := range results {
		printStyled(w, styles.HeaderStyle.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.MutedStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.SuccessStyle.Render("✔")
			case doctor.StatusWarn:
				icon = styles.WarningStyle.Render("●")
			case doctor.StatusFail:
				icon = styles.ErrorStyle.Render("✘")
			}

			printStyled(w, fmt.Sprintf("  %s %s%s", icon, item.Label, detail))
		}

		printStyled(w, "")
	}

	passed, warned, failed := doctor.Summary(results)
	printStyled(w, fmt.Sprintf("%s  %s  %s",
		styles.SuccessStyle.Render(fmt.Sprintf("%d passed", passed)),
		styles.WarningStyle.Render(fmt.Sprintf("%d warnings", warned)),
		styles.ErrorStyle.Render(fmt.Sprintf("%d failed", failed)),
	))

	if !cmd.autofix {
		if fixable := doctor.CountFixable(results); fixable > 0 {
			printStyled(w, "")
			printStyled(w, styles.MutedStyle.Render(fmt.Sprintf("Run 'studdy doctor --autofix' to fix %d issue(s)", fixable)))
		}
	}

	if failed > 0 {
		return cli.Exit("", 1)
	}

	return nil
}
