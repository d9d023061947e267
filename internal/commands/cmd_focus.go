package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/Yamikowu/studdy/internal/core/focus"
	"github.com/Yamikowu/studdy/internal/studdy"
	focustui "github.com/Yamikowu/studdy/internal/tui/focus"
	"github.com/Yamikowu/studdy/pkg/profiler"
)

// FocusCmd runs the pomodoro timer.
type FocusCmd struct {
	flags *Flags
	app   *studdy.App

	focus      time.Duration
	shortBreak time.Duration
	longBreak  time.Duration
	noBell     bool

	profilerPort int
}

// NewFocusCmd creates a new focus command.
func NewFocusCmd(flags *Flags, app *studdy.App) *FocusCmd {
	return &FocusCmd{flags: flags, app: app}
}

// Register adds the focus command to the application.
func (cmd *FocusCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "focus",
		Usage:     "Run the pomodoro focus timer",
		UsageText: "studdy focus [options]",
		Description: `Starts a full-screen pomodoro timer.

Every fourth completed focus round is followed by a long break, the others
by a short break. Durations default to the focus section of the config.

Keys: space start/pause, r reset, q quit.`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:        "focus",
				Usage:       "focus round length (overrides config)",
				Destination: &cmd.focus,
			},
			&cli.DurationFlag{
				Name:        "short-break",
				Usage:       "short break length (overrides config)",
				Destination: &cmd.shortBreak,
			},
			&cli.DurationFlag{
				Name:        "long-break",
				Usage:       "long break length (overrides config)",
				Destination: &cmd.longBreak,
			},
			&cli.BoolFlag{
				Name:        "no-bell",
				Usage:       "do not ring the terminal bell when a period ends",
				Destination: &cmd.noBell,
			},
			&cli.IntFlag{
				Name:        "profiler-port",
				Usage:       "serve pprof on 127.0.0.1 at this port while the timer runs (0 disables)",
				Sources:     cli.EnvVars("STUDDY_PROFILER_PORT"),
				Hidden:      true,
				Destination: &cmd.profilerPort,
			},
		},
		Action: cmd.run,
	})

	return app
}

// durations merges the flag overrides onto the configured durations.
func (cmd *FocusCmd) durations() focus.Durations {
	d := cmd.app.FocusDurations()
	if cmd.focus > 0 {
		d.Focus = cmd.focus
	}
	if cmd.shortBreak > 0 {
		d.ShortBreak = cmd.shortBreak
	}
	if cmd.longBreak > 0 {
		d.LongBreak = cmd.longBreak
	}
	return d
}

func (cmd *FocusCmd) run(ctx context.Context, _ *cli.Command) error {
	var bell io.Writer
	if cmd.app.Config.Focus.Bell && !cmd.noBell {
		bell = os.Stdout
	}

	logger := log.With().Str("component", "focus").Logger()

	if cmd.profilerPort > 0 {
		prof := profiler.New(cmd.profilerPort, logger)
		if err := prof.Start(ctx); err != nil {
			return fmt.Errorf("start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := prof.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("profiler shutdown failed")
			}
		}()
	}

	m := focustui.New(focus.New(cmd.durations()), focustui.Options{
		Bell: bell,
		OnComplete: func(done focustui.Completed) {
			logger.Info().
				Str("finished", done.Finished.Title()).
				Str("next", done.Next.Title()).
				Msg("focus period complete")
		},
	})

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run focus timer: %w", err)
	}
	return nil
}
