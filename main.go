package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/Yamikowu/studdy/internal/commands"
	"github.com/Yamikowu/studdy/internal/core/config"
	"github.com/Yamikowu/studdy/internal/core/kv"
	"github.com/Yamikowu/studdy/internal/core/logging"
	"github.com/Yamikowu/studdy/internal/core/styles"
	"github.com/Yamikowu/studdy/internal/data/db"
	"github.com/Yamikowu/studdy/internal/data/stores"
	"github.com/Yamikowu/studdy/internal/studdy"
	"github.com/Yamikowu/studdy/internal/studdy/sweep"
	"github.com/Yamikowu/studdy/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

const sweepInterval = 5 * time.Minute

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		studdyApp = &studdy.App{}
		database  *db.DB
		stopSweep func()
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "studdy",
		Usage:     "Plan your study week from the terminal",
		UsageText: "studdy [global options] command [command options]",
		Description: `Studdy keeps a to-do list of quizzes, homework and everything else,
lays each day out as a timeline, tracks courses and runs a pomodoro timer.

Run 'studdy' with no arguments to see today's timeline.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("STUDDY_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/studdy.log)",
				Sources:     cli.EnvVars("STUDDY_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("STUDDY_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("STUDDY_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.BoolFlag{
				Name:        "ephemeral",
				Usage:       "keep all data in memory; nothing is written to the data directory",
				Sources:     cli.EnvVars("STUDDY_EPHEMERAL"),
				Destination: &flags.Ephemeral,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			if !flags.Ephemeral {
				if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
					return ctx, fmt.Errorf("create data dir: %w", err)
				}
			}

			// Log to <datadir>/studdy.log unless a path is given. Ephemeral runs
			// have no data dir, so their logs are held until exit.
			logFile := flags.LogFile
			if logFile == "" && !flags.Ephemeral {
				logFile = cfg.LogFile()
			}

			var logger zerolog.Logger
			if logFile == "" {
				deferred := &logutils.DeferredWriter{}
				logger, err = logutils.NewWriter(flags.LogLevel, deferred)
				logCloser = func() { _ = deferred.Flush(os.Stderr) }
			} else {
				logger, logCloser, err = logutils.New(flags.LogLevel, logFile)
			}
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})

			// Apply configured theme (validation ensures name is valid)
			styles.SetTheme(cfg.Palette())

			var store kv.KV
			if flags.Ephemeral {
				store = stores.NewMemoryKV()
			} else {
				database, err = stores.OpenWithRecovery(cfg.DataDir, studdy.OpenOptions(cfg), log.Logger)
				if err != nil {
					return ctx, fmt.Errorf("open database: %w", err)
				}

				kvStore := stores.NewKVStore(database)
				if err := kvStore.SweepExpired(ctx); err != nil {
					log.Warn().Err(err).Msg("initial kv sweep failed")
				}

				stopSweep = sweep.Background(kvStore, sweepInterval)

				store = kvStore
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*studdyApp = *studdy.NewApp(cfg, store, database, logging.Component("studdy"))

			return logging.WithCommand(ctx, c.Args().First()), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if stopSweep != nil {
				stopSweep()
			}

			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	timelineCmd := commands.NewTimelineCmd(flags, studdyApp)

	app = commands.NewTodoCmd(flags, studdyApp).Register(app)
	app = timelineCmd.Register(app)
	app = commands.NewCourseCmd(flags, studdyApp).Register(app)
	app = commands.NewFocusCmd(flags, studdyApp).Register(app)
	app = commands.NewDoctorCmd(flags, studdyApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Show today's timeline when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'studdy --help' for usage", c.Args().First())
		}
		return timelineCmd.Today(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
