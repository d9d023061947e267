// Package studdy wires the planner's domain packages into services consumed
// by the CLI commands and the TUI.
package studdy

import (
	"github.com/rs/zerolog"

	"github.com/Yamikowu/studdy/internal/core/config"
	"github.com/Yamikowu/studdy/internal/core/course"
	"github.com/Yamikowu/studdy/internal/core/focus"
	"github.com/Yamikowu/studdy/internal/core/kv"
	"github.com/Yamikowu/studdy/internal/core/todo"
	"github.com/Yamikowu/studdy/internal/data/db"
)

// App is the central entry point for all studdy operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Todos   *TodoService
	Courses *CourseService

	Config *config.Config
	KV     kv.KV
	DB     *db.DB // nil for an in-memory store
}

// NewApp constructs an App over the given key-value store.
func NewApp(cfg *config.Config, store kv.KV, database *db.DB, log zerolog.Logger) *App {
	items := todo.NewStore(store).WithLogger(log.With().Str("component", "todo-store").Logger())
	todos := NewTodoService(items, cfg.LunchRule(), cfg.Seed, log)
	return &App{
		Todos:   todos,
		Courses: NewCourseService(course.NewStore(store, cfg.Seed), todos, log),
		Config:  cfg,
		KV:      store,
		DB:      database,
	}
}

// FocusDurations returns the pomodoro settings from the config.
func (a *App) FocusDurations() focus.Durations {
	return focus.Durations{
		Focus:          a.Config.Focus.Focus,
		ShortBreak:     a.Config.Focus.ShortBreak,
		LongBreak:      a.Config.Focus.LongBreak,
		LongBreakEvery: a.Config.Focus.LongBreakEvery,
	}
}

// OpenOptions converts the database section of the config.
func OpenOptions(cfg *config.Config) db.OpenOptions {
	return db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}
}
