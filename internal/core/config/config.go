// Package config handles configuration loading and validation for studdy.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Yamikowu/studdy/internal/core/styles"
	"github.com/Yamikowu/studdy/internal/core/todo"
)

// Config holds the application configuration.
type Config struct {
	Theme    string         `yaml:"theme"`
	Focus    FocusConfig    `yaml:"focus"`
	Lunch    LunchConfig    `yaml:"lunch"`
	Seed     bool           `yaml:"seed"`
	Database DatabaseConfig `yaml:"database"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// FocusConfig holds pomodoro timer settings.
type FocusConfig struct {
	Focus          time.Duration `yaml:"focus"`
	ShortBreak     time.Duration `yaml:"short_break"`
	LongBreak      time.Duration `yaml:"long_break"`
	LongBreakEvery int           `yaml:"long_break_every"` // focus rounds per long break
	Bell           bool          `yaml:"bell"`
}

// LunchConfig describes the daily recurring lunch item.
type LunchConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`
	Time     string `yaml:"time"`     // HH:MM
	Duration int    `yaml:"duration"` // minutes
}

// DatabaseConfig holds SQLite connection settings.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: styles.DefaultTheme,
		Focus: FocusConfig{
			Focus:          25 * time.Minute,
			ShortBreak:     5 * time.Minute,
			LongBreak:      15 * time.Minute,
			LongBreakEvery: 4,
			Bell:           true,
		},
		Lunch: LunchConfig{
			Enabled:  true,
			Title:    "Lunch",
			Time:     "12:00",
			Duration: 60,
		},
		Seed: true,
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Focus.Focus == 0 {
		c.Focus.Focus = defaults.Focus.Focus
	}
	if c.Focus.ShortBreak == 0 {
		c.Focus.ShortBreak = defaults.Focus.ShortBreak
	}
	if c.Focus.LongBreak == 0 {
		c.Focus.LongBreak = defaults.Focus.LongBreak
	}
	if c.Focus.LongBreakEvery == 0 {
		c.Focus.LongBreakEvery = defaults.Focus.LongBreakEvery
	}
	if strings.TrimSpace(c.Lunch.Title) == "" {
		c.Lunch.Title = defaults.Lunch.Title
	}
	if c.Lunch.Time == "" {
		c.Lunch.Time = defaults.Lunch.Time
	}
	if c.Lunch.Duration == 0 {
		c.Lunch.Duration = defaults.Lunch.Duration
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// LunchRule converts the lunch section into a recurrence rule. The time has
// already been checked by Validate.
func (c *Config) LunchRule() todo.LunchRule {
	rule := todo.LunchRule{
		Enabled:  c.Lunch.Enabled,
		Title:    c.Lunch.Title,
		Duration: c.Lunch.Duration,
	}
	if t, err := time.Parse(lunchTimeLayout, c.Lunch.Time); err == nil {
		rule.Hour, rule.Minute = t.Hour(), t.Minute()
	} else {
		d := todo.DefaultLunchRule()
		rule.Hour, rule.Minute = d.Hour, d.Minute
	}
	return rule
}

// Palette returns the configured theme palette, falling back to the default.
func (c *Config) Palette() styles.Palette {
	if p, ok := styles.GetPalette(c.Theme); ok {
		return p
	}
	p, _ := styles.GetPalette(styles.DefaultTheme)
	return p
}

// LogFile returns the default log file path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "studdy.log")
}
