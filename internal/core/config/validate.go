package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/Yamikowu/studdy/internal/core/styles"
)

const lunchTimeLayout = "15:04"

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, required),
		criterio.Run("theme", c.Theme, knownTheme),
		c.validateFocus(),
		c.validateLunch(),
		c.validateDatabase(),
	)
}

// ValidateDeep performs Validate plus file-system checks. The configPath
// argument specifies the config file location to validate (empty string
// skips the config file check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Focus.ShortBreak >= c.Focus.Focus {
		warnings = append(warnings, ValidationWarning{
			Category: "Focus",
			Item:     "short_break",
			Message:  "short break is not shorter than a focus round",
		})
	}
	if c.Focus.LongBreak < c.Focus.ShortBreak {
		warnings = append(warnings, ValidationWarning{
			Category: "Focus",
			Item:     "long_break",
			Message:  "long break is shorter than a short break",
		})
	}
	if !c.Seed {
		warnings = append(warnings, ValidationWarning{
			Category: "Seed",
			Message:  "seeding disabled; a fresh data directory starts empty",
		})
	}

	return warnings
}

func (c *Config) validateFocus() error {
	var errs criterio.FieldErrorsBuilder
	for _, f := range []struct {
		field string
		d     time.Duration
	}{
		{"focus.focus", c.Focus.Focus},
		{"focus.short_break", c.Focus.ShortBreak},
		{"focus.long_break", c.Focus.LongBreak},
	} {
		if f.d <= 0 {
			errs = errs.Append(f.field, fmt.Errorf("must be positive, got %s", f.d))
		}
	}
	if c.Focus.LongBreakEvery < 1 {
		errs = errs.Append("focus.long_break_every", errors.New("must be at least 1"))
	}
	return errs.ToError()
}

func (c *Config) validateLunch() error {
	if !c.Lunch.Enabled {
		return nil
	}

	var errs criterio.FieldErrorsBuilder
	if strings.TrimSpace(c.Lunch.Title) == "" {
		errs = errs.Append("lunch.title", errors.New("is required"))
	}
	if _, err := time.Parse(lunchTimeLayout, c.Lunch.Time); err != nil {
		errs = errs.Append("lunch.time", fmt.Errorf("invalid time %q, expected HH:MM", c.Lunch.Time))
	}
	if c.Lunch.Duration < 1 {
		errs = errs.Append("lunch.duration", errors.New("must be at least 1 minute"))
	}
	return errs.ToError()
}

func (c *Config) validateDatabase() error {
	var errs criterio.FieldErrorsBuilder
	if c.Database.MaxOpenConns < 1 {
		errs = errs.Append("database.max_open_conns", errors.New("must be at least 1"))
	}
	if c.Database.MaxIdleConns < 0 {
		errs = errs.Append("database.max_idle_conns", errors.New("must not be negative"))
	}
	if c.Database.BusyTimeout < 0 {
		errs = errs.Append("database.busy_timeout", errors.New("must not be negative"))
	}
	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func knownTheme(name string) error {
	names := styles.ThemeNames()
	if !slices.Contains(names, name) {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(names, ", "))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
