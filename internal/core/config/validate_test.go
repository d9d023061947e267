package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, validConfig(t).Validate())
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }, "data_dir"},
		{"unknown theme", func(c *Config) { c.Theme = "neon" }, "theme"},
		{"negative focus", func(c *Config) { c.Focus.Focus = -time.Minute }, "focus.focus"},
		{"long break every zero", func(c *Config) { c.Focus.LongBreakEvery = 0 }, "focus.long_break_every"},
		{"lunch time", func(c *Config) { c.Lunch.Time = "25:00" }, "lunch.time"},
		{"lunch duration", func(c *Config) { c.Lunch.Duration = 0 }, "lunch.duration"},
		{"lunch title", func(c *Config) { c.Lunch.Title = " " }, "lunch.title"},
		{"max open conns", func(c *Config) { c.Database.MaxOpenConns = 0 }, "database.max_open_conns"},
		{"busy timeout", func(c *Config) { c.Database.BusyTimeout = -1 }, "database.busy_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
		})
	}
}

func TestValidate_DisabledLunchSkipsChecks(t *testing.T) {
	cfg := validConfig(t)
	cfg.Lunch = LunchConfig{Enabled: false, Time: "garbage"}
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.LunchRule().Enabled)
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	cfg.DataDir = file

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "data_dir", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "not a directory")
}

func TestValidateDeep_MissingPathsAreFine(t *testing.T) {
	cfg := validConfig(t)
	cfg.DataDir = filepath.Join(t.TempDir(), "later")
	assert.NoError(t, cfg.ValidateDeep(filepath.Join(t.TempDir(), "config.yaml")))
}

func TestWarnings(t *testing.T) {
	cfg := validConfig(t)
	assert.Empty(t, cfg.Warnings())

	cfg.Focus.ShortBreak = 30 * time.Minute
	cfg.Seed = false
	warnings := cfg.Warnings()
	require.Len(t, warnings, 3)
	assert.Equal(t, "short_break", warnings[0].Item)
	assert.Equal(t, "long_break", warnings[1].Item)
	assert.Equal(t, "Seed", warnings[2].Category)
}
