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

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), dataDir)
	require.NoError(t, err)

	want := DefaultConfig()
	want.DataDir = dataDir
	assert.Equal(t, &want, cfg)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 25*time.Minute, cfg.Focus.Focus)
	assert.True(t, cfg.Seed)
}

func TestLoad_OverlaysFile(t *testing.T) {
	path := writeConfig(t, `
theme: gruvbox
focus:
  focus: 50m
  short_break: 10m
lunch:
  time: "12:30"
  duration: 45
seed: false
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, 50*time.Minute, cfg.Focus.Focus)
	assert.Equal(t, 10*time.Minute, cfg.Focus.ShortBreak)
	assert.Equal(t, 15*time.Minute, cfg.Focus.LongBreak, "unset keys keep defaults")
	assert.Equal(t, 4, cfg.Focus.LongBreakEvery)
	assert.False(t, cfg.Seed)

	rule := cfg.LunchRule()
	assert.Equal(t, 12, rule.Hour)
	assert.Equal(t, 30, rule.Minute)
	assert.Equal(t, 45, rule.Duration)
	assert.Equal(t, "Lunch", rule.Title)
	assert.True(t, rule.Enabled)
}

func TestLoad_ZeroValuesGetDefaults(t *testing.T) {
	path := writeConfig(t, `
theme: ""
focus:
  focus: 0s
  long_break_every: 0
database:
  max_open_conns: 0
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Theme, cfg.Theme)
	assert.Equal(t, 25*time.Minute, cfg.Focus.Focus)
	assert.Equal(t, 4, cfg.Focus.LongBreakEvery)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "focus: [nope")
	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, `
theme: neon
lunch:
  time: "noon"
`)
	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "theme", fieldErrs[0].Field)
	assert.Equal(t, "lunch.time", fieldErrs[1].Field)
}

func TestConfig_Palette(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme = "catppuccin"
	assert.NotNil(t, cfg.Palette().Primary)

	cfg.Theme = "missing"
	assert.NotNil(t, cfg.Palette().Primary, "unknown theme falls back")
}

func TestConfig_LogFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/data"
	assert.Equal(t, filepath.Join("/data", "studdy.log"), cfg.LogFile())
}
