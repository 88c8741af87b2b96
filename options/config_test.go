package options

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raymarcher.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "LerpFun", cfg.Scene)
	assert.True(t, cfg.Effects.AO)
	assert.False(t, cfg.Effects.LensEffect)
	assert.Equal(t, 12*time.Second, cfg.Timing.StageInterval)
	assert.False(t, cfg.Record.Enabled)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 800
  height: 600
scene: Chess
effects:
  ao: false
  dark_scene: true
timing:
  stage_interval: 3s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "raymarcher", cfg.Window.Title, "unset keys keep defaults")
	assert.Equal(t, "Chess", cfg.Scene)
	assert.False(t, cfg.Effects.AO)
	assert.True(t, cfg.Effects.DarkScene)
	assert.Equal(t, 3*time.Second, cfg.Timing.StageInterval)
}

func TestLoadConfigParseError(t *testing.T) {
	path := writeConfig(t, "window: [unterminated")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing config")
}

func TestLoadConfigInvalid(t *testing.T) {
	path := writeConfig(t, "window:\n  width: -1\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid window size")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Scene = "Chess"
	cfg.Timing.StageInterval = 1500 * time.Millisecond

	require.NoError(t, SaveConfig(cfg, path))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"zero height", func(c *Config) { c.Window.Height = 0 }, "invalid window size"},
		{"zero interval", func(c *Config) { c.Timing.StageInterval = 0 }, "stage_interval"},
		{"watch without file", func(c *Config) { c.Shaders.Watch = true }, "watch requires"},
		{"record fps", func(c *Config) { c.Record.Enabled = true; c.Record.FPS = 0 }, "record fps"},
		{"record duration", func(c *Config) { c.Record.Enabled = true; c.Record.Duration = 0 }, "record duration"},
		{"record output", func(c *Config) { c.Record.Enabled = true; c.Record.OutputFile = "" }, "output file"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}

	cfg := DefaultConfig()
	cfg.Record.FPS = 0
	assert.NoError(t, cfg.Validate(), "record settings are ignored when not recording")
}

func TestApply(t *testing.T) {
	width, zero := 1920, 0
	scene, empty := "Chess", ""
	record, watch := true, true
	fps := 30
	out := "demo.mp4"

	cfg := DefaultConfig()
	opts := Options{
		Width:      &width,
		Height:     &zero,
		Scene:      &scene,
		Fragment:   &empty,
		Watch:      &watch,
		Record:     &record,
		FPS:        &fps,
		OutputFile: &out,
	}
	opts.Apply(cfg)

	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "Chess", cfg.Scene)
	assert.Empty(t, cfg.Shaders.Fragment)
	assert.True(t, cfg.Shaders.Watch)
	assert.True(t, cfg.Record.Enabled)
	assert.Equal(t, 30, cfg.Record.FPS)
	assert.Equal(t, 10.0, cfg.Record.Duration)
	assert.Equal(t, "demo.mp4", cfg.Record.OutputFile)
}
