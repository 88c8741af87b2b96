package options

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the file-backed application configuration.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scene   string        `yaml:"scene"`
	Effects EffectsConfig `yaml:"effects"`
	Timing  TimingConfig  `yaml:"timing"`
	Shaders ShadersConfig `yaml:"shaders"`
	Record  RecordConfig  `yaml:"record"`
}

// WindowConfig contains window-related configuration
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// EffectsConfig holds the startup value of each effect toggle.
type EffectsConfig struct {
	AO               bool `yaml:"ao"`
	LensEffect       bool `yaml:"lens_effect"`
	DarkScene        bool `yaml:"dark_scene"`
	BarrelDistortion bool `yaml:"barrel_distortion"`
}

// TimingConfig controls stage pacing.
type TimingConfig struct {
	StageInterval time.Duration `yaml:"stage_interval"`
}

// ShadersConfig points at shader sources on disk. Empty means built-in.
type ShadersConfig struct {
	Fragment string `yaml:"fragment"`
	// Watch rebuilds the program when Fragment changes on disk.
	Watch bool `yaml:"watch"`
}

// RecordConfig contains offscreen recording configuration
type RecordConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Duration   float64 `yaml:"duration"` // seconds
	FPS        int     `yaml:"fps"`
	OutputFile string  `yaml:"output"`
	FFMPEGPath string  `yaml:"ffmpeg"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "raymarcher",
			VSync:  true,
		},
		Scene: "LerpFun",
		Effects: EffectsConfig{
			AO: true,
		},
		Timing: TimingConfig{
			StageInterval: 12 * time.Second,
		},
		Record: RecordConfig{
			Duration:   10,
			FPS:        60,
			OutputFile: "output.mp4",
		},
	}
}

// LoadConfig reads a YAML file over the defaults. A missing file is not an
// error; the defaults are returned.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()
	if filePath == "" {
		return config, nil
	}

	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("error reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return config, fmt.Errorf("error parsing config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// Validate rejects values the renderer cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Timing.StageInterval <= 0 {
		return fmt.Errorf("stage_interval must be positive, got %v", c.Timing.StageInterval)
	}
	if c.Shaders.Watch && c.Shaders.Fragment == "" {
		return errors.New("watch requires a fragment shader file")
	}
	if c.Record.Enabled {
		if c.Record.FPS <= 0 {
			return fmt.Errorf("record fps must be positive, got %d", c.Record.FPS)
		}
		if c.Record.Duration <= 0 {
			return fmt.Errorf("record duration must be positive, got %v", c.Record.Duration)
		}
		if c.Record.OutputFile == "" {
			return errors.New("record output file is empty")
		}
	}
	return nil
}
