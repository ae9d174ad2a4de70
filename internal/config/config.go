package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFigure           = "error1d"
	DefaultCourant          = 0.5
	DefaultMinDensity       = 3.0
	DefaultMaxDensity       = 80.0
	DefaultSteps            = 100
	DefaultAttenuationSteps = 100
	DefaultWidth            = 1000
	DefaultHeight           = 600
	DefaultTheme            = "classic"
	DefaultLogLevel         = "info"
)

// Figures lists the charts the lab knows how to produce.
var Figures = []string{"dispersion", "error1d", "error2d"}

type Config struct {
	Figure           string      `yaml:"figure"`
	Courant          float64     `yaml:"courant"`
	ThetaDeg         float64     `yaml:"theta_deg"`
	Range            RangeConfig `yaml:"range"`
	AttenuationSteps int         `yaml:"attenuation_steps"`
	Output           string      `yaml:"output"`
	Chart            ChartConfig `yaml:"chart"`
	LogLevel         string      `yaml:"log_level"`
}

type RangeConfig struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Steps int     `yaml:"steps"`
}

type ChartConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Theme  string `yaml:"theme"`
	LogY   *bool  `yaml:"log_y,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Figure:           DefaultFigure,
		Courant:          DefaultCourant,
		Range:            RangeConfig{Min: DefaultMinDensity, Max: DefaultMaxDensity, Steps: DefaultSteps},
		AttenuationSteps: DefaultAttenuationSteps,
		Chart: ChartConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Theme:  DefaultTheme,
		},
		LogLevel: DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Overlay(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay reads the file at path over cfg. Fields missing from the file keep
// their current values.
func Overlay(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields that do not depend on the dispersion domain.
// Courant bounds are left to the evaluator so both paths report the same error.
func (c *Config) Validate() error {
	if !isFigure(c.Figure) {
		return fmt.Errorf("unknown figure: %s (available: %v)", c.Figure, Figures)
	}
	if c.Range.Steps < 2 {
		return fmt.Errorf("range steps must be at least 2, got %d", c.Range.Steps)
	}
	if c.Range.Min >= c.Range.Max {
		return fmt.Errorf("range min %g must be below max %g", c.Range.Min, c.Range.Max)
	}
	if c.Figure == "dispersion" && c.AttenuationSteps < 2 {
		return fmt.Errorf("attenuation steps must be at least 2, got %d", c.AttenuationSteps)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	return nil
}

// Theta returns the propagation angle in radians.
func (c *Config) Theta() float64 {
	return c.ThetaDeg * math.Pi / 180
}

// UseLogY reports whether the figure's y-axis is logarithmic. Error figures
// default to log scale.
func (c *Config) UseLogY() bool {
	if c.Chart.LogY != nil {
		return *c.Chart.LogY
	}
	return c.Figure == "error1d" || c.Figure == "error2d"
}

// OutputPath returns the configured output or <figure>.png.
func (c *Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return c.Figure + ".png"
}

func isFigure(name string) bool {
	for _, f := range Figures {
		if f == name {
			return true
		}
	}
	return false
}
