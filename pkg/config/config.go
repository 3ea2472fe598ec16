// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/teapotcast/pkg/adapters/filesink"
	"github.com/user/teapotcast/pkg/adapters/wobble"
	"github.com/user/teapotcast/pkg/orchestrator"
	"github.com/user/teapotcast/pkg/ports"
	"github.com/user/teapotcast/pkg/renderloop"
	"github.com/user/teapotcast/pkg/scene"
)

// Config represents the full configuration for teapotcast.
type Config struct {
	// Timing
	TickRate      float64       `yaml:"tick_rate"`
	FrameInterval int           `yaml:"frame_interval"`
	Duration      time.Duration `yaml:"duration"`

	// Host, in points
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`

	// Capture offers, preferred first
	Formats     []string `yaml:"formats"`
	Resolutions []string `yaml:"resolutions"`
	QueueSize   int      `yaml:"queue_size"`

	// Scene
	Segments int         `yaml:"segments"`
	SpinRate float64     `yaml:"spin_rate"`
	FontPath string      `yaml:"font_path"`
	Theme    ThemeConfig `yaml:"theme"`

	Motion MotionConfig `yaml:"motion"`
	Output OutputConfig `yaml:"output"`

	LogLevel string `yaml:"log_level"`
}

// ThemeConfig represents scene colors.
type ThemeConfig struct {
	BackgroundColor string `yaml:"background_color"`
	BodyColor       string `yaml:"body_color"`
	TextColor       string `yaml:"text_color"`
	Overlay         bool   `yaml:"overlay"`
}

// MotionConfig represents the synthetic orientation source.
type MotionConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Rate      float64       `yaml:"rate"`
	Amplitude float64       `yaml:"amplitude"`
	Period    time.Duration `yaml:"period"`
	Filter    float64       `yaml:"filter"`
}

// OutputConfig represents the frame sink. An empty Dir discards frames.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Format  string `yaml:"format"`
	Quality int    `yaml:"quality"`
	Every   int    `yaml:"every"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		TickRate:      renderloop.DefaultTickRate,
		FrameInterval: 1,
		Duration:      10 * time.Second,

		Width:  640,
		Height: 480,
		Scale:  1,

		Formats:     []string{"bgra", "rgba"},
		Resolutions: []string{"640x480", "1280x720", "320x240"},
		QueueSize:   4,

		Segments: 24,
		SpinRate: scene.DefaultSpinRate,
		Theme: ThemeConfig{
			BackgroundColor: "#1a1a2e",
			BodyColor:       "#deb887",
			TextColor:       "#ffffff",
			Overlay:         true,
		},

		Motion: MotionConfig{
			Enabled:   true,
			Rate:      wobble.DefaultRate,
			Amplitude: wobble.DefaultAmplitude,
			Period:    wobble.DefaultPeriod,
			Filter:    0.1,
		},
		Output: OutputConfig{
			Format:  "png",
			Quality: 85,
			Every:   1,
		},

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that cannot be clamped safely.
func (c Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 || c.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("tick_rate must be in (0, 1000], got %v", c.TickRate))
	}
	if c.FrameInterval < 1 {
		errs = append(errs, fmt.Errorf("frame_interval must be at least 1, got %d", c.FrameInterval))
	}
	if c.Duration < 0 {
		errs = append(errs, fmt.Errorf("duration must not be negative, got %s", c.Duration))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("width and height must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %v", c.Scale))
	}
	if _, err := c.PixelFormats(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Dimensions(); err != nil {
		errs = append(errs, err)
	}
	for name, v := range map[string]string{
		"background_color": c.Theme.BackgroundColor,
		"body_color":       c.Theme.BodyColor,
		"text_color":       c.Theme.TextColor,
	} {
		if _, err := ParseColor(v); err != nil {
			errs = append(errs, fmt.Errorf("theme.%s: %w", name, err))
		}
	}
	if _, err := filesink.ParseImageFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error", "quiet":
	default:
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// PixelFormats parses Formats.
func (c Config) PixelFormats() ([]ports.PixelFormat, error) {
	formats := make([]ports.PixelFormat, 0, len(c.Formats))
	for _, s := range c.Formats {
		f, err := ports.ParsePixelFormat(s)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// Dimensions parses Resolutions.
func (c Config) Dimensions() ([]ports.Dimension, error) {
	dims := make([]ports.Dimension, 0, len(c.Resolutions))
	for _, s := range c.Resolutions {
		d, err := ParseResolution(s)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	return dims, nil
}

// ParseResolution parses "WIDTHxHEIGHT".
func ParseResolution(s string) (ports.Dimension, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return ports.Dimension{}, fmt.Errorf("invalid resolution %q, want WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return ports.Dimension{}, fmt.Errorf("invalid resolution %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return ports.Dimension{}, fmt.Errorf("invalid resolution %q: %w", s, err)
	}
	d := ports.Dimension{Width: width, Height: height}
	if !d.Valid() {
		return ports.Dimension{}, fmt.Errorf("invalid resolution %q: sides must be positive", s)
	}
	return d, nil
}

// ParseColor parses a "#rrggbb" or "#rrggbbaa" hex color.
func ParseColor(hex string) (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", hex)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ToControllerConfig converts Config to renderloop.Config. It fails on the
// same values Validate reports.
func (c Config) ToControllerConfig() (renderloop.Config, error) {
	formats, err := c.PixelFormats()
	if err != nil {
		return renderloop.Config{}, err
	}
	dims, err := c.Dimensions()
	if err != nil {
		return renderloop.Config{}, err
	}

	style := scene.DefaultStyle()
	style.Overlay = c.Theme.Overlay
	for _, t := range []struct {
		hex string
		dst *color.RGBA
	}{
		{c.Theme.BackgroundColor, &style.Background},
		{c.Theme.BodyColor, &style.Body},
		{c.Theme.TextColor, &style.Text},
	} {
		if t.hex == "" {
			continue
		}
		col, err := ParseColor(t.hex)
		if err != nil {
			return renderloop.Config{}, err
		}
		*t.dst = col
	}

	return renderloop.Config{
		TickRate:      c.TickRate,
		FrameInterval: c.FrameInterval,
		Formats:       formats,
		Resolutions:   dims,
		QueueSize:     c.QueueSize,
		Segments:      c.Segments,
		SpinRate:      c.SpinRate,
		Style:         style,
	}, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		Duration:      c.Duration,
		FrameInterval: c.FrameInterval,
	}
}

// ToWobbleConfig converts the motion settings to wobble.Config.
func (c Config) ToWobbleConfig() wobble.Config {
	return wobble.Config{
		Rate:         c.Motion.Rate,
		Amplitude:    c.Motion.Amplitude,
		Period:       c.Motion.Period,
		FilterFactor: c.Motion.Filter,
	}
}

// ToFileSinkOptions converts the output settings to filesink.Options.
func (c Config) ToFileSinkOptions() (filesink.Options, error) {
	format, err := filesink.ParseImageFormat(c.Output.Format)
	if err != nil {
		return filesink.Options{}, err
	}
	return filesink.Options{
		Format:  format,
		Quality: c.Output.Quality,
		Every:   c.Output.Every,
	}, nil
}
