// Package config holds the runtime settings of the loop and loads them from
// TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid marks a configuration that failed validation
var ErrInvalid = errors.New("invalid config")

// Defaults for every setting a config file may omit
const (
	DefaultTitle         = "frameloop"
	DefaultWidth         = 300
	DefaultHeight        = 200
	DefaultCellAspect    = 2.0
	DefaultTickRate      = 20 // 50ms game tick
	DefaultFrameInterval = 16 * time.Millisecond
	DefaultMaxFrameTime  = 250 * time.Millisecond
	DefaultHoldTimeout   = 700 * time.Millisecond
	DefaultColorSteps    = 100
)

// Config is the full settings tree
type Config struct {
	Window WindowConfig `toml:"window" yaml:"window"`
	Loop   LoopConfig   `toml:"loop" yaml:"loop"`
	Input  InputConfig  `toml:"input" yaml:"input"`
	Scene  SceneConfig  `toml:"scene" yaml:"scene"`
}

// WindowConfig sizes the surface; the terminal backend measures in cells
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	// CellAspect is the height/width ratio of one terminal cell
	CellAspect float64 `toml:"cell_aspect" yaml:"cell_aspect"`
}

// LoopConfig drives the fixed-timestep accumulator and frame pacing
type LoopConfig struct {
	TickRate      int      `toml:"tick_rate" yaml:"tick_rate"`
	FrameInterval Duration `toml:"frame_interval" yaml:"frame_interval"`
	MaxFrameTime  Duration `toml:"max_frame_time" yaml:"max_frame_time"`
}

// InputConfig names the keys the scene reacts to
type InputConfig struct {
	// HoldTimeout must exceed the OS auto-repeat delay (commonly 250-660ms),
	// otherwise a held key reads as released until repeats start
	HoldTimeout Duration `toml:"hold_timeout" yaml:"hold_timeout"`
	Up          string   `toml:"up" yaml:"up"`
	Down        string   `toml:"down" yaml:"down"`
	Quit        string   `toml:"quit" yaml:"quit"`
}

// SceneConfig tunes the placeholder tint scene
type SceneConfig struct {
	// ColorSteps is the number of frames a held key needs to sweep 0..1
	ColorSteps int `toml:"color_steps" yaml:"color_steps"`
}

// Default returns a Config populated with defaults
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:      DefaultTitle,
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			CellAspect: DefaultCellAspect,
		},
		Loop: LoopConfig{
			TickRate:      DefaultTickRate,
			FrameInterval: Duration{DefaultFrameInterval},
			MaxFrameTime:  Duration{DefaultMaxFrameTime},
		},
		Input: InputConfig{
			HoldTimeout: Duration{DefaultHoldTimeout},
			Up:          "up",
			Down:        "down",
			Quit:        "esc",
		},
		Scene: SceneConfig{ColorSteps: DefaultColorSteps},
	}
}

// TickDuration returns the fixed simulation tick length
func (c Config) TickDuration() time.Duration {
	if c.Loop.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.Loop.TickRate)
}

// Validate reports the first setting out of range
func (c Config) Validate() error {
	switch {
	case c.Window.Title == "":
		return fmt.Errorf("%w: window.title is empty", ErrInvalid)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.CellAspect <= 0:
		return fmt.Errorf("%w: window.cell_aspect %v", ErrInvalid, c.Window.CellAspect)
	case c.Loop.TickRate <= 0:
		return fmt.Errorf("%w: loop.tick_rate %d", ErrInvalid, c.Loop.TickRate)
	case c.Loop.FrameInterval.Duration < 0:
		return fmt.Errorf("%w: loop.frame_interval %v", ErrInvalid, c.Loop.FrameInterval)
	case c.Loop.MaxFrameTime.Duration < 0:
		return fmt.Errorf("%w: loop.max_frame_time %v", ErrInvalid, c.Loop.MaxFrameTime)
	case c.Loop.MaxFrameTime.Duration > 0 && c.Loop.MaxFrameTime.Duration < c.TickDuration():
		return fmt.Errorf("%w: loop.max_frame_time %v shorter than one tick", ErrInvalid, c.Loop.MaxFrameTime)
	case c.Input.HoldTimeout.Duration <= 0:
		return fmt.Errorf("%w: input.hold_timeout %v", ErrInvalid, c.Input.HoldTimeout)
	case c.Input.Up == "" || c.Input.Down == "" || c.Input.Quit == "":
		return fmt.Errorf("%w: input keys must be named", ErrInvalid)
	case c.Scene.ColorSteps <= 0:
		return fmt.Errorf("%w: scene.color_steps %d", ErrInvalid, c.Scene.ColorSteps)
	}
	return nil
}

// Duration decodes from strings such as "16ms" in both TOML and YAML
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}
