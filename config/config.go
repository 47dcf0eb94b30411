// Package config loads viewer settings from an optional TOML file
package config

import (
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/wireview/parameter"
	"github.com/lixenwraith/wireview/terminal"
)

// ErrInvalid marks a config file or value that cannot be used
var ErrInvalid = errors.New("invalid config")

// Config holds every user-tunable setting
// Zero file, zero flags: Default()
type Config struct {
	FieldOfView  float32 `toml:"field_of_view"`
	MaxFrameRate float32 `toml:"max_frame_rate"`
	RotateSpeed  float32 `toml:"rotate_speed"`
	ScaleUp      float32 `toml:"scale_up"`
	ScaleDown    float32 `toml:"scale_down"`

	Glyph       string `toml:"glyph"`
	ShowOverlay bool   `toml:"show_overlay"`
	Color       string `toml:"color"` // auto, white, mono

	Sound bool `toml:"sound"`

	Fit       bool    `toml:"fit"`
	FitRadius float32 `toml:"fit_radius"`

	Debug bool `toml:"debug"`

	// Keys maps key names to action names, see input.ApplyBindings
	Keys map[string]string `toml:"keys"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		FieldOfView:  parameter.FieldOfView,
		MaxFrameRate: parameter.MaxFrameRate,
		RotateSpeed:  parameter.RotateSpeed,
		ScaleUp:      parameter.ScaleUpFactor,
		ScaleDown:    parameter.ScaleDownFactor,
		Glyph:        string(parameter.Glyph),
		ShowOverlay:  parameter.ShowOverlay,
		Color:        "auto",
		FitRadius:    parameter.FitRadius,
	}
}

// Load reads path over the defaults; keys absent from the file keep their
// default values and unknown keys are rejected
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg := Default()
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, errors.Wrapf(ErrInvalid, "%s:%d:%d: %v", path, row, col, err)
		}
		return nil, errors.Wrapf(ErrInvalid, "%s: %v", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if !finite(c.FieldOfView) || c.FieldOfView <= 0 {
		return errors.Wrapf(ErrInvalid, "field_of_view must be positive, got %v", c.FieldOfView)
	}
	if !finite(c.MaxFrameRate) || c.MaxFrameRate <= 0 {
		return errors.Wrapf(ErrInvalid, "max_frame_rate must be positive, got %v", c.MaxFrameRate)
	}
	if !finite(c.RotateSpeed) {
		return errors.Wrapf(ErrInvalid, "rotate_speed must be finite, got %v", c.RotateSpeed)
	}
	if !finite(c.ScaleUp) || c.ScaleUp <= 0 {
		return errors.Wrapf(ErrInvalid, "scale_up must be positive, got %v", c.ScaleUp)
	}
	if !finite(c.ScaleDown) || c.ScaleDown <= 0 {
		return errors.Wrapf(ErrInvalid, "scale_down must be positive, got %v", c.ScaleDown)
	}
	if !finite(c.FitRadius) || c.FitRadius <= 0 {
		return errors.Wrapf(ErrInvalid, "fit_radius must be positive, got %v", c.FitRadius)
	}
	if _, ok := c.GlyphRune(); !ok {
		return errors.Wrapf(ErrInvalid, "glyph must be a single printable character, got %q", c.Glyph)
	}
	if _, ok := terminal.ParseColorMode(c.Color); !ok {
		return errors.Wrapf(ErrInvalid, "color must be auto, white or mono, got %q", c.Color)
	}
	return nil
}

// GlyphRune returns the line glyph if Glyph is exactly one printable, non-space rune
func (c *Config) GlyphRune() (rune, bool) {
	if utf8.RuneCountInString(c.Glyph) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.Glyph)
	if r == utf8.RuneError || !unicode.IsPrint(r) || unicode.IsSpace(r) {
		return 0, false
	}
	return r, true
}

// ColorMode resolves Color, probing the terminal for "auto"
func (c *Config) ColorMode() terminal.ColorMode {
	mode, ok := terminal.ParseColorMode(c.Color)
	if !ok {
		return terminal.ColorModeColor
	}
	return mode
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
