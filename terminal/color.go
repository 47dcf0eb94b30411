package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
)

// Color is a foreground color for cell writes
type Color uint8

const (
	ColorDefault Color = iota // terminal default foreground
	ColorWhite
)

// ColorMode indicates how colors are emitted
type ColorMode uint8

const (
	ColorModeColor ColorMode = iota // foreground colors honored
	ColorModeMono                   // every write uses the default style
)

// DetectColorMode maps the environment's color profile to a ColorMode
// Ascii profiles (including NO_COLOR) fall back to monochrome
func DetectColorMode() ColorMode {
	if termenv.EnvColorProfile() == termenv.Ascii {
		return ColorModeMono
	}
	return ColorModeColor
}

// ParseColorMode resolves a flag or config value: auto, color/white, mono
func ParseColorMode(s string) (ColorMode, bool) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DetectColorMode(), true
	case "color", "white":
		return ColorModeColor, true
	case "mono", "none":
		return ColorModeMono, true
	}
	return ColorModeColor, false
}

// style resolves a Color to a tcell style under the given mode
func style(c Color, mode ColorMode) tcell.Style {
	if mode == ColorModeMono || c == ColorDefault {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(tcell.ColorWhite)
}
