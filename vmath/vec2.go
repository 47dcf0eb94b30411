package vmath

import "github.com/chewxy/math32"

// Coordinates saturate to the int32 range when rounded
const (
	maxCoord = 1<<31 - 1
	minCoord = -1 << 31
)

// Vec2 is a projected float coordinate before rasterization
type Vec2 struct {
	X, Y float32
}

// Vec2I is an integer screen coordinate in the centered logical space
type Vec2I struct {
	X, Y int
}

// Finite reports whether both components are neither NaN nor infinite
func (v Vec2) Finite() bool {
	return !math32.IsNaN(v.X) && !math32.IsInf(v.X, 0) &&
		!math32.IsNaN(v.Y) && !math32.IsInf(v.Y, 0)
}

// Round converts to integer coordinates, rounding half away from zero per axis
// Out-of-range values saturate to the int32 limits and NaN becomes 0
func (v Vec2) Round() Vec2I {
	return Vec2I{X: roundSat(v.X), Y: roundSat(v.Y)}
}

func roundSat(f float32) int {
	switch {
	case math32.IsNaN(f):
		return 0
	case f >= maxCoord:
		return maxCoord
	case f <= minCoord:
		return minCoord
	}
	return int(math32.Round(f))
}

// Abs returns |a|
func Abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
