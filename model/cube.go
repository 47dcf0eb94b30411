package model

import (
	"github.com/lixenwraith/wireview/parameter"
	"github.com/lixenwraith/wireview/vmath"
)

// Cube returns the built-in cube: 8 corners at ±CubeHalfExtent, 12 edges
func Cube() *Model {
	const e = parameter.CubeHalfExtent
	return &Model{
		Vertices: []vmath.Vec3{
			{X: -e, Y: -e, Z: -e},
			{X: -e, Y: -e, Z: e},
			{X: e, Y: -e, Z: e},
			{X: e, Y: -e, Z: -e},
			{X: -e, Y: e, Z: -e},
			{X: -e, Y: e, Z: e},
			{X: e, Y: e, Z: e},
			{X: e, Y: e, Z: -e},
		},
		Edges: []Edge{
			// Bottom
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			// Top
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			// Vertical
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		},
	}
}
