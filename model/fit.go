package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/wireview/vmath"
)

func toMgl(v vmath.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl32.Vec3) vmath.Vec3 {
	return vmath.V3(v.X(), v.Y(), v.Z())
}

// Bounds returns the axis-aligned bounding box; ok is false for an empty model
func (m *Model) Bounds() (lo, hi vmath.Vec3, ok bool) {
	if len(m.Vertices) == 0 {
		return vmath.Vec3{}, vmath.Vec3{}, false
	}
	minV := toMgl(m.Vertices[0])
	maxV := minV
	for _, v := range m.Vertices[1:] {
		p := toMgl(v)
		for i := 0; i < 3; i++ {
			minV[i] = min(minV[i], p[i])
			maxV[i] = max(maxV[i], p[i])
		}
	}
	return fromMgl(minV), fromMgl(maxV), true
}

// Fit recenters the model on its bounding box center and scales it uniformly
// so the farthest vertex lies at radius. Degenerate models are only recentered
func (m *Model) Fit(radius float32) {
	lo, hi, ok := m.Bounds()
	if !ok {
		return
	}
	center := toMgl(lo).Add(toMgl(hi)).Mul(0.5)

	var far float32
	for i, v := range m.Vertices {
		p := toMgl(v).Sub(center)
		m.Vertices[i] = fromMgl(p)
		far = max(far, p.Len())
	}

	if far == 0 || mgl32.FloatEqual(far, radius) {
		return
	}
	s := radius / far
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Scale(s)
	}
}
