package render

import "github.com/lixenwraith/wireview/vmath"

// rect is an axis-aligned region in the centered logical space
type rect struct {
	minX, minY, maxX, maxY float64
}

// viewport covers the visible cells of a cols x rows surface plus a one-cell
// margin, so rounding at the border still reaches the edge cells
func viewport(cols, rows int) rect {
	return rect{
		minX: float64(-cols/2 - 1),
		minY: float64(-rows/2 - 1),
		maxX: float64(cols - cols/2),
		maxY: float64(rows - rows/2),
	}
}

// clip trims segment a-b to r (Liang-Barsky). Endpoints already inside r are
// returned unchanged; ok is false when no part of the segment is inside.
// Arithmetic runs in float64 so differences of large float32 values stay finite
func (r rect) clip(a, b vmath.Vec2) (vmath.Vec2, vmath.Vec2, bool) {
	ax, ay := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X)-ax, float64(b.Y)-ay

	t0, t1 := 0.0, 1.0
	bounds := [4][2]float64{
		{-dx, ax - r.minX},
		{dx, r.maxX - ax},
		{-dy, ay - r.minY},
		{dy, r.maxY - ay},
	}
	for _, pq := range bounds {
		p, q := pq[0], pq[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = min(t1, t)
		}
	}

	if t1 < 1 {
		b = vmath.Vec2{X: float32(ax + t1*dx), Y: float32(ay + t1*dy)}
	}
	if t0 > 0 {
		a = vmath.Vec2{X: float32(ax + t0*dx), Y: float32(ay + t0*dy)}
	}
	return a, b, true
}
