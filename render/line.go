package render

import "github.com/lixenwraith/wireview/vmath"

// Bresenham walks the integer line from p1 to p2 inclusive, calling plot for
// each cell in order. Produces max(|dx|,|dy|)+1 8-connected points
func Bresenham(p1, p2 vmath.Vec2I, plot func(vmath.Vec2I)) {
	dx := vmath.Abs(p2.X - p1.X)
	dy := vmath.Abs(p2.Y - p1.Y)
	sx := 1
	if p1.X > p2.X {
		sx = -1
	}
	sy := 1
	if p1.Y > p2.Y {
		sy = -1
	}

	var err int
	if dx > dy {
		err = dx / 2
	} else {
		err = -dy / 2
	}

	p := p1
	for {
		plot(p)
		if p == p2 {
			return
		}
		e2 := err
		if e2 > -dx {
			err -= dy
			p.X += sx
		}
		if e2 < dy {
			err += dx
			p.Y += sy
		}
	}
}
