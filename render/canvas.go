package render

import (
	"github.com/lixenwraith/wireview/model"
	"github.com/lixenwraith/wireview/parameter"
	"github.com/lixenwraith/wireview/terminal"
	"github.com/lixenwraith/wireview/vmath"
)

// Surface is the cell output a Canvas draws to, origin top-left
type Surface interface {
	Size() (width, height int)
	SetCell(x, y int, r rune, fg terminal.Color)
	Print(x, y int, s string, fg terminal.Color)
	Clear() error
	Flush() error
}

// Canvas owns the current vertex and edge lists and rasterizes them in a
// coordinate space centered on the middle of the surface
type Canvas struct {
	surface Surface

	Vertices []vmath.Vec3
	Edges    []model.Edge

	Glyph rune
	Fg    terminal.Color
}

// NewCanvas creates an empty canvas drawing with the default glyph in white
func NewCanvas(surface Surface) *Canvas {
	return &Canvas{
		surface: surface,
		Glyph:   parameter.Glyph,
		Fg:      terminal.ColorWhite,
	}
}

// SetModel replaces the vertex and edge lists wholesale
func (c *Canvas) SetModel(m *model.Model) {
	c.Vertices = m.Vertices
	c.Edges = m.Edges
}

// VertexCount returns the number of vertices in the current model
func (c *Canvas) VertexCount() int { return len(c.Vertices) }

// EdgeCount returns the number of edges in the current model
func (c *Canvas) EdgeCount() int { return len(c.Edges) }

// Transform replaces every vertex with fn(vertex)
func (c *Canvas) Transform(fn func(vmath.Vec3) vmath.Vec3) {
	for i, v := range c.Vertices {
		c.Vertices[i] = fn(v)
	}
}

// Clear blanks the display
func (c *Canvas) Clear() error {
	return c.surface.Clear()
}

// ScreenSize returns current surface dimensions in cells, queried on every call
func (c *Canvas) ScreenSize() (cols, rows int) {
	return c.surface.Size()
}

// SetPixel queues glyph at a centered logical coordinate
// Cells outside [0,cols) x [0,rows) are dropped
func (c *Canvas) SetPixel(p vmath.Vec2I, glyph rune) {
	cols, rows := c.ScreenSize()
	x := p.X + cols/2
	y := p.Y + rows/2
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	c.surface.SetCell(x, y, glyph, c.Fg)
}

// DrawLine rasterizes the segment p1-p2 with the canvas glyph
func (c *Canvas) DrawLine(p1, p2 vmath.Vec2I) {
	Bresenham(p1, p2, func(p vmath.Vec2I) {
		c.SetPixel(p, c.Glyph)
	})
}

// Draw projects and rasterizes every edge whose indices are both in range
// Edges with a non-finite projection are skipped; the rest are clipped to the
// surface before rasterizing. Returns the number of edges drawn
func (c *Canvas) Draw(fov float32) int {
	n := len(c.Vertices)
	cols, rows := c.ScreenSize()
	view := viewport(cols, rows)

	drawn := 0
	for _, e := range c.Edges {
		if e.A < 0 || e.B < 0 || e.A >= n || e.B >= n {
			continue
		}
		a := c.Vertices[e.A].Project(fov)
		b := c.Vertices[e.B].Project(fov)
		if !a.Finite() || !b.Finite() {
			continue
		}
		drawn++
		a, b, ok := view.clip(a, b)
		if !ok {
			continue
		}
		c.DrawLine(a.Round(), b.Round())
	}
	return drawn
}

// Print writes s at a top-left origin cell position, used for the overlay
func (c *Canvas) Print(x, y int, s string) {
	c.surface.Print(x, y, s, terminal.ColorDefault)
}

// Update flushes queued output to the terminal
func (c *Canvas) Update() error {
	return c.surface.Flush()
}
