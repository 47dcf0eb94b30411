package render

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wireview/model"
	"github.com/lixenwraith/wireview/terminal"
	"github.com/lixenwraith/wireview/vmath"
)

type cell struct {
	X, Y int
	R    rune
}

// fakeSurface records writes in order
type fakeSurface struct {
	w, h     int
	cells    []cell
	printed  []string
	clears   int
	flushes  int
	sizeHits int
	failWith error
}

func (f *fakeSurface) Size() (int, int) {
	f.sizeHits++
	return f.w, f.h
}

func (f *fakeSurface) SetCell(x, y int, r rune, _ terminal.Color) {
	f.cells = append(f.cells, cell{x, y, r})
}

func (f *fakeSurface) Print(_, _ int, s string, _ terminal.Color) {
	f.printed = append(f.printed, s)
}

func (f *fakeSurface) Clear() error {
	f.clears++
	f.cells = nil
	return f.failWith
}

func (f *fakeSurface) Flush() error {
	f.flushes++
	return f.failWith
}

func collect(p1, p2 vmath.Vec2I) []vmath.Vec2I {
	var pts []vmath.Vec2I
	Bresenham(p1, p2, func(p vmath.Vec2I) { pts = append(pts, p) })
	return pts
}

func TestBresenhamHorizontal(t *testing.T) {
	assert.Equal(t,
		[]vmath.Vec2I{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}},
		collect(vmath.Vec2I{X: 0, Y: 0}, vmath.Vec2I{X: 4, Y: 0}),
	)
}

func TestBresenhamShallow(t *testing.T) {
	pts := collect(vmath.Vec2I{X: 0, Y: 0}, vmath.Vec2I{X: 3, Y: 2})
	assert.Equal(t, []vmath.Vec2I{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 2}}, pts)
}

func TestBresenhamSinglePoint(t *testing.T) {
	assert.Equal(t, []vmath.Vec2I{{X: 5, Y: -3}}, collect(vmath.Vec2I{X: 5, Y: -3}, vmath.Vec2I{X: 5, Y: -3}))
}

func TestBresenhamProperties(t *testing.T) {
	ends := []vmath.Vec2I{
		{X: 0, Y: 0}, {X: 7, Y: 0}, {X: -7, Y: 0}, {X: 0, Y: 9}, {X: 0, Y: -9},
		{X: 5, Y: 5}, {X: -5, Y: 5}, {X: 3, Y: -8}, {X: -11, Y: -4}, {X: 13, Y: 2}, {X: 1, Y: 12},
	}

	for _, a := range ends {
		for _, b := range ends {
			pts := collect(a, b)
			dx, dy := vmath.Abs(b.X-a.X), vmath.Abs(b.Y-a.Y)

			require.Len(t, pts, max(dx, dy)+1, "%v -> %v", a, b)
			assert.Equal(t, a, pts[0])
			assert.Equal(t, b, pts[len(pts)-1])

			seen := make(map[vmath.Vec2I]bool, len(pts))
			for i, p := range pts {
				assert.False(t, seen[p], "duplicate %v in %v -> %v", p, a, b)
				seen[p] = true
				if i == 0 {
					continue
				}
				// 8-connected: one cell per axis per step at most
				prev := pts[i-1]
				assert.LessOrEqual(t, vmath.Abs(p.X-prev.X), 1)
				assert.LessOrEqual(t, vmath.Abs(p.Y-prev.Y), 1)
			}
		}
	}
}

func TestSetPixelCentersAndClips(t *testing.T) {
	s := &fakeSurface{w: 20, h: 10}
	c := NewCanvas(s)

	c.SetPixel(vmath.Vec2I{X: 0, Y: 0}, '#')
	c.SetPixel(vmath.Vec2I{X: -10, Y: -5}, '#') // top-left cell
	c.SetPixel(vmath.Vec2I{X: 9, Y: 4}, '#')    // bottom-right cell
	c.SetPixel(vmath.Vec2I{X: -11, Y: 0}, '#')  // left of the grid
	c.SetPixel(vmath.Vec2I{X: 0, Y: -6}, '#')   // above the grid

	assert.Equal(t, []cell{{10, 5, '#'}, {0, 0, '#'}, {19, 9, '#'}}, s.cells)
}

func TestSetPixelRejectsCellPastEdge(t *testing.T) {
	s := &fakeSurface{w: 20, h: 10}
	c := NewCanvas(s)

	// x == cols and y == rows are one past the last cell and are dropped
	c.SetPixel(vmath.Vec2I{X: 10, Y: 0}, '#')
	c.SetPixel(vmath.Vec2I{X: 0, Y: 5}, '#')
	assert.Empty(t, s.cells)
}

func TestSetPixelRequeriesSize(t *testing.T) {
	s := &fakeSurface{w: 20, h: 10}
	c := NewCanvas(s)

	c.SetPixel(vmath.Vec2I{X: 0, Y: 0}, '#')
	s.w, s.h = 40, 20
	c.SetPixel(vmath.Vec2I{X: 0, Y: 0}, '#')

	assert.Equal(t, []cell{{10, 5, '#'}, {20, 10, '#'}}, s.cells)
	assert.Equal(t, 2, s.sizeHits)
}

func TestDrawLineUsesGlyph(t *testing.T) {
	s := &fakeSurface{w: 20, h: 10}
	c := NewCanvas(s)
	c.Glyph = '*'

	c.DrawLine(vmath.Vec2I{X: 0, Y: 0}, vmath.Vec2I{X: 4, Y: 0})
	assert.Equal(t, []cell{{10, 5, '*'}, {11, 5, '*'}, {12, 5, '*'}, {13, 5, '*'}, {14, 5, '*'}}, s.cells)
}

func TestDrawSkipsOutOfRangeEdges(t *testing.T) {
	s := &fakeSurface{w: 80, h: 40}
	c := NewCanvas(s)
	c.SetModel(&model.Model{
		Vertices: []vmath.Vec3{{X: 0, Y: 0, Z: 0}, {X: 4, Y: 0, Z: 0}, {X: 0, Y: 3, Z: 0}, {X: 4, Y: 3, Z: 0}},
		Edges:    []model.Edge{{A: 0, B: 1}, {A: 1, B: 5}, {A: -1, B: 2}, {A: 2, B: 3}},
	})

	var drawn int
	require.NotPanics(t, func() { drawn = c.Draw(90) })
	assert.Equal(t, 2, drawn)

	// Two horizontal segments of 5 cells each
	assert.Len(t, s.cells, 10)
}

func TestDrawSkipsNonFiniteEdges(t *testing.T) {
	s := &fakeSurface{w: 80, h: 40}
	c := NewCanvas(s)
	inf := math32.Inf(1)
	c.SetModel(&model.Model{
		Vertices: []vmath.Vec3{{X: 0, Y: 0, Z: 0}, {X: inf, Y: 0, Z: 0}, {X: math32.NaN(), Y: 1, Z: 0}, {X: 4, Y: 0, Z: 0}},
		Edges:    []model.Edge{{A: 0, B: 1}, {A: 2, B: 0}, {A: 0, B: 3}},
	})

	assert.Equal(t, 1, c.Draw(90))
	assert.Len(t, s.cells, 5)
}

func TestDrawClipsFarVertices(t *testing.T) {
	s := &fakeSurface{w: 80, h: 40}
	c := NewCanvas(s)
	c.SetModel(&model.Model{
		Vertices: []vmath.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1e12, Y: 0, Z: 0}, {X: -1e12, Y: -1e12, Z: 0}, {X: -2e12, Y: -1e12, Z: 0}},
		Edges:    []model.Edge{{A: 0, B: 1}, {A: 2, B: 3}},
	})

	assert.Equal(t, 2, c.Draw(90))

	// Only the visible half-row from the center to the right edge is plotted
	require.Len(t, s.cells, 40)
	for i, cl := range s.cells {
		assert.Equal(t, cell{40 + i, 20, '#'}, cl)
	}
}

func TestDrawAfterScaleOverflow(t *testing.T) {
	s := &fakeSurface{w: 80, h: 40}
	c := NewCanvas(s)
	c.SetModel(model.Cube())

	for range 9000 {
		c.Transform(func(v vmath.Vec3) vmath.Vec3 { return v.Scale(1.01) })
	}
	assert.True(t, math32.IsInf(c.Vertices[0].X, 0))

	assert.Zero(t, c.Draw(90))
	assert.Empty(t, s.cells)
}

func TestClipKeepsInsideSegment(t *testing.T) {
	view := viewport(80, 40)
	a, b := vmath.Vec2{X: -3.25, Y: 7.5}, vmath.Vec2{X: 12.75, Y: -9}

	ga, gb, ok := view.clip(a, b)
	require.True(t, ok)
	assert.Equal(t, a, ga)
	assert.Equal(t, b, gb)

	_, _, ok = view.clip(vmath.Vec2{X: 100, Y: 0}, vmath.Vec2{X: 200, Y: 5})
	assert.False(t, ok)
}

func TestCounts(t *testing.T) {
	c := NewCanvas(&fakeSurface{w: 10, h: 10})
	assert.Zero(t, c.VertexCount())
	assert.Zero(t, c.EdgeCount())

	c.SetModel(model.Cube())
	assert.Equal(t, 8, c.VertexCount())
	assert.Equal(t, 12, c.EdgeCount())
}

func TestDrawCube(t *testing.T) {
	s := &fakeSurface{w: 120, h: 60}
	c := NewCanvas(s)
	c.SetModel(model.Cube())

	assert.Equal(t, 12, c.Draw(90))
	assert.NotEmpty(t, s.cells)
}

func TestTransform(t *testing.T) {
	c := NewCanvas(&fakeSurface{w: 10, h: 10})
	c.SetModel(model.Cube())

	c.Transform(func(v vmath.Vec3) vmath.Vec3 { return v.Scale(2) })
	for _, v := range c.Vertices {
		assert.Equal(t, float32(20), max(v.X, -v.X))
	}
}

func TestClearUpdatePropagateErrors(t *testing.T) {
	boom := errors.New("boom")
	s := &fakeSurface{w: 10, h: 10, failWith: boom}
	c := NewCanvas(s)

	assert.ErrorIs(t, c.Clear(), boom)
	assert.ErrorIs(t, c.Update(), boom)
	assert.Equal(t, 1, s.clears)
	assert.Equal(t, 1, s.flushes)
}
