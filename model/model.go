// Package model holds wireframe geometry: vertex positions plus index-pair edges.
package model

import "github.com/lixenwraith/wireview/vmath"

// Edge connects two vertices by index into Model.Vertices
// Indices are not validated here; out-of-range edges are skipped when drawn
type Edge struct {
	A, B int
}

// Model is a vertex list and an edge list
// During a viewing session only vertex positions change
type Model struct {
	Vertices []vmath.Vec3
	Edges    []Edge
}

// Clone returns a deep copy
func (m *Model) Clone() *Model {
	c := &Model{
		Vertices: make([]vmath.Vec3, len(m.Vertices)),
		Edges:    make([]Edge, len(m.Edges)),
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Edges, m.Edges)
	return c
}

// EdgesFromIndices pairs every two consecutive indices of a flat index stream:
// (i0,i1), (i1,i2), ... For a triangle stream this is not the set of face edges;
// it links the last corner of a face to the first corner of the next
func EdgesFromIndices(indices []int) []Edge {
	if len(indices) < 2 {
		return nil
	}
	edges := make([]Edge, 0, len(indices)-1)
	for i := 1; i < len(indices); i++ {
		edges = append(edges, Edge{A: indices[i-1], B: indices[i]})
	}
	return edges
}
