// Package geometry builds vertex data for flat-top hexagons.
package geometry

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/hexview/hex"
)

// Vertices per hexagon: the center followed by the six corners
const HexVertexCount = 7

// Triangles per hexagon, fanned around the center
const HexTriangleCount = 6

// Template is an indexed triangle list
type Template struct {
	Vertices []mgl64.Vec3
	Indices  []uint16
}

// HexPlane returns a single flat-top hexagon of the given size centred on the origin
func HexPlane(size float64) *Template {
	t := &Template{
		Vertices: make([]mgl64.Vec3, 0, HexVertexCount),
		Indices:  make([]uint16, 0, HexTriangleCount*3),
	}

	t.Vertices = append(t.Vertices, mgl64.Vec3{})
	corners := hex.Corners(mgl64.Vec3{}, size)
	t.Vertices = append(t.Vertices, corners[:]...)

	for i := range HexTriangleCount {
		next := i + 2
		if i == HexTriangleCount-1 {
			next = 1
		}
		t.Indices = append(t.Indices, 0, uint16(i+1), uint16(next))
	}
	return t
}

// Edges returns each unique triangle edge once, for wireframe drawing
func (t *Template) Edges() [][2]uint16 {
	seen := make(map[[2]uint16]bool, len(t.Indices))
	edges := make([][2]uint16, 0, len(t.Indices))
	for i := 0; i+2 < len(t.Indices); i += 3 {
		tri := [3]uint16{t.Indices[i], t.Indices[i+1], t.Indices[i+2]}
		for j := range 3 {
			a, b := tri[j], tri[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]uint16{a, b}
			if !seen[key] {
				seen[key] = true
				edges = append(edges, key)
			}
		}
	}
	return edges
}

// Triangles returns the number of triangles in the template
func (t *Template) Triangles() int {
	return len(t.Indices) / 3
}
