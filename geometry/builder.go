package geometry

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/hexview/hex"
)

// Builder holds one merged mesh covering every hex within a radius. Faces
// are laid out in hex.Range order and every face owns HexVertexCount
// consecutive vertices, so per-face colour and height can be rewritten in
// place.
type Builder struct {
	radius   int
	size     float64
	offset   mgl64.Vec3
	faces    []hex.Hex
	lookup   []int
	vertices []mgl64.Vec3
	colors   []color.RGBA
	indices  []uint32

	PositionsNeedUpdate bool
	ColorsNeedUpdate    bool
}

// NewBuilder builds the merged mesh for all hexes within radius of the origin
func NewBuilder(radius int, size float64, offset mgl64.Vec3, fill color.RGBA) *Builder {
	if radius < 0 {
		radius = 0
	}

	faces := hex.Range(hex.New(0, 0), radius)
	width := hex.GridWidth(radius)
	b := &Builder{
		radius:   radius,
		size:     size,
		offset:   offset,
		faces:    faces,
		lookup:   make([]int, width*width),
		vertices: make([]mgl64.Vec3, 0, len(faces)*HexVertexCount),
		colors:   make([]color.RGBA, 0, len(faces)*HexVertexCount),
		indices:  make([]uint32, 0, len(faces)*HexTriangleCount*3),
	}
	for i := range b.lookup {
		b.lookup[i] = -1
	}

	for face, h := range faces {
		b.lookup[hex.GridIndex(h, radius)] = face
		b.addHexagon(h, fill)
	}

	b.PositionsNeedUpdate = true
	b.ColorsNeedUpdate = true
	return b
}

func (b *Builder) addHexagon(h hex.Hex, fill color.RGBA) {
	center := hex.ToWorld(h, b.size, b.offset)
	start := uint32(len(b.vertices))

	b.vertices = append(b.vertices, center)
	corners := hex.Corners(center, b.size)
	b.vertices = append(b.vertices, corners[:]...)
	for range HexVertexCount {
		b.colors = append(b.colors, fill)
	}

	for i := range uint32(HexTriangleCount) {
		next := (i+1)%HexTriangleCount + 1
		b.indices = append(b.indices, start, start+i+1, start+next)
	}
}

// Radius returns the radius the mesh was built for
func (b *Builder) Radius() int {
	return b.radius
}

// Faces returns the hexes in face order
func (b *Builder) Faces() []hex.Hex {
	return b.faces
}

// FaceIndex returns the face of h, or -1 when h is outside the mesh
func (b *Builder) FaceIndex(h hex.Hex) int {
	if !h.Valid() || h.Length() > b.radius {
		return -1
	}
	return b.lookup[hex.GridIndex(h, b.radius)]
}

// SetFaceColor paints every vertex of a face. Panics on an unknown face.
func (b *Builder) SetFaceColor(face int, c color.RGBA) {
	start := b.faceStart(face)
	for i := start; i < start+HexVertexCount; i++ {
		b.colors[i] = c
	}
	b.ColorsNeedUpdate = true
}

// SetFaceHeight moves every vertex of a face to height z. Panics on an unknown face.
func (b *Builder) SetFaceHeight(face int, z float64) {
	start := b.faceStart(face)
	for i := start; i < start+HexVertexCount; i++ {
		b.vertices[i][2] = b.offset.Z() + z
	}
	b.PositionsNeedUpdate = true
}

// FaceColor returns the colour of a face's center vertex
func (b *Builder) FaceColor(face int) color.RGBA {
	return b.colors[b.faceStart(face)]
}

func (b *Builder) faceStart(face int) int {
	if face < 0 || face >= len(b.faces) {
		panic("geometry: face index out of range")
	}
	return face * HexVertexCount
}

func (b *Builder) Vertices() []mgl64.Vec3 {
	return b.vertices
}

func (b *Builder) Colors() []color.RGBA {
	return b.colors
}

func (b *Builder) Indices() []uint32 {
	return b.indices
}
