package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/hexview/geometry"
)

// InstancedMesh draws one template many times. The instance count is fixed
// at creation; a different count needs a new mesh.
type InstancedMesh struct {
	Template  *geometry.Template
	Wireframe bool

	matrices []mgl64.Mat4
	colors   []Color
	disposed bool

	MatricesNeedUpdate bool
	ColorsNeedUpdate   bool
}

// NewInstancedMesh creates count instances at the origin painted with base
func NewInstancedMesh(template *geometry.Template, count int, base Color) *InstancedMesh {
	if count < 0 {
		panic("render: negative instance count")
	}

	m := &InstancedMesh{
		Template: template,
		matrices: make([]mgl64.Mat4, count),
		colors:   make([]Color, count),
	}
	for i := range m.matrices {
		m.matrices[i] = mgl64.Ident4()
		m.colors[i] = base
	}
	return m
}

// Count returns the fixed number of instances
func (m *InstancedMesh) Count() int {
	return len(m.matrices)
}

func (m *InstancedMesh) checkIndex(i int) {
	if i < 0 || i >= len(m.matrices) {
		panic(fmt.Sprintf("render: instance %d out of range [0,%d)", i, len(m.matrices)))
	}
}

// SetMatrixAt writes the transform of instance i. Panics when i is out of range.
func (m *InstancedMesh) SetMatrixAt(i int, matrix mgl64.Mat4) {
	m.checkIndex(i)
	m.matrices[i] = matrix
}

// MatrixAt returns the transform of instance i
func (m *InstancedMesh) MatrixAt(i int) mgl64.Mat4 {
	m.checkIndex(i)
	return m.matrices[i]
}

// SetColorAt writes the colour of instance i. Panics when i is out of range.
func (m *InstancedMesh) SetColorAt(i int, c Color) {
	m.checkIndex(i)
	m.colors[i] = c
}

// ColorAt returns the colour of instance i
func (m *InstancedMesh) ColorAt(i int) Color {
	m.checkIndex(i)
	return m.colors[i]
}

// Dispose releases the instance buffers. A disposed mesh must not be drawn.
func (m *InstancedMesh) Dispose() {
	m.disposed = true
	m.matrices = nil
	m.colors = nil
}

func (m *InstancedMesh) Disposed() bool {
	return m.disposed
}
