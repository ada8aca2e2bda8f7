// Package render holds the retained scene the frame pipeline keeps in sync
// and the Renderer capability that rasterizes it. Rasterization itself lives
// in a backend.
package render

import (
	"slices"

	"github.com/plus3/hexview/camera"
)

// Renderer draws a scene through a camera. One call per frame.
type Renderer interface {
	Render(scene *Scene, cam *camera.Orthographic) error
}

// RendererFunc adapts a function to the Renderer interface
type RendererFunc func(scene *Scene, cam *camera.Orthographic) error

func (f RendererFunc) Render(scene *Scene, cam *camera.Orthographic) error {
	return f(scene, cam)
}

// Scene is the retained set of drawables
type Scene struct {
	Background Color
	meshes     []*InstancedMesh
	surfaces   []*Surface
}

func NewScene(background Color) *Scene {
	return &Scene{Background: background}
}

// Add appends a mesh. Adding the same mesh twice is a no-op.
func (s *Scene) Add(mesh *InstancedMesh) {
	if !slices.Contains(s.meshes, mesh) {
		s.meshes = append(s.meshes, mesh)
	}
}

// Remove detaches a mesh and reports whether it was present
func (s *Scene) Remove(mesh *InstancedMesh) bool {
	idx := slices.Index(s.meshes, mesh)
	if idx < 0 {
		return false
	}
	s.meshes = slices.Delete(s.meshes, idx, idx+1)
	return true
}

// AddSurface appends a merged surface. Adding the same surface twice is a no-op.
func (s *Scene) AddSurface(surface *Surface) {
	if !slices.Contains(s.surfaces, surface) {
		s.surfaces = append(s.surfaces, surface)
	}
}

// RemoveSurface detaches a surface and reports whether it was present
func (s *Scene) RemoveSurface(surface *Surface) bool {
	idx := slices.Index(s.surfaces, surface)
	if idx < 0 {
		return false
	}
	s.surfaces = slices.Delete(s.surfaces, idx, idx+1)
	return true
}

func (s *Scene) Meshes() []*InstancedMesh {
	return s.meshes
}

func (s *Scene) Surfaces() []*Surface {
	return s.surfaces
}
