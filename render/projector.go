package render

import (
	"iter"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/hexview/camera"
)

// Segment is a projected line in pixel space
type Segment struct {
	From, To mgl64.Vec2
	Color    Color
}

// Triangle is a projected, per-vertex coloured triangle in pixel space
type Triangle struct {
	Points [3]mgl64.Vec2
	Colors [3]Color
}

// Projector maps scene geometry to pixel coordinates of a viewport; origin
// top-left, +Y down
type Projector struct {
	Width, Height int
}

func (p Projector) toPixels(vp mgl64.Mat4, world mgl64.Vec3) mgl64.Vec2 {
	clip := vp.Mul4x1(world.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl64.Vec2{
		(ndc.X() + 1) * float64(p.Width) / 2,
		(1 - ndc.Y()) * float64(p.Height) / 2,
	}
}

// Segments yields every wireframe edge of every live instanced mesh
func (p Projector) Segments(scene *Scene, cam *camera.Orthographic) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		vp := cam.ViewProjection()
		for _, mesh := range scene.Meshes() {
			if mesh.Disposed() || mesh.Template == nil {
				continue
			}

			edges := mesh.Template.Edges()
			local := make([]mgl64.Vec2, len(mesh.Template.Vertices))
			for i := range mesh.Count() {
				mvp := vp.Mul4(mesh.MatrixAt(i))
				for v, pos := range mesh.Template.Vertices {
					local[v] = p.toPixels(mvp, pos)
				}
				c := mesh.ColorAt(i)
				for _, e := range edges {
					if !yield(Segment{From: local[e[0]], To: local[e[1]], Color: c}) {
						return
					}
				}
			}
		}
	}
}

// Triangles yields every triangle of every surface
func (p Projector) Triangles(scene *Scene, cam *camera.Orthographic) iter.Seq[Triangle] {
	return func(yield func(Triangle) bool) {
		for _, surface := range scene.Surfaces() {
			for tri := range p.SurfaceTriangles(surface, cam) {
				if !yield(tri) {
					return
				}
			}
		}
	}
}

// SurfaceTriangles yields the triangles of a single surface
func (p Projector) SurfaceTriangles(surface *Surface, cam *camera.Orthographic) iter.Seq[Triangle] {
	return func(yield func(Triangle) bool) {
		b := surface.Builder
		if b == nil {
			return
		}

		vp := cam.ViewProjection()
		vertices, colors, indices := b.Vertices(), b.Colors(), b.Indices()
		for i := 0; i+2 < len(indices); i += 3 {
			var tri Triangle
			for j := range 3 {
				idx := indices[i+j]
				tri.Points[j] = p.toPixels(vp, vertices[idx])
				tri.Colors[j] = colors[idx]
			}
			if !yield(tri) {
				return
			}
		}
	}
}
