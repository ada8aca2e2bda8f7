// Package ebitenview hosts the hex viewer in an Ebitengine window: a
// Renderer that rasterizes the retained scene, an input Source that samples
// mouse and keyboard, and a Game that drives the world once per tick.
package ebitenview

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/hexview/camera"
	"github.com/plus3/hexview/render"
)

// batches stay within uint16 indices
const maxBatchVertices = math.MaxUint16 - 2

// Renderer keeps the scene and camera of the latest frame and draws them on
// the next ebiten Draw call. Render runs inside the frame pipeline, which
// executes in Update where no screen is available.
type Renderer struct {
	LineWidth float32

	scene *render.Scene
	cam   *camera.Orthographic

	whitePixel *ebiten.Image
	vertices   []ebiten.Vertex
	indices    []uint16
}

func NewRenderer() *Renderer {
	return &Renderer{LineWidth: 1}
}

func (r *Renderer) Render(scene *render.Scene, cam *camera.Orthographic) error {
	r.scene = scene
	r.cam = cam
	return nil
}

// Draw rasterizes the last rendered frame onto screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	if r.scene == nil || r.cam == nil {
		return
	}
	screen.Fill(r.scene.Background)

	bounds := screen.Bounds()
	projector := render.Projector{Width: bounds.Dx(), Height: bounds.Dy()}

	r.drawSurfaces(screen, projector)
	for seg := range projector.Segments(r.scene, r.cam) {
		vector.StrokeLine(screen,
			float32(seg.From.X()), float32(seg.From.Y()),
			float32(seg.To.X()), float32(seg.To.Y()),
			r.LineWidth, seg.Color, true)
	}
}

func (r *Renderer) drawSurfaces(screen *ebiten.Image, projector render.Projector) {
	if r.whitePixel == nil {
		r.whitePixel = ebiten.NewImage(1, 1)
		r.whitePixel.Fill(color.White)
	}

	for _, surface := range r.scene.Surfaces() {
		for tri := range projector.SurfaceTriangles(surface, r.cam) {
			if len(r.vertices)+3 > maxBatchVertices {
				r.flush(screen)
			}
			r.vertices, r.indices = appendTriangle(r.vertices, r.indices, tri, float32(surface.Opacity))
		}
		r.flush(screen)
	}
}

func (r *Renderer) flush(screen *ebiten.Image) {
	if len(r.indices) == 0 {
		return
	}
	screen.DrawTriangles(r.vertices, r.indices, r.whitePixel, &ebiten.DrawTrianglesOptions{})
	r.vertices, r.indices = r.vertices[:0], r.indices[:0]
}

// appendTriangle adds tri as three vertices with premultiplied colours
// scaled by opacity
func appendTriangle(vertices []ebiten.Vertex, indices []uint16, tri render.Triangle, opacity float32) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(vertices))
	for i, p := range tri.Points {
		c := tri.Colors[i]
		alpha := float32(c.A) / 255 * opacity
		vertices = append(vertices, ebiten.Vertex{
			DstX:   float32(p.X()),
			DstY:   float32(p.Y()),
			SrcX:   0,
			SrcY:   0,
			ColorR: float32(c.R) / 255 * alpha,
			ColorG: float32(c.G) / 255 * alpha,
			ColorB: float32(c.B) / 255 * alpha,
			ColorA: alpha,
		})
	}
	return vertices, append(indices, base, base+1, base+2)
}
