// Package camera implements the orthographic projection model used by the
// hex viewer: frustum derivation from a view size and aspect ratio, view and
// projection matrices, picking rays and plane intersection.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world up axis. The grid lies in the z = 0 plane.
var Up = mgl64.Vec3{0, 0, 1}

// fallbackUp is used when the look direction is parallel to Up
var fallbackUp = mgl64.Vec3{0, 1, 0}

// Orthographic is an orthographic camera. Left, Right, Top and Bottom are
// derived by SetFrustum and must be refreshed whenever the view size or
// aspect changes; UpdateProjectionMatrix applies them together with Zoom.
type Orthographic struct {
	Left, Right float64
	Top, Bottom float64
	Near, Far   float64
	Zoom        float64

	Position mgl64.Vec3
	Target   mgl64.Vec3

	projection mgl64.Mat4
	view       mgl64.Mat4
}

// NewOrthographic creates a camera at the origin looking down -Z with its
// frustum already derived and matrices computed
func NewOrthographic(viewSize, aspect, near, far float64) *Orthographic {
	c := &Orthographic{
		Near:     near,
		Far:      far,
		Zoom:     1,
		Position: mgl64.Vec3{0, 0, 1},
	}
	c.SetFrustum(viewSize, aspect)
	c.updateView()
	c.UpdateProjectionMatrix()
	return c
}

// SetFrustum derives the frustum planes from a view size and aspect ratio:
// left/right = ±viewSize*aspect/2, top/bottom = ±viewSize/2
func (c *Orthographic) SetFrustum(viewSize, aspect float64) {
	halfWidth := viewSize * aspect / 2
	halfHeight := viewSize / 2
	c.Left, c.Right = -halfWidth, halfWidth
	c.Top, c.Bottom = halfHeight, -halfHeight
}

// SetZoom sets the zoom factor. Non-positive values are ignored.
func (c *Orthographic) SetZoom(zoom float64) {
	if zoom > 0 {
		c.Zoom = zoom
	}
}

// SetPosition moves the camera, keeping its current look-at target
func (c *Orthographic) SetPosition(p mgl64.Vec3) {
	c.Position = p
	c.updateView()
}

// LookAt points the camera at target
func (c *Orthographic) LookAt(target mgl64.Vec3) {
	c.Target = target
	c.updateView()
}

func (c *Orthographic) updateView() {
	dir := c.Target.Sub(c.Position)
	if dir.Len() < 1e-12 {
		// no direction to look along; keep the previous view
		return
	}

	up := Up
	if math.Abs(dir.Normalize().Dot(up)) > 1-1e-9 {
		up = fallbackUp
	}
	c.view = mgl64.LookAtV(c.Position, c.Target, up)
}

// UpdateProjectionMatrix recomputes the projection from the frustum and zoom
func (c *Orthographic) UpdateProjectionMatrix() {
	dx := (c.Right - c.Left) / (2 * c.Zoom)
	dy := (c.Top - c.Bottom) / (2 * c.Zoom)
	cx := (c.Right + c.Left) / 2
	cy := (c.Top + c.Bottom) / 2

	c.projection = mgl64.Ortho(cx-dx, cx+dx, cy-dy, cy+dy, c.Near, c.Far)
}

// Width is right minus left, before zoom
func (c *Orthographic) Width() float64 {
	return c.Right - c.Left
}

// Height is top minus bottom, before zoom
func (c *Orthographic) Height() float64 {
	return c.Top - c.Bottom
}

func (c *Orthographic) Projection() mgl64.Mat4 {
	return c.projection
}

func (c *Orthographic) View() mgl64.Mat4 {
	return c.view
}

// ViewProjection returns projection * view
func (c *Orthographic) ViewProjection() mgl64.Mat4 {
	return c.projection.Mul4(c.view)
}

// Project maps a world position to normalized device coordinates
func (c *Orthographic) Project(world mgl64.Vec3) mgl64.Vec3 {
	clip := c.ViewProjection().Mul4x1(world.Vec4(1))
	return clip.Vec3().Mul(1 / clip.W())
}

// Unproject maps normalized device coordinates back into world space
func (c *Orthographic) Unproject(ndc mgl64.Vec3) mgl64.Vec3 {
	inv := c.ViewProjection().Inv()
	p := inv.Mul4x1(ndc.Vec4(1))
	return p.Vec3().Mul(1 / p.W())
}

// Ray returns the picking ray through a pointer position in [-1,1]² NDC.
// For an orthographic camera all rays share the view direction and start on
// the near plane.
func (c *Orthographic) Ray(ndc mgl64.Vec2) Ray {
	near := c.Unproject(mgl64.Vec3{ndc.X(), ndc.Y(), -1})
	far := c.Unproject(mgl64.Vec3{ndc.X(), ndc.Y(), 1})
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}
