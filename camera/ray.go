package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half line starting at Origin
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Plane is the set of points p with Normal·p + Constant = 0
type Plane struct {
	Normal   mgl64.Vec3
	Constant float64
}

// GroundPlane is z = 0, the plane the grid lies in
var GroundPlane = Plane{Normal: mgl64.Vec3{0, 0, 1}}

// DistanceTo returns the signed distance from p to the plane
func (p Plane) DistanceTo(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) + p.Constant
}

// IntersectPlane returns where the ray meets the plane. It reports false when
// the ray is parallel to the plane or the plane lies behind the origin.
func (r Ray) IntersectPlane(p Plane) (mgl64.Vec3, bool) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) < 1e-12 {
		if p.DistanceTo(r.Origin) == 0 {
			return r.Origin, true
		}
		return mgl64.Vec3{}, false
	}

	t := -p.DistanceTo(r.Origin) / denom
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return r.At(t), true
}
