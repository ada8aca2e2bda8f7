package hex

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var sqrt3 = math.Sqrt(3)

// Fractional is a cube coordinate with real-valued axes, as produced by
// converting an arbitrary world position
type Fractional struct {
	Q, R, S float64
}

// Round snaps f to the nearest Hex. Each axis is rounded independently and the
// axis with the largest rounding error is re-derived from the other two.
// Ties prefer correcting q, then r, then s.
func (f Fractional) Round() Hex {
	q := math.Round(f.Q)
	r := math.Round(f.R)
	s := math.Round(f.S)

	qDiff := math.Abs(q - f.Q)
	rDiff := math.Abs(r - f.R)
	sDiff := math.Abs(s - f.S)

	switch {
	case qDiff >= rDiff && qDiff >= sDiff:
		q = -r - s
	case rDiff >= sDiff:
		r = -q - s
	default:
		s = -q - r
	}

	return Hex{Q: int(q), R: int(r), S: int(s)}
}

// ToWorld projects h onto the z=0 plane for flat-top hexagons of the given
// size (center to corner), then adds offset
func ToWorld(h Hex, size float64, offset mgl64.Vec3) mgl64.Vec3 {
	x := size * (1.5 * float64(h.Q))
	y := size * (sqrt3/2*float64(h.Q) + sqrt3*float64(h.R))
	return mgl64.Vec3{x, y, 0}.Add(offset)
}

// FractionalFromWorld is the unrounded inverse of ToWorld. The z axis is ignored.
func FractionalFromWorld(p mgl64.Vec3, size float64, offset mgl64.Vec3) Fractional {
	local := p.Sub(offset)
	q := (2.0 / 3.0 * local.X()) / size
	r := (-1.0/3.0*local.X() + sqrt3/3*local.Y()) / size
	return Fractional{Q: q, R: r, S: -q - r}
}

// FromWorld returns the hex containing world position p
func FromWorld(p mgl64.Vec3, size float64, offset mgl64.Vec3) Hex {
	return FractionalFromWorld(p, size, offset).Round()
}

// Corners returns the six corners of a flat-top hexagon around center,
// starting at angle 0 and advancing 60 degrees each
func Corners(center mgl64.Vec3, size float64) [6]mgl64.Vec3 {
	var out [6]mgl64.Vec3
	for i := range out {
		angle := math.Pi / 3 * float64(i)
		out[i] = mgl64.Vec3{
			center.X() + size*math.Cos(angle),
			center.Y() + size*math.Sin(angle),
			center.Z(),
		}
	}
	return out
}
