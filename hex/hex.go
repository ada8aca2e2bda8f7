// Package hex implements cube coordinate math for flat-top hexagonal grids.
// A Hex always satisfies Q+R+S == 0; constructors derive S from Q and R.
package hex

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidCube is returned when a cube triple does not sum to zero
var ErrInvalidCube = errors.New("hex: q+r+s must be 0")

// Hex is a cube coordinate
type Hex struct {
	Q, R, S int
}

// New creates a Hex from axial coordinates, deriving S
func New(q, r int) Hex {
	return Hex{Q: q, R: r, S: -q - r}
}

// NewCube creates a Hex from a full cube triple
func NewCube(q, r, s int) (Hex, error) {
	if q+r+s != 0 {
		return Hex{}, errors.Wrapf(ErrInvalidCube, "got (%d, %d, %d)", q, r, s)
	}
	return Hex{Q: q, R: r, S: s}, nil
}

// Valid reports whether the cube invariant holds
func (h Hex) Valid() bool {
	return h.Q+h.R+h.S == 0
}

func (h Hex) String() string {
	return fmt.Sprintf("(%d, %d, %d)", h.Q, h.R, h.S)
}

func (h Hex) Add(o Hex) Hex {
	return New(h.Q+o.Q, h.R+o.R)
}

func (h Hex) Sub(o Hex) Hex {
	return New(h.Q-o.Q, h.R-o.R)
}

func (h Hex) Scale(k int) Hex {
	return New(h.Q*k, h.R*k)
}

// Length is the distance from the origin
func (h Hex) Length() int {
	return (abs(h.Q) + abs(h.R) + abs(h.S)) / 2
}

// Directions are the six unit offsets: E, NE, NW, W, SW, SE.
// Ring walking depends on this order.
var Directions = [6]Hex{
	{Q: 1, R: 0, S: -1},
	{Q: 1, R: -1, S: 0},
	{Q: 0, R: -1, S: 1},
	{Q: -1, R: 0, S: 1},
	{Q: -1, R: 1, S: 0},
	{Q: 0, R: 1, S: -1},
}

// Direction returns the unit offset for i, wrapping modulo 6
func Direction(i int) Hex {
	return Directions[((i%6)+6)%6]
}

// Neighbor returns the adjacent hex in direction i
func (h Hex) Neighbor(i int) Hex {
	return h.Add(Direction(i))
}

// Neighbors returns the six adjacent hexes in direction order
func (h Hex) Neighbors() [6]Hex {
	var out [6]Hex
	for i, d := range Directions {
		out[i] = h.Add(d)
	}
	return out
}

// Distance is the number of steps between a and b
func Distance(a, b Hex) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dq+dr) + abs(dr)) / 2
}

// Ring returns the 6*radius hexes at exactly radius steps from center.
// The walk starts radius steps in direction 0 from center and proceeds
// counter-clockwise. Radius 0 yields only the center; a negative radius yields nil.
func Ring(center Hex, radius int) []Hex {
	if radius < 0 {
		return nil
	}
	if radius == 0 {
		return []Hex{center}
	}

	results := make([]Hex, 0, 6*radius)
	h := center.Add(Direction(0).Scale(radius))
	for i := 0; i < 6; i++ {
		dir := Direction(i + 2)
		for j := 0; j < radius; j++ {
			results = append(results, h)
			h = h.Add(dir)
		}
	}
	return results
}

// Spiral returns center followed by rings 1 through radius
func Spiral(center Hex, radius int) []Hex {
	if radius < 0 {
		return nil
	}
	results := make([]Hex, 0, Count(radius))
	results = append(results, center)
	for k := 1; k <= radius; k++ {
		results = append(results, Ring(center, k)...)
	}
	return results
}

// Range returns every hex within radius of center in grid order:
// q ascending from -radius to radius, then r ascending within the valid band.
func Range(center Hex, radius int) []Hex {
	if radius < 0 {
		return nil
	}
	results := make([]Hex, 0, Count(radius))
	for q := -radius; q <= radius; q++ {
		rMin := max(-radius, -q-radius)
		rMax := min(radius, -q+radius)
		for r := rMin; r <= rMax; r++ {
			results = append(results, center.Add(New(q, r)))
		}
	}
	return results
}

// Count is the number of hexes within radius of a center
func Count(radius int) int {
	if radius < 0 {
		return 0
	}
	return 3*radius*(radius+1) + 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
