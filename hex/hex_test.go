package hex_test

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/hexview/hex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHexes(radius int) []hex.Hex {
	return hex.Range(hex.New(0, 0), radius)
}

func TestNewDerivesS(t *testing.T) {
	h := hex.New(3, -5)
	assert.Equal(t, 2, h.S)
	assert.True(t, h.Valid())
}

func TestNewCube(t *testing.T) {
	h, err := hex.NewCube(1, -2, 1)
	require.NoError(t, err)
	assert.Equal(t, hex.New(1, -2), h)

	_, err = hex.NewCube(1, 1, 1)
	assert.ErrorIs(t, err, hex.ErrInvalidCube)
}

func TestArithmeticKeepsInvariant(t *testing.T) {
	a := hex.New(2, -1)
	b := hex.New(-4, 3)

	assert.True(t, a.Add(b).Valid())
	assert.True(t, a.Sub(b).Valid())
	assert.True(t, a.Scale(-3).Valid())
	assert.Equal(t, hex.New(-2, 2), a.Add(b))
}

func TestDistance(t *testing.T) {
	hexes := sampleHexes(3)

	for _, a := range hexes {
		assert.Equal(t, 0, hex.Distance(a, a))
		for _, b := range hexes {
			assert.Equal(t, hex.Distance(a, b), hex.Distance(b, a))
			if a != b {
				assert.Positive(t, hex.Distance(a, b))
			}
		}
	}

	assert.Equal(t, 3, hex.Distance(hex.New(0, 0), hex.New(3, -3)))
	assert.Equal(t, 5, hex.Distance(hex.New(-2, 0), hex.New(3, 0)))
	assert.Equal(t, 4, hex.New(-4, 1).Length())
}

func TestNeighbors(t *testing.T) {
	for _, h := range sampleHexes(2) {
		neighbors := h.Neighbors()
		assert.Len(t, neighbors, 6)
		seen := make(map[hex.Hex]bool)
		for _, n := range neighbors {
			assert.Equal(t, 1, hex.Distance(h, n))
			assert.True(t, n.Valid())
			seen[n] = true
		}
		assert.Len(t, seen, 6)
	}

	origin := hex.New(0, 0)
	assert.Equal(t, hex.New(1, 0), origin.Neighbor(0))
	assert.Equal(t, hex.New(0, 1), origin.Neighbor(5))
	assert.Equal(t, origin.Neighbor(0), origin.Neighbor(6))
	assert.Equal(t, origin.Neighbor(5), origin.Neighbor(-1))
}

func TestRing(t *testing.T) {
	center := hex.New(0, 0)

	t.Run("radius zero is the center", func(t *testing.T) {
		assert.Equal(t, []hex.Hex{center}, hex.Ring(center, 0))
	})

	t.Run("negative radius is empty", func(t *testing.T) {
		assert.Nil(t, hex.Ring(center, -1))
	})

	t.Run("radius one is adjacent", func(t *testing.T) {
		ring := hex.Ring(center, 1)
		require.Len(t, ring, 6)
		for _, h := range ring {
			assert.Equal(t, 1, hex.Distance(center, h))
		}
		assert.Equal(t, hex.New(1, 0), ring[0])
	})

	for _, radius := range []int{1, 2, 3, 7} {
		for _, c := range []hex.Hex{center, hex.New(2, -5)} {
			t.Run(fmt.Sprintf("radius=%d,center=%s", radius, c), func(t *testing.T) {
				ring := hex.Ring(c, radius)
				require.Len(t, ring, 6*radius)

				seen := make(map[hex.Hex]bool)
				for i, h := range ring {
					assert.Equal(t, radius, hex.Distance(c, h))
					seen[h] = true

					// consecutive ring cells are adjacent
					next := ring[(i+1)%len(ring)]
					assert.Equal(t, 1, hex.Distance(h, next))
				}
				assert.Len(t, seen, 6*radius)
				assert.Equal(t, c.Add(hex.Direction(0).Scale(radius)), ring[0])
			})
		}
	}
}

func TestRangeAndSpiral(t *testing.T) {
	for radius := 0; radius <= 6; radius++ {
		r := hex.Range(hex.New(0, 0), radius)
		s := hex.Spiral(hex.New(0, 0), radius)

		assert.Len(t, r, hex.Count(radius))
		assert.ElementsMatch(t, r, s)

		brute := 0
		for q := -radius; q <= radius; q++ {
			for rr := -radius; rr <= radius; rr++ {
				if hex.New(q, rr).Length() <= radius {
					brute++
				}
			}
		}
		assert.Equal(t, brute, len(r))
	}

	assert.Equal(t, 19, hex.Count(2))
	assert.Equal(t, hex.New(-1, 0), hex.Range(hex.New(0, 0), 1)[0])
}

func TestIndexRoundTrip(t *testing.T) {
	const width = 9
	for q := 0; q < 12; q++ {
		for r := 0; r < width; r++ {
			h := hex.New(q, r)
			assert.Equal(t, h, hex.FromIndex(hex.ToIndex(h, width), width))
		}
	}

	for i := 0; i < 100; i++ {
		assert.Equal(t, i, hex.ToIndex(hex.FromIndex(i, width), width))
	}
}

func TestIndexOutOfBoundsPanics(t *testing.T) {
	assert.Panics(t, func() { hex.ToIndex(hex.New(0, 9), 9) })
	assert.Panics(t, func() { hex.ToIndex(hex.New(-1, 0), 9) })
	assert.Panics(t, func() { hex.ToIndex(hex.Hex{Q: 1, R: 1, S: 1}, 9) })
	assert.Panics(t, func() { hex.FromIndex(-1, 9) })
	assert.Panics(t, func() { hex.FromIndex(1, 0) })
}

func TestGridIndex(t *testing.T) {
	for _, radius := range []int{0, 1, 2, 5} {
		width := hex.GridWidth(radius)
		seen := make(map[int]bool)
		for _, h := range sampleHexes(radius) {
			idx := hex.GridIndex(h, radius)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, width*width)
			assert.False(t, seen[idx], "slot reused for %s", h)
			seen[idx] = true
			assert.Equal(t, h, hex.GridHex(idx, radius))
		}
	}

	assert.Panics(t, func() { hex.GridIndex(hex.New(3, 0), 2) })
	assert.Panics(t, func() { hex.GridHex(25, 2) })
}

func TestWorldRoundTrip(t *testing.T) {
	offsets := []mgl64.Vec3{{0, 0, 0}, {10, -4, 2}}
	for _, offset := range offsets {
		for _, size := range []float64{1, 0.5, 3} {
			for _, h := range sampleHexes(4) {
				p := hex.ToWorld(h, size, offset)
				assert.InDelta(t, offset.Z(), p.Z(), 1e-12)
				assert.Equal(t, h, hex.FromWorld(p, size, offset))

				// points well inside the cell resolve to the same hex
				nudged := p.Add(mgl64.Vec3{0.3 * size, 0.2 * size, 0})
				assert.Equal(t, h, hex.FromWorld(nudged, size, offset))
			}
		}
	}
}

func TestToWorld(t *testing.T) {
	p := hex.ToWorld(hex.New(1, 0), 1, mgl64.Vec3{})
	assert.InDelta(t, 1.5, p.X(), 1e-12)
	assert.InDelta(t, 0.8660254, p.Y(), 1e-6)

	p = hex.ToWorld(hex.New(0, 1), 2, mgl64.Vec3{})
	assert.InDelta(t, 0, p.X(), 1e-12)
	assert.InDelta(t, 3.4641016, p.Y(), 1e-6)
}

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		in       hex.Fractional
		expected hex.Hex
	}{
		{"exact", hex.Fractional{Q: 1, R: -1, S: 0}, hex.New(1, -1)},
		{"near center", hex.Fractional{Q: 0.1, R: 0.1, S: -0.2}, hex.New(0, 0)},
		{"q dominates", hex.Fractional{Q: 0.6, R: 0.2, S: -0.8}, hex.New(1, 0)},
		{"r dominates", hex.Fractional{Q: 0.2, R: 0.6, S: -0.8}, hex.New(0, 1)},
		{"s dominates", hex.Fractional{Q: 0.1, R: 0.35, S: -0.45}, hex.New(0, 0)},
		// q and r tie at 0.5 error, q is corrected
		{"q r tie", hex.Fractional{Q: 0.5, R: -0.5, S: 0}, hex.New(1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Round()
			assert.True(t, got.Valid())
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCorners(t *testing.T) {
	center := mgl64.Vec3{2, 3, 1}
	corners := hex.Corners(center, 2)
	for _, c := range corners {
		assert.InDelta(t, 2, c.Sub(center).Len(), 1e-12)
		assert.InDelta(t, 1, c.Z(), 1e-12)
	}
	assert.InDelta(t, 4, corners[0].X(), 1e-12)
	assert.InDelta(t, 3, corners[0].Y(), 1e-12)
}
