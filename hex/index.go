package hex

import "fmt"

// ToIndex maps h to a linear buffer slot, q-major with the given width.
// Panics unless q >= 0 and 0 <= r < width.
func ToIndex(h Hex, width int) int {
	if width <= 0 {
		panic(fmt.Sprintf("hex: index width must be positive, got %d", width))
	}
	if !h.Valid() {
		panic("hex: invalid cube coordinate " + h.String())
	}
	if h.Q < 0 || h.R < 0 || h.R >= width {
		panic(fmt.Sprintf("hex: %s outside index space of width %d", h, width))
	}
	return h.Q*width + h.R
}

// FromIndex is the inverse of ToIndex
func FromIndex(index, width int) Hex {
	if width <= 0 {
		panic(fmt.Sprintf("hex: index width must be positive, got %d", width))
	}
	if index < 0 {
		panic(fmt.Sprintf("hex: negative index %d", index))
	}
	return New(index/width, index%width)
}

// GridWidth is the side of the square buffer that holds a grid of radius
func GridWidth(radius int) int {
	return 2*radius + 1
}

// GridIndex maps a hex centered on the origin to its slot in a
// (2R+1)^2 buffer. Panics when either axis lies outside [-radius, radius].
func GridIndex(h Hex, radius int) int {
	if radius < 0 {
		panic(fmt.Sprintf("hex: negative grid radius %d", radius))
	}
	if h.Q < -radius || h.Q > radius {
		panic(fmt.Sprintf("hex: %s outside grid of radius %d", h, radius))
	}
	return ToIndex(New(h.Q+radius, h.R+radius), GridWidth(radius))
}

// GridHex is the inverse of GridIndex
func GridHex(index, radius int) Hex {
	width := GridWidth(radius)
	if index >= width*width {
		panic(fmt.Sprintf("hex: index %d outside grid of radius %d", index, radius))
	}
	shifted := FromIndex(index, width)
	return New(shifted.Q-radius, shifted.R-radius)
}
