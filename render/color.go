package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidColor is returned for colour strings that are not #rgb or #rrggbb
var ErrInvalidColor = errors.New("invalid color")

// Color is an 8-bit RGBA colour
type Color = color.RGBA

// ParseHexColor parses "#rrggbb", "rrggbb", "#rgb" or "rgb" into an opaque colour
func ParseHexColor(s string) (Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(raw) {
	case 3:
		raw = string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
	case 6:
	default:
		return Color{}, errors.Wrapf(ErrInvalidColor, "%q", s)
	}

	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return Color{}, errors.Wrapf(ErrInvalidColor, "%q", s)
	}

	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustParseHexColor is ParseHexColor for constants; it panics on error
func MustParseHexColor(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// HexString formats c as "#rrggbb"
func HexString(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
