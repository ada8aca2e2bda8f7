package render

import "github.com/plus3/hexview/geometry"

// Surface is a merged, per-vertex coloured mesh built by a geometry.Builder
type Surface struct {
	Builder *geometry.Builder
	Opacity float64
}

func NewSurface(builder *geometry.Builder, opacity float64) *Surface {
	return &Surface{Builder: builder, Opacity: opacity}
}
