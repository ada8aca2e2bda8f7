package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/hexview/input"
)

// sweepSource moves the pointer along a Lissajous curve and pulses the
// wheel, so picking, hover highlighting and zoom run every frame
type sweepSource struct {
	viewport input.Viewport
	frame    int
}

func newSweepSource(viewport input.Viewport) *sweepSource {
	return &sweepSource{viewport: viewport}
}

func (s *sweepSource) Poll() input.Snapshot {
	s.frame++
	t := float64(s.frame) / 60
	pointer := mgl64.Vec2{0.9 * math.Sin(t*1.3), 0.9 * math.Sin(t*1.7)}

	snap := input.NewSnapshot(pointer, s.viewport)
	switch s.frame % 240 {
	case 60:
		snap.Wheel = 100
	case 180:
		snap.Wheel = -100
	}
	return snap
}
