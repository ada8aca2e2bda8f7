package camera

import "github.com/go-gl/mathgl/mgl64"

// ZoomViewSize applies a wheel delta to a view size, clamped to [min, max]
func ZoomViewSize(current, wheel, step, min, max float64) float64 {
	return mgl64.Clamp(current+wheel*step, min, max)
}

// ClampAngle clamps an orbit angle in radians to [min, max]
func ClampAngle(angle, min, max float64) float64 {
	return mgl64.Clamp(angle, min, max)
}
