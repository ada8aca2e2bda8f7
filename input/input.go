// Package input holds the normalized, per-frame input state the frame
// pipeline consumes. A backend produces a Snapshot once per frame; State
// turns consecutive snapshots into deltas and press/release edges.
package input

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/go-gl/mathgl/mgl64"
)

// Button identifies a pointer button
type Button uint

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight

	buttonCount
)

// Key identifies a keyboard key the viewer reacts to
type Key uint

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyW
	KeyA
	KeyS
	KeyD
	KeyEscape
	KeyDebug

	keyCount
)

// Viewport is the drawing surface size in pixels
type Viewport struct {
	Width, Height int
}

// Aspect returns width / height, or 1 for an empty viewport
func (v Viewport) Aspect() float64 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}

// ToPixels converts a pointer position in NDC to pixels from the top-left corner
func (v Viewport) ToPixels(ndc mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		(ndc.X() + 1) * float64(v.Width) / 2,
		(1 - ndc.Y()) * float64(v.Height) / 2,
	}
}

// ToNDC converts a pixel position to NDC, clamped to [-1,1]²
func (v Viewport) ToNDC(x, y float64) mgl64.Vec2 {
	if v.Width <= 0 || v.Height <= 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{
		mgl64.Clamp(x/float64(v.Width)*2-1, -1, 1),
		mgl64.Clamp(-(y/float64(v.Height))*2+1, -1, 1),
	}
}

// Snapshot is the raw input sampled by a backend for one frame
type Snapshot struct {
	// Pointer is in normalized device coordinates, [-1,1]² with +Y up
	Pointer  mgl64.Vec2
	Buttons  *bitset.BitSet
	Keys     *bitset.BitSet
	Wheel    float64
	Viewport Viewport
}

// Source produces one Snapshot per frame
type Source interface {
	Poll() Snapshot
}

// NewSnapshot returns a snapshot with empty button and key sets
func NewSnapshot(pointer mgl64.Vec2, viewport Viewport) Snapshot {
	return Snapshot{
		Pointer:  pointer,
		Buttons:  bitset.New(uint(buttonCount)),
		Keys:     bitset.New(uint(keyCount)),
		Viewport: viewport,
	}
}

// Press marks a button as held
func (s Snapshot) Press(b Button) Snapshot {
	s.Buttons.Set(uint(b))
	return s
}

// Hold marks a key as held
func (s Snapshot) Hold(k Key) Snapshot {
	s.Keys.Set(uint(k))
	return s
}
