package input

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/go-gl/mathgl/mgl64"
)

// State is the frame-local view of input. The zero value is ready to use.
type State struct {
	Pointer  mgl64.Vec2
	Delta    mgl64.Vec2
	Wheel    float64
	Viewport Viewport

	buttons         *bitset.BitSet
	keys            *bitset.BitSet
	pressedButtons  *bitset.BitSet
	releasedButtons *bitset.BitSet
	pressedKeys     *bitset.BitSet
	releasedKeys    *bitset.BitSet

	dragStart [buttonCount]mgl64.Vec2
	seen      bool
}

func cloneOrEmpty(b *bitset.BitSet, length uint) *bitset.BitSet {
	if b == nil {
		return bitset.New(length)
	}
	return b.Clone()
}

// Apply folds the next snapshot into the state: pointer delta, press and
// release edges and accumulated wheel motion
func (s *State) Apply(snap Snapshot) {
	if s.seen {
		s.Delta = snap.Pointer.Sub(s.Pointer)
	}
	s.Pointer = snap.Pointer
	s.Viewport = snap.Viewport
	s.Wheel += snap.Wheel
	s.seen = true

	buttons := cloneOrEmpty(snap.Buttons, uint(buttonCount))
	keys := cloneOrEmpty(snap.Keys, uint(keyCount))
	prevButtons := cloneOrEmpty(s.buttons, uint(buttonCount))
	prevKeys := cloneOrEmpty(s.keys, uint(keyCount))

	s.pressedButtons = buttons.Difference(prevButtons)
	s.releasedButtons = prevButtons.Difference(buttons)
	s.pressedKeys = keys.Difference(prevKeys)
	s.releasedKeys = prevKeys.Difference(keys)
	s.buttons = buttons
	s.keys = keys

	for i, ok := s.pressedButtons.NextSet(0); ok; i, ok = s.pressedButtons.NextSet(i + 1) {
		if i < uint(buttonCount) {
			s.dragStart[i] = s.Viewport.ToPixels(s.Pointer)
		}
	}
}

// EndFrame clears everything that only lives for one frame
func (s *State) EndFrame() {
	s.Wheel = 0
	s.Delta = mgl64.Vec2{}
	s.pressedButtons = nil
	s.releasedButtons = nil
	s.pressedKeys = nil
	s.releasedKeys = nil
}

func test(b *bitset.BitSet, i uint) bool {
	return b != nil && b.Test(i)
}

func (s *State) ButtonDown(b Button) bool {
	return test(s.buttons, uint(b))
}

// ButtonPressed reports whether b went down this frame
func (s *State) ButtonPressed(b Button) bool {
	return test(s.pressedButtons, uint(b))
}

// ButtonReleased reports whether b went up this frame
func (s *State) ButtonReleased(b Button) bool {
	return test(s.releasedButtons, uint(b))
}

func (s *State) KeyDown(k Key) bool {
	return test(s.keys, uint(k))
}

// KeyPressed reports whether k went down this frame
func (s *State) KeyPressed(k Key) bool {
	return test(s.pressedKeys, uint(k))
}

// KeyReleased reports whether k went up this frame
func (s *State) KeyReleased(k Key) bool {
	return test(s.releasedKeys, uint(k))
}

// DragStart returns the pixel position where b was pressed, while it is held
func (s *State) DragStart(b Button) (mgl64.Vec2, bool) {
	if b >= buttonCount || !s.ButtonDown(b) {
		return mgl64.Vec2{}, false
	}
	return s.dragStart[b], true
}

// PointerPixels returns the pointer position in viewport pixels
func (s *State) PointerPixels() mgl64.Vec2 {
	return s.Viewport.ToPixels(s.Pointer)
}
