package ebitenview

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/hexview/input"
)

// DefaultWheelScale converts ebiten wheel notches to the pixel-sized deltas
// the zoom step is tuned for. Scrolling down zooms out.
const DefaultWheelScale = 100

// Device is the subset of ebiten's input functions the Source samples
type Device interface {
	CursorPosition() (x, y int)
	Wheel() (xoff, yoff float64)
	IsMouseButtonPressed(button ebiten.MouseButton) bool
	IsKeyPressed(key ebiten.Key) bool
}

type ebitenDevice struct{}

func (ebitenDevice) CursorPosition() (int, int) { return ebiten.CursorPosition() }
func (ebitenDevice) Wheel() (float64, float64) { return ebiten.Wheel() }
func (ebitenDevice) IsMouseButtonPressed(b ebiten.MouseButton) bool { return ebiten.IsMouseButtonPressed(b) }
func (ebitenDevice) IsKeyPressed(k ebiten.Key) bool { return ebiten.IsKeyPressed(k) }

var buttonMap = map[input.Button]ebiten.MouseButton{
	input.ButtonLeft:   ebiten.MouseButtonLeft,
	input.ButtonMiddle: ebiten.MouseButtonMiddle,
	input.ButtonRight:  ebiten.MouseButtonRight,
}

var keyMap = map[input.Key][]ebiten.Key{
	input.KeyLeft:   {ebiten.KeyArrowLeft},
	input.KeyRight:  {ebiten.KeyArrowRight},
	input.KeyUp:     {ebiten.KeyArrowUp},
	input.KeyDown:   {ebiten.KeyArrowDown},
	input.KeyW:      {ebiten.KeyW},
	input.KeyA:      {ebiten.KeyA},
	input.KeyS:      {ebiten.KeyS},
	input.KeyD:      {ebiten.KeyD},
	input.KeyEscape: {ebiten.KeyEscape, ebiten.KeyQ},
	input.KeyDebug:  {ebiten.KeyF3},
}

// Source samples an ebiten Device into input snapshots
type Source struct {
	Device     Device
	Viewport   input.Viewport
	WheelScale float64

	// Captured, when set, reports whether an overlay consumes the mouse or
	// keyboard this frame; captured devices read as idle
	Captured func() (mouse, keyboard bool)
}

func NewSource(viewport input.Viewport) *Source {
	return &Source{
		Device:     ebitenDevice{},
		Viewport:   viewport,
		WheelScale: DefaultWheelScale,
	}
}

func (s *Source) Poll() input.Snapshot {
	x, y := s.Device.CursorPosition()
	snap := input.NewSnapshot(s.Viewport.ToNDC(float64(x), float64(y)), s.Viewport)

	var mouseCaptured, keyboardCaptured bool
	if s.Captured != nil {
		mouseCaptured, keyboardCaptured = s.Captured()
	}

	if !mouseCaptured {
		_, dy := s.Device.Wheel()
		snap.Wheel = -dy * s.WheelScale
		for button, mb := range buttonMap {
			if s.Device.IsMouseButtonPressed(mb) {
				snap = snap.Press(button)
			}
		}
	}

	if !keyboardCaptured {
		for key, keys := range keyMap {
			for _, k := range keys {
				if s.Device.IsKeyPressed(k) {
					snap = snap.Hold(key)
					break
				}
			}
		}
	}
	return snap
}
