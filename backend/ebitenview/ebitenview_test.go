package ebitenview_test

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/hexview/backend/ebitenview"
	"github.com/plus3/hexview/camera"
	"github.com/plus3/hexview/config"
	"github.com/plus3/hexview/input"
	"github.com/plus3/hexview/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDevice struct {
	x, y    int
	wheel   float64
	buttons map[ebiten.MouseButton]bool
	keys    map[ebiten.Key]bool
}

func (d *fakeDevice) CursorPosition() (int, int) {
	return d.x, d.y
}

func (d *fakeDevice) Wheel() (float64, float64) {
	return 0, d.wheel
}

func (d *fakeDevice) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return d.buttons[b]
}

func (d *fakeDevice) IsKeyPressed(k ebiten.Key) bool {
	return d.keys[k]
}

func TestSourcePoll(t *testing.T) {
	device := &fakeDevice{
		x: 320, y: 120,
		wheel:   -1,
		buttons: map[ebiten.MouseButton]bool{ebiten.MouseButtonMiddle: true},
		keys:    map[ebiten.Key]bool{ebiten.KeyArrowLeft: true, ebiten.KeyD: true},
	}
	src := ebitenview.NewSource(input.Viewport{Width: 640, Height: 480})
	src.Device = device

	snap := src.Poll()
	assert.True(t, snap.Pointer.ApproxEqual(mgl64.Vec2{0, 0.5}))
	assert.Equal(t, 100.0, snap.Wheel)
	assert.Equal(t, input.Viewport{Width: 640, Height: 480}, snap.Viewport)

	var state input.State
	state.Apply(snap)
	assert.True(t, state.ButtonDown(input.ButtonMiddle))
	assert.False(t, state.ButtonDown(input.ButtonLeft))
	assert.True(t, state.KeyDown(input.KeyLeft))
	assert.True(t, state.KeyDown(input.KeyD))
	assert.False(t, state.KeyDown(input.KeyW))
}

func TestSourceCaptured(t *testing.T) {
	device := &fakeDevice{
		wheel:   2,
		buttons: map[ebiten.MouseButton]bool{ebiten.MouseButtonLeft: true},
		keys:    map[ebiten.Key]bool{ebiten.KeyW: true},
	}
	src := ebitenview.NewSource(input.Viewport{Width: 100, Height: 100})
	src.Device = device
	src.Captured = func() (bool, bool) { return true, false }

	snap := src.Poll()
	assert.Zero(t, snap.Wheel)
	assert.Zero(t, snap.Buttons.Count())
	assert.Equal(t, uint(1), snap.Keys.Count())
}

func TestRendererKeepsLatestFrame(t *testing.T) {
	r := ebitenview.NewRenderer()
	scene := render.NewScene(render.MustParseHexColor("#000"))
	cam := camera.NewOrthographic(20, 1, 0.1, 100)

	require.NoError(t, r.Render(scene, cam))
	assert.Equal(t, float32(1), r.LineWidth)
}

func TestAppendTriangle(t *testing.T) {
	tri := render.Triangle{
		Points: [3]mgl64.Vec2{{0, 0}, {10, 0}, {0, 10}},
		Colors: [3]render.Color{
			{R: 255, A: 255},
			{G: 255, A: 255},
			{B: 255, A: 255},
		},
	}

	vertices, indices := ebitenview.AppendTriangle(nil, nil, tri, 1)
	vertices, indices = ebitenview.AppendTriangle(vertices, indices, tri, 0.5)

	require.Len(t, vertices, 6)
	assert.Equal(t, []uint16{0, 1, 2, 3, 4, 5}, indices)
	assert.Equal(t, float32(10), vertices[1].DstX)
	assert.Equal(t, float32(1), vertices[0].ColorR)
	assert.Equal(t, float32(0.5), vertices[3].ColorR)
	assert.Equal(t, float32(0.5), vertices[5].ColorA)
}

type fakeOverlay struct {
	mouse, keyboard bool
	updates         []float64
}

func (o *fakeOverlay) Update(dt float64) {
	o.updates = append(o.updates, dt)
}

func (o *fakeOverlay) Draw(*ebiten.Image) {}

func (o *fakeOverlay) Layout(int, int) {}

func (o *fakeOverlay) Captured() (bool, bool) {
	return o.mouse, o.keyboard
}

func newTestGame(t *testing.T) (*ebitenview.Game, *fakeOverlay) {
	t.Helper()
	game, err := ebitenview.NewGame(config.Default(), zap.NewNop())
	require.NoError(t, err)

	overlay := &fakeOverlay{mouse: true, keyboard: true}
	game.Overlay = overlay
	game.Source.Device = &fakeDevice{wheel: -1}
	return game, overlay
}

func TestGameIgnoresHiddenOverlayCapture(t *testing.T) {
	game, overlay := newTestGame(t)
	now := time.Unix(100, 0)

	game.ShowOverlay = true
	require.NoError(t, game.Advance(now))
	mouse, keyboard := game.Captured()
	assert.True(t, mouse)
	assert.True(t, keyboard)
	assert.Zero(t, game.Source.Poll().Wheel)

	// the overlay stays over the cursor but is hidden, so input flows again
	game.ShowOverlay = false
	require.NoError(t, game.Advance(now.Add(16*time.Millisecond)))
	mouse, keyboard = game.Captured()
	assert.False(t, mouse)
	assert.False(t, keyboard)
	assert.Equal(t, 100.0, game.Source.Poll().Wheel)
	assert.Len(t, overlay.updates, 1)
}

func TestGameOverlayGetsMeasuredFrameTime(t *testing.T) {
	game, overlay := newTestGame(t)
	game.ShowOverlay = true
	start := time.Unix(100, 0)

	require.NoError(t, game.Advance(start))
	require.NoError(t, game.Advance(start.Add(40*time.Millisecond)))
	require.NoError(t, game.Advance(start.Add(50*time.Millisecond)))

	assert.InDeltaSlice(t, []float64{1.0 / 60, 0.04, 0.01}, overlay.updates, 1e-9)
	assert.Equal(t, uint64(3), game.World.Scheduler.Frame())
}
