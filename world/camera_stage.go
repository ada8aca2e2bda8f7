package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/hexview/camera"
	"github.com/plus3/hexview/ecs"
	"github.com/plus3/hexview/input"
	"go.uber.org/zap"
)

// CameraControlStage turns input into camera state changes: wheel zoom,
// orbiting around the target, keyboard panning and viewport aspect. Every
// change marks the camera dirty.
type CameraControlStage struct {
	Input    ecs.Singleton[input.State]
	Settings ecs.Singleton[Settings]
	Cameras  ecs.Query[struct {
		ecs.EntityId
		*CameraTag
		*OrthographicConfig
		*CameraPosition
		*CameraTarget
		Orbit *CameraOrbit `ecs:"optional"`
	}]
}

func (s *CameraControlStage) Execute(frame *ecs.UpdateFrame) {
	state, settings := s.Input.Get(), s.Settings.Get()
	if state == nil || settings == nil {
		return
	}

	for id, c := range s.Cameras.Iter() {
		changed := false

		if state.Wheel != 0 {
			c.ViewSize = camera.ZoomViewSize(c.ViewSize, state.Wheel, settings.ZoomStep, settings.ZoomMin, settings.ZoomMax)
			changed = true
		}

		if c.Orbit != nil && s.orbit(state, settings, c.Orbit, &c.CameraPosition.Point, c.CameraTarget.Point) {
			changed = true
		}

		if pan := panDirection(state); pan != (mgl64.Vec2{}) {
			step := pan.Normalize().Mul(settings.PanSpeed * frame.DeltaTime)
			offset := mgl64.Vec3{step.X(), step.Y(), 0}
			c.CameraPosition.Point = c.CameraPosition.Point.Add(offset)
			c.CameraTarget.Point = c.CameraTarget.Point.Add(offset)
			changed = true
		}

		if state.Viewport.Width > 0 && state.Viewport.Height > 0 {
			if aspect := state.Viewport.Aspect(); aspect != c.Aspect {
				c.Aspect = aspect
				changed = true
			}
		}

		if changed {
			MarkDirty(frame, id)
		}
	}
}

// orbit rotates position around target in the xy-plane while the orbit
// button is held. The angle is the angle at press plus the horizontal drag
// in pixels times the sensitivity, clamped to the configured bounds.
func (s *CameraControlStage) orbit(state *input.State, settings *Settings, orbit *CameraOrbit, position *mgl64.Vec3, target mgl64.Vec3) bool {
	button := settings.OrbitButton
	if state.ButtonPressed(button) {
		orbit.StartAngle = math.Atan2(position.Y()-target.Y(), position.X()-target.X())
		orbit.Dragging = true
	}
	if !state.ButtonDown(button) {
		orbit.Dragging = false
		return false
	}
	if !orbit.Dragging {
		return false
	}

	start, ok := state.DragStart(button)
	if !ok {
		return false
	}
	drag := state.PointerPixels().X() - start.X()
	angle := camera.ClampAngle(orbit.StartAngle+drag*settings.OrbitSensitivity, settings.OrbitMin, settings.OrbitMax)

	rel := position.Sub(target)
	radius := math.Hypot(rel.X(), rel.Y())
	next := mgl64.Vec3{
		target.X() + math.Cos(angle)*radius,
		target.Y() + math.Sin(angle)*radius,
		position.Z(),
	}
	if next.ApproxEqual(*position) {
		return false
	}
	*position = next
	return true
}

func panDirection(state *input.State) mgl64.Vec2 {
	var dir mgl64.Vec2
	if state.KeyDown(input.KeyLeft) || state.KeyDown(input.KeyA) {
		dir[0]--
	}
	if state.KeyDown(input.KeyRight) || state.KeyDown(input.KeyD) {
		dir[0]++
	}
	if state.KeyDown(input.KeyUp) || state.KeyDown(input.KeyW) {
		dir[1]++
	}
	if state.KeyDown(input.KeyDown) || state.KeyDown(input.KeyS) {
		dir[1]--
	}
	return dir
}

// CameraStage owns the projection objects. A camera entity without an
// instance gets one; a dirty camera has its frustum, zoom and view
// re-derived. The first camera is published as Context.Camera.
type CameraStage struct {
	Logger *zap.Logger

	Context ecs.Singleton[Context]
	Cameras ecs.Query[struct {
		ecs.EntityId
		*CameraTag
		*OrthographicConfig
		*CameraPosition
		*CameraTarget
		Instance *CameraInstance `ecs:"optional"`
	}]
}

func (s *CameraStage) Execute(frame *ecs.UpdateFrame) {
	ctx := s.Context.Get()
	if ctx == nil {
		return
	}

	var active *camera.Orthographic
	for id, c := range s.Cameras.Iter() {
		var cam *camera.Orthographic
		switch {
		case c.Instance == nil || c.Instance.Camera == nil:
			cam = camera.NewOrthographic(c.ViewSize, c.Aspect, c.Near, c.Far)
			applyCamera(cam, c.OrthographicConfig, c.CameraPosition.Point, c.CameraTarget.Point)
			frame.Commands.AddComponent(id, CameraInstance{Camera: cam})
			MarkDirty(frame, id)
		case IsDirty(frame.Storage, id):
			cam = c.Instance.Camera
			applyCamera(cam, c.OrthographicConfig, c.CameraPosition.Point, c.CameraTarget.Point)
		default:
			cam = c.Instance.Camera
		}

		if active == nil {
			active = cam
		}
	}

	if active != ctx.Camera {
		if active != nil {
			logger(s.Logger).Info("camera activated",
				zap.Float64("left", active.Left),
				zap.Float64("right", active.Right),
				zap.Float64("zoom", active.Zoom),
			)
		}
		ctx.Camera = active
	}
}

func applyCamera(cam *camera.Orthographic, cfg *OrthographicConfig, position, target mgl64.Vec3) {
	cam.Near, cam.Far = cfg.Near, cfg.Far
	cam.SetFrustum(cfg.ViewSize, cfg.Aspect)
	cam.SetZoom(cfg.Zoom)
	cam.SetPosition(position)
	cam.LookAt(target)
	cam.UpdateProjectionMatrix()
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
