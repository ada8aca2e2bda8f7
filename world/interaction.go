package world

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/hexview/camera"
	"github.com/plus3/hexview/ecs"
	"github.com/plus3/hexview/hex"
	"github.com/plus3/hexview/input"
)

// InteractionStage resolves the hex under the pointer by casting a ray from
// the active camera onto the ground plane
type InteractionStage struct {
	Context  ecs.Singleton[Context]
	Input    ecs.Singleton[input.State]
	Settings ecs.Singleton[Settings]
	Grids    ecs.Query[struct {
		ecs.EntityId
		*GridTag
		*Grid
	}]
}

func (s *InteractionStage) Execute(frame *ecs.UpdateFrame) {
	ctx, state, settings := s.Context.Get(), s.Input.Get(), s.Settings.Get()
	if ctx == nil || state == nil || settings == nil || ctx.Camera == nil {
		return
	}

	id, grid, ok := s.Grids.First()
	if !ok {
		return
	}

	hover := pick(ctx.Camera, state.Pointer, settings.HexSize, grid.Radius)
	if hover == ctx.Hover {
		return
	}
	ctx.Hover = hover
	MarkDirty(frame, id)
}

func pick(cam *camera.Orthographic, pointer mgl64.Vec2, size float64, radius int) Hover {
	point, hit := cam.Ray(pointer).IntersectPlane(camera.GroundPlane)
	if !hit {
		return Hover{}
	}

	h := hex.FromWorld(point, size, mgl64.Vec3{})
	if hex.Distance(h, hex.Hex{}) > radius {
		return Hover{}
	}
	return Hover{Hex: h, Valid: true}
}
