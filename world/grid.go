package world

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/hexview/ecs"
	"github.com/plus3/hexview/geometry"
	"github.com/plus3/hexview/hex"
	"github.com/plus3/hexview/render"
	"go.uber.org/zap"
)

// GridStage keeps the tile entities of each grid in step with its radius.
// A new grid, or one whose radius changed, has its previous tiles deleted
// and one tile spawned per hex within the radius. Radii outside
// [0, Settings.MaxRadius] are clamped first.
type GridStage struct {
	Logger *zap.Logger

	Settings ecs.Singleton[Settings]
	Grids    ecs.Query[struct {
		ecs.EntityId
		*GridTag
		*Grid
	}]
}

func (s *GridStage) Execute(frame *ecs.UpdateFrame) {
	maxRadius := -1
	if settings := s.Settings.Get(); settings != nil {
		maxRadius = settings.MaxRadius
	}

	added := s.Grids.Added()
	for id, g := range s.Grids.Iter() {
		if g.Radius < 0 {
			logger(s.Logger).Warn("negative grid radius clamped", zap.Int("radius", g.Radius))
			g.Radius = 0
		}
		if maxRadius >= 0 && g.Radius > maxRadius {
			logger(s.Logger).Warn("grid radius clamped",
				zap.Int("radius", g.Radius),
				zap.Int("max", maxRadius),
			)
			g.Radius = maxRadius
		}
		if g.Radius == g.Built && !slices.Contains(added, id) {
			continue
		}

		for _, tile := range g.Tiles {
			if tile != 0 {
				frame.Commands.Delete(tile)
			}
		}

		radius := g.Radius
		width := hex.GridWidth(radius)
		tiles := make([]ecs.EntityId, width*width)
		for _, h := range hex.Range(hex.Hex{}, radius) {
			tiles[hex.GridIndex(h, radius)] = frame.Commands.Spawn(TileTag{}, TileCoord{Hex: h})
		}

		logger(s.Logger).Info("grid built",
			zap.Int("radius", radius),
			zap.Int("previous", g.Built),
			zap.Int("tiles", hex.Count(radius)),
		)
		g.Tiles = tiles
		g.Built = radius
		MarkDirty(frame, id)
	}
}

// GridMeshStage mirrors dirty grids into the scene. The instanced mesh is
// sized to the tile count; a grid that grew or shrank gets a new mesh and
// the old one is disposed. Then every slot is rewritten in hex.Range order.
type GridMeshStage struct {
	Logger *zap.Logger

	Context  ecs.Singleton[Context]
	Settings ecs.Singleton[Settings]
	Grids    ecs.Query[struct {
		ecs.EntityId
		*GridTag
		*Grid
		Mesh *GridMesh `ecs:"optional"`
	}]
	Scenes ecs.Query[struct {
		*SceneTag
		*SceneRef
	}]
}

func (s *GridMeshStage) Execute(frame *ecs.UpdateFrame) {
	ctx, settings := s.Context.Get(), s.Settings.Get()
	_, sc, ok := s.Scenes.First()
	if ctx == nil || settings == nil || !ok || sc.Scene == nil {
		return
	}
	scene := sc.Scene

	for id, g := range s.Grids.Iter() {
		if g.Built < 0 || !IsDirty(frame.Storage, id) {
			continue
		}

		count := hex.Count(g.Built)
		mesh := g.Mesh
		if mesh == nil || mesh.Instances == nil || mesh.Instances.Count() != count {
			if mesh != nil {
				releaseMesh(scene, mesh)
			}
			created := s.newMesh(settings, g.Built, count)
			scene.Add(created.Instances)
			scene.AddSurface(created.Surface)
			frame.Commands.AddComponent(id, created)
			mesh = &created

			logger(s.Logger).Info("grid mesh created", zap.Int("instances", count))
		}

		writeMesh(mesh, settings, g.Built, ctx.Hover)
	}
}

func (s *GridMeshStage) newMesh(settings *Settings, radius, count int) GridMesh {
	instances := render.NewInstancedMesh(geometry.HexPlane(settings.HexSize*settings.TileSize), count, settings.TileColor)
	instances.Wireframe = true

	builder := geometry.NewBuilder(radius, settings.HexSize, mgl64.Vec3{}, settings.FillColor)
	return GridMesh{
		Instances: instances,
		Surface:   render.NewSurface(builder, settings.FillOpacity),
	}
}

func releaseMesh(scene *render.Scene, mesh *GridMesh) {
	if mesh.Instances != nil {
		scene.Remove(mesh.Instances)
		mesh.Instances.Dispose()
	}
	if mesh.Surface != nil {
		scene.RemoveSurface(mesh.Surface)
	}
}

func writeMesh(mesh *GridMesh, settings *Settings, radius int, hover Hover) {
	var builder *geometry.Builder
	if mesh.Surface != nil {
		builder = mesh.Surface.Builder
	}

	for slot, h := range hex.Range(hex.Hex{}, radius) {
		hovered := hover.Valid && hover.Hex == h

		pos := hex.ToWorld(h, settings.HexSize, mgl64.Vec3{})
		mesh.Instances.SetMatrixAt(slot, mgl64.Translate3D(pos.X(), pos.Y(), pos.Z()))

		tileColor := settings.TileColor
		if hovered {
			tileColor = settings.HoverColor
		}
		mesh.Instances.SetColorAt(slot, tileColor)

		if builder != nil {
			fill := settings.FillColor
			if hovered {
				fill = settings.HoverColor
			}
			if face := builder.FaceIndex(h); face >= 0 {
				builder.SetFaceColor(face, fill)
			}
		}
	}

	mesh.Instances.MatricesNeedUpdate = true
	mesh.Instances.ColorsNeedUpdate = true
}
