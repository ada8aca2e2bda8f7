// Package world assembles the hex viewer's frame pipeline: the components and
// tags the stages exchange, the dirty protocol, the eight stages and the
// World that wires them to a storage and a scheduler.
package world

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/hexview/camera"
	"github.com/plus3/hexview/ecs"
	"github.com/plus3/hexview/hex"
	"github.com/plus3/hexview/input"
	"github.com/plus3/hexview/render"
)

// Tags
type (
	CameraTag   struct{}
	GridTag     struct{}
	TileTag     struct{}
	SceneTag    struct{}
	RendererTag struct{}

	// Dirty marks an entity whose derived state must be recomputed this
	// frame. Only CleanupStage removes it.
	Dirty struct{}
)

// Grid is a hexagonal grid of tile entities centered on the origin. Tiles is
// laid out by hex.GridIndex with width 2*Radius+1; cells outside the radius
// hold zero.
type Grid struct {
	Radius int
	// Built is the radius Tiles was generated for, -1 before the first build
	Built int
	Tiles []ecs.EntityId
}

// NewGrid returns a grid that GridStage will populate on the next frame
func NewGrid(radius int) Grid {
	return Grid{Radius: radius, Built: -1}
}

// Tile returns the tile entity at h, or zero when h is outside the grid
func (g *Grid) Tile(h hex.Hex) ecs.EntityId {
	if g.Built < 0 || hex.Distance(h, hex.Hex{}) > g.Built {
		return 0
	}
	return g.Tiles[hex.GridIndex(h, g.Built)]
}

type TileCoord struct {
	Hex hex.Hex
}

// OrthographicConfig holds the inputs of the camera projection. The frustum
// planes are derived from ViewSize and Aspect by CameraStage.
type OrthographicConfig struct {
	ViewSize float64
	Near     float64
	Far      float64
	Zoom     float64
	Aspect   float64
}

type CameraPosition struct {
	Point mgl64.Vec3
}

type CameraTarget struct {
	Point mgl64.Vec3
}

// CameraOrbit tracks an orbit drag in progress
type CameraOrbit struct {
	StartAngle float64
	Dragging   bool
}

// CameraInstance is the live projection object of a camera entity
type CameraInstance struct {
	Camera *camera.Orthographic
}

// GridMesh is the drawable of a grid: one wireframe instance per tile plus a
// translucent merged fill that shows the hover highlight
type GridMesh struct {
	Instances *render.InstancedMesh
	Surface   *render.Surface
}

type SceneRef struct {
	Scene *render.Scene
}

type RendererRef struct {
	Renderer render.Renderer
}

// Hover is the hex under the pointer. Valid is false when the pointer is off
// the grid.
type Hover struct {
	Hex   hex.Hex
	Valid bool
}

// Context is the frame context singleton shared by the stages
type Context struct {
	// Camera is the active camera, published by CameraStage
	Camera *camera.Orthographic
	Hover  Hover
}

// Settings are the tunables the stages read, resolved from configuration
type Settings struct {
	HexSize   float64
	TileSize  float64
	MaxRadius int

	TileColor   render.Color
	HoverColor  render.Color
	FillColor   render.Color
	FillOpacity float64

	ZoomStep float64
	ZoomMin  float64
	ZoomMax  float64

	// orbit bounds in radians
	OrbitMin         float64
	OrbitMax         float64
	OrbitSensitivity float64
	OrbitButton      input.Button

	PanSpeed float64
}

func registerComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[CameraTag](registry)
	ecs.RegisterComponent[GridTag](registry)
	ecs.RegisterComponent[TileTag](registry)
	ecs.RegisterComponent[SceneTag](registry)
	ecs.RegisterComponent[RendererTag](registry)
	ecs.RegisterComponent[Dirty](registry)
	ecs.RegisterComponent[Grid](registry)
	ecs.RegisterComponent[TileCoord](registry)
	ecs.RegisterComponent[OrthographicConfig](registry)
	ecs.RegisterComponent[CameraPosition](registry)
	ecs.RegisterComponent[CameraTarget](registry)
	ecs.RegisterComponent[CameraOrbit](registry)
	ecs.RegisterComponent[CameraInstance](registry)
	ecs.RegisterComponent[GridMesh](registry)
	ecs.RegisterComponent[SceneRef](registry)
	ecs.RegisterComponent[RendererRef](registry)
}
