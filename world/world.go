package world

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/plus3/hexview/camera"
	"github.com/plus3/hexview/config"
	"github.com/plus3/hexview/ecs"
	"github.com/plus3/hexview/input"
	"github.com/plus3/hexview/render"
	"go.uber.org/zap"
)

var orbitButtons = map[string]input.Button{
	"left":   input.ButtonLeft,
	"middle": input.ButtonMiddle,
	"right":  input.ButtonRight,
}

// SettingsFromConfig resolves the stage tunables of cfg
func SettingsFromConfig(cfg config.Config) (Settings, error) {
	var colors [4]render.Color
	for i, s := range []string{cfg.Grid.Color, cfg.Grid.HoverColor, cfg.Grid.FillColor, cfg.Grid.Background} {
		c, err := render.ParseHexColor(s)
		if err != nil {
			return Settings{}, errors.Wrap(err, "grid colors")
		}
		colors[i] = c
	}

	button, ok := orbitButtons[cfg.Input.OrbitButton]
	if !ok {
		return Settings{}, errors.Errorf("unknown orbit button %q", cfg.Input.OrbitButton)
	}

	return Settings{
		HexSize:          cfg.Grid.HexSize,
		TileSize:         cfg.Grid.TileSize,
		MaxRadius:        cfg.Grid.MaxRadius,
		TileColor:        colors[0],
		HoverColor:       colors[1],
		FillColor:        colors[2],
		FillOpacity:      cfg.Grid.FillOpacity,
		ZoomStep:         cfg.Camera.ZoomStep,
		ZoomMin:          cfg.Camera.ZoomMin,
		ZoomMax:          cfg.Camera.ZoomMax,
		OrbitMin:         mgl64.DegToRad(cfg.Camera.OrbitMinDegrees),
		OrbitMax:         mgl64.DegToRad(cfg.Camera.OrbitMaxDegrees),
		OrbitSensitivity: cfg.Camera.OrbitSensitivity,
		OrbitButton:      button,
		PanSpeed:         cfg.Camera.PanSpeed,
	}, nil
}

// NewCameraEntity spawns an orthographic camera entity. CameraStage creates
// its projection object on the next frame.
func NewCameraEntity(storage *ecs.Storage, cfg config.Camera, aspect float64) ecs.EntityId {
	return storage.Spawn(
		CameraTag{},
		OrthographicConfig{
			ViewSize: cfg.ViewSize,
			Near:     cfg.Near,
			Far:      cfg.Far,
			Zoom:     cfg.Zoom,
			Aspect:   aspect,
		},
		CameraPosition{Point: mgl64.Vec3(cfg.Position)},
		CameraTarget{Point: mgl64.Vec3(cfg.Target)},
		CameraOrbit{},
	)
}

// NewGridEntity spawns a grid entity; its tiles are generated on the next frame
func NewGridEntity(storage *ecs.Storage, radius int) ecs.EntityId {
	return storage.Spawn(GridTag{}, NewGrid(radius))
}

func NewSceneEntity(storage *ecs.Storage, scene *render.Scene) ecs.EntityId {
	return storage.Spawn(SceneTag{}, SceneRef{Scene: scene})
}

func NewRendererEntity(storage *ecs.Storage, renderer render.Renderer) ecs.EntityId {
	return storage.Spawn(RendererTag{}, RendererRef{Renderer: renderer})
}

// World is a storage populated with a camera, a grid, a scene and an
// optional renderer, driven by the eight-stage pipeline:
// input, interaction, camera control, grid, camera, grid mesh, render, cleanup.
type World struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Scene     *render.Scene

	CameraEntity ecs.EntityId
	GridEntity   ecs.EntityId

	context ecs.Singleton[Context]
	input   ecs.Singleton[input.State]
	logger  *zap.Logger
}

// Option configures a World
type Option func(*World)

// WithLogger sets the logger handed to the scheduler and the stages
func WithLogger(logger *zap.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

// New builds a World from cfg. renderer and source may be nil, in which case
// frames run without drawing or without input.
func New(cfg config.Config, renderer render.Renderer, source input.Source, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	settings, err := SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	background, err := render.ParseHexColor(cfg.Grid.Background)
	if err != nil {
		return nil, errors.Wrap(err, "background")
	}

	w := &World{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}

	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	w.Storage = ecs.NewStorage(registry)

	ecs.NewSingleton(w.Storage, Context{})
	ecs.NewSingleton(w.Storage, settings)
	ecs.NewSingleton(w.Storage, input.State{
		Viewport: input.Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height},
	})
	w.context.Init(w.Storage)
	w.input.Init(w.Storage)

	w.Scene = render.NewScene(background)
	NewSceneEntity(w.Storage, w.Scene)
	if renderer != nil {
		NewRendererEntity(w.Storage, renderer)
	}
	aspect := input.Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height}.Aspect()
	w.CameraEntity = NewCameraEntity(w.Storage, cfg.Camera, aspect)
	w.GridEntity = NewGridEntity(w.Storage, cfg.Grid.Radius)

	w.Scheduler = ecs.NewScheduler(w.Storage, ecs.WithLogger(w.logger))
	w.Scheduler.Register(&InputStage{Source: source})
	w.Scheduler.Register(&InteractionStage{})
	w.Scheduler.Register(&CameraControlStage{})
	w.Scheduler.Register(&GridStage{Logger: w.logger})
	w.Scheduler.Register(&CameraStage{Logger: w.logger})
	w.Scheduler.Register(&GridMeshStage{Logger: w.logger})
	w.Scheduler.Register(&RenderStage{Logger: w.logger})
	w.Scheduler.Register(&CleanupStage{})

	return w, nil
}

// Step runs one frame. A stage panic is returned as an *ecs.StageError.
func (w *World) Step(dt float64) error {
	return w.Scheduler.Step(dt)
}

// Run steps the world at interval until ctx is done or a stage fails
func (w *World) Run(ctx context.Context, interval time.Duration) error {
	return w.Scheduler.Run(ctx, interval)
}

// Camera returns the active camera, nil before the first frame
func (w *World) Camera() *camera.Orthographic {
	return w.context.Get().Camera
}

// Hover returns the hex under the pointer as of the last frame
func (w *World) Hover() Hover {
	return w.context.Get().Hover
}

// Input returns the frame input state
func (w *World) Input() *input.State {
	return w.input.Get()
}

// Grid returns the grid component of the world's grid entity
func (w *World) Grid() *Grid {
	return ecs.Get[Grid](w.Storage, w.GridEntity)
}

// SetRadius changes the grid radius; tiles and mesh follow on the next frame
// with the radius clamped to [0, grid.max_radius]
func (w *World) SetRadius(radius int) {
	if g := w.Grid(); g != nil {
		g.Radius = radius
	}
}

// GridMesh returns the drawable of the world's grid, nil before it is built
func (w *World) GridMesh() *GridMesh {
	return ecs.Get[GridMesh](w.Storage, w.GridEntity)
}
