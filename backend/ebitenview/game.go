package ebitenview

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/hexview/config"
	"github.com/plus3/hexview/input"
	"github.com/plus3/hexview/world"
	"go.uber.org/zap"
)

// Overlay is drawn on top of the scene, usually a debug UI
type Overlay interface {
	Update(dt float64)
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

// Capturer is implemented by overlays that can consume pointer or keyboard
// input, such as an ImGui window under the cursor
type Capturer interface {
	Captured() (mouse, keyboard bool)
}

// Game implements ebiten.Game around a World
type Game struct {
	World    *world.World
	Renderer *Renderer
	Source   *Source
	Logger   *zap.Logger

	Overlay     Overlay
	ShowOverlay bool

	// TPS is the fixed update rate the world is stepped with
	TPS int

	overlayActive bool
	lastUpdate    time.Time
}

// NewGame wires renderer and source into a new World built from cfg
func NewGame(cfg config.Config, logger *zap.Logger) (*Game, error) {
	renderer := NewRenderer()
	source := NewSource(input.Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height})

	w, err := world.New(cfg, renderer, source, world.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	g := &Game{
		World:       w,
		Renderer:    renderer,
		Source:      source,
		Logger:      logger,
		ShowOverlay: cfg.Debug.Overlay,
		TPS:         cfg.Window.TPS,
	}
	source.Captured = g.Captured
	return g, nil
}

// Captured reports the overlay's input capture while it is shown. A hidden
// overlay is not updated, so its last capture state is ignored.
func (g *Game) Captured() (mouse, keyboard bool) {
	if !g.overlayActive {
		return false, false
	}
	capturer, ok := g.Overlay.(Capturer)
	if !ok {
		return false, false
	}
	return capturer.Captured()
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.ShowOverlay = !g.ShowOverlay
	}

	return g.advance(time.Now())
}

// advance steps the world by one fixed tick and hands the overlay the wall
// time elapsed since the previous update
func (g *Game) advance(now time.Time) error {
	tick := 1.0 / float64(max(g.TPS, 1))
	elapsed := tick
	if !g.lastUpdate.IsZero() {
		elapsed = now.Sub(g.lastUpdate).Seconds()
	}
	g.lastUpdate = now

	if err := g.World.Step(tick); err != nil {
		g.Logger.Error("frame failed", zap.Error(err))
		return err
	}

	g.overlayActive = g.Overlay != nil && g.ShowOverlay
	if g.overlayActive {
		g.Overlay.Update(elapsed)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Renderer.Draw(screen)
	if g.overlayActive {
		g.Overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Source.Viewport = input.Viewport{Width: outsideWidth, Height: outsideHeight}
	if g.Overlay != nil {
		g.Overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed or a frame fails
func Run(game *Game, window config.Window) error {
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetTPS(window.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game.Logger.Info("window opened",
		zap.String("title", window.Title),
		zap.Int("width", window.Width),
		zap.Int("height", window.Height),
	)
	return ebiten.RunGame(game)
}
