// Package ebiten hosts the debug overlay on the Ebitengine Dear ImGui backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/hexview/debugui"
	"go.uber.org/zap"
)

// Overlay renders a debugui.UI through the ebiten ImGui backend
type Overlay struct {
	Backend *ebitenbackend.EbitenBackend
	UI      *debugui.UI
	Logger  *zap.Logger
}

// NewOverlay creates the ImGui backend and its window. Call it before
// ebiten.RunGame.
func NewOverlay(ui *debugui.UI, title string, width, height int, logger *zap.Logger) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &Overlay{Backend: backend, UI: ui, Logger: logger}
}

func (o *Overlay) Update(dt float64) {
	o.Backend.BeginFrame()
	if err := o.UI.Frame(dt); err != nil {
		o.Logger.Warn("overlay frame failed", zap.Error(err))
	}
	o.Backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.Backend.Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.Backend.Layout(width, height)
}

// Captured reports ImGui's input capture, for ebitenview.Source.Captured
func (o *Overlay) Captured() (mouse, keyboard bool) {
	return o.UI.Captured()
}
