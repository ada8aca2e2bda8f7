package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hexview/ecs"
	"github.com/plus3/hexview/world"
)

// HexInspector shows the hovered hex, the camera and lets the grid radius
// be edited at runtime
type HexInspector struct {
	world *world.World
}

func NewHexInspector(w *world.World) *HexInspector {
	return &HexInspector{world: w}
}

func (hi *HexInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(380, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 260), imgui.CondOnce)
	if !imgui.BeginV("Hex Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if grid := hi.world.Grid(); grid != nil {
		radius := int32(grid.Radius)
		imgui.Text("Radius:")
		imgui.SameLine()
		imgui.SetNextItemWidth(120)
		if imgui.InputInt("##radius", &radius) {
			hi.world.SetRadius(int(radius))
		}
	}

	imgui.Separator()
	for _, line := range Describe(hi.world) {
		imgui.Text(line)
	}
	imgui.End()
}

// Describe returns the inspector lines for the current state of w
func Describe(w *world.World) []string {
	var lines []string

	hover := w.Hover()
	if hover.Valid {
		lines = append(lines, fmt.Sprintf("Hover: %s", hover.Hex))
		if grid := w.Grid(); grid != nil {
			if tile := grid.Tile(hover.Hex); tile != 0 {
				lines = append(lines, fmt.Sprintf("Tile entity: %d", uint64(tile)))
			}
		}
	} else {
		lines = append(lines, "Hover: none")
	}

	if grid := w.Grid(); grid != nil {
		lines = append(lines, fmt.Sprintf("Grid: radius %d, built %d", grid.Radius, grid.Built))
	}

	if cam := w.Camera(); cam != nil {
		lines = append(lines,
			fmt.Sprintf("Camera: %.2f x %.2f, zoom %.2f", cam.Width(), cam.Height(), cam.Zoom),
			fmt.Sprintf("Position: %.2f %.2f %.2f", cam.Position.X(), cam.Position.Y(), cam.Position.Z()),
		)
	} else {
		lines = append(lines, "Camera: none")
	}

	if cfg := ecs.Get[world.OrthographicConfig](w.Storage, w.CameraEntity); cfg != nil {
		lines = append(lines, fmt.Sprintf("View size: %.2f", cfg.ViewSize))
	}
	return lines
}
