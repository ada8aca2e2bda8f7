// Package debugui is the Dear ImGui overlay of the hex viewer. Panels are
// entities of a small storage of their own, rendered each frame by
// ImguiSystem.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hexview/ecs"
	"github.com/plus3/hexview/world"
)

// DefaultHistoryFrames is the length of the frame time graph
const DefaultHistoryFrames = 120

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard input
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every ImguiItem and records
// ImGui's input capture state
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Iter() {
		frame.Commands.Defer(item.Render)
	}
}

// UI owns the overlay panels of one world
type UI struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[ImguiInputState]

	Stats     *PerformanceStats
	Inspector *HexInspector
}

// New creates the overlay for w with the performance and hex inspector panels
func New(w *world.World, historyFrames int) *UI {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[ImguiItem](registry)
	storage := ecs.NewStorage(registry)

	u := &UI{
		storage:   storage,
		input:     ecs.NewSingleton(storage, ImguiInputState{}),
		Stats:     NewPerformanceStats(w, historyFrames),
		Inspector: NewHexInspector(w),
	}
	storage.Spawn(ImguiItem{Render: u.Stats.Render})
	storage.Spawn(ImguiItem{Render: u.Inspector.Render})

	u.scheduler = ecs.NewScheduler(storage)
	u.scheduler.Register(&ImguiSystem{})
	return u
}

// Frame records dt and renders every panel. Call it between the ImGui
// backend's BeginFrame and EndFrame.
func (u *UI) Frame(dt float64) error {
	u.Stats.Record(dt)
	return u.scheduler.Step(dt)
}

// Captured reports whether ImGui consumed the mouse or keyboard last frame
func (u *UI) Captured() (mouse, keyboard bool) {
	state := u.input.Get()
	return state.WantCaptureMouse, state.WantCaptureKeyboard
}
