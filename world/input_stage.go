package world

import (
	"github.com/plus3/hexview/ecs"
	"github.com/plus3/hexview/input"
)

// InputStage samples the input source once per frame. It runs first.
type InputStage struct {
	Source input.Source
	Input  ecs.Singleton[input.State]
}

func (s *InputStage) Execute(frame *ecs.UpdateFrame) {
	state := s.Input.Get()
	if s.Source == nil || state == nil {
		return
	}
	state.Apply(s.Source.Poll())
}

// CleanupStage clears every Dirty tag and the per-frame input edges. It runs
// last, so no mark survives the frame it was made in.
type CleanupStage struct {
	Input ecs.Singleton[input.State]
	Dirty ecs.Query[struct {
		ecs.EntityId
		*Dirty
	}]
}

func (s *CleanupStage) Execute(frame *ecs.UpdateFrame) {
	for _, id := range s.Dirty.Entities() {
		frame.Commands.RemoveComponent(id, dirtyType)
	}
	if state := s.Input.Get(); state != nil {
		state.EndFrame()
	}
}
