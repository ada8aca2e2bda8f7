package world

import (
	"reflect"

	"github.com/plus3/hexview/ecs"
)

var dirtyType = reflect.TypeFor[Dirty]()

// MarkDirty queues a Dirty tag for id. Marking an entity that is already
// dirty, or already queued in this stage, does nothing.
func MarkDirty(frame *ecs.UpdateFrame, id ecs.EntityId) {
	if ecs.Has[Dirty](frame.Storage, id) || frame.Commands.PendingAdd(id, dirtyType) {
		return
	}
	frame.Commands.AddComponent(id, Dirty{})
}

// IsDirty reports whether id carries the Dirty tag
func IsDirty(storage *ecs.Storage, id ecs.EntityId) bool {
	return ecs.Has[Dirty](storage, id)
}
