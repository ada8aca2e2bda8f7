package ecs

import "reflect"

// System represents one stage of the frame pipeline. Implementations are
// usually pointers to structs whose Query and Singleton fields declare what
// the stage reads; the Scheduler wires those fields up on Register.
type System interface {
	Execute(frame *UpdateFrame)
}

// Initializer is implemented by fields that need the storage before the
// first frame, such as Query and Singleton
type Initializer interface {
	Init(storage *Storage)
}

// snapshotter is a field the Scheduler refreshes before its stage executes.
// A snapshot stays pending until settle; rollback restores the one before it.
type snapshotter interface {
	Execute()
	Types() []reflect.Type
	settle()
	rollback()
}
