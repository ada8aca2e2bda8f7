package ecs

// UpdateFrame is handed to every stage of one scheduler pass
type UpdateFrame struct {
	DeltaTime float64
	Frame     uint64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, frame uint64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Frame:     frame,
		Commands:  NewCommands(storage),
		Storage:   storage,
	}
}
