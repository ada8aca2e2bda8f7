package ecs

import "fmt"

// EntityId is a stable handle: the slot (lower 32 bits) indexes the storage's
// entity table and the generation (upper 32 bits) detects reuse of a freed slot.
// The id never changes while the entity is alive, whatever components it gains
// or loses. The zero value is never a live entity.
type EntityId uint64

// NewEntityId creates an EntityId from a slot and generation
func NewEntityId(slot uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(slot))
}

// Slot extracts the entity table slot
func (e EntityId) Slot() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the generation counter
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

func (e EntityId) String() string {
	return fmt.Sprintf("%d:%d", e.Slot(), e.Generation())
}

// entityRecord locates an entity's components. A live record with a nil
// archetype is an entity that currently holds no components (for example a
// reserved id whose spawn command has not been flushed yet).
type entityRecord struct {
	generation uint32
	live       bool
	archetype  *Archetype
	row        uint32
}
