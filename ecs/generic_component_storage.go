package ecs

import (
	"iter"
	"reflect"
	"sort"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be used.
// Registering the same type twice is a no-op.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if _, ok := r.factories[t]; ok {
		return
	}
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// IsRegistered reports whether t has a storage factory
func (r *ComponentRegistry) IsRegistered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// Types returns the registered component types sorted by name
func (r *ComponentRegistry) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const (
	genericBlockSize = 64
)

// genericComponentStorage stores components of a specific type `T` in
// fixed-size blocks so pointers handed out by Get stay valid until the slot
// is deleted or the storage is compacted.
type genericComponentStorage[T any] struct {
	blocks    []*[genericBlockSize]T
	filled    [][genericBlockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func (cs *genericComponentStorage[T]) convert(item any) (T, bool) {
	if ptr, ok := item.(*T); ok {
		return *ptr, true
	}
	if val, ok := item.(T); ok {
		return val, true
	}
	var zero T
	return zero, false
}

// Append adds a component to storage and returns its index, or -1 when the
// item has the wrong type.
func (cs *genericComponentStorage[T]) Append(item any) int {
	concreteItem, ok := cs.convert(item)
	if !ok {
		return -1
	}

	var index int
	if len(cs.freeSlots) > 0 {
		index = cs.freeSlots[len(cs.freeSlots)-1]
		cs.freeSlots = cs.freeSlots[:len(cs.freeSlots)-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([genericBlockSize]T))
			cs.filled = append(cs.filled, [genericBlockSize]bool{})
		}
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize
	cs.blocks[blockIdx][slotIdx] = concreteItem
	cs.filled[blockIdx][slotIdx] = true
	cs.count++
	return index
}

// Set overwrites an occupied slot in place
func (cs *genericComponentStorage[T]) Set(index int, item any) bool {
	if !cs.Has(index) {
		return false
	}
	concreteItem, ok := cs.convert(item)
	if !ok {
		return false
	}
	cs.blocks[index/genericBlockSize][index%genericBlockSize] = concreteItem
	return true
}

// Get returns a pointer to the component at the given index.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

// Delete marks a component slot as empty.
func (cs *genericComponentStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	cs.filled[blockIdx][slotIdx] = false
	var zero T
	cs.blocks[blockIdx][slotIdx] = zero
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
}

// Has checks if a component exists at the given index.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 {
		return false
	}

	blockIdx := index / genericBlockSize
	if blockIdx >= len(cs.blocks) {
		return false
	}

	return cs.filled[blockIdx][index%genericBlockSize]
}

func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}

// Compact reorganizes component storage to remove empty slots.
// The returned map translates old indices to new ones.
func (cs *genericComponentStorage[T]) Compact() map[int]int {
	indexMap := make(map[int]int, cs.count)

	if cs.count == 0 {
		cs.blocks = nil
		cs.filled = nil
		cs.freeSlots = nil
		cs.nextIndex = 0
		return indexMap
	}

	numNewBlocks := (cs.count + genericBlockSize - 1) / genericBlockSize
	newBlocks := make([]*[genericBlockSize]T, numNewBlocks)
	for i := range newBlocks {
		newBlocks[i] = new([genericBlockSize]T)
	}
	newFilled := make([][genericBlockSize]bool, numNewBlocks)

	writePos := 0
	for readIdx := 0; readIdx < cs.nextIndex; readIdx++ {
		readBlockIdx := readIdx / genericBlockSize
		readSlotIdx := readIdx % genericBlockSize

		if !cs.filled[readBlockIdx][readSlotIdx] {
			continue
		}

		indexMap[readIdx] = writePos
		newBlocks[writePos/genericBlockSize][writePos%genericBlockSize] = cs.blocks[readBlockIdx][readSlotIdx]
		newFilled[writePos/genericBlockSize][writePos%genericBlockSize] = true
		writePos++
	}

	cs.blocks = newBlocks
	cs.filled = newFilled
	cs.freeSlots = nil
	cs.nextIndex = writePos

	return indexMap
}

func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if !cs.filled[i/genericBlockSize][i%genericBlockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
