package ecs

import (
	"encoding/binary"
	"reflect"
	"slices"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int      { return len(a) }
func (a byTypeName) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool {
	if a[i].String() != a[j].String() {
		return a[i].String() < a[j].String()
	}
	return typeId(a[i]) < typeId(a[j])
}

// Archetype holds every entity that has exactly one particular set of component types
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	owners   *intmap.Map[uint32, EntityId]
}

// newArchetype creates a new archetype with the given ID and sorted component types
func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
		owners:   intmap.New[uint32, EntityId](64),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("ecs: component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// spawn appends a row for owner. components must be aligned with a.types.
func (a *Archetype) spawn(owner EntityId, components []any) uint32 {
	if len(components) != len(a.types) {
		panic("ecs: component count does not match archetype")
	}

	row := -1
	for idx, comp := range components {
		pos := a.storages[idx].Append(comp)
		if pos < 0 {
			panic("ecs: cannot store " + reflect.TypeOf(comp).String() + " as " + a.types[idx].String())
		}
		if row >= 0 && pos != row {
			panic("ecs: archetype columns out of step")
		}
		row = pos
	}

	a.owners.Put(uint32(row), owner)
	return uint32(row)
}

// remove frees a row in every column
func (a *Archetype) remove(row uint32) {
	for _, storage := range a.storages {
		storage.Delete(int(row))
	}
	a.owners.Del(row)
}

func (a *Archetype) column(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// GetComponent returns a pointer to the component of the given type at row, or nil
func (a *Archetype) GetComponent(row uint32, compType reflect.Type) any {
	idx := a.column(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(int(row))
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of entities stored in this archetype
func (a *Archetype) Len() int {
	return a.owners.Len()
}

// Owner returns the entity stored at row
func (a *Archetype) Owner(row uint32) (EntityId, bool) {
	return a.owners.Get(row)
}

// compact removes empty rows. The returned map translates old rows to new rows.
func (a *Archetype) compact() map[int]int {
	if len(a.storages) == 0 {
		return nil
	}

	indexMap := a.storages[0].Compact()
	for i := 1; i < len(a.storages); i++ {
		a.storages[i].Compact()
	}

	owners := intmap.New[uint32, EntityId](max(len(indexMap), 64))
	for oldRow, newRow := range indexMap {
		if owner, ok := a.owners.Get(uint32(oldRow)); ok {
			owners.Put(uint32(newRow), owner)
		}
	}
	a.owners = owners
	return indexMap
}

// Iter returns an iterator over the rows and owners in this archetype
func (a *Archetype) Iter() func(yield func(uint32, EntityId) bool) {
	return func(yield func(uint32, EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}

		for index := range a.storages[0].Iter() {
			owner, ok := a.owners.Get(uint32(index))
			if !ok {
				continue
			}
			if !yield(uint32(index), owner) {
				return
			}
		}
	}
}

func typeId(t reflect.Type) uintptr {
	return uintptr((*iface)(unsafe.Pointer(&t)).data)
}

// hashTypes generates an archetype id for a sorted slice of types
func hashTypes(types []reflect.Type) uint32 {
	var buf [8]byte
	digest := xxhash.New()
	for _, t := range types {
		binary.LittleEndian.PutUint64(buf[:], uint64(typeId(t)))
		_, _ = digest.Write(buf[:])
	}
	sum := digest.Sum64()
	return uint32(sum) ^ uint32(sum>>32)
}
