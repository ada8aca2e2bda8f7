package ecs

import (
	"reflect"
	"slices"
	"sort"
	"unsafe"
)

// Storage owns every entity, component and singleton of one world
type Storage struct {
	registry   *ComponentRegistry
	archetypes map[uint32]*Archetype
	order      []*Archetype
	records    []entityRecord
	free       []uint32
	live       int
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// StorageStats summarises storage contents for debugging and reports
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes a single archetype
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: make(map[uint32]*Archetype),
		// slot 0 is never handed out so the zero EntityId stays invalid
		records:    make([]entityRecord, 1, 64),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry backing this storage
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

func (s *Storage) record(id EntityId) *entityRecord {
	slot := id.Slot()
	if slot == 0 || int(slot) >= len(s.records) {
		return nil
	}
	rec := &s.records[slot]
	if !rec.live || rec.generation != id.Generation() {
		return nil
	}
	return rec
}

// Reserve allocates a live entity id that holds no components yet
func (s *Storage) Reserve() EntityId {
	var slot uint32
	if len(s.free) > 0 {
		slot = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	} else {
		slot = uint32(len(s.records))
		s.records = append(s.records, entityRecord{})
	}

	rec := &s.records[slot]
	rec.generation++
	rec.live = true
	rec.archetype = nil
	rec.row = 0
	s.live++
	return NewEntityId(slot, rec.generation)
}

// Place attaches components to a previously reserved entity that holds none.
// Calling it with no components is a no-op.
func (s *Storage) Place(id EntityId, components ...any) {
	rec := s.record(id)
	if rec == nil {
		panic("ecs: place on dead entity " + id.String())
	}
	if rec.archetype != nil {
		panic("ecs: place on entity " + id.String() + " that already has components")
	}
	if len(components) == 0 {
		return
	}

	types, sorted := sortComponents(components)
	archetype := s.archetypeFor(types)
	rec.archetype = archetype
	rec.row = archetype.spawn(id, sorted)
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		return s.Reserve()
	}

	// resolve the archetype first so a bad component set panics before an
	// id is allocated
	types, sorted := sortComponents(components)
	archetype := s.archetypeFor(types)

	id := s.Reserve()
	rec := &s.records[id.Slot()]
	rec.archetype = archetype
	rec.row = archetype.spawn(id, sorted)
	return id
}

// Delete removes the entity and all of its components. Returns false when
// the id is not alive.
func (s *Storage) Delete(id EntityId) bool {
	rec := s.record(id)
	if rec == nil {
		return false
	}
	if rec.archetype != nil {
		rec.archetype.remove(rec.row)
	}
	rec.live = false
	rec.archetype = nil
	s.free = append(s.free, id.Slot())
	s.live--
	return true
}

// Alive reports whether id refers to a live entity
func (s *Storage) Alive(id EntityId) bool {
	return s.record(id) != nil
}

// EntityCount returns the number of live entities
func (s *Storage) EntityCount() int {
	return s.live
}

// AddComponent attaches component to the entity, replacing an existing
// component of the same type in place.
func (s *Storage) AddComponent(id EntityId, component any) {
	rec := s.record(id)
	if rec == nil {
		panic("ecs: add component to dead entity " + id.String())
	}

	compType := componentType(component)

	if rec.archetype == nil {
		archetype := s.archetypeFor([]reflect.Type{compType})
		rec.archetype = archetype
		rec.row = archetype.spawn(id, []any{component})
		return
	}

	oldArchetype := rec.archetype
	if idx := oldArchetype.column(compType); idx != -1 {
		oldArchetype.storages[idx].Set(int(rec.row), component)
		return
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, oldArchetype.GetComponent(rec.row, typ))
		}
	}

	s.move(id, rec, s.archetypeFor(newTypes), components)
}

// RemoveComponent detaches the component of compType. The entity stays alive
// even when it has no components left. Returns false if nothing was removed.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) bool {
	rec := s.record(id)
	if rec == nil || rec.archetype == nil {
		return false
	}

	oldArchetype := rec.archetype
	if !oldArchetype.HasComponent(compType) {
		return false
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		oldArchetype.remove(rec.row)
		rec.archetype = nil
		rec.row = 0
		return true
	}

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		components = append(components, oldArchetype.GetComponent(rec.row, typ))
	}

	s.move(id, rec, s.archetypeFor(newTypes), components)
	return true
}

// move copies components into dst before freeing the old row. components
// hold pointers into the old archetype so the order matters.
func (s *Storage) move(id EntityId, rec *entityRecord, dst *Archetype, components []any) {
	oldArchetype, oldRow := rec.archetype, rec.row
	rec.row = dst.spawn(id, components)
	rec.archetype = dst
	oldArchetype.remove(oldRow)
}

// GetComponent returns a pointer to the component for the given entity ID
// and component type, or nil
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	rec := s.record(id)
	if rec == nil || rec.archetype == nil {
		return nil
	}
	return rec.archetype.GetComponent(rec.row, compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	rec := s.record(id)
	if rec == nil || rec.archetype == nil {
		return false
	}
	return rec.archetype.HasComponent(compType)
}

// ComponentTypes lists the component types currently attached to the entity
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	rec := s.record(id)
	if rec == nil || rec.archetype == nil {
		return nil
	}
	return slices.Clone(rec.archetype.types)
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types, _ := sortComponents(components)
	return s.archetypes[hashTypes(types)]
}

// GetArchetypeByTypes returns an archetype storage (if one exists) based on reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := slices.Clone(types)
	sort.Sort(byTypeName(sorted))
	archetype := s.archetypes[hashTypes(sorted)]
	if archetype == nil || !slices.Equal(archetype.types, sorted) {
		return nil
	}
	return archetype
}

// Archetypes returns every archetype in creation order
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

// Compact removes the holes left by deleted rows in every archetype
func (s *Storage) Compact() {
	for _, archetype := range s.order {
		indexMap := archetype.compact()
		for newRow := range len(indexMap) {
			owner, ok := archetype.owners.Get(uint32(newRow))
			if !ok {
				continue
			}
			s.records[owner.Slot()].row = uint32(newRow)
		}
	}
}

// archetypeFor returns the archetype for a sorted type set, creating it on demand
func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	if archetype, ok := s.archetypes[id]; ok {
		if !slices.Equal(archetype.types, types) {
			panic("ecs: archetype id collision between " + typeNames(archetype.types) + " and " + typeNames(types))
		}
		return archetype
	}

	archetype := newArchetype(id, types, s.registry)
	s.archetypes[id] = archetype
	s.order = append(s.order, archetype)
	return archetype
}

// AddSingleton stores value as the singleton of its type, replacing any previous one
func (s *Storage) AddSingleton(value any) {
	typ := componentType(value)
	ptr := reflect.New(typ)
	if v := reflect.ValueOf(value); v.Kind() == reflect.Ptr {
		ptr.Elem().Set(v.Elem())
	} else {
		ptr.Elem().Set(v)
	}

	if entry, ok := s.singletons[typ]; ok {
		entry.value.Elem().Set(ptr.Elem())
		return
	}
	s.singletons[typ] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// GetSingleton returns a pointer to the singleton of the given type, or nil
func (s *Storage) GetSingleton(typ reflect.Type) any {
	entry := s.getSingletonEntry(typ)
	if entry == nil {
		return nil
	}
	return entry.value.Interface()
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

// CollectStats gathers counts per archetype and the singleton types
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		ArchetypeCount:     len(s.order),
		TotalEntityCount:   s.live,
		SingletonCount:     len(s.singletons),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, len(s.order)),
	}

	for _, archetype := range s.order {
		names := make([]string, len(archetype.types))
		for i, typ := range archetype.types {
			names[i] = typ.String()
		}
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    archetype.Len(),
		})
	}

	for typ := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, typ.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}

func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("ecs: nil component")
	}

	// If it's a pointer, get the underlying type
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	// Components can be structs or primitives (int, string, etc.)
	// But not pointers, maps, channels, or functions (those aren't value types)
	switch compType.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("ecs: components cannot be pointers, maps, channels, or functions")
	}
	return compType
}

// sortComponents returns the sorted types of components and the components
// reordered to match
func sortComponents(components []any) ([]reflect.Type, []any) {
	idx := make([]int, len(components))
	types := make([]reflect.Type, len(components))
	for i, comp := range components {
		idx[i] = i
		types[i] = componentType(comp)
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return byTypeName{types[idx[a]], types[idx[b]]}.Less(0, 1)
	})

	sortedTypes := make([]reflect.Type, len(components))
	sortedComponents := make([]any, len(components))
	for i, j := range idx {
		sortedTypes[i] = types[j]
		sortedComponents[i] = components[j]
		if i > 0 && sortedTypes[i] == sortedTypes[i-1] {
			panic("ecs: duplicate component type " + sortedTypes[i].String())
		}
	}
	return sortedTypes, sortedComponents
}

func typeNames(types []reflect.Type) string {
	out := "["
	for i, t := range types {
		if i > 0 {
			out += " "
		}
		out += t.String()
	}
	return out + "]"
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's component of type T, or nil
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

// Get returns the entity's component of type T, or nil
func Get[T any](s *Storage, id EntityId) *T {
	return ReadComponent[T](s, id)
}

// Has reports whether the entity has a component of type T
func Has[T any](s *Storage, id EntityId) bool {
	return s.HasComponent(id, reflect.TypeFor[T]())
}

// Add attaches or replaces the entity's component of type T
func Add[T any](s *Storage, id EntityId, component T) {
	s.AddComponent(id, component)
}

// Remove detaches the entity's component of type T
func Remove[T any](s *Storage, id EntityId) bool {
	return s.RemoveComponent(id, reflect.TypeFor[T]())
}
