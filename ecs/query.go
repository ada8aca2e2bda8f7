package ecs

import (
	"iter"
	"reflect"

	"github.com/kamstrup/intmap"
)

// Query wraps a View with a per-stage snapshot. Execute captures the matching
// entities and their components; iteration afterwards never observes
// structural changes made while iterating. Each Execute also diffs the new
// match set against the previous one.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	members          *intmap.Map[EntityId, struct{}]
	added            []EntityId
	removed          []EntityId
	cacheValid       bool

	prev    querySnapshot[T]
	pending bool
}

type querySnapshot[T any] struct {
	entities   []EntityId
	components []T
	members    *intmap.Map[EntityId, struct{}]
	added      []EntityId
	removed    []EntityId
	valid      bool
}

// NewQuery creates a new Query with archetype-level caching.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cachedEntities = nil
	q.cachedComponents = nil
	q.members = intmap.New[EntityId, struct{}](16)
	q.added = nil
	q.removed = nil
	q.cacheValid = false
	q.prev = querySnapshot[T]{}
	q.pending = false
}

// Types returns the component types this query reads
func (q *Query[T]) Types() []reflect.Type {
	return q.view.Types()
}

// Execute rebuilds the snapshot and the added/removed diff.
// Called automatically by the Scheduler before each stage runs.
func (q *Query[T]) Execute() {
	q.invalidateIfNeeded()
	q.ensureArchetypeCache()

	// everything is built into locals and committed at the end, so a panic
	// in a component accessor cannot leave a half-applied diff behind
	entities := make([]EntityId, 0, len(q.cachedEntities))
	components := make([]T, 0, len(q.cachedComponents))
	members := intmap.New[EntityId, struct{}](max(q.members.Len(), 16))
	var added []EntityId

	for _, archetype := range q.cachedArchetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			entities = append(entities, id)
			components = append(components, item)
			members.Put(id, struct{}{})
			if !q.hasMember(id) {
				added = append(added, id)
			}
		}
	}

	var removed []EntityId
	for _, id := range q.cachedEntities {
		if _, ok := members.Get(id); !ok {
			removed = append(removed, id)
		}
	}

	q.prev = q.snapshot()
	q.pending = true

	q.cachedEntities = entities
	q.cachedComponents = components
	q.members = members
	q.added = added
	q.removed = removed
	q.cacheValid = true
}

func (q *Query[T]) snapshot() querySnapshot[T] {
	return querySnapshot[T]{
		entities:   q.cachedEntities,
		components: q.cachedComponents,
		members:    q.members,
		added:      q.added,
		removed:    q.removed,
		valid:      q.cacheValid,
	}
}

// settle accepts the pending snapshot once its stage has completed
func (q *Query[T]) settle() {
	q.prev = querySnapshot[T]{}
	q.pending = false
}

// rollback restores the last settled snapshot, so entities added in a failed
// stage are reported as added again on the next Execute
func (q *Query[T]) rollback() {
	if !q.pending {
		return
	}
	q.cachedEntities = q.prev.entities
	q.cachedComponents = q.prev.components
	q.members = q.prev.members
	q.added = q.prev.added
	q.removed = q.prev.removed
	q.cacheValid = q.prev.valid
	q.settle()
}

func (q *Query[T]) invalidateIfNeeded() {
	// archetypes are never destroyed, so a changed count means new ones exist
	currentCount := len(q.storage.order)
	if currentCount != q.lastArchetypeCount {
		q.cachedArchetypes = nil
		q.lastArchetypeCount = currentCount
	}
}

func (q *Query[T]) ensureArchetypeCache() {
	if q.cachedArchetypes != nil {
		return
	}

	q.cachedArchetypes = make([]*Archetype, 0)
	for _, archetype := range q.storage.order {
		if q.view.matchesArchetype(archetype) {
			q.cachedArchetypes = append(q.cachedArchetypes, archetype)
		}
	}
}

func (q *Query[T]) mustBeExecuted(op string) {
	if !q.cacheValid {
		panic("Query." + op + "() called before Query.Execute()")
	}
}

// Iter returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.mustBeExecuted("Iter")

	entities, components := q.cachedEntities, q.cachedComponents
	return func(yield func(EntityId, T) bool) {
		for i := range entities {
			if !yield(entities[i], components[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called.
func (q *Query[T]) Values() iter.Seq[T] {
	q.mustBeExecuted("Values")

	components := q.cachedComponents
	return func(yield func(T) bool) {
		for i := range components {
			if !yield(components[i]) {
				return
			}
		}
	}
}

// Entities returns the matched entity ids of the last Execute
func (q *Query[T]) Entities() []EntityId {
	q.mustBeExecuted("Entities")
	return q.cachedEntities
}

// Len returns the number of matches of the last Execute
func (q *Query[T]) Len() int {
	return len(q.cachedEntities)
}

// First returns the first match of the last Execute
func (q *Query[T]) First() (EntityId, T, bool) {
	q.mustBeExecuted("First")
	if len(q.cachedEntities) == 0 {
		var zero T
		return 0, zero, false
	}
	return q.cachedEntities[0], q.cachedComponents[0], true
}

// Contains reports whether id matched at the last Execute
func (q *Query[T]) Contains(id EntityId) bool {
	return q.members != nil && q.hasMember(id)
}

// Added returns entities that match now but did not at the previous Execute
func (q *Query[T]) Added() []EntityId {
	return q.added
}

// Removed returns entities that matched at the previous Execute but no longer do
func (q *Query[T]) Removed() []EntityId {
	return q.removed
}

func (q *Query[T]) hasMember(id EntityId) bool {
	_, ok := q.members.Get(id)
	return ok
}
