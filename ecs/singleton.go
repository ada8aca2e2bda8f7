package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton gives systems direct access to a single value that belongs to the
// storage rather than to any entity (input state, frame context, settings).
type Singleton[T any] struct {
	storage       *Storage
	componentPtr  unsafe.Pointer
	componentType reflect.Type
}

// NewSingleton creates a new Singleton accessor for the given storage.
// If the singleton does not exist yet it is created from initializer, or the
// zero value when no initializer is given.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	s := &Singleton[T]{}
	s.Init(storage)
	if s.componentPtr == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
		s.updateCache()
	}
	return s
}

// Init binds the accessor to storage. The Scheduler calls it for Singleton
// fields during system registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentType = reflect.TypeFor[T]()
	s.updateCache()
}

// Get returns a pointer to the singleton value, or nil if it was never added
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	if s.componentPtr == nil {
		return nil
	}
	return (*T)(s.componentPtr)
}

// Set stores value, creating the singleton if needed
func (s *Singleton[T]) Set(value T) {
	if ptr := s.Get(); ptr != nil {
		*ptr = value
		return
	}
	s.storage.AddSingleton(value)
	s.updateCache()
}

func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	entry := s.storage.getSingletonEntry(s.componentType)
	if entry != nil {
		s.componentPtr = entry.dataPtr
	} else {
		s.componentPtr = nil
	}
}

// Exists returns true if the singleton has been added to storage
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
