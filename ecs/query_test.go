package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/hexview/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movable = struct {
	*Position
	*Velocity
}

func TestQueryIterBeforeExecutePanics(t *testing.T) {
	query := ecs.NewQuery[movable](ecs.NewStorage(newTestRegistry()))
	assert.Panics(t, func() { query.Iter() })
	assert.Panics(t, func() { query.Values() })
	assert.Panics(t, func() { query.First() })
}

func TestQueryAddedRemoved(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[movable](storage)

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Position{})

	query.Execute()
	assert.Equal(t, []ecs.EntityId{a}, query.Added())
	assert.Empty(t, query.Removed())
	assert.Equal(t, 1, query.Len())

	// unchanged membership yields empty diffs
	query.Execute()
	assert.Empty(t, query.Added())
	assert.Empty(t, query.Removed())

	storage.AddComponent(b, Velocity{})
	storage.RemoveComponent(a, reflect.TypeFor[Velocity]())

	query.Execute()
	assert.Equal(t, []ecs.EntityId{b}, query.Added())
	assert.Equal(t, []ecs.EntityId{a}, query.Removed())
	assert.True(t, query.Contains(b))
	assert.False(t, query.Contains(a))

	storage.Delete(b)
	query.Execute()
	assert.Empty(t, query.Added())
	assert.Equal(t, []ecs.EntityId{b}, query.Removed())
	assert.Equal(t, 0, query.Len())
}

func TestQueryIdStableAcrossArchetypeMoves(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[movable](storage)

	id := storage.Spawn(Position{}, Velocity{})
	query.Execute()
	require.Equal(t, []ecs.EntityId{id}, query.Added())

	// moving to another archetype is not a membership change
	storage.AddComponent(id, Marker{})
	query.Execute()
	assert.Empty(t, query.Added())
	assert.Empty(t, query.Removed())
	assert.Equal(t, []ecs.EntityId{id}, query.Entities())
}

func TestQuerySnapshot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[movable](storage)

	storage.Spawn(Position{X: 1}, Velocity{})
	query.Execute()

	// spawning during iteration does not change the iteration's membership
	visited := 0
	for range query.Iter() {
		visited++
		storage.Spawn(Position{X: 2}, Velocity{})
	}
	assert.Equal(t, 1, visited)

	query.Execute()
	assert.Equal(t, 2, query.Len())
}

func TestQueryFirstAndValues(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[movable](storage)

	query.Execute()
	_, _, ok := query.First()
	assert.False(t, ok)

	first := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2}, Velocity{DX: 1})

	query.Execute()
	id, item, ok := query.First()
	require.True(t, ok)
	assert.Equal(t, first, id)
	assert.Equal(t, float32(1), item.Position.X)

	for item := range query.Values() {
		item.Position.X += item.Velocity.DX
	}
	assert.Equal(t, float32(2), ecs.Get[Position](storage, first).X)
}

func TestQueryTypes(t *testing.T) {
	query := ecs.NewQuery[movable](ecs.NewStorage(newTestRegistry()))
	assert.Equal(t, []reflect.Type{reflect.TypeFor[Position](), reflect.TypeFor[Velocity]()}, query.Types())
}
