package ecs

import "reflect"

// Commands buffers structural changes so that systems never reshape the
// storage they are iterating. A buffer belongs to one Storage and is applied
// by Flush, which the Scheduler calls after every stage.
type Commands struct {
	storage *Storage
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

// NewCommands creates an empty buffer bound to storage
func NewCommands(storage *Storage) *Commands {
	return &Commands{storage: storage}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	entity     EntityId
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues a function to run after all structural changes of the flush
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn reserves an entity id right away and queues its components. The id
// may be used in further commands of the same buffer.
func (c *Commands) Spawn(components ...any) EntityId {
	id := c.storage.Reserve()
	c.spawns = append(c.spawns, spawnCommand{entity: id, components: components})
	return id
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// PendingAdd reports whether an addition of compType to entity is queued
func (c *Commands) PendingAdd(entity EntityId, compType reflect.Type) bool {
	for _, cmd := range c.adds {
		if cmd.entity == entity && componentType(cmd.component) == compType {
			return true
		}
	}
	return false
}

// Len returns the number of queued commands
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies spawns, deletes, removes, adds and defers in that order and
// resets the buffer. Removes and adds aimed at entities that are no longer
// alive (for example deleted earlier in the same flush) are dropped.
func (c *Commands) Flush() {
	storage := c.storage

	for _, cmd := range c.spawns {
		switch {
		case !storage.Alive(cmd.entity):
		case storage.ComponentTypes(cmd.entity) == nil:
			storage.Place(cmd.entity, cmd.components...)
		default:
			for _, comp := range cmd.components {
				storage.AddComponent(cmd.entity, comp)
			}
		}
	}

	for _, cmd := range c.deletes {
		storage.Delete(cmd)
	}

	for _, cmd := range c.removes {
		if storage.Alive(cmd.entity) {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if storage.Alive(cmd.entity) {
			storage.AddComponent(cmd.entity, cmd.component)
		}
	}

	defers := c.defers
	c.reset()

	for _, df := range defers {
		df.fn()
	}
}

// Discard drops every queued command and releases ids reserved by Spawn
func (c *Commands) Discard() {
	for _, cmd := range c.spawns {
		c.storage.Delete(cmd.entity)
	}
	c.reset()
}

func (c *Commands) reset() {
	clear(c.spawns)
	clear(c.adds)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = nil
}
