package ecs

import "iter"

// iComponentStorage is an interface for a type-erased component storage.
// All storages of one archetype are mutated in lockstep, so a row index is
// valid across every column.
type iComponentStorage interface {
	Append(item any) int
	Set(index int, item any) bool
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Compact() map[int]int
	Iter() iter.Seq[int]
}
