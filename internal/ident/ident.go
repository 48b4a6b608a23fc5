// Package ident assigns integer identifiers to lists and todos.
package ident

// NextID returns one more than the largest id in items, or 1 when items is empty.
func NextID[T any](items []T, idOf func(T) int) int {
	highest := 0
	for _, item := range items {
		if id := idOf(item); id > highest {
			highest = id
		}
	}
	return highest + 1
}

// Allocator hands out ids for a single collection. It remembers the highest id it
// has issued so an id freed by a deletion is never handed out again.
type Allocator struct {
	last int
}

// Next returns the next id for a collection currently holding items.
func (a *Allocator) Next(existing []int) int {
	id := NextID(existing, func(v int) int { return v })
	if id <= a.last {
		id = a.last + 1
	}
	a.last = id
	return id
}

// Last returns the highest id issued so far (0 if none).
func (a *Allocator) Last() int {
	return a.last
}
