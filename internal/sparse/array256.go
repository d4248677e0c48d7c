// Package sparse implements a popcount-compressed sparse array over a
// fixed 256-slot domain: a presence bitmap plus a dense payload slice in
// set-bit order. It backs the trie's bitmap leaves and bitmask-internal
// nodes; compact leaves use plain sorted slices instead.
package sparse

import (
	"github.com/glennteitelbaum/ordtrie/internal/bitset"
)

// Array256 maps a subset of [0..255] to payloads of type T, storing only
// the occupied slots.
type Array256[T any] struct {
	bitset.Set256
	Items []T
}

// Get returns the value at i and whether it is present.
func (a *Array256[T]) Get(i uint8) (value T, ok bool) {
	if a.Test(i) {
		return a.Items[a.Rank0(i)], true
	}
	return
}

// MustGet returns the value at i. The caller must have already confirmed
// presence with Test; calling it on an absent slot returns the value of
// the nearest lower occupied slot, or panics with an index out of range
// if no lower slot is occupied.
func (a *Array256[T]) MustGet(i uint8) T {
	return a.Items[a.Rank0(i)]
}

// Len returns the number of occupied slots.
func (a *Array256[T]) Len() int {
	return len(a.Items)
}

// InsertAt stores value at i, overwriting and reporting true if already
// occupied.
func (a *Array256[T]) InsertAt(i uint8, value T) (existed bool) {
	if a.Test(i) {
		a.Items[a.Rank0(i)] = value
		return true
	}

	a.Set256.Set(i)
	a.insertItem(a.Rank0(i), value)
	return false
}

// DeleteAt removes the value at i, if present.
func (a *Array256[T]) DeleteAt(i uint8) (value T, existed bool) {
	if !a.Test(i) {
		return
	}

	rank0 := a.Rank0(i)
	value = a.Items[rank0]

	a.deleteItem(rank0)
	a.Set256.Clear(i)

	return value, true
}

// insertItem inserts item at slice index i, shifting the tail right.
func (a *Array256[T]) insertItem(i int, item T) {
	if len(a.Items) < cap(a.Items) {
		a.Items = a.Items[:len(a.Items)+1]
	} else {
		var zero T
		a.Items = append(a.Items, zero)
	}

	copy(a.Items[i+1:], a.Items[i:])
	a.Items[i] = item
}

// deleteItem removes the slice item at index i, shifting the tail left.
func (a *Array256[T]) deleteItem(i int) {
	var zero T

	copy(a.Items[i:], a.Items[i+1:])

	nl := len(a.Items) - 1
	a.Items[nl] = zero
	a.Items = a.Items[:nl]
}
