// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ordtrie

import "iter"

// Map is an ordered associative map keyed by a fixed-width integer type K,
// holding values of any type V. It is implemented as a 256-way digital
// radix trie over K's internal key representation (see doc.go), giving
// O(key width / 8) point operations and keys in ascending numeric order
// regardless of insertion order.
//
// The zero value is an empty, ready-to-use Map.
//
// A Map is not safe for concurrent use without external synchronization.
type Map[K Integer, V any] struct {
	root  child
	size  int
	width int // cached keyWidth[K]() * 8, fixed for the life of the Map
}

func (m *Map[K, V]) totalBits() int {
	if m.width == 0 {
		m.width = keyWidth[K]() * 8
	}
	return m.width
}

// Insert adds k/v only if k is absent, reporting whether it was added.
func (m *Map[K, V]) Insert(k K, v V) (inserted bool) {
	ik := toInternalKey(k)
	newRoot, wasNew, applied := insertInto[V](m.root, ik, 0, m.totalBits(), v, policyInsertOnly)
	m.root = newRoot
	if wasNew {
		m.size++
	}
	return applied
}

// InsertOrAssign sets k to v, inserting it if absent, reporting whether it
// was newly inserted.
func (m *Map[K, V]) InsertOrAssign(k K, v V) (inserted bool) {
	ik := toInternalKey(k)
	newRoot, wasNew, _ := insertInto[V](m.root, ik, 0, m.totalBits(), v, policyInsertOrAssign)
	m.root = newRoot
	if wasNew {
		m.size++
	}
	return wasNew
}

// Assign overwrites k's value only if k is present, reporting whether it
// overwrote anything.
func (m *Map[K, V]) Assign(k K, v V) (overwrote bool) {
	ik := toInternalKey(k)
	newRoot, _, applied := insertInto[V](m.root, ik, 0, m.totalBits(), v, policyAssignOnly)
	m.root = newRoot
	return applied
}

// Erase removes k, reporting whether it was present.
func (m *Map[K, V]) Erase(k K) bool {
	ik := toInternalKey(k)
	newRoot, erased := eraseFrom[V](m.root, ik, 0, m.totalBits())
	if erased {
		m.root = newRoot
		m.size--
	}
	return erased
}

// Find returns k's value and whether it is present.
func (m *Map[K, V]) Find(k K) (V, bool) {
	ik := toInternalKey(k)
	return findIn[V](m.root, ik, 0, m.totalBits())
}

// Contains reports whether k is present.
func (m *Map[K, V]) Contains(k K) bool {
	_, ok := m.Find(k)
	return ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.size }

// IsEmpty reports whether the map holds no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.size == 0 }

// Clear removes every entry.
func (m *Map[K, V]) Clear() {
	m.root = nil
	m.size = 0
}

// Min returns the smallest key and its value.
func (m *Map[K, V]) Min() (k K, v V, ok bool) {
	ik, v, ok := minOf[V](m.root, 0, m.totalBits(), 0)
	if !ok {
		return k, v, false
	}
	return fromInternalKey[K](ik), v, true
}

// Max returns the largest key and its value.
func (m *Map[K, V]) Max() (k K, v V, ok bool) {
	ik, v, ok := maxOf[V](m.root, 0, m.totalBits(), 0)
	if !ok {
		return k, v, false
	}
	return fromInternalKey[K](ik), v, true
}

// LowerBound returns the smallest present key >= k.
func (m *Map[K, V]) LowerBound(k K) (K, V, bool) {
	if v, ok := m.Find(k); ok {
		return k, v, true
	}
	ik := toInternalKey(k)
	rik, v, ok := succFrom[V](m.root, ik, 0, m.totalBits(), 0)
	if !ok {
		var zero K
		return zero, v, false
	}
	return fromInternalKey[K](rik), v, true
}

// UpperBound returns the smallest present key > k.
func (m *Map[K, V]) UpperBound(k K) (K, V, bool) {
	ik := toInternalKey(k)
	rik, v, ok := succFrom[V](m.root, ik, 0, m.totalBits(), 0)
	if !ok {
		var zero K
		return zero, v, false
	}
	return fromInternalKey[K](rik), v, true
}

// All returns an ascending iterator over every entry.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		walkAsc[V](m.root, m.totalBits(), 0, 0, func(ik uint64, v V) bool {
			return yield(fromInternalKey[K](ik), v)
		})
	}
}

// Descend returns a descending iterator over every entry.
func (m *Map[K, V]) Descend() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		walkDesc[V](m.root, m.totalBits(), 0, 0, func(ik uint64, v V) bool {
			return yield(fromInternalKey[K](ik), v)
		})
	}
}

// Range returns an ascending iterator over every entry whose key lies in
// [lo, hi]. If lo > hi the iterator yields nothing.
func (m *Map[K, V]) Range(lo, hi K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if lo > hi {
			return
		}
		hik := toInternalKey(hi)

		k, v, ok := m.LowerBound(lo)
		for ok {
			ik := toInternalKey(k)
			if ik > hik {
				return
			}
			if !yield(k, v) {
				return
			}
			k, v, ok = m.UpperBound(k)
		}
	}
}

// findIn is the non-mutating descent shared by Find and Contains.
func findIn[V any](c child, ik uint64, depth, totalBits int) (V, bool) {
	switch n := c.(type) {
	case nil:
		var zero V
		return zero, false
	case *bitmapLeaf[V]:
		return n.find(uint8(residualSuffix(ik, totalBits, depth)))
	case *compactLeaf[V]:
		return n.get(residualSuffix(ik, totalBits, depth))
	case *bitmaskNode[V]:
		if !n.matchesSkip(ik, depth) {
			var zero V
			return zero, false
		}
		d := depth + len(n.skipPath)
		b := byteAt(ik, d)
		existing, has := n.children.Get(b)
		if !has {
			var zero V
			return zero, false
		}
		return findIn[V](existing, ik, d+1, totalBits)
	default:
		panic("ordtrie: unreachable node shape")
	}
}
