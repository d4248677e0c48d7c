// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ordtrie

// eraseFrom removes ik from the subtree rooted at c, found at depth bytes
// into the key (totalBits total). It returns the (possibly nil, possibly
// restructured) child to store back in the caller's slot, and whether an
// entry was actually removed.
func eraseFrom[V any](c child, ik uint64, depth, totalBits int) (newChild child, erased bool) {
	switch n := c.(type) {
	case nil:
		return nil, false

	case *bitmapLeaf[V]:
		suf := uint8(residualSuffix(ik, totalBits, depth))
		empty, erased := n.erase(suf)
		if !erased {
			return n, false
		}
		if empty {
			return nil, true
		}
		return n, true

	case *compactLeaf[V]:
		suf := residualSuffix(ik, totalBits, depth)
		empty, erased := n.erase(suf)
		if !erased {
			return n, false
		}
		if empty {
			return nil, true
		}
		return n, true

	case *bitmaskNode[V]:
		if !n.matchesSkip(ik, depth) {
			return n, false
		}
		d := depth + len(n.skipPath)
		b := byteAt(ik, d)

		existing, has := n.children.Get(b)
		if !has {
			return n, false
		}

		newC, erased := eraseFrom[V](existing, ik, d+1, totalBits)
		if !erased {
			return n, false
		}

		if newC == nil {
			n.children.DeleteAt(b)
		} else {
			n.children.InsertAt(b, newC)
		}

		return shrinkBitmaskNode[V](n), true

	default:
		panic("ordtrie: unreachable node shape")
	}
}

// shrinkBitmaskNode applies the post-erase bookkeeping and structural
// transitions a bitmask-internal needs after one of its children lost an
// entry or disappeared: descendant-count maintenance, collapsing down to
// a single surviving child, and coalescing back into one leaf once the
// subtree is small enough.
func shrinkBitmaskNode[V any](n *bitmaskNode[V]) child {
	if n.descendants < coalesceCap {
		n.drop()
	} else {
		n.descendants = recomputeDescendants[V](n)
	}

	if n.children.Len() == 1 {
		return collapseSingleChild[V](n)
	}

	if n.descendants <= compactMax {
		return coalesceToLeaf[V](n)
	}

	return n
}

// recomputeDescendants sums the immediate children's own entry counts. It
// is O(number of direct children), not O(subtree size): a bitmaskNode
// child contributes its own (possibly capped) descendants field rather
// than being walked recursively, so a capped child keeps the parent capped
// too.
func recomputeDescendants[V any](n *bitmaskNode[V]) int {
	total := 0
	var buf [256]uint8
	for _, addr := range n.children.AsSlice(buf[:0]) {
		switch cc := n.children.MustGet(addr).(type) {
		case *bitmaskNode[V]:
			total += cc.descendants
		default:
			total += entriesOf[V](cc)
		}
		if total >= coalesceCap {
			return coalesceCap
		}
	}
	return total
}

// collapseSingleChild merges a bitmaskNode with exactly one remaining
// child into that child (a quiescent bitmask-internal always needs at
// least two), folding the dispatch byte plus n's own skip path in as a
// prefix the child must now account for.
func collapseSingleChild[V any](n *bitmaskNode[V]) child {
	var buf [256]uint8
	addrs := n.children.AsSlice(buf[:0])
	b := addrs[0]
	only := n.children.MustGet(b)

	prefix := make([]byte, 0, len(n.skipPath)+1)
	prefix = append(prefix, n.skipPath...)
	prefix = append(prefix, b)

	switch c := only.(type) {
	case *bitmaskNode[V]:
		c.absorbPrefix(prefix)
		return c
	case *compactLeaf[V]:
		c.prependPrefix(prefix)
		return c
	case *bitmapLeaf[V]:
		return c.widenWithPrefix(prefix)
	default:
		panic("ordtrie: unreachable node shape")
	}
}

// coalesceToLeaf rebuilds n's entire subtree as a single flat leaf once its
// descendant count has dropped to compactMax or below, reversing what
// splitLeafToBitmask does in the other direction. depth and totalBits are
// not needed: every descendant byte past n's own position is already
// present in the trie structure itself (skip paths and dispatch bytes), so
// the rebuilt leaf's suffix is assembled purely from that structure.
func coalesceToLeaf[V any](n *bitmaskNode[V]) child {
	var suffixes []uint64
	var values []V
	suffixBits := 0

	collectLeaf[V](n, 0, 0, &suffixes, &values, &suffixBits)

	if suffixBits == 8 {
		bl := &bitmapLeaf[V]{}
		for i, s := range suffixes {
			bl.values.InsertAt(uint8(s), values[i])
		}
		return bl
	}

	cl := &compactLeaf[V]{suffixBits: suffixBits, suffixes: suffixes, values: values}
	cl.rebuildIndex()
	return cl
}

// collectLeaf walks c's subtree in ascending order, appending every
// (relative suffix, value) pair to suffixes/values. acc accumulates the
// bytes resolved so far (skip paths and dispatch bytes, MSB-first), and
// bits records how many bits those resolved bytes make up; *outBits is set
// once, to the total suffix width of the flattened leaf.
func collectLeaf[V any](c child, bits int, acc uint64, suffixes *[]uint64, values *[]V, outBits *int) {
	switch n := c.(type) {
	case nil:
		return
	case *bitmapLeaf[V]:
		*outBits = bits + 8
		n.all(func(s uint8, v V) bool {
			*suffixes = append(*suffixes, acc<<8|uint64(s))
			*values = append(*values, v)
			return true
		})
	case *compactLeaf[V]:
		*outBits = bits + n.suffixBits
		n.all(func(s uint64, v V) bool {
			*suffixes = append(*suffixes, acc<<uint(n.suffixBits)|s)
			*values = append(*values, v)
			return true
		})
	case *bitmaskNode[V]:
		b := bits
		a := acc
		for _, sb := range n.skipPath {
			a = a<<8 | uint64(sb)
			b += 8
		}
		var buf [256]uint8
		for _, addr := range n.children.AsSlice(buf[:0]) {
			collectLeaf[V](n.children.MustGet(addr), b+8, a<<8|uint64(addr), suffixes, values, outBits)
		}
	default:
		panic("ordtrie: unreachable node shape")
	}
}
