// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ordtrie

import "testing"

// checkInvariants walks m's trie and asserts its structural invariants
// hold: leaf suffixes strictly increasing, no leaf over compactMax
// entries, every bitmaskNode with at least two children, descendant
// counts accurate below the coalesce cap, and the leaf entry total
// matching the map's own size.
func checkInvariants[K Integer, V any](t *testing.T, m *Map[K, V]) {
	t.Helper()
	total := 0
	walkInvariants[V](t, m.root, &total)
	if total != m.size {
		t.Errorf("leaf entries summed to %d, Len() is %d", total, m.size)
	}
}

func walkInvariants[V any](t *testing.T, c child, total *int) {
	t.Helper()
	switch n := c.(type) {
	case nil:
		return

	case *bitmapLeaf[V]:
		var buf [256]uint8
		slots := n.values.AsSlice(buf[:0])
		for i := 1; i < len(slots); i++ {
			if slots[i] <= slots[i-1] {
				t.Errorf("bitmapLeaf suffixes not strictly increasing at %d", i)
			}
		}
		if n.values.Len() > compactMax {
			t.Errorf("bitmapLeaf has %d entries, over compactMax", n.values.Len())
		}
		*total += n.values.Len()

	case *compactLeaf[V]:
		for i := 1; i < len(n.suffixes); i++ {
			if n.suffixes[i] <= n.suffixes[i-1] {
				t.Errorf("compactLeaf suffixes not strictly increasing at %d", i)
			}
		}
		if len(n.suffixes) > compactMax {
			t.Errorf("compactLeaf has %d entries, over compactMax", len(n.suffixes))
		}
		*total += len(n.suffixes)

	case *bitmaskNode[V]:
		if n.children.Len() < 2 {
			t.Errorf("bitmaskNode has %d children, need at least 2", n.children.Len())
		}
		if n.descendants < coalesceCap {
			exact := n.descendantsExact()
			if n.descendants != exact {
				t.Errorf("descendants=%d, exact=%d", n.descendants, exact)
			}
		} else if n.descendantsExact() <= compactMax {
			t.Errorf("descendants capped but exact count %d <= compactMax", n.descendantsExact())
		}

		var buf [256]uint8
		for _, addr := range n.children.AsSlice(buf[:0]) {
			walkInvariants[V](t, n.children.MustGet(addr), total)
		}

	default:
		t.Fatalf("ordtrie: unreachable node shape in invariant walk")
	}
}
