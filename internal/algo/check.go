package algo

import (
	"fmt"

	"github.com/alexhholmes/btmap/internal/arena"
	"github.com/alexhholmes/btmap/internal/base"
)

// Stats summarises the shape of a tree as found by Check.
type Stats struct {
	Entries int
	Nodes   int
	Height  int // Levels, 1 for a lone leaf root
}

type frame[K any] struct {
	h      arena.Handle
	parent arena.Handle
	pos    int
	depth  int

	// Exclusive key bounds inherited from ancestor separators
	lo, hi       K
	hasLo, hasHi bool
}

// Check validates every structural invariant of the tree under root:
// strictly ascending keys within and across nodes, entry count bounds on
// non-root nodes, children = entries + 1 on internal nodes, equal leaf depth
// and exact parent back-references. Violations wrap base.ErrCorruption.
func Check[K, V any](nodes *arena.Arena[base.Node[K, V]], root arena.Handle, cmp Compare[K]) (Stats, error) {
	var st Stats
	if !nodes.Valid(root) {
		return st, fmt.Errorf("%w: root handle %s is not live", base.ErrCorruption, root)
	}

	leafDepth := -1
	stack := []frame[K]{{h: root, parent: arena.Nil}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !nodes.Valid(f.h) {
			return st, fmt.Errorf("%w: child %d of %s is a dangling handle %s",
				base.ErrCorruption, f.pos, f.parent, f.h)
		}
		n := nodes.Get(f.h)
		st.Nodes++
		st.Entries += len(n.Entries)

		if n.Parent != f.parent || (!f.parent.IsNil() && n.ParentIdx != f.pos) {
			return st, fmt.Errorf("%w: node %s has parent (%s, %d), expected (%s, %d)",
				base.ErrCorruption, f.h, n.Parent, n.ParentIdx, f.parent, f.pos)
		}

		if !f.parent.IsNil() {
			if len(n.Entries) < base.MinEntries || len(n.Entries) > base.MaxEntries {
				return st, fmt.Errorf("%w: node %s holds %d entries, want [%d, %d]",
					base.ErrCorruption, f.h, len(n.Entries), base.MinEntries, base.MaxEntries)
			}
		} else if len(n.Entries) > base.MaxEntries {
			return st, fmt.Errorf("%w: root %s holds %d entries, max %d",
				base.ErrCorruption, f.h, len(n.Entries), base.MaxEntries)
		} else if len(n.Entries) == 0 && !n.IsLeaf() {
			return st, fmt.Errorf("%w: internal root %s has no entries", base.ErrCorruption, f.h)
		}

		for i := range n.Entries {
			k := n.Entries[i].Key
			if i > 0 && cmp(n.Entries[i-1].Key, k) >= 0 {
				return st, fmt.Errorf("%w: node %s entries %d and %d out of order",
					base.ErrCorruption, f.h, i-1, i)
			}
			if (f.hasLo && cmp(k, f.lo) <= 0) || (f.hasHi && cmp(k, f.hi) >= 0) {
				return st, fmt.Errorf("%w: node %s entry %d outside the range of its parent separators",
					base.ErrCorruption, f.h, i)
			}
		}

		if n.IsLeaf() {
			if leafDepth == -1 {
				leafDepth = f.depth
			} else if leafDepth != f.depth {
				return st, fmt.Errorf("%w: leaf %s at depth %d, other leaves at depth %d",
					base.ErrCorruption, f.h, f.depth, leafDepth)
			}
			continue
		}

		if len(n.Children) != len(n.Entries)+1 {
			return st, fmt.Errorf("%w: node %s has %d children for %d entries",
				base.ErrCorruption, f.h, len(n.Children), len(n.Entries))
		}
		for i, child := range n.Children {
			cf := f
			cf.h, cf.parent, cf.pos, cf.depth = child, f.h, i, f.depth+1
			if i > 0 {
				cf.lo, cf.hasLo = n.Entries[i-1].Key, true
			}
			if i < len(n.Entries) {
				cf.hi, cf.hasHi = n.Entries[i].Key, true
			}
			stack = append(stack, cf)
		}
	}

	st.Height = leafDepth + 1
	return st, nil
}
