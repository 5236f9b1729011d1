package algo

import (
	"github.com/alexhholmes/btmap/internal/arena"
	"github.com/alexhholmes/btmap/internal/base"
)

// Successor returns the position of the entry that follows a position in
// ascending key order. With childSlot unset, (h, idx) names an entry. With
// childSlot set it names the gap before entry idx, i.e. children[idx], whose
// subtree has been fully visited. ok is false past the last entry of the
// tree.
func Successor[K, V any](nodes *arena.Arena[base.Node[K, V]], h arena.Handle, idx int, childSlot bool) (arena.Handle, int, bool) {
	n := nodes.Get(h)

	if !childSlot {
		if !n.IsLeaf() {
			return Leftmost(nodes, n.Children[idx+1]), 0, true
		}
		if idx+1 < len(n.Entries) {
			return h, idx + 1, true
		}
		idx++
	}

	// Climb until some ancestor has an entry right of the finished subtree
	for idx >= len(n.Entries) {
		if n.IsRoot() {
			return arena.Nil, 0, false
		}
		h, idx = n.Parent, n.ParentIdx
		n = nodes.Get(h)
	}
	return h, idx, true
}

// Leftmost follows first children from h down to a leaf.
func Leftmost[K, V any](nodes *arena.Arena[base.Node[K, V]], h arena.Handle) arena.Handle {
	for n := nodes.Get(h); !n.IsLeaf(); n = nodes.Get(h) {
		h = n.Children[0]
	}
	return h
}
