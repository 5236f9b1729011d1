// Package algo contains the algorithms used for traversing and editing the
// b-tree: descent, insert with split, delete with borrow/merge, successor
// traversal and the invariant validator.
package algo

import (
	"github.com/alexhholmes/btmap/internal/arena"
	"github.com/alexhholmes/btmap/internal/base"
)

// Compare orders keys. It returns a negative number when a < b, zero when
// they are equal and a positive number when a > b.
type Compare[K any] func(a, b K) int

// Result is the outcome of a descent. When Found is set, Node holds the key
// at Index. Otherwise Node is the leaf the key belongs in and Index is its
// insertion position.
type Result struct {
	Node  arena.Handle
	Index int
	Found bool
}

// FindIndex returns the index of the first entry whose key is >= key, and
// whether that entry is an exact match. Nodes hold at most Order entries so
// a linear scan beats binary search here.
func FindIndex[K, V any](n *base.Node[K, V], key K, cmp Compare[K]) (int, bool) {
	for i := range n.Entries {
		c := cmp(n.Entries[i].Key, key)
		if c >= 0 {
			return i, c == 0
		}
	}
	return len(n.Entries), false
}

// Search descends from root looking for key.
func Search[K, V any](nodes *arena.Arena[base.Node[K, V]], root arena.Handle, key K, cmp Compare[K]) Result {
	h := root
	for {
		n := nodes.Get(h)
		idx, found := FindIndex(n, key, cmp)
		if found {
			return Result{Node: h, Index: idx, Found: true}
		}
		if n.IsLeaf() {
			return Result{Node: h, Index: idx}
		}
		h = n.Children[idx]
	}
}
