package base

import (
	"slices"

	"github.com/alexhholmes/btmap/internal/arena"
)

const (
	// Order is the fan-out of the tree: the maximum number of children of an
	// internal node.
	Order = 5
	// MaxEntries is the most entries a node keeps after an operation completes.
	// A node reaching Order entries mid-insert is split immediately.
	MaxEntries = Order - 1
	// MinEntries is the minimum entries for non-root nodes, ceil(Order/2)-1.
	MinEntries = (Order+1)/2 - 1
)

// Entry is one key/value pair stored in the tree
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Node is a B-tree node. Leaves have no children; internal nodes always have
// len(Entries)+1 children. Parent is arena.Nil for the root, otherwise the
// node sits at Parent.Children[ParentIdx].
type Node[K, V any] struct {
	Entries  []Entry[K, V]
	Children []arena.Handle

	Parent    arena.Handle
	ParentIdx int
}

// NewLeaf returns an empty leaf sized for a full node plus the overflow entry.
func NewLeaf[K, V any]() *Node[K, V] {
	return &Node[K, V]{
		Entries: make([]Entry[K, V], 0, Order),
	}
}

// IsLeaf reports whether the node has no children
func (n *Node[K, V]) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsRoot reports whether the node has no parent
func (n *Node[K, V]) IsRoot() bool {
	return n.Parent.IsNil()
}

// IsOverflow reports whether the node must be split
func (n *Node[K, V]) IsOverflow() bool {
	return len(n.Entries) >= Order
}

// IsUnderflow checks if node has too few entries (doesn't apply to root)
func (n *Node[K, V]) IsUnderflow() bool {
	return len(n.Entries) < MinEntries
}

// HasSurplus reports whether the node can lend an entry to a sibling
func (n *Node[K, V]) HasSurplus() bool {
	return len(n.Entries) > MinEntries
}

// InsertEntry inserts e at index i.
func (n *Node[K, V]) InsertEntry(i int, e Entry[K, V]) {
	n.Entries = slices.Insert(n.Entries, i, e)
}

// RemoveEntry removes and returns the entry at index i.
func (n *Node[K, V]) RemoveEntry(i int) Entry[K, V] {
	e := n.Entries[i]
	n.Entries = slices.Delete(n.Entries, i, i+1)
	return e
}

// InsertChild inserts child h at index i. Back-references are the caller's
// job, see Reparent.
func (n *Node[K, V]) InsertChild(i int, h arena.Handle) {
	n.Children = slices.Insert(n.Children, i, h)
}

// RemoveChild removes and returns the child at index i.
func (n *Node[K, V]) RemoveChild(i int) arena.Handle {
	h := n.Children[i]
	n.Children = slices.Delete(n.Children, i, i+1)
	return h
}

// Reparent rewrites the back-reference of every child from index from
// onwards so that child i points at (self, i).
func (n *Node[K, V]) Reparent(nodes *arena.Arena[Node[K, V]], self arena.Handle, from int) {
	for i := from; i < len(n.Children); i++ {
		child := nodes.Get(n.Children[i])
		child.Parent = self
		child.ParentIdx = i
	}
}
