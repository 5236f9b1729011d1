package btmap

import (
	"iter"

	"github.com/alexhholmes/btmap/internal/algo"
	"github.com/alexhholmes/btmap/internal/arena"
	"github.com/alexhholmes/btmap/internal/base"
)

// cursor is a position in the tree plus a flag telling whether the entry at
// the position has been returned yet. A new cursor sits on the first entry
// of the leftmost leaf.
type cursor[K, V any] struct {
	tree    *Tree[K, V]
	node    arena.Handle
	idx     int
	fresh   bool // Position not yet returned
	done    bool
	version uint64
}

func (t *Tree[K, V]) newCursor() cursor[K, V] {
	return cursor[K, V]{
		tree:    t,
		node:    algo.Leftmost(t.nodes, t.root),
		fresh:   true,
		version: t.version,
	}
}

// next returns the entry at the current position and then advances past it.
func (c *cursor[K, V]) next() (*base.Entry[K, V], bool) {
	if c.done {
		return nil, false
	}
	if c.version != c.tree.version {
		panic(ErrTreeModified)
	}

	if c.fresh {
		c.fresh = false
		n := c.tree.nodes.Get(c.node)
		if len(n.Entries) == 0 {
			c.done = true
			return nil, false
		}
		return &n.Entries[0], true
	}

	h, i, ok := algo.Successor(c.tree.nodes, c.node, c.idx, false)
	if !ok {
		c.done = true
		return nil, false
	}
	c.node, c.idx = h, i
	return &c.tree.nodes.Get(h).Entries[i], true
}

// Iter yields the entries of a tree in ascending key order. It is lazy and
// single use; call Tree.Iter again to traverse again.
type Iter[K, V any] struct {
	c cursor[K, V]
}

// Iter returns an iterator positioned before the smallest key.
func (t *Tree[K, V]) Iter() *Iter[K, V] {
	return &Iter[K, V]{c: t.newCursor()}
}

// Next returns the next key and value, or false once the tree is exhausted.
// It panics with ErrTreeModified if keys were added to or removed from the
// tree after the iterator was created.
func (it *Iter[K, V]) Next() (K, V, bool) {
	e, ok := it.c.next()
	if !ok {
		var (
			zeroK K
			zeroV V
		)
		return zeroK, zeroV, false
	}
	return e.Key, e.Value, true
}

// IterMut is Iter with write access to the values. Keys cannot be changed
// since that could break the ordering.
type IterMut[K, V any] struct {
	c cursor[K, V]
}

// IterMut returns a mutable iterator positioned before the smallest key.
func (t *Tree[K, V]) IterMut() *IterMut[K, V] {
	return &IterMut[K, V]{c: t.newCursor()}
}

// Next returns the next key and a pointer to its value, or false once the
// tree is exhausted. The pointer stays valid until the next structural
// change to the tree.
func (it *IterMut[K, V]) Next() (K, *V, bool) {
	e, ok := it.c.next()
	if !ok {
		var zeroK K
		return zeroK, nil, false
	}
	return e.Key, &e.Value, true
}

// All returns a range-over-func sequence of the entries in ascending order.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := t.Iter()
		for k, v, ok := it.Next(); ok; k, v, ok = it.Next() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Keys returns a range-over-func sequence of the keys in ascending order.
func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.All() {
			if !yield(k) {
				return
			}
		}
	}
}
