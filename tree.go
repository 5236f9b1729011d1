// Package btmap is an in-memory ordered map backed by a B-tree of order 5.
//
// A Tree supports point lookups, upserts, deletes with rebalancing and
// ascending iteration. It has no internal locking: callers must not mutate a
// tree concurrently with any other use of it, and must not insert new keys
// or remove keys while an iterator over it is in use.
package btmap

import (
	"cmp"
	"fmt"

	"github.com/alexhholmes/btmap/internal/algo"
	"github.com/alexhholmes/btmap/internal/arena"
	"github.com/alexhholmes/btmap/internal/base"
)

// Order is the maximum number of children of an internal node.
const Order = base.Order

// Tree is an ordered map from K to V.
type Tree[K, V any] struct {
	nodes *arena.Arena[base.Node[K, V]] // Owns every node of the tree
	root  arena.Handle
	cmp   algo.Compare[K]

	// version changes whenever a key is added or removed, which is what
	// invalidates iterators
	version uint64

	opts  Options
	stats stats
}

// New creates an empty tree ordered by the natural order of K.
func New[K cmp.Ordered, V any](options ...Option) *Tree[K, V] {
	return NewFunc[K, V](cmp.Compare[K], options...)
}

// NewFunc creates an empty tree ordered by compare, which must return a
// negative number when a < b, zero when a == b and a positive number when
// a > b, and must describe a strict total order.
func NewFunc[K, V any](compare func(a, b K) int, options ...Option) *Tree[K, V] {
	if compare == nil {
		panic("btmap: nil compare function")
	}

	// Apply options
	opts := defaultOptions()
	for _, opt := range options {
		opt(&opts)
	}

	t := &Tree[K, V]{
		nodes: arena.New[base.Node[K, V]](opts.initialCapacity),
		cmp:   compare,
		opts:  opts,
	}
	t.reset()
	return t
}

// reset installs a single empty leaf as the root.
func (t *Tree[K, V]) reset() {
	t.root = t.nodes.Alloc(base.NewLeaf[K, V]())
	t.stats.len.Store(0)
	t.stats.height.Store(1)
	t.stats.nodes.Store(1)
}

// Get returns the value stored under key.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	r := algo.Search(t.nodes, t.root, key, t.cmp)
	if !r.Found {
		var zero V
		return zero, false
	}
	return t.nodes.Get(r.Node).Entries[r.Index].Value, true
}

// GetMut returns a pointer to the value stored under key, allowing it to be
// updated in place. The pointer is valid until the next Insert of a new key,
// Remove or Clear.
func (t *Tree[K, V]) GetMut(key K) (*V, bool) {
	r := algo.Search(t.nodes, t.root, key, t.cmp)
	if !r.Found {
		return nil, false
	}
	return &t.nodes.Get(r.Node).Entries[r.Index].Value, true
}

// Contains reports whether key is present.
func (t *Tree[K, V]) Contains(key K) bool {
	return algo.Search(t.nodes, t.root, key, t.cmp).Found
}

// Insert stores value under key. If key was already present its value is
// replaced and the previous value is returned with true; the tree's shape
// does not change in that case.
func (t *Tree[K, V]) Insert(key K, value V) (V, bool) {
	r := algo.Search(t.nodes, t.root, key, t.cmp)
	if r.Found {
		e := &t.nodes.Get(r.Node).Entries[r.Index]
		old := e.Value
		e.Value = value
		return old, true
	}

	fx := algo.Insert(t.nodes, t.root, r.Node, r.Index, base.Entry[K, V]{Key: key, Value: value})
	t.stats.len.Add(1)
	t.apply(fx)

	var zero V
	return zero, false
}

// Remove deletes key and returns the stored key and value.
func (t *Tree[K, V]) Remove(key K) (K, V, bool) {
	r := algo.Search(t.nodes, t.root, key, t.cmp)
	if !r.Found {
		var (
			zeroK K
			zeroV V
		)
		return zeroK, zeroV, false
	}

	e, fx := algo.Remove(t.nodes, t.root, r.Node, r.Index)
	t.stats.len.Add(-1)
	t.apply(fx)
	return e.Key, e.Value, true
}

// apply installs the root produced by a structural change and records it.
func (t *Tree[K, V]) apply(fx algo.Effects) {
	t.root = fx.Root
	t.version++
	t.stats.record(fx)
	t.stats.nodes.Store(int64(t.nodes.Len()))

	if fx.RootSplit {
		t.opts.logger.Info("root split", "height", t.stats.height.Load(), "len", t.stats.len.Load())
	}
	if fx.RootCollapse {
		t.opts.logger.Info("root collapsed", "height", t.stats.height.Load(), "len", t.stats.len.Load())
	}

	if t.opts.checkInvariants {
		if err := t.Check(); err != nil {
			t.opts.logger.Error("invariant check failed", "error", err)
			panic(err)
		}
	}
}

// Clear removes every key. Cumulative split/merge counters are kept.
func (t *Tree[K, V]) Clear() {
	t.nodes.Reset()
	t.version++
	t.reset()
}

// Len returns the number of keys in the tree.
func (t *Tree[K, V]) Len() int {
	return int(t.stats.len.Load())
}

// Height returns the number of levels, 1 when the root is a leaf.
func (t *Tree[K, V]) Height() int {
	return int(t.stats.height.Load())
}

// Stats returns a snapshot of the tree's counters. It is safe to call from
// any goroutine.
func (t *Tree[K, V]) Stats() Stats {
	return t.stats.snapshot()
}

// Levels returns the keys of every node grouped by depth, root first, nodes
// left to right.
func (t *Tree[K, V]) Levels() [][][]K {
	return algo.Levels(t.nodes, t.root)
}

// Check walks the whole tree and validates its structural invariants: key
// order, node entry bounds, child counts, uniform leaf depth and parent
// back-references. It also cross-checks the cached length, height and node
// count. Errors wrap ErrCorruption.
func (t *Tree[K, V]) Check() error {
	st, err := algo.Check(t.nodes, t.root, t.cmp)
	if err != nil {
		return err
	}

	switch {
	case st.Entries != t.Len():
		return fmt.Errorf("%w: found %d entries, length says %d", ErrCorruption, st.Entries, t.Len())
	case st.Height != t.Height():
		return fmt.Errorf("%w: found height %d, recorded %d", ErrCorruption, st.Height, t.Height())
	case st.Nodes != t.nodes.Len():
		return fmt.Errorf("%w: %d nodes reachable, %d allocated", ErrCorruption, st.Nodes, t.nodes.Len())
	}
	return nil
}
