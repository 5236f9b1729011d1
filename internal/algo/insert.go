package algo

import (
	"github.com/alexhholmes/btmap/internal/arena"
	"github.com/alexhholmes/btmap/internal/base"
)

// splitPoint is the index of the first entry that moves to the right node
// when a node holding Order entries is split. The entry just before it is
// promoted to the parent.
const splitPoint = (base.Order + 1) / 2

// Insert puts e at index idx of node h and splits overflowing nodes upward
// until a node absorbs the promoted entry or a new root is created.
func Insert[K, V any](nodes *arena.Arena[base.Node[K, V]], root, h arena.Handle, idx int, e base.Entry[K, V]) Effects {
	fx := Effects{Root: root}

	for {
		n := nodes.Get(h)
		n.InsertEntry(idx, e)
		if !n.IsOverflow() {
			return fx
		}

		median, rightH := Split(nodes, h)
		fx.Splits++

		if n.IsRoot() {
			// Allocate the new root first so the children can point at it
			newRoot := &base.Node[K, V]{
				Entries:  make([]base.Entry[K, V], 0, base.Order),
				Children: make([]arena.Handle, 0, base.Order+1),
			}
			rootH := nodes.Alloc(newRoot)
			newRoot.Entries = append(newRoot.Entries, median)
			newRoot.Children = append(newRoot.Children, h, rightH)
			newRoot.Reparent(nodes, rootH, 0)

			fx.Root = rootH
			fx.RootSplit = true
			return fx
		}

		parentH, pos := n.Parent, n.ParentIdx
		parent := nodes.Get(parentH)
		parent.InsertChild(pos+1, rightH)
		parent.Reparent(nodes, parentH, pos+1)

		// Continue one level up with the promoted entry
		h, idx, e = parentH, pos, median
	}
}

// Split divides the overflowing node h. Entries from splitPoint onward move
// to a new right node along with the matching children, the entry before
// splitPoint is returned as the median and h keeps the rest. The right
// node's parent link is left for the caller to establish.
func Split[K, V any](nodes *arena.Arena[base.Node[K, V]], h arena.Handle) (base.Entry[K, V], arena.Handle) {
	n := nodes.Get(h)

	right := &base.Node[K, V]{
		Entries: make([]base.Entry[K, V], 0, base.Order),
	}
	right.Entries = append(right.Entries, n.Entries[splitPoint:]...)
	median := n.Entries[splitPoint-1]

	// Zero the vacated tail so the left node does not pin moved values
	clear(n.Entries[splitPoint-1:])
	n.Entries = n.Entries[:splitPoint-1]

	rightH := nodes.Alloc(right)

	if !n.IsLeaf() {
		right.Children = make([]arena.Handle, 0, base.Order+1)
		right.Children = append(right.Children, n.Children[splitPoint:]...)
		clear(n.Children[splitPoint:])
		n.Children = n.Children[:splitPoint]
		right.Reparent(nodes, rightH, 0)
	}

	return median, rightH
}
