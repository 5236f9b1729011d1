package algo

import (
	"github.com/alexhholmes/btmap/internal/arena"
	"github.com/alexhholmes/btmap/internal/base"
)

// Remove deletes the entry at (h, idx), as located by Search, and rebalances
// the tree. Entries in internal nodes are replaced by their in-order
// successor so the physical removal always happens in a leaf.
func Remove[K, V any](nodes *arena.Arena[base.Node[K, V]], root, h arena.Handle, idx int) (base.Entry[K, V], Effects) {
	fx := Effects{Root: root}
	n := nodes.Get(h)

	var removed base.Entry[K, V]
	current := h
	if n.IsLeaf() {
		removed = n.RemoveEntry(idx)
	} else {
		leafH, _, _ := Successor(nodes, h, idx, false)
		succ := nodes.Get(leafH).RemoveEntry(0)
		removed = n.Entries[idx]
		n.Entries[idx] = succ
		current = leafH
	}

	rebalance(nodes, current, &fx)
	collapseRoot(nodes, &fx)
	return removed, fx
}

// rebalance fixes underflow from h upward. Borrowing ends the walk; merging
// takes an entry from the parent and may leave it underflowing in turn.
func rebalance[K, V any](nodes *arena.Arena[base.Node[K, V]], h arena.Handle, fx *Effects) {
	for {
		n := nodes.Get(h)
		if !n.IsUnderflow() || n.IsRoot() {
			return
		}

		parentH, pos := n.Parent, n.ParentIdx
		parent := nodes.Get(parentH)
		if len(parent.Entries) == 0 {
			return
		}

		hasRight := pos+1 < len(parent.Children)
		if hasRight && nodes.Get(parent.Children[pos+1]).HasSurplus() {
			borrowFromRight(nodes, parentH, pos)
			fx.BorrowsRight++
			return
		}
		if pos > 0 && nodes.Get(parent.Children[pos-1]).HasSurplus() {
			borrowFromLeft(nodes, parentH, pos)
			fx.BorrowsLeft++
			return
		}

		if hasRight {
			merge(nodes, parentH, pos)
		} else {
			merge(nodes, parentH, pos-1)
		}
		fx.Merges++
		h = parentH
	}
}

// borrowFromRight rotates one entry from children[pos+1] through the parent
// separator into children[pos].
func borrowFromRight[K, V any](nodes *arena.Arena[base.Node[K, V]], parentH arena.Handle, pos int) {
	parent := nodes.Get(parentH)
	nodeH, rightH := parent.Children[pos], parent.Children[pos+1]
	node, right := nodes.Get(nodeH), nodes.Get(rightH)

	// Separator comes down, sibling's first entry goes up
	node.Entries = append(node.Entries, parent.Entries[pos])
	parent.Entries[pos] = right.RemoveEntry(0)

	if !right.IsLeaf() {
		node.Children = append(node.Children, right.RemoveChild(0))
		node.Reparent(nodes, nodeH, len(node.Children)-1)
		right.Reparent(nodes, rightH, 0)
	}
}

// borrowFromLeft rotates one entry from children[pos-1] through the parent
// separator into children[pos].
func borrowFromLeft[K, V any](nodes *arena.Arena[base.Node[K, V]], parentH arena.Handle, pos int) {
	parent := nodes.Get(parentH)
	leftH, nodeH := parent.Children[pos-1], parent.Children[pos]
	left, node := nodes.Get(leftH), nodes.Get(nodeH)

	// Separator comes down, sibling's last entry goes up
	node.InsertEntry(0, parent.Entries[pos-1])
	parent.Entries[pos-1] = left.RemoveEntry(len(left.Entries) - 1)

	if !left.IsLeaf() {
		node.InsertChild(0, left.RemoveChild(len(left.Children)-1))
		node.Reparent(nodes, nodeH, 0)
	}
}

// merge folds children[pos+1] and the separator between them into
// children[pos] and frees the absorbed node.
func merge[K, V any](nodes *arena.Arena[base.Node[K, V]], parentH arena.Handle, pos int) {
	parent := nodes.Get(parentH)
	leftH, rightH := parent.Children[pos], parent.Children[pos+1]
	left, right := nodes.Get(leftH), nodes.Get(rightH)

	sep := parent.RemoveEntry(pos)
	parent.RemoveChild(pos + 1)
	parent.Reparent(nodes, parentH, pos+1)

	left.Entries = append(left.Entries, sep)
	left.Entries = append(left.Entries, right.Entries...)

	if !right.IsLeaf() {
		offset := len(left.Children)
		left.Children = append(left.Children, right.Children...)
		left.Reparent(nodes, leftH, offset)
	}

	nodes.Free(rightH)
}

// collapseRoot drops an empty internal root, promoting its only child.
func collapseRoot[K, V any](nodes *arena.Arena[base.Node[K, V]], fx *Effects) {
	root := nodes.Get(fx.Root)
	if len(root.Entries) > 0 || root.IsLeaf() {
		return
	}

	child := root.Children[0]
	promoted := nodes.Get(child)
	promoted.Parent = arena.Nil
	promoted.ParentIdx = 0

	nodes.Free(fx.Root)
	fx.Root = child
	fx.RootCollapse = true
}
