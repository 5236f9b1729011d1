package algo

import "github.com/alexhholmes/btmap/internal/arena"

// Effects reports the structural work done by one insert or remove.
type Effects struct {
	Splits       int
	Merges       int
	BorrowsLeft  int
	BorrowsRight int

	// Root is the tree's root after the operation. RootSplit and
	// RootCollapse tell whether it changed and in which direction.
	Root         arena.Handle
	RootSplit    bool
	RootCollapse bool
}
