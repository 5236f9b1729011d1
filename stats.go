package btmap

import (
	"sync/atomic"

	"github.com/alexhholmes/btmap/internal/algo"
)

// Stats is a point-in-time snapshot of a tree's size and the structural work
// it has done since it was created.
type Stats struct {
	Len    int // Number of keys
	Height int // Levels, 1 for a single leaf
	Nodes  int // Live nodes

	Splits        uint64 // Node splits, including root splits
	RootSplits    uint64 // Splits that grew the tree by one level
	Merges        uint64
	BorrowsLeft   uint64
	BorrowsRight  uint64
	RootCollapses uint64 // Merges that shrank the tree by one level
}

// stats holds the live counters. They are atomics so Stats may be read from
// another goroutine (a metrics scrape) while the owner mutates the tree.
type stats struct {
	len    atomic.Int64
	height atomic.Int64
	nodes  atomic.Int64

	splits        atomic.Uint64
	rootSplits    atomic.Uint64
	merges        atomic.Uint64
	borrowsLeft   atomic.Uint64
	borrowsRight  atomic.Uint64
	rootCollapses atomic.Uint64
}

func (s *stats) record(fx algo.Effects) {
	if fx.Splits > 0 {
		s.splits.Add(uint64(fx.Splits))
	}
	if fx.Merges > 0 {
		s.merges.Add(uint64(fx.Merges))
	}
	if fx.BorrowsLeft > 0 {
		s.borrowsLeft.Add(uint64(fx.BorrowsLeft))
	}
	if fx.BorrowsRight > 0 {
		s.borrowsRight.Add(uint64(fx.BorrowsRight))
	}
	if fx.RootSplit {
		s.rootSplits.Add(1)
		s.height.Add(1)
	}
	if fx.RootCollapse {
		s.rootCollapses.Add(1)
		s.height.Add(-1)
	}
}

func (s *stats) snapshot() Stats {
	return Stats{
		Len:           int(s.len.Load()),
		Height:        int(s.height.Load()),
		Nodes:         int(s.nodes.Load()),
		Splits:        s.splits.Load(),
		RootSplits:    s.rootSplits.Load(),
		Merges:        s.merges.Load(),
		BorrowsLeft:   s.borrowsLeft.Load(),
		BorrowsRight:  s.borrowsRight.Load(),
		RootCollapses: s.rootCollapses.Load(),
	}
}
