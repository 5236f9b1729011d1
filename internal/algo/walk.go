package algo

import (
	"github.com/alexhholmes/btmap/internal/arena"
	"github.com/alexhholmes/btmap/internal/base"
)

// Levels returns the keys of every node, grouped by depth and ordered left
// to right within a level.
func Levels[K, V any](nodes *arena.Arena[base.Node[K, V]], root arena.Handle) [][][]K {
	var out [][][]K
	level := []arena.Handle{root}
	for len(level) > 0 {
		var next []arena.Handle
		row := make([][]K, 0, len(level))
		for _, h := range level {
			n := nodes.Get(h)
			keys := make([]K, len(n.Entries))
			for i := range n.Entries {
				keys[i] = n.Entries[i].Key
			}
			row = append(row, keys)
			next = append(next, n.Children...)
		}
		out = append(out, row)
		level = next
	}
	return out
}
