package cli

import (
	"strings"

	"github.com/fatih/color"

	"github.com/alexhholmes/btmap"
)

// Visualizer renders a tree one level per line, each node as a bracketed key
// list. Levels cycle through a small palette so parent and child rows are
// easy to tell apart.
type Visualizer struct {
	Tree    *btmap.Tree[string, string]
	palette []*color.Color
}

// NewVisualizer creates a visualizer. With useColor unset the output is
// plain text regardless of the terminal.
func NewVisualizer(tree *btmap.Tree[string, string], useColor bool) *Visualizer {
	palette := []*color.Color{
		color.New(color.FgCyan, color.Bold),
		color.New(color.FgGreen),
		color.New(color.FgYellow),
		color.New(color.FgMagenta),
	}
	for _, c := range palette {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return &Visualizer{Tree: tree, palette: palette}
}

// Visualize returns the rendered tree.
func (v *Visualizer) Visualize() string {
	var sb strings.Builder
	for depth, level := range v.Tree.Levels() {
		c := v.palette[depth%len(v.palette)]
		sb.WriteString(strings.Repeat("  ", depth))
		for i, keys := range level {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(c.Sprint("[" + strings.Join(keys, " ") + "]"))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
