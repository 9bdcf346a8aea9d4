// Package measure supplies content widths for diagram nodes. The layout
// engine treats widths as opaque inputs; this is the facility that fills them.
package measure

import (
	"github.com/bethropolis/sprig/internal/tree"
	"github.com/rivo/uniseg"
)

// Measurer fills ContentWidth and ConnectorWidth of a node from its content.
type Measurer interface {
	Measure(n *tree.Node)
}

// Default widths for nodes without text, in cells.
const (
	EmptyLabelCells     = 3
	DefaultUnitsPerCell = 8
)

// Cells measures plain-text labels by terminal display width: each grapheme
// cluster counts as one or two cells (East Asian wide, emoji) and a cell is
// UnitsPerCell layout units wide.
type Cells struct {
	UnitsPerCell float64
}

// NewCells creates a cell measurer; non-positive unitsPerCell falls back to
// DefaultUnitsPerCell.
func NewCells(unitsPerCell float64) *Cells {
	if unitsPerCell <= 0 {
		unitsPerCell = DefaultUnitsPerCell
	}
	return &Cells{UnitsPerCell: unitsPerCell}
}

// Measure sets both widths of n.
func (c *Cells) Measure(n *tree.Node) {
	label := uniseg.StringWidth(n.Label)
	if label == 0 {
		label = EmptyLabelCells // leave room for a placeholder box
	}
	n.ContentWidth = float64(label) * c.UnitsPerCell
	n.ConnectorWidth = float64(uniseg.StringWidth(n.Connector)) * c.UnitsPerCell
}

// Subtree measures every node under (and including) root.
func Subtree(m Measurer, root *tree.Node) {
	tree.Walk(root, func(n *tree.Node, _ int) bool {
		m.Measure(n)
		return true
	})
}

// Document measures every node of every instance.
func Document(m Measurer, doc tree.Document) {
	for _, inst := range doc {
		if inst != nil {
			Subtree(m, inst.Root)
		}
	}
}
