package layout

import (
	"math"

	"github.com/bethropolis/sprig/internal/tree"
)

// Bracket describes the connecting geometry from a node to its children,
// derived from coordinates the engine has already assigned.
type Bracket struct {
	Column  float64   // x of the vertical bar / stub end, left of the children
	Top     float64   // y of the first child
	Bottom  float64   // y of the last child
	Stub    bool      // exactly one child: straight connector, no bar
	Ticks   []float64 // y of each child, where a tick meets the bar
	Divider float64   // y of the dot divider between the formula and term groups
	HasDot  bool
}

// Bracket computes the connector geometry of n. ok is false for leaves.
func (e *Engine) Bracket(n *tree.Node) (Bracket, bool) {
	if n == nil || n.IsLeaf() {
		return Bracket{}, false
	}
	first, last := n.FirstChild(), n.LastChild()
	spacing := e.metrics.FormulaSpacing
	if first.Kind == tree.Term {
		spacing = e.metrics.TermSpacing
	}
	b := Bracket{
		Column: first.X - spacing/2,
		Top:    first.Y,
		Bottom: last.Y,
		Stub:   len(n.Dependents) == 1,
		Ticks:  make([]float64, len(n.Dependents)),
	}
	for i, c := range n.Dependents {
		b.Ticks[i] = c.Y
	}
	if n.DotDivider && n.Kind == tree.Formula {
		b.HasDot = true
		b.Divider = n.Y
	}
	return b, true
}

// Rect is an axis-aligned box in pane units.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether p lies inside r (edges included).
func (r Rect) Contains(p tree.Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Bounds returns the pane-space box covering every node of the instance,
// with each node occupying NodeWidth by one formula box height.
func (e *Engine) Bounds(inst *tree.Instance) Rect {
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	if inst == nil || inst.Root == nil {
		return Rect{}
	}
	tree.Walk(inst.Root, func(n *tree.Node, _ int) bool {
		nb := e.NodeRect(inst, n)
		r.MinX = math.Min(r.MinX, nb.MinX)
		r.MinY = math.Min(r.MinY, nb.MinY)
		r.MaxX = math.Max(r.MaxX, nb.MaxX)
		r.MaxY = math.Max(r.MaxY, nb.MaxY)
		return true
	})
	return r
}

// NodeRect is the pane-space box of a single node's content.
func (e *Engine) NodeRect(inst *tree.Instance, n *tree.Node) Rect {
	half := e.metrics.FormulaBoxHeight / 2
	x := inst.Offset.X + n.X
	y := inst.Offset.Y + n.Y
	return Rect{MinX: x, MinY: y - half, MaxX: x + e.NodeWidth(n), MaxY: y + half}
}
