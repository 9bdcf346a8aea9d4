// Package layout assigns pane coordinates to branching diagrams.
//
// The algorithm is a single left-to-right depth-first pass. Leaves are
// stacked one row pitch apart; an internal node sits halfway between its first
// and last child, one horizontal advance to the left of them. The running
// leaf cursor is threaded through the recursion as a value, so the engine
// holds no per-pass state and can lay out several instances at once.
package layout

import (
	"github.com/bethropolis/sprig/internal/tree"
)

// Metrics are the fixed spacings the engine works with, in layout units.
type Metrics struct {
	RowHeight        float64 `toml:"row_height" validate:"gt=0"`
	StartOffset      float64 `toml:"start_offset" validate:"gte=0"`
	FormulaBoxHeight float64 `toml:"formula_box_height" validate:"gte=0"`
	FormulaSpacing   float64 `toml:"formula_spacing" validate:"gte=0"`
	TermSpacing      float64 `toml:"term_spacing" validate:"gte=0"`
	AnnotationBump   float64 `toml:"annotation_bump" validate:"gte=0"`
	RootBump         float64 `toml:"root_bump" validate:"gte=0"`
	IndefiniteWidth  float64 `toml:"indefinite_width" validate:"gt=0"`
}

// Default metrics. Term children sit closer to their parent than formula
// children do.
const (
	DefaultRowHeight        = 48
	DefaultStartOffset      = 0
	DefaultFormulaBoxHeight = 24
	DefaultFormulaSpacing   = 20
	DefaultTermSpacing      = 12
	DefaultAnnotationBump   = 16
	DefaultRootBump         = 8
	DefaultIndefiniteWidth  = 18
)

// DefaultMetrics returns the metrics used when nothing is configured.
func DefaultMetrics() Metrics {
	return Metrics{
		RowHeight:        DefaultRowHeight,
		StartOffset:      DefaultStartOffset,
		FormulaBoxHeight: DefaultFormulaBoxHeight,
		FormulaSpacing:   DefaultFormulaSpacing,
		TermSpacing:      DefaultTermSpacing,
		AnnotationBump:   DefaultAnnotationBump,
		RootBump:         DefaultRootBump,
		IndefiniteWidth:  DefaultIndefiniteWidth,
	}
}

// Engine lays out trees with a fixed set of metrics.
type Engine struct {
	metrics Metrics
}

// NewEngine creates an engine. Zero metrics are not replaced; callers pass
// DefaultMetrics or validated configuration.
func NewEngine(m Metrics) *Engine {
	return &Engine{metrics: m}
}

// Metrics returns the engine's metrics.
func (e *Engine) Metrics() Metrics {
	return e.metrics
}

// Layout positions every node of the subtree rooted at root, with root at
// originX, and returns the leaf cursor after the last leaf.
func (e *Engine) Layout(root *tree.Node, originX float64) float64 {
	if root == nil {
		return e.metrics.StartOffset
	}
	return e.place(root, originX, e.metrics.StartOffset)
}

// place lays out n and returns the advanced cursor.
func (e *Engine) place(n *tree.Node, originX, cursor float64) float64 {
	n.X = originX
	if n.IsLeaf() {
		cursor += e.metrics.RowHeight
		n.Y = cursor
		if n.Kind == tree.Term {
			n.Y -= e.metrics.FormulaBoxHeight / 2 // align with formula baselines
		}
		return cursor
	}

	childX := originX + e.HorizontalAdvance(n)
	for _, c := range n.Dependents {
		cursor = e.place(c, childX, cursor)
	}
	n.Y = (n.FirstChild().Y + n.LastChild().Y) / 2
	return cursor
}

// HorizontalAdvance is the distance from n's x to its children's x.
func (e *Engine) HorizontalAdvance(n *tree.Node) float64 {
	adv := n.ContentWidth
	if first := n.FirstChild(); first != nil {
		if first.Kind == tree.Formula {
			adv += n.ConnectorWidth + e.metrics.FormulaSpacing
		} else {
			adv += e.metrics.TermSpacing
		}
	}
	if n.Annotated {
		adv += e.metrics.AnnotationBump
	}
	if n.Root {
		adv += e.metrics.RootBump
	}
	return adv
}

// NodeWidth is the width a renderer should reserve for the node's content.
// Indefinite nodes always take the fixed placeholder width.
func (e *Engine) NodeWidth(n *tree.Node) float64 {
	if n.Indefinite {
		return e.metrics.IndefiniteWidth
	}
	return n.ContentWidth
}

// LayoutInstance lays out an instance in its own coordinates (root at x 0).
// The pane offset is applied by whoever draws or hit-tests.
func (e *Engine) LayoutInstance(inst *tree.Instance) {
	if inst == nil {
		return
	}
	e.Layout(inst.Root, 0)
}

// LayoutDocument lays out every instance of the document.
func (e *Engine) LayoutDocument(doc tree.Document) {
	for _, inst := range doc {
		e.LayoutInstance(inst)
	}
}
