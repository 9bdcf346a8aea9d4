package tui

import (
	"math"

	"github.com/bethropolis/sprig/internal/layout"
	"github.com/bethropolis/sprig/internal/tree"
)

// Viewport maps pane units onto terminal cells. The scroll position is the
// pane point drawn in the top-left cell.
type Viewport struct {
	CellWidth  float64
	CellHeight float64
	ScrollX    float64
	ScrollY    float64
}

// NewViewport creates a viewport with the given cell size in pane units.
func NewViewport(cellWidth, cellHeight float64) *Viewport {
	return &Viewport{CellWidth: cellWidth, CellHeight: cellHeight}
}

// PaneToCell returns the cell containing pane point p.
func (v *Viewport) PaneToCell(p tree.Point) (col, row int) {
	col = int(math.Floor((p.X - v.ScrollX) / v.CellWidth))
	row = int(math.Floor((p.Y - v.ScrollY) / v.CellHeight))
	return col, row
}

// CellToPane returns the pane point at the centre of a cell.
func (v *Viewport) CellToPane(col, row int) tree.Point {
	return tree.Point{
		X: v.ScrollX + (float64(col)+0.5)*v.CellWidth,
		Y: v.ScrollY + (float64(row)+0.5)*v.CellHeight,
	}
}

// Cells converts a pane width to a whole number of cells, rounding up.
func (v *Viewport) Cells(width float64) int {
	return int(math.Ceil(width / v.CellWidth))
}

// Scroll moves the view by whole cells. The view never scrolls above or
// left of the pane origin.
func (v *Viewport) Scroll(dCols, dRows int) {
	v.ScrollX = math.Max(0, v.ScrollX+float64(dCols)*v.CellWidth)
	v.ScrollY = math.Max(0, v.ScrollY+float64(dRows)*v.CellHeight)
}

// EnsureVisible scrolls the smallest amount that brings r into a view of
// cols by rows cells.
func (v *Viewport) EnsureVisible(r layout.Rect, cols, rows int) {
	w := float64(cols) * v.CellWidth
	h := float64(rows) * v.CellHeight
	switch {
	case r.MinX < v.ScrollX:
		v.ScrollX = snap(r.MinX, v.CellWidth)
	case r.MaxX > v.ScrollX+w:
		v.ScrollX = snap(r.MaxX-w+v.CellWidth, v.CellWidth)
	}
	switch {
	case r.MinY < v.ScrollY:
		v.ScrollY = snap(r.MinY, v.CellHeight)
	case r.MaxY > v.ScrollY+h:
		v.ScrollY = snap(r.MaxY-h+v.CellHeight, v.CellHeight)
	}
	v.ScrollX = math.Max(0, v.ScrollX)
	v.ScrollY = math.Max(0, v.ScrollY)
}

// snap rounds down to a whole cell so glyphs stay on the grid.
func snap(x, cell float64) float64 {
	return math.Floor(x/cell) * cell
}

// HitTester finds the node drawn at a pane position. When node boxes
// overlap, the node whose baseline is nearest wins; later instances are
// drawn on top and win ties.
type HitTester struct {
	engine *layout.Engine
}

// NewHitTester creates a hit tester using the engine's node geometry.
func NewHitTester(engine *layout.Engine) *HitTester {
	return &HitTester{engine: engine}
}

// HitTest implements core.HitTester.
func (h *HitTester) HitTest(doc tree.Document, x, y float64) (string, bool) {
	p := tree.Point{X: x, Y: y}
	best, bestDist := "", math.Inf(1)
	for _, inst := range doc {
		if inst == nil || inst.Root == nil {
			continue
		}
		tree.Walk(inst.Root, func(n *tree.Node, _ int) bool {
			r := h.engine.NodeRect(inst, n)
			if !r.Contains(p) {
				return true
			}
			d := math.Abs(inst.Offset.Y + n.Y - y)
			if d <= bestDist {
				best, bestDist = n.ID, d
			}
			return true
		})
	}
	return best, best != ""
}
