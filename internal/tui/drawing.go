// internal/tui/drawing.go
package tui

import (
	"github.com/bethropolis/sprig/internal/core"
	"github.com/bethropolis/sprig/internal/layout"
	"github.com/bethropolis/sprig/internal/theme"
	"github.com/bethropolis/sprig/internal/tree"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Glyphs used for diagram chrome.
const (
	emptyLabel      = "___"
	indefiniteGlyph = "…"
	annotationGlyph = "✓"
	dividerGlyph    = '•'
)

// canvas clips drawing to the diagram area above the status bar.
type canvas struct {
	screen        tcell.Screen
	width, height int
}

func (c canvas) set(col, row int, r rune, style tcell.Style) {
	if col < 0 || row < 0 || col >= c.width || row >= c.height {
		return
	}
	c.screen.SetContent(col, row, r, nil, style)
}

// text draws s from col and returns the column after it.
func (c canvas) text(col, row int, s string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		runes := gr.Runes()
		w := gr.Width()
		if col >= 0 && col+w <= c.width && row >= 0 && row < c.height && len(runes) > 0 {
			c.screen.SetContent(col, row, runes[0], runes[1:], style)
		}
		col += w
	}
	return col
}

func (c canvas) hline(from, to, row int, style tcell.Style) {
	for col := from; col <= to; col++ {
		c.set(col, row, tcell.RuneHLine, style)
	}
}

// DrawDocument draws every tree of the editor's document into the area
// above the status bar.
func DrawDocument(tuiManager *TUI, editor *core.Editor, vp *Viewport, activeTheme *theme.Theme) {
	width, height := tuiManager.Size()
	Draw(tuiManager.GetScreen(), width, height-1, editor, vp, activeTheme)
}

// Draw renders the diagram into a width by height cell area.
func Draw(screen tcell.Screen, width, height int, editor *core.Editor, vp *Viewport, activeTheme *theme.Theme) {
	if width <= 0 || height <= 0 {
		return
	}
	c := canvas{screen: screen, width: width, height: height}
	def := activeTheme.GetStyle(theme.StyleDefault)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			screen.SetContent(col, row, ' ', nil, def)
		}
	}

	d := drawer{
		canvas:   c,
		engine:   editor.Engine(),
		vp:       vp,
		theme:    activeTheme,
		find:     editor.Find(),
		selected: "",
		pending:  -1,
	}
	if id, ok := editor.Selected(); ok {
		d.selected = id
	}
	if idx, ok := editor.PendingMove(); ok {
		d.pending = idx
	}

	doc := editor.Document()
	// brackets first so labels are never overwritten by chrome
	for _, inst := range doc {
		tree.Walk(inst.Root, func(n *tree.Node, _ int) bool {
			d.bracket(inst, n)
			return true
		})
	}
	for i, inst := range doc {
		tree.Walk(inst.Root, func(n *tree.Node, _ int) bool {
			d.node(i, inst, n)
			return true
		})
	}
}

type matcher interface {
	IsMatch(n *tree.Node) bool
}

type drawer struct {
	canvas
	engine   *layout.Engine
	vp       *Viewport
	theme    *theme.Theme
	find     matcher
	selected string
	pending  int
}

func (d *drawer) cell(inst *tree.Instance, x, y float64) (int, int) {
	return d.vp.PaneToCell(tree.Point{X: inst.Offset.X + x, Y: inst.Offset.Y + y})
}

func (d *drawer) nodeStyle(idx int, n *tree.Node) tcell.Style {
	switch {
	case n.ID == d.selected:
		return d.theme.GetStyle(theme.StyleSelected)
	case d.find.IsMatch(n):
		return d.theme.GetStyle(theme.StyleMatch)
	case n.Root && idx == d.pending:
		return d.theme.GetStyle(theme.StylePendingMove)
	case n.Indefinite:
		return d.theme.GetStyle(theme.StyleIndefinite)
	case n.Kind == tree.Term:
		return d.theme.GetStyle(theme.StyleNodeTerm)
	}
	return d.theme.GetStyle(theme.StyleNode)
}

// leadEnd is the pane x just past everything drawn on the node's own row.
func (d *drawer) leadEnd(n *tree.Node) float64 {
	x := n.X + d.engine.NodeWidth(n)
	if first := n.FirstChild(); first != nil && first.Kind == tree.Formula {
		x += n.ConnectorWidth
	}
	if n.Annotated {
		x += d.vp.CellWidth
	}
	return x
}

func (d *drawer) node(idx int, inst *tree.Instance, n *tree.Node) {
	col, row := d.cell(inst, n.X, n.Y)
	style := d.nodeStyle(idx, n)

	text := n.Label
	switch {
	case n.Indefinite:
		text = indefiniteGlyph
	case text == "":
		text = emptyLabel
	}
	end := d.text(col, row, text, style)

	if first := n.FirstChild(); first != nil && first.Kind == tree.Formula && n.Connector != "" {
		ccol, _ := d.cell(inst, n.X+d.engine.NodeWidth(n), n.Y)
		if ccol < end {
			ccol = end
		}
		end = d.text(ccol, row, n.Connector, d.theme.GetStyle(theme.StyleConnector))
	}
	if n.Annotated {
		d.text(end, row, annotationGlyph, d.theme.GetStyle(theme.StyleAnnotation))
	}
}

func (d *drawer) bracket(inst *tree.Instance, n *tree.Node) {
	br, ok := d.engine.Bracket(n)
	if !ok {
		return
	}
	style := d.theme.GetStyle(theme.StyleBracket)
	startCol, parentRow := d.cell(inst, d.leadEnd(n), n.Y)
	barCol, topRow := d.cell(inst, br.Column, br.Top)
	_, bottomRow := d.cell(inst, br.Column, br.Bottom)

	if br.Stub {
		childCol, childRow := d.cell(inst, n.FirstChild().X, n.FirstChild().Y)
		d.hline(startCol, childCol-1, childRow, style)
		return
	}

	d.hline(startCol, barCol-1, parentRow, style)
	for row := topRow; row <= bottomRow; row++ {
		d.set(barCol, row, tcell.RuneVLine, style)
	}
	ticks := make(map[int]bool, len(br.Ticks))
	for i, y := range br.Ticks {
		childCol, row := d.cell(inst, n.Dependents[i].X, y)
		ticks[row] = true
		d.set(barCol, row, tcell.RuneLTee, style)
		d.hline(barCol+1, childCol-1, row, style)
	}
	d.set(barCol, topRow, tcell.RuneULCorner, style)
	d.set(barCol, bottomRow, tcell.RuneLLCorner, style)
	if parentRow > topRow && parentRow < bottomRow {
		if ticks[parentRow] {
			d.set(barCol, parentRow, tcell.RunePlus, style)
		} else {
			d.set(barCol, parentRow, tcell.RuneRTee, style)
		}
	}
	if br.HasDot {
		_, divRow := d.cell(inst, br.Column, br.Divider)
		d.set(barCol, divRow, dividerGlyph, style)
	}
}
