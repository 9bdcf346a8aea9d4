package app

import (
	"github.com/bethropolis/sprig/internal/core"
	"github.com/bethropolis/sprig/internal/modehandler"
	"github.com/gdamore/tcell/v2"
)

// wheelStep is how many cells one wheel notch scrolls.
const wheelStep = 3

// handleMouse turns clicks into tool gestures at the clicked pane point.
// Only the press of the primary button counts; drags and releases are
// ignored.
func (a *App) handleMouse(ev *tcell.EventMouse) bool {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && a.lastButtons&tcell.Button1 == 0
	a.lastButtons = buttons

	switch {
	case buttons&tcell.WheelUp != 0:
		a.viewport.Scroll(0, -wheelStep)
		return true
	case buttons&tcell.WheelDown != 0:
		a.viewport.Scroll(0, wheelStep)
		return true
	case buttons&tcell.WheelLeft != 0:
		a.viewport.Scroll(-wheelStep, 0)
		return true
	case buttons&tcell.WheelRight != 0:
		a.viewport.Scroll(wheelStep, 0)
		return true
	case !pressed:
		return false
	}

	col, row := ev.Position()
	_, height := a.tuiManager.Size()
	if row >= height-1 {
		return false // status line
	}
	p := a.viewport.CellToPane(col, row)
	tool := a.editor.Tool()

	switch tool {
	case core.ToolNone:
		if id, ok := a.hitTester.HitTest(a.editor.Document(), p.X, p.Y); ok {
			a.editor.Select(id)
		} else {
			a.editor.ClearSelection()
		}
		return true
	case core.ToolDelete:
		if id, ok := a.hitTester.HitTest(a.editor.Document(), p.X, p.Y); ok &&
			a.editor.KeepLastNode && a.editor.IsLastNode(id) {
			a.statusBar.SetTemporaryMessage(modehandler.MsgLastNode)
			return true
		}
	}

	a.editor.ApplyAt(tool, p)
	if _, ok := a.editor.PendingMove(); ok {
		a.statusBar.SetTemporaryMessage(modehandler.MsgPickLocation)
	}
	return true
}
