package modehandler

import (
	"github.com/bethropolis/sprig/internal/core"
	"github.com/bethropolis/sprig/internal/input"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/tree"
)

// Status messages shared with the app's commands.
const (
	MsgLastNode     = "a diagram must retain at least one node"
	MsgNoSelection  = "Nothing selected"
	MsgNoTool       = "No tool selected"
	MsgPickLocation = "Click where the tree should go"
)

// executeAction handles actions when in ModeNormal.
func (mh *ModeHandler) executeAction(ae input.ActionEvent) bool {
	actionProcessed := true

	switch ae.Action {
	// Mode switching
	case input.ActionEnterCommandMode:
		mh.enterCommandMode("")
	case input.ActionEnterFindMode:
		mh.enterFindMode()
	case input.ActionEditLabel, input.ActionEditConnector:
		loc, ok := mh.editor.SelectedLocation()
		if !ok {
			mh.statusBar.SetTemporaryMessage(MsgNoSelection)
			break
		}
		if ae.Action == input.ActionEditLabel {
			mh.enterCommandMode("label " + loc.Node.Label)
		} else {
			mh.enterCommandMode("connector " + loc.Node.Connector)
		}

	// Quit/Save
	case input.ActionQuit:
		switch {
		case mh.editor.Find().Active():
			mh.editor.Find().Clear()
			mh.statusBar.SetTemporaryMessage("Highlights cleared")
		case mh.pendingMove():
			mh.editor.SelectTool(mh.editor.Tool()) // drops the half-finished gesture
			mh.statusBar.SetTemporaryMessage("Move canceled")
		default:
			mh.Quit(false)
			return true
		}
	case input.ActionForceQuit:
		mh.Quit(true)
		return true
	case input.ActionSave:
		if err := mh.saver.SaveDocument(""); err != nil {
			mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Saved to %s", mh.editor.FilePath())
		}

	// History
	case input.ActionUndo:
		if !mh.editor.Undo() {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		if !mh.editor.Redo() {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	// Find
	case input.ActionFindNext:
		mh.executeFind(true)
	case input.ActionFindPrevious:
		mh.executeFind(false)

	// Navigation
	case input.ActionSelectHome:
		actionProcessed = mh.editor.Navigation().Home()
	case input.ActionSelectParent:
		actionProcessed = mh.navigate(func() bool { return mh.editor.Navigation().Parent() })
	case input.ActionSelectChild:
		actionProcessed = mh.navigate(func() bool { return mh.editor.Navigation().Child() })
	case input.ActionSelectPrevSibling:
		actionProcessed = mh.navigate(func() bool { return mh.editor.Navigation().Sibling(-1) })
	case input.ActionSelectNextSibling:
		actionProcessed = mh.navigate(func() bool { return mh.editor.Navigation().Sibling(1) })
	case input.ActionSelectPrevTree:
		actionProcessed = mh.navigate(func() bool { return mh.editor.Navigation().Tree(-1) })
	case input.ActionSelectNextTree:
		actionProcessed = mh.navigate(func() bool { return mh.editor.Navigation().Tree(1) })

	// Viewport
	case input.ActionScrollUp:
		mh.scroller.Scroll(0, -1)
	case input.ActionScrollDown:
		mh.scroller.Scroll(0, 1)
	case input.ActionScrollLeft:
		mh.scroller.Scroll(-1, 0)
	case input.ActionScrollRight:
		mh.scroller.Scroll(1, 0)

	// Editing
	case input.ActionSelectTool:
		mh.editor.SelectTool(ae.Tool)
		mh.statusBar.SetTemporaryMessage("Tool: %s", ae.Tool)
	case input.ActionApplyTool:
		mh.ApplyTool(mh.editor.Tool())
	case input.ActionDeleteNode:
		mh.ApplyTool(core.ToolDelete)
	case input.ActionYank:
		mh.ApplyTool(core.ToolYank)
	case input.ActionPaste:
		mh.ApplyTool(core.ToolPaste)

	default:
		actionProcessed = false
	}

	if ae.Action != input.ActionQuit && ae.Action != input.ActionUnknown && actionProcessed {
		mh.forceQuitPending = false
	}
	return actionProcessed
}

// navigate runs a move, selecting the first root when nothing is selected.
func (mh *ModeHandler) navigate(move func() bool) bool {
	if _, ok := mh.editor.Selected(); !ok {
		return mh.editor.Navigation().Home()
	}
	return move()
}

func (mh *ModeHandler) pendingMove() bool {
	_, ok := mh.editor.PendingMove()
	return ok
}

// ApplyTool runs t on the selected node from the keyboard and reports why
// nothing happened when the edit is declined.
func (mh *ModeHandler) ApplyTool(t core.Tool) bool {
	switch t {
	case core.ToolNone:
		mh.statusBar.SetTemporaryMessage(MsgNoTool)
		return false
	case core.ToolNewTree:
		id, ok := mh.editor.NewTree(NextTreeOffset(mh.editor))
		if ok {
			mh.editor.Select(id)
		}
		return ok
	}

	id, ok := mh.editor.Selected()
	if !ok {
		mh.statusBar.SetTemporaryMessage(MsgNoSelection)
		return false
	}

	switch t {
	case core.ToolDelete:
		if mh.editor.KeepLastNode && mh.editor.IsLastNode(id) {
			mh.statusBar.SetTemporaryMessage(MsgLastNode)
			return false
		}
	case core.ToolYank:
		copied, err := mh.editor.Yank(id)
		switch {
		case err != nil:
			mh.statusBar.SetTemporaryMessage("Yanked, but the system clipboard failed: %v", err)
		case copied:
			mh.statusBar.SetTemporaryMessage("Subtree yanked")
		}
		return false
	case core.ToolPaste:
		if mh.editor.Clipboard().IsEmpty() {
			mh.statusBar.SetTemporaryMessage("Clipboard empty - nothing to paste")
			return false
		}
	}

	changed := mh.editor.Apply(t, id)
	switch {
	case t == core.ToolMoveTree:
		if mh.pendingMove() {
			mh.statusBar.SetTemporaryMessage(MsgPickLocation)
		}
	case !changed:
		mh.statusBar.SetTemporaryMessage("%s does not apply here", t)
		logger.DebugTagf("tool", "Tool %s declined on %s", t, id)
	}
	return changed
}

// NextTreeOffset is where a keyboard-created tree goes: below every
// existing tree, one row pitch further down.
func NextTreeOffset(ed *core.Editor) tree.Point {
	engine := ed.Engine()
	y := 0.0
	for _, inst := range ed.Document() {
		if b := engine.Bounds(inst); b.MaxY+engine.Metrics().RowHeight > y {
			y = b.MaxY + engine.Metrics().RowHeight
		}
	}
	return tree.Point{X: 0, Y: y}
}
