package core

import (
	"strings"

	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/tree"
)

// Tool is the active edit tool. Exactly one is active at a time.
type Tool int

const (
	ToolNone Tool = iota
	ToolAddFormula1
	ToolAddFormula2
	ToolAddFormula3
	ToolAddIndefinite
	ToolAddTerm1
	ToolAddTerm2
	ToolToggleDivider
	ToolAnnotate
	ToolAnnotateSubtree
	ToolDelete
	ToolNewTree
	ToolMoveTree
	ToolMoveUp
	ToolMoveDown
	ToolYank
	ToolPaste
	toolCount
)

var toolNames = [...]string{
	ToolNone:            "none",
	ToolAddFormula1:     "formula1",
	ToolAddFormula2:     "formula2",
	ToolAddFormula3:     "formula3",
	ToolAddIndefinite:   "indefinite",
	ToolAddTerm1:        "term1",
	ToolAddTerm2:        "term2",
	ToolToggleDivider:   "divider",
	ToolAnnotate:        "annotate",
	ToolAnnotateSubtree: "annotate-subtree",
	ToolDelete:          "delete",
	ToolNewTree:         "new-tree",
	ToolMoveTree:        "move-tree",
	ToolMoveUp:          "move-up",
	ToolMoveDown:        "move-down",
	ToolYank:            "yank",
	ToolPaste:           "paste",
}

func (t Tool) String() string {
	if t < 0 || t >= toolCount {
		return "unknown"
	}
	return toolNames[t]
}

// ParseTool looks a tool up by its String name.
func ParseTool(name string) (Tool, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range toolNames {
		if n == name {
			return Tool(t), true
		}
	}
	return ToolNone, false
}

// Tools returns every tool except ToolNone, in declaration order.
func Tools() []Tool {
	out := make([]Tool, 0, toolCount-1)
	for t := ToolNone + 1; t < toolCount; t++ {
		out = append(out, t)
	}
	return out
}

// TargetsNode reports whether the tool acts on a node rather than a pane
// position.
func (t Tool) TargetsNode() bool {
	switch t {
	case ToolNone, ToolNewTree:
		return false
	}
	return t > ToolNone && t < toolCount
}

// HitTester maps a pane position to the node drawn there.
type HitTester interface {
	HitTest(doc tree.Document, x, y float64) (nodeID string, ok bool)
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool {
	return e.tool
}

// SelectTool activates a tool. Any half-finished gesture of the previous
// tool is dropped; nothing in the document changes.
func (e *Editor) SelectTool(t Tool) {
	if t < 0 || t >= toolCount {
		t = ToolNone
	}
	e.resetPending()
	if e.tool == t {
		return
	}
	e.tool = t
	logger.DebugTagf("tool", "Tool selected: %s", t)
	e.dispatch(event.TypeToolChanged, event.ToolChangedData{Tool: t.String()})
}

// PendingMove returns the tree picked by the first click of ToolMoveTree.
func (e *Editor) PendingMove() (int, bool) {
	return e.pendingMove, e.pendingMove >= 0
}

func (e *Editor) resetPending() {
	e.pendingMove = -1
}

// Apply runs a node-targeted tool on the node with the given ID and reports
// whether the document changed. Yank fills the clipboard and reports false.
// ToolMoveTree's first step records the node's tree and waits for ApplyAt.
func (e *Editor) Apply(t Tool, nodeID string) bool {
	switch t {
	case ToolAddFormula1, ToolAddFormula2, ToolAddFormula3:
		return e.AddFormulaBranches(nodeID, int(t-ToolAddFormula1)+1)
	case ToolAddIndefinite:
		return e.AddIndefiniteBranch(nodeID)
	case ToolAddTerm1, ToolAddTerm2:
		return e.AddTermBranches(nodeID, int(t-ToolAddTerm1)+1)
	case ToolToggleDivider:
		return e.ToggleDivider(nodeID)
	case ToolAnnotate:
		return e.ToggleAnnotation(nodeID)
	case ToolAnnotateSubtree:
		loc, ok := e.doc.Find(nodeID)
		return ok && e.SetSubtreeAnnotation(nodeID, !loc.Node.Annotated)
	case ToolDelete:
		return e.Delete(nodeID)
	case ToolMoveUp:
		return e.MoveBranch(nodeID, -1)
	case ToolMoveDown:
		return e.MoveBranch(nodeID, 1)
	case ToolYank:
		if _, err := e.Yank(nodeID); err != nil {
			logger.Warnf("Editor: %v", err)
		}
		return false
	case ToolPaste:
		return e.Paste(nodeID)
	case ToolMoveTree:
		if loc, ok := e.doc.Find(nodeID); ok {
			e.pendingMove = loc.InstanceIndex
			logger.DebugTagf("tool", "Move tree: picked tree %d", loc.InstanceIndex)
		}
		return false
	}
	return false
}

// ApplyAt runs the tool at a pane position. ToolNewTree places a tree
// there; ToolMoveTree picks a tree on the first click and moves it on the
// second. Node-targeted tools hit-test the position, select the node under
// it and apply themselves to it.
func (e *Editor) ApplyAt(t Tool, p tree.Point) bool {
	switch t {
	case ToolNone:
		return false
	case ToolNewTree:
		id, ok := e.NewTree(p)
		if ok {
			e.Select(id)
		}
		return ok
	case ToolMoveTree:
		if idx, ok := e.PendingMove(); ok {
			e.resetPending()
			return e.MoveTree(idx, p)
		}
	}

	if e.hitTester == nil {
		return false
	}
	id, ok := e.hitTester.HitTest(e.doc, p.X, p.Y)
	if !ok {
		return false
	}
	e.Select(id)
	return e.Apply(t, id)
}

// ApplyToSelection runs the active tool on the selected node.
func (e *Editor) ApplyToSelection() bool {
	id, ok := e.Selected()
	if !ok || !e.tool.TargetsNode() {
		return false
	}
	return e.Apply(e.tool, id)
}
