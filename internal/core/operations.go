package core

import (
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/measure"
	"github.com/bethropolis/sprig/internal/tree"
)

// Every operation below checks its preconditions before touching the
// document. A failed check returns false and leaves everything as it was:
// no layout, no snapshot, no event.

// AddFormulaBranches appends n (1 to 3) formula children to a formula node
// whose dependents are empty or all formulas.
func (e *Editor) AddFormulaBranches(id string, n int) bool {
	if n < 1 || n > 3 {
		return false
	}
	loc, ok := e.formulaTarget(id)
	if !ok {
		return false
	}
	for i := 0; i < n; i++ {
		e.measurer.Measure(tree.NewChild(loc.Node, tree.Formula))
	}
	e.commit("add-formula", loc.InstanceIndex)
	return true
}

// AddIndefiniteBranch appends an indefinite leaf under the same conditions
// as AddFormulaBranches; indefinite branches are formulas.
func (e *Editor) AddIndefiniteBranch(id string) bool {
	loc, ok := e.formulaTarget(id)
	if !ok {
		return false
	}
	e.measurer.Measure(tree.NewIndefinite(loc.Node))
	e.commit("add-indefinite", loc.InstanceIndex)
	return true
}

// AddTermBranches appends n (1 or 2) term children to a node whose
// dependents are empty or all terms.
func (e *Editor) AddTermBranches(id string, n int) bool {
	if n < 1 || n > 2 {
		return false
	}
	loc, ok := e.doc.Find(id)
	if !ok || loc.Node.Indefinite || !tree.IsTermDependents(loc.Node.Dependents) {
		return false
	}
	for i := 0; i < n; i++ {
		e.measurer.Measure(tree.NewChild(loc.Node, tree.Term))
	}
	e.commit("add-term", loc.InstanceIndex)
	return true
}

// formulaTarget resolves id to a node that may take formula children.
func (e *Editor) formulaTarget(id string) (tree.Location, bool) {
	loc, ok := e.doc.Find(id)
	if !ok {
		return loc, false
	}
	n := loc.Node
	if n.Kind != tree.Formula || n.Indefinite || !tree.IsFormulaDependents(n.Dependents) {
		return loc, false
	}
	return loc, true
}

// ToggleDivider flips the dot divider of a formula node.
func (e *Editor) ToggleDivider(id string) bool {
	loc, ok := e.doc.Find(id)
	if !ok || loc.Node.Kind != tree.Formula {
		return false
	}
	loc.Node.DotDivider = !loc.Node.DotDivider
	e.commit("toggle-divider", loc.InstanceIndex)
	return true
}

// SetAnnotation sets or clears the annotation mark on one node. Setting it
// to its current value is a no-op.
func (e *Editor) SetAnnotation(id string, on bool) bool {
	loc, ok := e.doc.Find(id)
	if !ok || loc.Node.Annotated == on {
		return false
	}
	loc.Node.Annotated = on
	e.commit("annotate", loc.InstanceIndex)
	return true
}

// ToggleAnnotation flips the annotation mark on one node.
func (e *Editor) ToggleAnnotation(id string) bool {
	loc, ok := e.doc.Find(id)
	if !ok {
		return false
	}
	return e.SetAnnotation(id, !loc.Node.Annotated)
}

// SetSubtreeAnnotation sets or clears the mark on a node and all its
// descendants. It is a no-op when every node already has that value.
func (e *Editor) SetSubtreeAnnotation(id string, on bool) bool {
	loc, ok := e.doc.Find(id)
	if !ok {
		return false
	}
	changes := false
	tree.Walk(loc.Node, func(n *tree.Node, _ int) bool {
		changes = changes || n.Annotated != on
		return !changes
	})
	if !changes {
		return false
	}
	tree.SetAnnotated(loc.Node, on)
	e.commit("annotate-subtree", loc.InstanceIndex)
	return true
}

// NewTree places a new tree, a single formula root, at offset and returns
// its root ID.
func (e *Editor) NewTree(offset tree.Point) (string, bool) {
	inst := tree.NewInstance(offset)
	e.measurer.Measure(inst.Root)
	e.doc = append(e.doc, inst)
	e.commit("new-tree", len(e.doc)-1)
	return inst.Root.ID, true
}

// IsLastNode reports whether id is the root of the document's only tree.
// Deleting it would leave the diagram without any node.
func (e *Editor) IsLastNode(id string) bool {
	loc, ok := e.doc.Find(id)
	return ok && loc.IsRoot() && len(e.doc) == 1
}

// Delete removes the node and its subtree from its parent. Deleting a root
// removes the whole tree. With KeepLastNode set, the last remaining tree is
// kept and Delete returns false; the caller reports that to the user.
func (e *Editor) Delete(id string) bool {
	loc, ok := e.doc.Find(id)
	if !ok {
		return false
	}
	if loc.IsRoot() {
		if e.KeepLastNode && len(e.doc) == 1 {
			logger.DebugTagf("edit", "Refusing to delete the last tree")
			return false
		}
		e.doc = e.doc.Remove(loc.InstanceIndex)
		e.commit("delete-tree", -1)
		return true
	}
	loc.Parent.RemoveDependent(loc.Index)
	e.commit("delete", loc.InstanceIndex)
	return true
}

// MoveBranch moves a node delta places among its siblings. Roots and moves
// past either end are no-ops.
func (e *Editor) MoveBranch(id string, delta int) bool {
	loc, ok := e.doc.Find(id)
	if !ok || loc.IsRoot() || !loc.Parent.Move(loc.Index, delta) {
		return false
	}
	e.commit("move-branch", loc.InstanceIndex)
	return true
}

// MoveTree changes the pane offset of the tree at index.
func (e *Editor) MoveTree(index int, offset tree.Point) bool {
	if index < 0 || index >= len(e.doc) || e.doc[index].Offset == offset {
		return false
	}
	e.doc[index].Offset = offset
	e.commit("move-tree", index)
	return true
}

// SetLabel replaces a node's text and re-measures it.
func (e *Editor) SetLabel(id, label string) bool {
	loc, ok := e.doc.Find(id)
	if !ok || loc.Node.Label == label {
		return false
	}
	loc.Node.Label = label
	e.measurer.Measure(loc.Node)
	e.commit("set-label", loc.InstanceIndex)
	return true
}

// SetConnector replaces the connector text a formula node shows in front of
// its formula dependents.
func (e *Editor) SetConnector(id, connector string) bool {
	loc, ok := e.doc.Find(id)
	if !ok || loc.Node.Kind != tree.Formula || loc.Node.Connector == connector {
		return false
	}
	loc.Node.Connector = connector
	e.measurer.Measure(loc.Node)
	e.commit("set-connector", loc.InstanceIndex)
	return true
}

// Yank copies the subtree at id into the clipboard. It does not change the
// document. The error reports a failed system clipboard write only.
func (e *Editor) Yank(id string) (bool, error) {
	loc, ok := e.doc.Find(id)
	if !ok {
		return false, nil
	}
	return true, e.clipboardManager.Yank(loc.Node)
}

// Paste appends a copy of the clipboard subtree, with fresh IDs, under id.
// The same kind rules as adding branches apply.
func (e *Editor) Paste(id string) bool {
	kind, ok := e.clipboardManager.Kind()
	if !ok {
		return false
	}
	var loc tree.Location
	switch kind {
	case tree.Formula:
		loc, ok = e.formulaTarget(id)
	case tree.Term:
		loc, ok = e.doc.Find(id)
		ok = ok && !loc.Node.Indefinite && tree.IsTermDependents(loc.Node.Dependents)
	default:
		ok = false
	}
	if !ok {
		return false
	}
	sub, _ := e.clipboardManager.Content()
	measure.Subtree(e.measurer, sub)
	loc.Node.Append(sub)
	e.commit("paste", loc.InstanceIndex)
	return true
}
