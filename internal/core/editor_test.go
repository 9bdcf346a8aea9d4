package core

import (
	"math/rand"
	"testing"

	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedWidth gives every node the same content width and no connector.
type fixedWidth float64

func (w fixedWidth) Measure(n *tree.Node) {
	n.ContentWidth = float64(w)
	n.ConnectorWidth = 0
}

func newTestEditor(t *testing.T) (*Editor, string) {
	t.Helper()
	e := NewEditor(Options{Measurer: fixedWidth(30), HistoryCapacity: 100})
	e.Clipboard().SetSystemWriter(nil)
	id, ok := e.NewTree(tree.Point{})
	require.True(t, ok)
	return e, id
}

// recorder counts events by type.
type recorder map[event.Type]int

func record(e *Editor) recorder {
	r := recorder{}
	mgr := event.NewManager()
	for _, typ := range []event.Type{
		event.TypeDiagramModified, event.TypeHistoryChanged, event.TypeToolChanged,
		event.TypeSelectionChanged, event.TypeDocumentLoaded, event.TypeDocumentSaved,
	} {
		mgr.Subscribe(typ, func(ev event.Event) bool {
			r[ev.Type]++
			return false
		})
	}
	e.SetEventManager(mgr)
	return r
}

func node(t *testing.T, e *Editor, id string) *tree.Node {
	t.Helper()
	loc, ok := e.Document().Find(id)
	require.True(t, ok, "node %s not found", id)
	return loc.Node
}

func TestAddTwoFormulaBranchesLaysOut(t *testing.T) {
	e, rootID := newTestEditor(t)
	require.True(t, e.AddFormulaBranches(rootID, 2))

	root := node(t, e, rootID)
	require.Len(t, root.Dependents, 2)
	for _, c := range root.Dependents {
		assert.Equal(t, tree.Formula, c.Kind)
	}
	assert.Equal(t, 48.0, root.Dependents[0].Y)
	assert.Equal(t, 96.0, root.Dependents[1].Y)
	assert.Equal(t, 72.0, root.Y)
	assert.True(t, e.CanUndo())
}

func TestIndefiniteAfterFormulaChild(t *testing.T) {
	e, rootID := newTestEditor(t)
	require.True(t, e.AddFormulaBranches(rootID, 1))
	first := node(t, e, rootID).Dependents[0]

	require.True(t, e.AddIndefiniteBranch(rootID))
	deps := node(t, e, rootID).Dependents
	require.Len(t, deps, 2)
	assert.Equal(t, first.ID, deps[0].ID, "new leaf goes after the existing one")
	assert.True(t, deps[1].Indefinite)
	assert.Equal(t, tree.Formula, deps[1].Kind)
	assert.True(t, deps[1].IsLeaf())
}

func TestTermsRejectedUnderFormulaChild(t *testing.T) {
	e, rootID := newTestEditor(t)
	require.True(t, e.AddFormulaBranches(rootID, 1))
	events := record(e)
	before := e.Document().Clone()
	entries := e.history.Len()

	assert.False(t, e.AddTermBranches(rootID, 2))
	assert.True(t, tree.EqualDocuments(before, e.Document()))
	assert.Equal(t, entries, e.history.Len(), "no snapshot on a rejected edit")
	assert.Empty(t, events, "no events on a rejected edit")
}

func TestFormulaRejectedUnderTermChild(t *testing.T) {
	e, rootID := newTestEditor(t)
	require.True(t, e.AddTermBranches(rootID, 1))
	assert.False(t, e.AddFormulaBranches(rootID, 1))
	assert.False(t, e.AddIndefiniteBranch(rootID))
	assert.True(t, e.AddTermBranches(rootID, 2))
	assert.Len(t, node(t, e, rootID).Dependents, 3)

	term := node(t, e, rootID).Dependents[0].ID
	assert.False(t, e.AddFormulaBranches(term, 1), "terms take no formula children")
	assert.True(t, e.AddTermBranches(term, 1), "terms may take term children")
}

func TestIndefiniteIsTerminal(t *testing.T) {
	e, rootID := newTestEditor(t)
	require.True(t, e.AddIndefiniteBranch(rootID))
	ind := node(t, e, rootID).Dependents[0].ID

	assert.False(t, e.AddFormulaBranches(ind, 1))
	assert.False(t, e.AddIndefiniteBranch(ind))
	assert.False(t, e.AddTermBranches(ind, 1))
	assert.True(t, node(t, e, ind).IsLeaf())
}

func TestBranchCountBounds(t *testing.T) {
	e, rootID := newTestEditor(t)
	assert.False(t, e.AddFormulaBranches(rootID, 0))
	assert.False(t, e.AddFormulaBranches(rootID, 4))
	assert.False(t, e.AddTermBranches(rootID, 3))
	assert.False(t, e.AddFormulaBranches("missing", 1))
	assert.True(t, e.AddFormulaBranches(rootID, 3))
	assert.Len(t, node(t, e, rootID).Dependents, 3)
}

func TestToggleDividerOnlyOnFormulas(t *testing.T) {
	e, rootID := newTestEditor(t)
	require.True(t, e.AddTermBranches(rootID, 1))
	term := node(t, e, rootID).Dependents[0].ID

	assert.False(t, e.ToggleDivider(term))
	assert.True(t, e.ToggleDivider(rootID))
	assert.True(t, node(t, e, rootID).DotDivider)
	assert.True(t, e.ToggleDivider(rootID))
	assert.False(t, node(t, e, rootID).DotDivider)
}

func TestAnnotation(t *testing.T) {
	e, rootID := newTestEditor(t)
	require.True(t, e.AddFormulaBranches(rootID, 2))
	child := node(t, e, rootID).Dependents[0].ID
	require.True(t, e.AddTermBranches(child, 1))

	assert.True(t, e.SetAnnotation(child, true))
	assert.False(t, e.SetAnnotation(child, true), "already set")
	assert.False(t, node(t, e, rootID).Annotated, "single-node annotation stays on the target")

	assert.True(t, e.SetSubtreeAnnotation(rootID, true))
	tree.Walk(node(t, e, rootID), func(n *tree.Node, _ int) bool {
		assert.True(t, n.Annotated)
		return true
	})
	assert.False(t, e.SetSubtreeAnnotation(rootID, true), "nothing left to change")

	assert.True(t, e.ToggleAnnotation(child))
	assert.False(t, node(t, e, child).Annotated)
}

func TestAnnotationBumpMovesChildren(t *testing.T) {
	e, rootID := newTestEditor(t)
	require.True(t, e.AddFormulaBranches(rootID, 1))
	before := node(t, e, rootID).Dependents[0].X
	require.True(t, e.SetAnnotation(rootID, true))
	after := node(t, e, rootID).Dependents[0].X
	assert.Equal(t, e.Engine().Metrics().AnnotationBump, after-before)
}

func TestDelete(t *testing.T) {
	e, rootID := newTestEditor(t)
	require.True(t, e.AddFormulaBranches(rootID, 2))
	child := node(t, e, rootID).Dependents[0].ID
	require.True(t, e.Select(child))

	assert.True(t, e.Delete(child))
	assert.Len(t, node(t, e, rootID).Dependents, 1)
	_, selected := e.Selected()
	assert.False(t, selected, "selection of a deleted node is dropped")
	assert.False(t, e.Delete(child), "already gone")

	second, _ := e.NewTree(tree.Point{X: 200})
	assert.True(t, e.Delete(second), "root delete removes the tree")
	assert.Len(t, e.Document(), 1)
}

func TestDeleteLastTree(t *testing.T) {
	e, rootID := newTestEditor(t)
	e.KeepLastNode = true
	assert.True(t, e.IsLastNode(rootID))
	assert.False(t, e.Delete(rootID))
	assert.Len(t, e.Document(), 1)

	e.KeepLastNode = false
	assert.True(t, e.Delete(rootID))
	assert.Empty(t, e.Document())
}

func TestMoveBranchAndTree(t *testing.T) {
	e, rootID := newTestEditor(t)
	require.True(t, e.AddFormulaBranches(rootID, 2))
	deps := node(t, e, rootID).Dependents
	a, b := deps[0].ID, deps[1].ID

	assert.False(t, e.MoveBranch(a, -1))
	assert.False(t, e.MoveBranch(rootID, 1), "roots have no siblings")
	assert.True(t, e.MoveBranch(a, 1))
	deps = node(t, e, rootID).Dependents
	assert.Equal(t, []string{b, a}, []string{deps[0].ID, deps[1].ID})
	assert.Equal(t, 48.0, deps[0].Y)

	assert.True(t, e.MoveTree(0, tree.Point{X: 5, Y: 6}))
	assert.Equal(t, tree.Point{X: 5, Y: 6}, e.Document()[0].Offset)
	assert.False(t, e.MoveTree(0, tree.Point{X: 5, Y: 6}), "same place")
	assert.False(t, e.MoveTree(3, tree.Point{}))
}

func TestSetLabelRemeasures(t *testing.T) {
	e := NewEditor(Options{})
	rootID, _ := e.NewTree(tree.Point{})
	require.True(t, e.AddFormulaBranches(rootID, 1))
	childX := node(t, e, rootID).Dependents[0].X

	assert.True(t, e.SetLabel(rootID, "P ∧ Q → R"))
	assert.False(t, e.SetLabel(rootID, "P ∧ Q → R"))
	root := node(t, e, rootID)
	assert.Greater(t, root.ContentWidth, 0.0)
	assert.Greater(t, root.Dependents[0].X, childX, "wider content pushes dependents right")

	assert.True(t, e.SetConnector(rootID, "∧"))
	assert.Greater(t, node(t, e, rootID).ConnectorWidth, 0.0)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e, rootID := newTestEditor(t)
	stateA := e.Document().Clone()

	require.True(t, e.AddFormulaBranches(rootID, 2))
	stateB := e.Document().Clone()

	require.True(t, e.Undo())
	assert.True(t, tree.EqualDocuments(stateA, e.Document()))
	require.True(t, e.Redo())
	assert.True(t, tree.EqualDocuments(stateB, e.Document()))
	assert.False(t, e.Redo())
}

func TestUndoDoesNotAliasHistory(t *testing.T) {
	e, rootID := newTestEditor(t)
	require.True(t, e.AddFormulaBranches(rootID, 1))
	require.True(t, e.AddFormulaBranches(rootID, 1))
	require.True(t, e.Undo())

	// a fresh edit on the restored state must not reach the redo entry
	require.True(t, e.ToggleDivider(rootID))
	assert.False(t, e.CanRedo())
	require.True(t, e.Undo())
	assert.False(t, node(t, e, rootID).DotDivider)
	assert.Len(t, node(t, e, rootID).Dependents, 1)
}

func TestUndoBackToEmpty(t *testing.T) {
	e := NewEditor(Options{})
	assert.False(t, e.CanUndo())
	id, _ := e.NewTree(tree.Point{})
	require.True(t, e.Select(id))
	require.True(t, e.Undo())
	assert.Empty(t, e.Document())
	_, ok := e.Selected()
	assert.False(t, ok)
}

func TestLoadResetsHistoryAndModified(t *testing.T) {
	e, rootID := newTestEditor(t)
	require.True(t, e.AddFormulaBranches(rootID, 1))
	events := record(e)

	doc := tree.Document{tree.NewInstance(tree.Point{X: 1})}
	e.Load(doc, "proof.toml")
	assert.False(t, e.CanUndo())
	assert.False(t, e.Modified())
	assert.Equal(t, "proof.toml", e.FilePath())
	assert.Equal(t, 1, events[event.TypeDocumentLoaded])
	assert.Equal(t, 30.0, e.Document()[0].Root.ContentWidth, "loaded nodes are measured")
	assert.NotSame(t, doc[0].Root, e.Document()[0].Root, "the editor keeps its own copy")

	id := e.Document()[0].Root.ID
	require.True(t, e.AddTermBranches(id, 1))
	assert.True(t, e.Modified())
	require.True(t, e.Undo())
	assert.False(t, e.Modified(), "undo back to the saved state")

	require.True(t, e.Redo())
	e.MarkSaved("")
	assert.False(t, e.Modified())
	assert.Equal(t, 1, events[event.TypeDocumentSaved])
}

func TestCommitDispatchesEvents(t *testing.T) {
	e, rootID := newTestEditor(t)
	events := record(e)

	var got event.DiagramModifiedData
	e.GetEventManager().Subscribe(event.TypeDiagramModified, func(ev event.Event) bool {
		got = ev.Data.(event.DiagramModifiedData)
		return false
	})

	require.True(t, e.AddFormulaBranches(rootID, 1))
	assert.Equal(t, 1, events[event.TypeDiagramModified])
	assert.Equal(t, 1, events[event.TypeHistoryChanged])
	assert.Equal(t, "add-formula", got.Operation)
	assert.Equal(t, []int{0}, got.Instances)
}

func TestRandomEditsKeepInvariants(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Load(tree.Document{tree.NewInstance(tree.Point{})}, "") // undo never reaches an empty diagram
	rng := rand.New(rand.NewSource(7))
	e.KeepLastNode = true

	for step := 0; step < 500; step++ {
		var ids []string
		for _, inst := range e.Document() {
			tree.Walk(inst.Root, func(n *tree.Node, _ int) bool {
				ids = append(ids, n.ID)
				return true
			})
		}
		id := ids[rng.Intn(len(ids))]
		tool := Tools()[rng.Intn(len(Tools()))]
		switch tool {
		case ToolNewTree, ToolMoveTree:
			e.ApplyAt(ToolNewTree, tree.Point{X: float64(rng.Intn(500))})
		case ToolPaste:
			if e.Document().NodeCount() < 300 {
				e.Apply(tool, id)
			}
		default:
			e.Apply(tool, id)
		}
		if rng.Intn(8) == 0 {
			e.Undo()
		}
		require.NoError(t, tree.ValidateDocument(e.Document()), "step %d (%s)", step, tool)
		require.NotEmpty(t, e.Document())
	}
}
