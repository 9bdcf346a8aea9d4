// internal/core/editor.go
package core

import (
	"github.com/bethropolis/sprig/internal/core/clipboard"
	"github.com/bethropolis/sprig/internal/core/cursor"
	"github.com/bethropolis/sprig/internal/core/find"
	"github.com/bethropolis/sprig/internal/core/history"
	"github.com/bethropolis/sprig/internal/core/selection"
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/layout"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/measure"
	"github.com/bethropolis/sprig/internal/tree"
)

// Editor owns one live diagram and everything that edits it. It is driven
// from a single goroutine; every committed edit is laid out, recorded in
// history and announced on the event bus before the method returns.
type Editor struct {
	doc      tree.Document
	saved    tree.Document // state at the last load or save, for Modified
	filePath string

	engine   *layout.Engine
	measurer measure.Measurer
	history  *history.Manager[tree.Document]

	eventManager     *event.Manager
	hitTester        HitTester
	selectionManager *selection.Manager
	cursorManager    *cursor.Manager
	findManager      *find.Manager
	clipboardManager *clipboard.Manager

	// Tool session
	tool        Tool
	pendingMove int // instance picked by the first click of ToolMoveTree, -1 when idle

	// KeepLastNode refuses deleting the root of the only remaining tree.
	KeepLastNode bool
}

// Options configures a new Editor. Zero values select defaults.
type Options struct {
	Metrics         layout.Metrics
	Measurer        measure.Measurer
	HistoryCapacity int
	SystemClipboard bool
	KeepLastNode    bool
}

// NewEditor creates an editor holding an empty document. The empty state is
// the base history entry.
func NewEditor(opts Options) *Editor {
	if opts.Metrics == (layout.Metrics{}) {
		opts.Metrics = layout.DefaultMetrics()
	}
	if opts.Measurer == nil {
		opts.Measurer = measure.NewCells(measure.DefaultUnitsPerCell)
	}
	e := &Editor{
		doc:          tree.Document{},
		engine:       layout.NewEngine(opts.Metrics),
		measurer:     opts.Measurer,
		history:      history.NewManager[tree.Document](opts.HistoryCapacity),
		pendingMove:  -1,
		KeepLastNode: opts.KeepLastNode,
	}
	e.selectionManager = selection.NewManager(e)
	e.cursorManager = cursor.NewManager(e)
	e.findManager = find.NewManager(e)
	e.clipboardManager = clipboard.NewManager(opts.SystemClipboard)
	e.history.Push(e.doc)
	e.saved = e.doc.Clone()
	return e
}

// SetEventManager sets the event manager for dispatching events.
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// GetEventManager returns the event manager (may be nil).
func (e *Editor) GetEventManager() *event.Manager {
	return e.eventManager
}

// SetHitTester installs the pointer-to-node mapping used by ApplyAt.
func (e *Editor) SetHitTester(h HitTester) {
	e.hitTester = h
}

// Document returns the live document. Callers must not mutate it; edits go
// through the editor's operations.
func (e *Editor) Document() tree.Document {
	return e.doc
}

// Engine returns the layout engine.
func (e *Editor) Engine() *layout.Engine {
	return e.engine
}

// Clipboard returns the subtree clipboard.
func (e *Editor) Clipboard() *clipboard.Manager {
	return e.clipboardManager
}

// Find returns the label search manager.
func (e *Editor) Find() *find.Manager {
	return e.findManager
}

// Navigation returns the keyboard navigation manager.
func (e *Editor) Navigation() *cursor.Manager {
	return e.cursorManager
}

// FilePath returns the path the document was loaded from or saved to.
func (e *Editor) FilePath() string {
	return e.filePath
}

// SetFilePath sets the document path without touching its contents.
func (e *Editor) SetFilePath(path string) {
	e.filePath = path
}

// Load replaces the document, measures and lays it out, and resets history
// so the loaded state is the only entry. Selection is cleared.
func (e *Editor) Load(doc tree.Document, filePath string) {
	e.doc = doc.Clone()
	measure.Document(e.measurer, e.doc)
	e.engine.LayoutDocument(e.doc)
	e.history.Clear()
	e.history.Push(e.doc)
	e.saved = e.doc.Clone()
	e.filePath = filePath
	e.resetPending()
	e.selectionManager.Clear()
	logger.Infof("Editor: loaded %d tree(s), %d node(s)", len(e.doc), e.doc.NodeCount())

	e.dispatch(event.TypeDocumentLoaded, event.DocumentLoadedData{FilePath: filePath})
	e.dispatch(event.TypeSelectionChanged, event.SelectionChangedData{})
	e.dispatchHistory()
}

// MarkSaved records the current state as saved to path.
func (e *Editor) MarkSaved(path string) {
	e.saved = e.doc.Clone()
	if path != "" {
		e.filePath = path
	}
	e.dispatch(event.TypeDocumentSaved, event.DocumentSavedData{FilePath: e.filePath})
}

// Modified reports whether the document differs from the last load or save.
// Undoing back to the saved state clears it.
func (e *Editor) Modified() bool {
	return !tree.EqualDocuments(e.doc, e.saved)
}

// commit finishes a successful edit: lay out, snapshot, announce.
func (e *Editor) commit(op string, instances ...int) {
	e.engine.LayoutDocument(e.doc)
	e.history.Push(e.doc)
	logger.DebugTagf("edit", "Committed %s on %v (%d nodes)", op, instances, e.doc.NodeCount())

	if e.selectionManager.Revalidate() {
		e.dispatch(event.TypeSelectionChanged, event.SelectionChangedData{})
	}
	e.dispatch(event.TypeDiagramModified, event.DiagramModifiedData{Operation: op, Instances: instances})
	e.dispatchHistory()
}

// Undo restores the previous snapshot. It returns false at the oldest entry.
func (e *Editor) Undo() bool {
	return e.restore("undo", e.history.Undo)
}

// Redo restores the next snapshot. It returns false at the newest entry.
func (e *Editor) Redo() bool {
	return e.restore("redo", e.history.Redo)
}

func (e *Editor) restore(op string, step func() (tree.Document, bool)) bool {
	snap, ok := step()
	if !ok {
		return false
	}
	e.doc = snap // already a private copy
	e.resetPending()
	if e.selectionManager.Revalidate() {
		e.dispatch(event.TypeSelectionChanged, event.SelectionChangedData{})
	}
	e.dispatch(event.TypeDiagramModified, event.DiagramModifiedData{Operation: op})
	e.dispatchHistory()
	return true
}

// CanUndo reports whether Undo would succeed.
func (e *Editor) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (e *Editor) CanRedo() bool {
	return e.history.CanRedo()
}

// --- Selection ---

// Select selects a node by ID.
func (e *Editor) Select(id string) bool {
	prev, _ := e.selectionManager.Selected()
	if !e.selectionManager.Select(id) {
		return false
	}
	if prev != id {
		e.dispatch(event.TypeSelectionChanged, event.SelectionChangedData{NodeID: id})
	}
	return true
}

// ClearSelection drops the selection.
func (e *Editor) ClearSelection() {
	if _, ok := e.selectionManager.Selected(); ok {
		e.selectionManager.Clear()
		e.dispatch(event.TypeSelectionChanged, event.SelectionChangedData{})
	}
}

// Selected returns the selected node ID.
func (e *Editor) Selected() (string, bool) {
	return e.selectionManager.Selected()
}

// SelectedLocation resolves the selection against the live document.
func (e *Editor) SelectedLocation() (tree.Location, bool) {
	return e.selectionManager.Location()
}

func (e *Editor) dispatch(t event.Type, data interface{}) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(t, data)
	}
}

func (e *Editor) dispatchHistory() {
	e.dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
		CanUndo: e.history.CanUndo(),
		CanRedo: e.history.CanRedo(),
	})
}
