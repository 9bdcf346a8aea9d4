package selection

import (
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/tree"
)

// Manager tracks the selected node. Selection is by node ID so it survives
// undo and redo, which replace every node pointer in the document.
type Manager struct {
	editor EditorInterface

	selected string // empty means nothing is selected
}

// EditorInterface defines what the selection manager needs from the editor.
type EditorInterface interface {
	Document() tree.Document
}

// NewManager creates a new selection manager.
func NewManager(editor EditorInterface) *Manager {
	return &Manager{editor: editor}
}

// Select selects the node with the given ID. Unknown IDs leave the
// selection untouched and return false.
func (m *Manager) Select(id string) bool {
	if _, ok := m.editor.Document().Find(id); !ok {
		return false
	}
	if m.selected != id {
		logger.DebugTagf("selection", "Selected %s", id)
	}
	m.selected = id
	return true
}

// Selected returns the selected node ID.
func (m *Manager) Selected() (string, bool) {
	return m.selected, m.selected != ""
}

// Location resolves the selection against the current document.
func (m *Manager) Location() (tree.Location, bool) {
	if m.selected == "" {
		return tree.Location{}, false
	}
	return m.editor.Document().Find(m.selected)
}

// HasSelection returns whether a live node is selected.
func (m *Manager) HasSelection() bool {
	_, ok := m.Location()
	return ok
}

// Clear drops the selection.
func (m *Manager) Clear() {
	m.selected = ""
}

// Revalidate clears the selection when its node no longer exists and reports
// whether anything changed.
func (m *Manager) Revalidate() bool {
	if m.selected == "" {
		return false
	}
	if _, ok := m.editor.Document().Find(m.selected); ok {
		return false
	}
	logger.DebugTagf("selection", "Selected node %s is gone, clearing", m.selected)
	m.selected = ""
	return true
}
