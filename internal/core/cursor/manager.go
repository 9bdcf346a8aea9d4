// Package cursor moves the selection around a diagram from the keyboard.
package cursor

import (
	"github.com/bethropolis/sprig/internal/tree"
)

// EditorInterface defines what navigation needs from the editor.
type EditorInterface interface {
	Document() tree.Document
	SelectedLocation() (tree.Location, bool)
	Select(id string) bool
}

// Manager implements structural navigation: parent, child, sibling and tree.
type Manager struct {
	editor EditorInterface
}

// NewManager creates a new navigation manager.
func NewManager(editor EditorInterface) *Manager {
	return &Manager{editor: editor}
}

// Home selects the root of the first tree.
func (m *Manager) Home() bool {
	doc := m.editor.Document()
	if len(doc) == 0 || doc[0].Root == nil {
		return false
	}
	return m.editor.Select(doc[0].Root.ID)
}

// Parent moves to the parent of the selection.
func (m *Manager) Parent() bool {
	loc, ok := m.editor.SelectedLocation()
	if !ok {
		return m.Home()
	}
	if loc.IsRoot() {
		return false
	}
	return m.editor.Select(loc.Parent.ID)
}

// Child moves to the middle dependent of the selection, the one drawn level
// with it.
func (m *Manager) Child() bool {
	loc, ok := m.editor.SelectedLocation()
	if !ok {
		return m.Home()
	}
	deps := loc.Node.Dependents
	if len(deps) == 0 {
		return false
	}
	return m.editor.Select(deps[(len(deps)-1)/2].ID)
}

// Sibling moves delta places along the selection's siblings. At the root it
// moves between trees instead.
func (m *Manager) Sibling(delta int) bool {
	loc, ok := m.editor.SelectedLocation()
	if !ok {
		return m.Home()
	}
	if loc.IsRoot() {
		return m.Tree(delta)
	}
	i := loc.Index + delta
	if i < 0 || i >= len(loc.Parent.Dependents) {
		return false
	}
	return m.editor.Select(loc.Parent.Dependents[i].ID)
}

// Tree moves to the root of the tree delta places from the current one.
func (m *Manager) Tree(delta int) bool {
	loc, ok := m.editor.SelectedLocation()
	if !ok {
		return m.Home()
	}
	doc := m.editor.Document()
	i := loc.InstanceIndex + delta
	if i < 0 || i >= len(doc) {
		return false
	}
	return m.editor.Select(doc[i].Root.ID)
}
