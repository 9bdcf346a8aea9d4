// Package find searches node labels with regular expressions.
package find

import (
	"fmt"
	"regexp"

	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/tree"
)

// EditorInterface defines what search needs from the editor.
type EditorInterface interface {
	Document() tree.Document
	SelectedLocation() (tree.Location, bool)
	Select(id string) bool
}

// Manager holds the active search pattern. Matches are computed against the
// live document on demand, so they stay correct across edits and undo.
type Manager struct {
	editor  EditorInterface
	pattern *regexp.Regexp
}

// NewManager creates a new find manager.
func NewManager(editor EditorInterface) *Manager {
	return &Manager{editor: editor}
}

// SetPattern compiles and activates a search pattern. An empty term clears it.
func (m *Manager) SetPattern(term string) error {
	if term == "" {
		m.Clear()
		return nil
	}
	re, err := regexp.Compile(term)
	if err != nil {
		return fmt.Errorf("invalid search pattern '%s': %w", term, err)
	}
	m.pattern = re
	return nil
}

// Clear removes the active pattern.
func (m *Manager) Clear() {
	m.pattern = nil
}

// Active reports whether a pattern is set.
func (m *Manager) Active() bool {
	return m.pattern != nil
}

// IsMatch reports whether the node's label matches the active pattern.
func (m *Manager) IsMatch(n *tree.Node) bool {
	return m.pattern != nil && n != nil && m.pattern.MatchString(n.Label)
}

// Matches returns the IDs of all matching nodes in document order.
func (m *Manager) Matches() []string {
	if m.pattern == nil {
		return nil
	}
	var ids []string
	for _, inst := range m.editor.Document() {
		tree.Walk(inst.Root, func(n *tree.Node, _ int) bool {
			if m.IsMatch(n) {
				ids = append(ids, n.ID)
			}
			return true
		})
	}
	return ids
}

// Next selects the next match after the selection (or the previous one when
// forward is false), wrapping around the document.
func (m *Manager) Next(forward bool) (string, bool) {
	order := documentOrder(m.editor.Document())
	if m.pattern == nil || len(order) == 0 {
		return "", false
	}

	start := -1
	if loc, ok := m.editor.SelectedLocation(); ok {
		for i, n := range order {
			if n == loc.Node {
				start = i
				break
			}
		}
	}
	step := 1
	if !forward {
		step = -1
		if start < 0 {
			start = 0
		}
	}

	for k := 1; k <= len(order); k++ {
		i := ((start+step*k)%len(order) + len(order)) % len(order)
		if m.IsMatch(order[i]) {
			m.editor.Select(order[i].ID)
			return order[i].ID, true
		}
	}
	logger.DebugTagf("find", "No match for %q", m.pattern.String())
	return "", false
}

func documentOrder(doc tree.Document) []*tree.Node {
	var out []*tree.Node
	for _, inst := range doc {
		tree.Walk(inst.Root, func(n *tree.Node, _ int) bool {
			out = append(out, n)
			return true
		})
	}
	return out
}
