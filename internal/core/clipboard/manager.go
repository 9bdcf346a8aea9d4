// Package clipboard holds yanked subtrees for pasting elsewhere in a diagram.
package clipboard

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/tree"
)

// Manager is a single-register subtree clipboard. The register holds a deep
// copy, so later edits to the yanked nodes do not reach it.
type Manager struct {
	register *tree.Node

	useSystem   bool
	writeSystem func(string) error
}

// NewManager creates a clipboard. When useSystem is set, yanks are also
// written to the system clipboard as a plain-text outline.
func NewManager(useSystem bool) *Manager {
	m := &Manager{useSystem: useSystem}
	if !clipboard.Unsupported {
		m.writeSystem = clipboard.WriteAll
	}
	return m
}

// SetSystemWriter replaces the system clipboard writer; tests and headless
// runs use it to avoid touching the desktop clipboard.
func (m *Manager) SetSystemWriter(w func(string) error) {
	m.writeSystem = w
}

// Yank copies the subtree rooted at n into the register. An error is only
// returned when the system clipboard could not be written; the register is
// filled regardless.
func (m *Manager) Yank(n *tree.Node) error {
	if n == nil {
		return nil
	}
	m.register = n.Clone()
	m.register.Root = false
	logger.DebugTagf("clipboard", "Yanked subtree %s", n.ID)

	if !m.useSystem || m.writeSystem == nil {
		return nil
	}
	if err := m.writeSystem(Outline(n)); err != nil {
		return fmt.Errorf("failed to write system clipboard: %w", err)
	}
	return nil
}

// Content returns a fresh-ID copy of the register, ready to be attached.
func (m *Manager) Content() (*tree.Node, bool) {
	if m.register == nil {
		return nil, false
	}
	return m.register.CloneFresh(), true
}

// Kind returns the kind of the yanked subtree's top node.
func (m *Manager) Kind() (tree.Kind, bool) {
	if m.register == nil {
		return tree.Formula, false
	}
	return m.register.Kind, true
}

// IsEmpty reports whether nothing has been yanked.
func (m *Manager) IsEmpty() bool {
	return m.register == nil
}

// Outline renders a subtree as indented plain text, two spaces per level.
// Indefinite branches print as "...", unlabeled nodes as their kind.
func Outline(n *tree.Node) string {
	var b strings.Builder
	tree.Walk(n, func(node *tree.Node, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth))
		switch {
		case node.Indefinite:
			b.WriteString("...")
		case node.Label != "":
			b.WriteString(node.Label)
		default:
			fmt.Fprintf(&b, "(%s)", node.Kind)
		}
		if node.Connector != "" && !node.IsLeaf() {
			fmt.Fprintf(&b, " [%s]", node.Connector)
		}
		if node.Annotated {
			b.WriteString(" *")
		}
		b.WriteByte('\n')
		return true
	})
	return b.String()
}
