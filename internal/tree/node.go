// Package tree holds the branching-diagram entity model: nodes, the
// instances that place a root on the pane, and the document that groups them.
package tree

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind tells formula branches apart from term branches.
type Kind int

const (
	Formula Kind = iota
	Term
)

// String returns the lower-case name used in files and logs.
func (k Kind) String() string {
	switch k {
	case Formula:
		return "formula"
	case Term:
		return "term"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText lets TOML and YAML encoders write the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Formula, Term:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
}

// UnmarshalText parses a kind name written by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "formula":
		*k = Formula
	case "term":
		*k = Term
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, string(text))
	}
	return nil
}

// Node is one branch of a diagram. Fields are exported so a whole document is
// a plain value that encoders can walk; X and Y are derived by the layout
// engine and get overwritten on every pass.
type Node struct {
	ID         string `toml:"id" yaml:"id"`
	Kind       Kind   `toml:"kind" yaml:"kind"`
	Indefinite bool   `toml:"indefinite,omitempty" yaml:"indefinite,omitempty"`
	DotDivider bool   `toml:"dot_divider,omitempty" yaml:"dot_divider,omitempty"`
	Root       bool   `toml:"root,omitempty" yaml:"root,omitempty"`
	Annotated  bool   `toml:"annotated,omitempty" yaml:"annotated,omitempty"`

	// Plain text content. Widths come from an external measurer.
	Label          string  `toml:"label,omitempty" yaml:"label,omitempty"`
	Connector      string  `toml:"connector,omitempty" yaml:"connector,omitempty"`
	ContentWidth   float64 `toml:"content_width" yaml:"content_width"`
	ConnectorWidth float64 `toml:"connector_width" yaml:"connector_width"`

	X float64 `toml:"x" yaml:"x"`
	Y float64 `toml:"y" yaml:"y"`

	Dependents []*Node `toml:"dependents,omitempty" yaml:"dependents,omitempty"`
}

func newID() string {
	return uuid.NewString()
}

// NewRoot creates the top node of a fresh tree instance.
func NewRoot(kind Kind) *Node {
	return &Node{ID: newID(), Kind: kind, Root: true}
}

// NewChild creates a node of the given kind and appends it to parent.
func NewChild(parent *Node, kind Kind) *Node {
	child := &Node{ID: newID(), Kind: kind}
	parent.Append(child)
	return child
}

// NewIndefinite appends an indefinite ("...") leaf to parent. Indefinite
// leaves are formula-kind so they can sit among ordinary formula siblings.
func NewIndefinite(parent *Node) *Node {
	child := &Node{ID: newID(), Kind: Formula, Indefinite: true}
	parent.Append(child)
	return child
}

// IsLeaf reports whether the node has no dependents.
func (n *Node) IsLeaf() bool {
	return len(n.Dependents) == 0
}

// FirstChild returns the first dependent or nil.
func (n *Node) FirstChild() *Node {
	if len(n.Dependents) == 0 {
		return nil
	}
	return n.Dependents[0]
}

// LastChild returns the last dependent or nil.
func (n *Node) LastChild() *Node {
	if len(n.Dependents) == 0 {
		return nil
	}
	return n.Dependents[len(n.Dependents)-1]
}

// Append adds children at the end of the dependents list. The child's Root
// flag is cleared since it now has a parent.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		c.Root = false
		n.Dependents = append(n.Dependents, c)
	}
}

// IndexOf returns the position of child among n's dependents, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.Dependents {
		if c == child {
			return i
		}
	}
	return -1
}

// RemoveDependent detaches the dependent at index i and returns it.
func (n *Node) RemoveDependent(i int) *Node {
	if i < 0 || i >= len(n.Dependents) {
		return nil
	}
	removed := n.Dependents[i]
	n.Dependents = append(n.Dependents[:i], n.Dependents[i+1:]...)
	if len(n.Dependents) == 0 {
		n.Dependents = nil // keep "no children" a single representation
	}
	return removed
}

// Move shifts the dependent at index i by delta positions, keeping the order
// of the others. It returns false when the target position is out of range.
func (n *Node) Move(i, delta int) bool {
	j := i + delta
	if i < 0 || i >= len(n.Dependents) || j < 0 || j >= len(n.Dependents) || delta == 0 {
		return false
	}
	moved := n.Dependents[i]
	if j > i {
		copy(n.Dependents[i:j], n.Dependents[i+1:j+1])
	} else {
		copy(n.Dependents[j+1:i+1], n.Dependents[j:i])
	}
	n.Dependents[j] = moved
	return true
}

// IsFormulaDependents is the homogeneity check used to gate formula edits:
// true when list is empty or every element is a formula.
func IsFormulaDependents(list []*Node) bool {
	return allOfKind(list, Formula)
}

// IsTermDependents is the term counterpart of IsFormulaDependents.
func IsTermDependents(list []*Node) bool {
	return allOfKind(list, Term)
}

func allOfKind(list []*Node, kind Kind) bool {
	for _, n := range list {
		if n.Kind != kind {
			return false
		}
	}
	return true
}
