package tree

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKind        = errors.New("unknown branch kind")
	ErrMixedDependents    = errors.New("dependents mix formula and term branches")
	ErrIndefiniteHasChild = errors.New("indefinite branch has dependents")
	ErrSharedNode         = errors.New("node reachable more than once")
	ErrDuplicateID        = errors.New("duplicate node id")
	ErrMissingRoot        = errors.New("tree instance has no root")
	ErrStrayRoot          = errors.New("root flag below the top of a tree")
	ErrIndefiniteTerm     = errors.New("indefinite branch is not a formula")
)

// Validate checks the subtree against the structural invariants: children
// never mix kinds, indefinite nodes are formula leaves, only the top node
// carries the root flag, and every node is reached exactly once. All violations are reported, joined into one error.
func Validate(root *Node) error {
	return validate(root, make(map[*Node]struct{}), make(map[string]struct{}))
}

// ValidateDocument runs Validate over every instance. IDs must be unique
// across the whole document since selection is by ID.
func ValidateDocument(d Document) error {
	seen := make(map[*Node]struct{})
	ids := make(map[string]struct{})
	var errs []error
	for i, inst := range d {
		if inst == nil || inst.Root == nil {
			errs = append(errs, fmt.Errorf("tree %d: %w", i, ErrMissingRoot))
			continue
		}
		if err := validate(inst.Root, seen, ids); err != nil {
			errs = append(errs, fmt.Errorf("tree %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func validate(root *Node, seen map[*Node]struct{}, ids map[string]struct{}) error {
	var errs []error
	var visit func(n *Node, top bool)
	visit = func(n *Node, top bool) {
		if _, dup := seen[n]; dup {
			errs = append(errs, fmt.Errorf("%w: %s", ErrSharedNode, describe(n)))
			return // stop here, a cycle would never end
		}
		seen[n] = struct{}{}
		if n.ID != "" {
			if _, dup := ids[n.ID]; dup {
				errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateID, n.ID))
			}
			ids[n.ID] = struct{}{}
		}
		if n.Kind != Formula && n.Kind != Term {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownKind, describe(n)))
		}
		if n.Root && !top {
			errs = append(errs, fmt.Errorf("%w: %s", ErrStrayRoot, describe(n)))
		}
		if n.Indefinite && len(n.Dependents) > 0 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrIndefiniteHasChild, describe(n)))
		}
		if n.Indefinite && n.Kind != Formula {
			errs = append(errs, fmt.Errorf("%w: %s", ErrIndefiniteTerm, describe(n)))
		}
		if !IsFormulaDependents(n.Dependents) && !IsTermDependents(n.Dependents) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMixedDependents, describe(n)))
		}
		for _, c := range n.Dependents {
			if c == nil {
				continue
			}
			visit(c, false)
		}
	}
	if root != nil {
		visit(root, true)
	}
	return errors.Join(errs...)
}

func describe(n *Node) string {
	if n.Label != "" {
		return fmt.Sprintf("%s %q (%s)", n.Kind, n.Label, n.ID)
	}
	return fmt.Sprintf("%s (%s)", n.Kind, n.ID)
}
