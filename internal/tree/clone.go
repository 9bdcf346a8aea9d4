package tree

// Clone returns a deep copy of the subtree rooted at n. Every node and every
// dependents slice is freshly allocated; IDs are kept so a copy can stand in
// for the original (history restore).
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Dependents = nil
	if len(n.Dependents) > 0 {
		c.Dependents = make([]*Node, len(n.Dependents))
		for i, d := range n.Dependents {
			c.Dependents[i] = d.Clone()
		}
	}
	return &c
}

// CloneFresh deep-copies the subtree and gives every copied node a new ID,
// so the copy can live in the same document as its source (paste).
func (n *Node) CloneFresh() *Node {
	c := n.Clone()
	Walk(c, func(node *Node, _ int) bool {
		node.ID = newID()
		return true
	})
	return c
}

// Clone deep-copies the instance.
func (inst *Instance) Clone() *Instance {
	if inst == nil {
		return nil
	}
	return &Instance{Root: inst.Root.Clone(), Offset: inst.Offset}
}

// Clone deep-copies the document. A nil document clones to an empty one.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for i, inst := range d {
		out[i] = inst.Clone()
	}
	return out
}

// Equal compares two subtrees field by field, including coordinates. A nil
// and an empty dependents list compare equal.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID != b.ID || a.Kind != b.Kind || a.Indefinite != b.Indefinite ||
		a.DotDivider != b.DotDivider || a.Root != b.Root || a.Annotated != b.Annotated ||
		a.Label != b.Label || a.Connector != b.Connector ||
		a.ContentWidth != b.ContentWidth || a.ConnectorWidth != b.ConnectorWidth ||
		a.X != b.X || a.Y != b.Y {
		return false
	}
	if len(a.Dependents) != len(b.Dependents) {
		return false
	}
	for i := range a.Dependents {
		if !Equal(a.Dependents[i], b.Dependents[i]) {
			return false
		}
	}
	return true
}

// EqualDocuments compares two documents instance by instance.
func EqualDocuments(a, b Document) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == nil || b[i] == nil {
			if a[i] != b[i] {
				return false
			}
			continue
		}
		if a[i].Offset != b[i].Offset || !Equal(a[i].Root, b[i].Root) {
			return false
		}
	}
	return true
}
