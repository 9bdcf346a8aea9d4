package tree

// Walk visits the subtree in pre-order. depth is 0 for n itself. Returning
// false from fn skips that node's dependents.
func Walk(n *Node, fn func(node *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Dependents {
		walk(c, depth+1, fn)
	}
}

// Leaves returns the leaves of the subtree in left-to-right depth-first order.
func Leaves(n *Node) []*Node {
	var out []*Node
	Walk(n, func(node *Node, _ int) bool {
		if node.IsLeaf() {
			out = append(out, node)
		}
		return true
	})
	return out
}

// Depth returns the number of levels in the subtree (1 for a lone node).
func Depth(n *Node) int {
	deepest := 0
	Walk(n, func(_ *Node, depth int) bool {
		if depth+1 > deepest {
			deepest = depth + 1
		}
		return true
	})
	return deepest
}

// SetAnnotated sets the annotation flag on n and every descendant.
func SetAnnotated(n *Node, on bool) {
	Walk(n, func(node *Node, _ int) bool {
		node.Annotated = on
		return true
	})
}

// AssignMissingIDs gives every node under root without an ID a fresh one and
// returns how many were assigned.
func AssignMissingIDs(root *Node) int {
	assigned := 0
	Walk(root, func(n *Node, _ int) bool {
		if n.ID == "" {
			n.ID = newID()
			assigned++
		}
		return true
	})
	return assigned
}
