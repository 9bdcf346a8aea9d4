package tree

// Point is a pane position in layout units.
type Point struct {
	X float64 `toml:"x" yaml:"x"`
	Y float64 `toml:"y" yaml:"y"`
}

// Add returns p shifted by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Instance places one tree on the pane.
type Instance struct {
	Root   *Node `toml:"root" yaml:"root"`
	Offset Point `toml:"offset" yaml:"offset"`
}

// NewInstance creates an instance holding a fresh formula root at offset.
func NewInstance(offset Point) *Instance {
	return &Instance{Root: NewRoot(Formula), Offset: offset}
}

// Document is the ordered list of instances making up one exercise diagram.
// It is the unit captured by history snapshots.
type Document []*Instance

// Location describes where a node sits inside a document.
type Location struct {
	InstanceIndex int
	Instance      *Instance
	Parent        *Node // nil for a root
	Index         int   // position among Parent.Dependents, -1 for a root
	Node          *Node
}

// IsRoot reports whether the located node is its instance's root.
func (l Location) IsRoot() bool {
	return l.Parent == nil
}

// Find locates the node with the given ID.
func (d Document) Find(id string) (Location, bool) {
	if id == "" {
		return Location{}, false
	}
	for i, inst := range d {
		if inst == nil || inst.Root == nil {
			continue
		}
		if inst.Root.ID == id {
			return Location{InstanceIndex: i, Instance: inst, Index: -1, Node: inst.Root}, true
		}
		if loc, ok := findIn(inst.Root, id); ok {
			loc.InstanceIndex = i
			loc.Instance = inst
			return loc, true
		}
	}
	return Location{}, false
}

func findIn(parent *Node, id string) (Location, bool) {
	for i, c := range parent.Dependents {
		if c.ID == id {
			return Location{Parent: parent, Index: i, Node: c}, true
		}
		if loc, ok := findIn(c, id); ok {
			return loc, true
		}
	}
	return Location{}, false
}

// Remove deletes the instance at index i and returns the shortened document.
func (d Document) Remove(i int) Document {
	if i < 0 || i >= len(d) {
		return d
	}
	out := make(Document, 0, len(d)-1)
	out = append(out, d[:i]...)
	return append(out, d[i+1:]...)
}

// NodeCount returns the number of nodes over all instances.
func (d Document) NodeCount() int {
	count := 0
	for _, inst := range d {
		if inst != nil && inst.Root != nil {
			Walk(inst.Root, func(*Node, int) bool {
				count++
				return true
			})
		}
	}
	return count
}
