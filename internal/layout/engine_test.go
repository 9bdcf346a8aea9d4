package layout

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/bethropolis/sprig/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *Engine {
	return NewEngine(DefaultMetrics())
}

// randomTree builds a homogeneous tree with a fixed seed so tests are repeatable.
func randomTree(seed int64, maxDepth int) *tree.Node {
	rng := rand.New(rand.NewSource(seed))
	root := tree.NewRoot(tree.Formula)
	root.ContentWidth = 30
	var grow func(n *tree.Node, depth int)
	grow = func(n *tree.Node, depth int) {
		if depth >= maxDepth || n.Kind == tree.Term || rng.Intn(4) == 0 {
			return
		}
		kind := tree.Formula
		if rng.Intn(3) == 0 {
			kind = tree.Term
		}
		n.ConnectorWidth = float64(rng.Intn(10))
		n.Annotated = rng.Intn(5) == 0
		for i := 0; i < 1+rng.Intn(3); i++ {
			c := tree.NewChild(n, kind)
			c.ContentWidth = float64(10 + rng.Intn(40))
			grow(c, depth+1)
		}
	}
	grow(root, 0)
	return root
}

func TestTwoFormulaBranchesScenario(t *testing.T) {
	root := tree.NewRoot(tree.Formula)
	root.ContentWidth = 30
	a := tree.NewChild(root, tree.Formula)
	b := tree.NewChild(root, tree.Formula)

	cursor := newEngine().Layout(root, 0)

	assert.Equal(t, 48.0, a.Y)
	assert.Equal(t, 96.0, b.Y)
	assert.Equal(t, 72.0, root.Y)
	assert.Equal(t, 96.0, cursor)

	wantX := 30.0 + DefaultFormulaSpacing + DefaultRootBump
	assert.Equal(t, wantX, a.X)
	assert.Equal(t, wantX, b.X, "siblings share one column")
	assert.Equal(t, 0.0, root.X)
}

func TestTermLeafAlignsToFormulaBaseline(t *testing.T) {
	root := tree.NewRoot(tree.Formula)
	tm := tree.NewChild(root, tree.Term)

	newEngine().Layout(root, 0)

	assert.Equal(t, 48.0-DefaultFormulaBoxHeight/2, tm.Y)
	assert.Equal(t, tm.Y, root.Y, "one child: midpoint collapses to the child")
	assert.Equal(t, float64(DefaultTermSpacing+DefaultRootBump), tm.X)
}

func TestHorizontalAdvance(t *testing.T) {
	e := newEngine()
	tests := []struct {
		name  string
		build func() *tree.Node
		want  float64
	}{
		{
			name: "leaf has only content width",
			build: func() *tree.Node {
				return &tree.Node{Kind: tree.Formula, ContentWidth: 40, ConnectorWidth: 7}
			},
			want: 40,
		},
		{
			name: "formula children add connector and formula spacing",
			build: func() *tree.Node {
				n := &tree.Node{Kind: tree.Formula, ContentWidth: 40, ConnectorWidth: 7}
				tree.NewChild(n, tree.Formula)
				return n
			},
			want: 40 + 7 + DefaultFormulaSpacing,
		},
		{
			name: "term children skip the connector",
			build: func() *tree.Node {
				n := &tree.Node{Kind: tree.Formula, ContentWidth: 40, ConnectorWidth: 7}
				tree.NewChild(n, tree.Term)
				return n
			},
			want: 40 + DefaultTermSpacing,
		},
		{
			name: "annotation and root bumps",
			build: func() *tree.Node {
				n := tree.NewRoot(tree.Formula)
				n.ContentWidth = 10
				n.Annotated = true
				tree.NewChild(n, tree.Formula)
				return n
			},
			want: 10 + DefaultFormulaSpacing + DefaultAnnotationBump + DefaultRootBump,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.HorizontalAdvance(tt.build()))
		})
	}
}

func TestLayoutIsDeterministic(t *testing.T) {
	e := newEngine()
	for seed := int64(1); seed <= 20; seed++ {
		root := randomTree(seed, 5)
		e.Layout(root, 0)
		first := root.Clone()
		e.Layout(root, 0)
		assert.True(t, tree.Equal(first, root), "seed %d: second pass moved nodes", seed)
	}
}

func TestMidpointInvariant(t *testing.T) {
	e := newEngine()
	for seed := int64(1); seed <= 20; seed++ {
		root := randomTree(seed, 6)
		e.Layout(root, 0)
		tree.Walk(root, func(n *tree.Node, _ int) bool {
			if !n.IsLeaf() {
				assert.Equal(t, (n.FirstChild().Y+n.LastChild().Y)/2, n.Y, "seed %d", seed)
				for _, c := range n.Dependents {
					assert.Equal(t, n.X+e.HorizontalAdvance(n), c.X)
				}
			}
			return true
		})
	}
}

func TestLeafMonotonicity(t *testing.T) {
	e := newEngine()
	half := DefaultFormulaBoxHeight / 2.0
	for seed := int64(1); seed <= 20; seed++ {
		root := randomTree(seed, 6)
		e.Layout(root, 0)

		// undo the term baseline shift to read back the raw slot
		slot := func(n *tree.Node) float64 {
			if n.Kind == tree.Term {
				return n.Y + half
			}
			return n.Y
		}
		leaves := tree.Leaves(root)
		require.NotEmpty(t, leaves)
		assert.Equal(t, float64(DefaultStartOffset+DefaultRowHeight), slot(leaves[0]))
		for i := 1; i < len(leaves); i++ {
			assert.Equal(t, slot(leaves[i-1])+DefaultRowHeight, slot(leaves[i]), "seed %d leaf %d", seed, i)
		}
	}
}

func TestConcurrentInstancesDoNotInterfere(t *testing.T) {
	e := newEngine()
	doc := make(tree.Document, 8)
	want := make([]*tree.Node, len(doc))
	for i := range doc {
		doc[i] = &tree.Instance{Root: randomTree(int64(i+1), 5)}
		want[i] = doc[i].Root.Clone()
		e.Layout(want[i], 0)
	}

	var wg sync.WaitGroup
	for _, inst := range doc {
		wg.Add(1)
		go func(inst *tree.Instance) {
			defer wg.Done()
			e.LayoutInstance(inst)
		}(inst)
	}
	wg.Wait()

	for i := range doc {
		assert.True(t, tree.Equal(want[i], doc[i].Root), "instance %d", i)
	}
}

func TestIndefiniteWidthIgnoresContent(t *testing.T) {
	e := newEngine()
	root := tree.NewRoot(tree.Formula)
	ind := tree.NewIndefinite(root)
	ind.ContentWidth = 500
	assert.Equal(t, float64(DefaultIndefiniteWidth), e.NodeWidth(ind))

	root.ContentWidth = 30
	assert.Equal(t, 30.0, e.NodeWidth(root))
}

func TestStartOffsetShiftsLeaves(t *testing.T) {
	m := DefaultMetrics()
	m.StartOffset = 100
	root := tree.NewRoot(tree.Formula)
	leaf := tree.NewChild(root, tree.Formula)

	NewEngine(m).Layout(root, 5)
	assert.Equal(t, 148.0, leaf.Y)
	assert.Equal(t, 5.0, root.X)
}
