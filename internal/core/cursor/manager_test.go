package cursor

import (
	"testing"

	"github.com/bethropolis/sprig/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEditor struct {
	doc      tree.Document
	selected string
}

func (f *fakeEditor) Document() tree.Document { return f.doc }

func (f *fakeEditor) SelectedLocation() (tree.Location, bool) {
	if f.selected == "" {
		return tree.Location{}, false
	}
	return f.doc.Find(f.selected)
}

func (f *fakeEditor) Select(id string) bool {
	if _, ok := f.doc.Find(id); !ok {
		return false
	}
	f.selected = id
	return true
}

func TestHomeOnEmptyDocument(t *testing.T) {
	m := NewManager(&fakeEditor{})
	assert.False(t, m.Home())
	assert.False(t, m.Parent())
	assert.False(t, m.Sibling(1))
}

func TestMovesFromNothingStartAtHome(t *testing.T) {
	first := tree.NewInstance(tree.Point{})
	ed := &fakeEditor{doc: tree.Document{first, tree.NewInstance(tree.Point{Y: 200})}}
	m := NewManager(ed)

	tests := []struct {
		name string
		move func() bool
	}{
		{"parent", m.Parent},
		{"child", m.Child},
		{"sibling", func() bool { return m.Sibling(-1) }},
		{"tree", func() bool { return m.Tree(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed.selected = ""
			require.True(t, tt.move())
			assert.Equal(t, first.Root.ID, ed.selected)
		})
	}
}

func TestChildPicksMiddleAndSiblingBounds(t *testing.T) {
	inst := tree.NewInstance(tree.Point{})
	a := tree.NewChild(inst.Root, tree.Term)
	b := tree.NewChild(inst.Root, tree.Term)
	ed := &fakeEditor{doc: tree.Document{inst}}
	m := NewManager(ed)
	require.True(t, m.Home())

	require.True(t, m.Child())
	assert.Equal(t, a.ID, ed.selected, "with two children the upper one is the middle")
	assert.False(t, m.Sibling(-1))
	require.True(t, m.Sibling(1))
	assert.Equal(t, b.ID, ed.selected)
	assert.False(t, m.Sibling(1))

	assert.False(t, m.Tree(1), "only one tree")
	assert.False(t, m.Tree(-1))
}
