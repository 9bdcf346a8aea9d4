package clipboard

import (
	"errors"
	"testing"

	"github.com/bethropolis/sprig/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYankCopiesDeep(t *testing.T) {
	m := NewManager(false)
	assert.True(t, m.IsEmpty())
	_, ok := m.Content()
	assert.False(t, ok)

	root := tree.NewRoot(tree.Formula)
	root.Label = "P"
	child := tree.NewChild(root, tree.Term)
	require.NoError(t, m.Yank(root))

	root.Label = "changed after yank"
	child.Label = "also changed"

	got, ok := m.Content()
	require.True(t, ok)
	assert.Equal(t, "P", got.Label)
	assert.False(t, got.Root, "pasted subtrees are never roots")
	assert.NotEqual(t, root.ID, got.ID)
	assert.Equal(t, "", got.Dependents[0].Label)

	again, _ := m.Content()
	assert.NotEqual(t, got.ID, again.ID, "every paste gets its own ids")
	kind, _ := m.Kind()
	assert.Equal(t, tree.Formula, kind)
}

func TestSystemClipboardError(t *testing.T) {
	m := NewManager(true)
	m.SetSystemWriter(func(string) error { return errors.New("no display") })
	err := m.Yank(tree.NewRoot(tree.Formula))
	assert.ErrorContains(t, err, "no display")
	assert.False(t, m.IsEmpty(), "the register is filled anyway")
}

func TestOutline(t *testing.T) {
	root := tree.NewRoot(tree.Formula)
	root.Label = "∀x Fx"
	root.Annotated = true
	a := tree.NewChild(root, tree.Term)
	a.Label = "a"
	tree.NewChild(a, tree.Term)

	assert.Equal(t, "∀x Fx *\n  a\n    (term)\n", Outline(root))
}
