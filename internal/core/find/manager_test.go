package find

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
	f.selected = id
	return true
}

// labelled builds two trees: "p" with children "q" and "pq", and "p2".
func labelled() (tree.Document, map[string]string) {
	first := tree.NewInstance(tree.Point{})
	first.Root.Label = "p"
	q := tree.NewChild(first.Root, tree.Formula)
	q.Label = "q"
	pq := tree.NewChild(first.Root, tree.Formula)
	pq.Label = "pq"
	second := tree.NewInstance(tree.Point{Y: 200})
	second.Root.Label = "p2"
	ids := map[string]string{"p": first.Root.ID, "q": q.ID, "pq": pq.ID, "p2": second.Root.ID}
	return tree.Document{first, second}, ids
}

func TestInvalidPatternKeepsPrevious(t *testing.T) {
	doc, ids := labelled()
	m := NewManager(&fakeEditor{doc: doc})

	require.NoError(t, m.SetPattern("^q$"))
	err := m.SetPattern("[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid search pattern")
	assert.True(t, m.Active())
	assert.Equal(t, []string{ids["q"]}, m.Matches())
}

func TestNextWrapsAcrossTrees(t *testing.T) {
	doc, ids := labelled()
	ed := &fakeEditor{doc: doc}
	m := NewManager(ed)
	require.NoError(t, m.SetPattern("^p"))

	var got []string
	for i := 0; i < 4; i++ {
		id, ok := m.Next(true)
		require.True(t, ok)
		got = append(got, id)
	}
	assert.Equal(t, []string{ids["p"], ids["pq"], ids["p2"], ids["p"]}, got)

	id, ok := m.Next(false)
	require.True(t, ok)
	assert.Equal(t, ids["p2"], id, "backwards from the first match wraps to the last")
}

func TestNoMatches(t *testing.T) {
	doc, _ := labelled()
	ed := &fakeEditor{doc: doc}
	m := NewManager(ed)
	require.NoError(t, m.SetPattern("zzz"))
	_, ok := m.Next(true)
	assert.False(t, ok)
	assert.Empty(t, ed.selected)
	assert.False(t, m.IsMatch(nil))
}
