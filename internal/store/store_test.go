package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethropolis/sprig/internal/layout"
	"github.com/bethropolis/sprig/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() tree.Document {
	a := tree.NewInstance(tree.Point{X: 10, Y: 20})
	a.Root.Label = "P → Q"
	a.Root.Connector = "→"
	a.Root.DotDivider = true
	p := tree.NewChild(a.Root, tree.Formula)
	p.Label = "¬P"
	tree.NewIndefinite(a.Root)
	q := tree.NewChild(p, tree.Term)
	q.Label = "a"
	q.Annotated = true

	b := tree.NewInstance(tree.Point{X: 300})
	b.Root.Label = "R"

	doc := tree.Document{a, b}
	layout.NewEngine(layout.DefaultMetrics()).LayoutDocument(doc)
	return doc
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"proof.toml", TOML, false},
		{"proof", TOML, false},
		{"proof.YAML", YAML, false},
		{"dir/proof.yml", YAML, false},
		{"proof.json", TOML, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if tt.err {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundTripIsByteIdentical(t *testing.T) {
	for _, format := range []Format{TOML, YAML} {
		t.Run(format.String(), func(t *testing.T) {
			doc := sampleDocument()
			first, err := Marshal(doc, format)
			require.NoError(t, err)

			loaded, err := Decode(strings.NewReader(string(first)), format)
			require.NoError(t, err)
			assert.True(t, tree.EqualDocuments(doc, loaded))

			second, err := Marshal(loaded, format)
			require.NoError(t, err)
			assert.Equal(t, string(first), string(second))
		})
	}
}

func TestKindIsWrittenByName(t *testing.T) {
	data, err := Marshal(sampleDocument(), TOML)
	require.NoError(t, err)
	assert.Contains(t, string(data), `kind = "formula"`)
	assert.Contains(t, string(data), `kind = "term"`)
	assert.Contains(t, string(data), "format_version = 1")
}

func TestDecodeRejectsBrokenInvariants(t *testing.T) {
	mixed := `
format_version = 1
[[tree]]
  [tree.root]
    id = "r"
    kind = "formula"
    [[tree.root.dependents]]
      id = "a"
      kind = "formula"
    [[tree.root.dependents]]
      id = "b"
      kind = "term"
`
	_, err := Decode(strings.NewReader(mixed), TOML)
	assert.ErrorIs(t, err, tree.ErrMixedDependents)

	indefinite := `
format_version: 1
trees:
  - root:
      id: r
      kind: formula
      dependents:
        - id: i
          kind: formula
          indefinite: true
          dependents:
            - id: x
              kind: term
`
	_, err = Decode(strings.NewReader(indefinite), YAML)
	assert.ErrorIs(t, err, tree.ErrIndefiniteHasChild)

	_, err = Decode(strings.NewReader("trees:\n  - root:\n      kind: leaf\n"), YAML)
	assert.ErrorIs(t, err, tree.ErrUnknownKind)

	// a root flag below the top would add the root bump to that node
	strayRoot := `
format_version = 1
[[tree]]
  [tree.root]
    id = "r"
    kind = "formula"
    [[tree.root.dependents]]
      id = "a"
      kind = "formula"
      root = true
      [[tree.root.dependents.dependents]]
        id = "b"
        kind = "formula"
`
	_, err = Decode(strings.NewReader(strayRoot), TOML)
	assert.ErrorIs(t, err, tree.ErrStrayRoot)

	termIndefinite := `
format_version: 1
trees:
  - root:
      id: r
      kind: formula
      dependents:
        - id: i
          kind: term
          indefinite: true
`
	_, err = Decode(strings.NewReader(termIndefinite), YAML)
	assert.ErrorIs(t, err, tree.ErrIndefiniteTerm)
}

func TestDecodeNormalisesHandWrittenFiles(t *testing.T) {
	doc, err := Decode(strings.NewReader("trees:\n  - root:\n      kind: formula\n      label: P\n"), YAML)
	require.NoError(t, err)
	require.Len(t, doc, 1)
	assert.NotEmpty(t, doc[0].Root.ID)
	assert.True(t, doc[0].Root.Root)
}

func TestDecodeVersionAndUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("format_version = 99\n"), TOML)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Decode(strings.NewReader("format_version = 1\ncolour = \"red\"\n"), TOML)
	assert.Error(t, err)

	doc, err := Decode(strings.NewReader(""), YAML)
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	doc := sampleDocument()

	for _, name := range []string{"proof.toml", "proof.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, doc))
		loaded, err := Load(path)
		require.NoError(t, err)
		assert.True(t, tree.EqualDocuments(doc, loaded), name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.ErrorIs(t, Save(filepath.Join(dir, "proof.txt"), doc), ErrUnknownFormat)
	assert.Error(t, Save("", doc))
}
