package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bethropolis/sprig/internal/layout"
	"github.com/bethropolis/sprig/internal/measure"
	"github.com/bethropolis/sprig/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLayout(t *testing.T) {
	inst := tree.NewInstance(tree.Point{X: 10})
	inst.Root.Label = "P"
	a := tree.NewChild(inst.Root, tree.Formula)
	a.Label = "A"
	tree.NewIndefinite(inst.Root)
	doc := tree.Document{inst}

	engine := layout.NewEngine(layout.DefaultMetrics())
	measure.Document(measure.NewCells(measure.DefaultUnitsPerCell), doc)
	engine.LayoutDocument(doc)

	var buf bytes.Buffer
	require.NoError(t, writeLayout(&buf, engine, doc))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "NODE"))
	assert.True(t, strings.HasPrefix(lines[1], "tree 0 @ (10, 0)"))
	assert.True(t, strings.HasPrefix(lines[2], "  P "))
	assert.NotContains(t, lines[2], " - ", "the root has a bracket")
	assert.True(t, strings.HasPrefix(lines[3], "    A "))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[3]), "-"), "leaves have no bracket")
	assert.True(t, strings.HasPrefix(lines[4], "    ... "))
}
