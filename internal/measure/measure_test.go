package measure

import (
	"testing"

	"github.com/bethropolis/sprig/internal/tree"
	"github.com/stretchr/testify/assert"
)

func TestCellsMeasure(t *testing.T) {
	m := NewCells(10)
	tests := []struct {
		name          string
		label, conn   string
		wantContent   float64
		wantConnector float64
	}{
		{"ascii", "P & Q", "∧", 50, 10},
		{"empty label keeps a placeholder", "", "", EmptyLabelCells * 10, 0},
		{"wide runes take two cells", "論理", "", 40, 0},
		{"combining marks add no width", "é", "", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &tree.Node{Label: tt.label, Connector: tt.conn}
			m.Measure(n)
			assert.Equal(t, tt.wantContent, n.ContentWidth)
			assert.Equal(t, tt.wantConnector, n.ConnectorWidth)
		})
	}
}

func TestNewCellsDefault(t *testing.T) {
	assert.Equal(t, float64(DefaultUnitsPerCell), NewCells(0).UnitsPerCell)
}

func TestDocumentMeasuresEveryNode(t *testing.T) {
	inst := tree.NewInstance(tree.Point{})
	inst.Root.Label = "abc"
	child := tree.NewChild(inst.Root, tree.Term)
	child.Label = "a"

	Document(NewCells(1), tree.Document{inst})
	assert.Equal(t, 3.0, inst.Root.ContentWidth)
	assert.Equal(t, 1.0, child.ContentWidth)
}
