// plugins/stats/stats.go
package stats

import (
	"fmt"

	"github.com/bethropolis/sprig/internal/plugin"
	"github.com/bethropolis/sprig/internal/tree"
)

// Ensure Stats implements plugin.Plugin
var _ plugin.Plugin = (*Stats)(nil)

// Stats reports the size and shape of the diagram.
type Stats struct {
	api plugin.EditorAPI
}

// New creates a new instance of the Stats plugin.
func New() plugin.Plugin {
	return &Stats{}
}

// Name returns the unique name of the plugin.
func (p *Stats) Name() string {
	return "stats"
}

// Initialize registers the :stats command.
func (p *Stats) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("stats", p.executeStats); err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this plugin).
func (p *Stats) Shutdown() error {
	return nil
}

// Summary counts the nodes of a set of subtrees.
type Summary struct {
	Trees    int
	Nodes    int
	Leaves   int
	MaxDepth int
}

func (s Summary) String() string {
	return fmt.Sprintf("Trees: %d, Nodes: %d, Leaves: %d, Depth: %d", s.Trees, s.Nodes, s.Leaves, s.MaxDepth)
}

// Summarize counts every tree of doc.
func Summarize(doc tree.Document) Summary {
	var s Summary
	for _, inst := range doc {
		s.add(inst.Root)
	}
	return s
}

func (s *Summary) add(root *tree.Node) {
	if root == nil {
		return
	}
	s.Trees++
	tree.Walk(root, func(*tree.Node, int) bool {
		s.Nodes++
		return true
	})
	s.Leaves += len(tree.Leaves(root))
	if d := tree.Depth(root); d > s.MaxDepth {
		s.MaxDepth = d
	}
}

// executeStats runs ":stats". With "sel" it counts only the selected subtree.
func (p *Stats) executeStats(args []string) error {
	if p.api == nil {
		return fmt.Errorf("stats plugin not initialized with API")
	}
	if len(args) > 0 && args[0] == "sel" {
		loc, ok := p.api.SelectedNode()
		if !ok {
			return fmt.Errorf("nothing selected")
		}
		var s Summary
		s.add(loc.Node)
		p.api.SetStatusMessage("Selection - %s", s)
		return nil
	}
	p.api.SetStatusMessage("%s", Summarize(p.api.Document()))
	return nil
}
