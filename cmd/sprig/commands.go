package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bethropolis/sprig/internal/layout"
	"github.com/bethropolis/sprig/internal/measure"
	"github.com/bethropolis/sprig/internal/store"
	"github.com/bethropolis/sprig/internal/tree"
	"github.com/spf13/cobra"
)

var (
	layoutCmd = &cobra.Command{
		Use:   "layout <file>",
		Short: "Print the computed position of every node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := store.Load(args[0])
			if err != nil {
				return err
			}
			engine := layout.NewEngine(cfg.Layout)
			measure.Document(measure.NewCells(cfg.View.CellWidth), doc)
			engine.LayoutDocument(doc)
			return writeLayout(cmd.OutOrStdout(), engine, doc)
		},
	}

	checkCmd = &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate diagram files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				doc, err := store.Load(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d trees, %d nodes)\n", path, len(doc), doc.NodeCount())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files invalid", failed, len(args))
			}
			return nil
		},
	}

	convertCmd = &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Rewrite a diagram in the format of the output extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := store.Load(args[0])
			if err != nil {
				return err
			}
			measure.Document(measure.NewCells(cfg.View.CellWidth), doc)
			layout.NewEngine(cfg.Layout).LayoutDocument(doc)
			return store.Save(args[1], doc)
		},
	}
)

// writeLayout prints one row per node, indented by depth, with its pane
// position and the bracket column for internal nodes.
func writeLayout(w io.Writer, engine *layout.Engine, doc tree.Document) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tKIND\tX\tY\tWIDTH\tBRACKET")
	for i, inst := range doc {
		fmt.Fprintf(tw, "tree %d @ (%g, %g)\t\t\t\t\t\n", i, inst.Offset.X, inst.Offset.Y)
		tree.Walk(inst.Root, func(n *tree.Node, depth int) bool {
			label := n.Label
			switch {
			case n.Indefinite:
				label = "..."
			case label == "":
				label = "_"
			}
			bracket := "-"
			if b, ok := engine.Bracket(n); ok {
				bracket = fmt.Sprintf("%g", inst.Offset.X+b.Column)
			}
			fmt.Fprintf(tw, "%s%s\t%s\t%g\t%g\t%g\t%s\n",
				strings.Repeat("  ", depth+1), label, n.Kind,
				inst.Offset.X+n.X, inst.Offset.Y+n.Y, engine.NodeWidth(n), bracket)
			return true
		})
	}
	return tw.Flush()
}
