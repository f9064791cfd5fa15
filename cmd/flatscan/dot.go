package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/flattree/pkg/flattree"
	"github.com/Sumatoshi-tech/flattree/pkg/flattree/dot"
)

func dotCmd() *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "dot <dir>",
		Short: "Emit a scanned directory tree as a Graphviz digraph",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			logger := newLogger()

			tree, err := scanTree(args[0], logger)
			if err != nil {
				return err
			}

			pruneBelow(tree, maxDepth)

			return dot.Write(os.Stdout, tree.Root(), "flatscan", func(node flattree.NodeRef[entry]) string {
				return node.Data().name
			})
		},
	}

	cmd.Flags().IntVarP(&maxDepth, "depth", "d", 3, "prune nodes deeper than this before emitting")

	return cmd
}

// pruneBelow detaches every subtree rooted just past maxDepth so the
// emitted graph stays readable. Collects first, detaches second: Detach
// invalidates iterators.
func pruneBelow(tree *flattree.Tree[entry], maxDepth int) {
	var doomed []flattree.NodeIndex

	for node := range tree.Root().Walk(flattree.PreOrder) {
		if node.Depth() == maxDepth+1 {
			doomed = append(doomed, node.Index())
		}
	}

	for _, idx := range doomed {
		tree.At(idx).Detach()
	}
}
