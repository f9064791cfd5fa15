package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/flattree/pkg/flattree"
)

// benchRepetitions is how many full traversals each timing averages over.
const benchRepetitions = 5

func benchCmd() *cobra.Command {
	var orderName string

	cmd := &cobra.Command{
		Use:   "bench <dir>",
		Short: "Measure traversal speed before and after layout optimization",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			order, err := parseOrder(orderName)
			if err != nil {
				return err
			}

			logger := newLogger()

			tree, err := scanTree(args[0], logger)
			if err != nil {
				return err
			}

			before := timeTraversal(tree, order)

			optimizeStarted := time.Now()
			tree.OptimizeLayout(order)
			optimizeElapsed := time.Since(optimizeStarted)

			if err := tree.Validate(); err != nil {
				return fmt.Errorf("optimized tree failed validation: %w", err)
			}

			after := timeTraversal(tree, order)

			printBenchReport(tree, order, before, after, optimizeElapsed)

			return nil
		},
	}

	cmd.Flags().StringVarP(&orderName, "order", "o", "pre", "traversal to optimize for (pre|post|leaf|sibling)")

	return cmd
}

func parseOrder(name string) (flattree.Order, error) {
	switch name {
	case "pre":
		return flattree.PreOrder, nil
	case "post":
		return flattree.PostOrder, nil
	case "leaf":
		return flattree.LeafOrder, nil
	case "sibling":
		return flattree.SiblingOrder, nil
	default:
		return 0, fmt.Errorf("unknown traversal order %q", name)
	}
}

// timeTraversal measures a full payload-reading walk of the tree, averaged
// over benchRepetitions runs.
func timeTraversal(tree *flattree.Tree[entry], order flattree.Order) time.Duration {
	var sink int64

	started := time.Now()

	for rep := 0; rep < benchRepetitions; rep++ {
		for it := tree.Iter(order); it.Valid(); it = it.Next() {
			sink += it.Node().Data().size
		}
	}

	elapsed := time.Since(started) / benchRepetitions

	// Keep the compiler from eliding the walk.
	if sink == -1 {
		panic("unreachable")
	}

	return elapsed
}

func printBenchReport(tree *flattree.Tree[entry], order flattree.Order, before, after, optimize time.Duration) {
	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintf(os.Stdout, "Traversal benchmark: %s nodes, %s order\n",
		humanize.Comma(int64(tree.Len())), order)

	speedup := "n/a"
	if after > 0 {
		speedup = fmt.Sprintf("%.2fx", float64(before)/float64(after))
	}

	writer := table.NewWriter()
	writer.SetOutputMirror(os.Stdout)
	writer.AppendHeader(table.Row{"Phase", "Time"})
	writer.AppendRows([]table.Row{
		{"Traversal before optimization", before},
		{"OptimizeLayout", optimize},
		{"Traversal after optimization", after},
		{"Speedup", speedup},
	})
	writer.Render()
}
