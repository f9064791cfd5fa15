package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/flattree/pkg/flattree"
)

// entry is the payload one scanned filesystem object contributes to the
// tree.
type entry struct {
	name string
	size int64
	dir  bool
}

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Walk a directory into a flattree and report its shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			logger := newLogger()

			started := time.Now()

			tree, err := scanTree(args[0], logger)
			if err != nil {
				return err
			}

			elapsed := time.Since(started)

			if err := tree.Validate(); err != nil {
				return fmt.Errorf("scanned tree failed validation: %w", err)
			}

			printScanReport(tree, elapsed)

			return nil
		},
	}

	return cmd
}

// scanTree builds a tree mirroring the directory hierarchy under dir. The
// root holds dir itself; every directory entry becomes a child appended in
// directory order.
func scanTree(dir string, logger *slog.Logger) (*flattree.Tree[entry], error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat scan root: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %q is not a directory", dir)
	}

	tree := flattree.NewWithRoot(entry{name: dir, size: 0, dir: true})
	scanInto(tree.Root(), dir, logger)

	logger.Debug("scan complete", "dir", dir, "nodes", tree.Len())

	return tree, nil
}

// scanInto appends dir's entries under parent, recursing into
// subdirectories. Unreadable directories and unstattable entries are
// logged and counted as empty rather than failing the scan.
func scanInto(parent flattree.NodeRef[entry], dir string, logger *slog.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("skipping unreadable directory", "dir", dir, "err", err)

		return
	}

	for _, dirEntry := range entries {
		size := int64(0)

		if !dirEntry.IsDir() {
			info, infoErr := dirEntry.Info()
			if infoErr != nil {
				logger.Debug("entry size unavailable, assuming zero", "entry", dirEntry.Name(), "err", infoErr)
			} else {
				size = info.Size()
			}
		}

		child := parent.AppendChild(entry{name: dirEntry.Name(), size: size, dir: dirEntry.IsDir()})

		if dirEntry.IsDir() {
			scanInto(child, filepath.Join(dir, dirEntry.Name()), logger)
		}
	}
}

// treeStats aggregates one read-only pass over a scanned tree.
type treeStats struct {
	files     int
	dirs      int
	leaves    int
	bytes     int64
	maxDepth  int
	liveNodes int
}

func collectStats[T any](tree *flattree.Tree[T], visit func(flattree.NodeRef[T], *treeStats)) treeStats {
	stats := treeStats{liveNodes: tree.Len()}

	for node := range tree.Root().Walk(flattree.PreOrder) {
		if depth := node.Depth(); depth > stats.maxDepth {
			stats.maxDepth = depth
		}

		if node.IsLeaf() {
			stats.leaves++
		}

		visit(node, &stats)
	}

	return stats
}

func printScanReport(tree *flattree.Tree[entry], elapsed time.Duration) {
	stats := collectStats(tree, func(node flattree.NodeRef[entry], s *treeStats) {
		if node.Data().dir {
			s.dirs++
		} else {
			s.files++
			s.bytes += node.Data().size
		}
	})

	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintf(os.Stdout, "Scanned %s in %s\n", tree.Root().Data().name, elapsed.Round(time.Millisecond))

	writer := table.NewWriter()
	writer.SetOutputMirror(os.Stdout)
	writer.AppendHeader(table.Row{"Metric", "Value"})
	writer.AppendRows([]table.Row{
		{"Live nodes", humanize.Comma(int64(stats.liveNodes))},
		{"Directories", humanize.Comma(int64(stats.dirs))},
		{"Files", humanize.Comma(int64(stats.files))},
		{"Leaves", humanize.Comma(int64(stats.leaves))},
		{"Total size", humanize.IBytes(uint64(stats.bytes))}, //nolint:gosec // sizes are non-negative
		{"Max depth", stats.maxDepth},
	})
	writer.Render()
}
