// Package main provides flatscan, a filesystem-walk benchmark for the
// flattree container: it stresses the tree with hundreds of thousands of
// AppendChild calls and reads it back through the traversal iterators.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/flattree/pkg/version"
)

var (
	verbose bool //nolint:gochecknoglobals // CLI flag variable
	quiet   bool //nolint:gochecknoglobals // CLI flag variable
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flatscan",
		Short: "Filesystem scanner benchmark for the flattree container",
		Long: `flatscan walks a directory tree into a flattree, reports its shape,
and measures how much layout optimization speeds up traversal.`,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output")

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(benchCmd())
	rootCmd.AddCommand(dotCmd())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "flatscan %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}

	return cmd
}

// newLogger builds the CLI logger honoring --verbose and --quiet.
func newLogger() *slog.Logger {
	level := slog.LevelInfo

	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
