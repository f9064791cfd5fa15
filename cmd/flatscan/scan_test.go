package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/flattree/pkg/flattree"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func makeFixtureDir(tb testing.TB) string {
	tb.Helper()

	dir := tb.TempDir()

	require.NoError(tb, os.MkdirAll(filepath.Join(dir, "sub", "deeper"), 0o755))
	require.NoError(tb, os.WriteFile(filepath.Join(dir, "top.txt"), []byte("12345"), 0o644))
	require.NoError(tb, os.WriteFile(filepath.Join(dir, "sub", "inner.txt"), []byte("123"), 0o644))
	require.NoError(tb, os.WriteFile(filepath.Join(dir, "sub", "deeper", "leaf.txt"), []byte("1"), 0o644))

	return dir
}

func TestScanTree(t *testing.T) {
	t.Parallel()

	dir := makeFixtureDir(t)

	tree, err := scanTree(dir, discardLogger())
	require.NoError(t, err)
	require.NoError(t, tree.Validate())

	// Root, sub, deeper, and three files.
	assert.Equal(t, 6, tree.Len())

	var totalBytes int64

	for node := range tree.Root().Walk(flattree.PreOrder) {
		totalBytes += node.Data().size
	}

	assert.Equal(t, int64(9), totalBytes)
}

func TestScanTreeRejectsNonDirectory(t *testing.T) {
	t.Parallel()

	dir := makeFixtureDir(t)

	_, err := scanTree(filepath.Join(dir, "top.txt"), discardLogger())
	assert.Error(t, err)

	_, err = scanTree(filepath.Join(dir, "does-not-exist"), discardLogger())
	assert.Error(t, err)
}

func TestParseOrder(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]flattree.Order{
		"pre":     flattree.PreOrder,
		"post":    flattree.PostOrder,
		"leaf":    flattree.LeafOrder,
		"sibling": flattree.SiblingOrder,
	} {
		got, err := parseOrder(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := parseOrder("spiral")
	assert.Error(t, err)
}

func TestPruneBelow(t *testing.T) {
	t.Parallel()

	dir := makeFixtureDir(t)

	tree, err := scanTree(dir, discardLogger())
	require.NoError(t, err)

	pruneBelow(tree, 1)
	require.NoError(t, tree.Validate())

	for node := range tree.Root().Walk(flattree.PreOrder) {
		assert.LessOrEqual(t, node.Depth(), 1)
	}
}
