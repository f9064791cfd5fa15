package flattree //nolint:testpackage // tests inspect unexported topology records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexicalLess(a, b NodeRef[string]) bool {
	return *a.Data() < *b.Data()
}

func TestSortChildren(t *testing.T) {
	t.Parallel()

	tree := NewWithRoot("X")
	for _, payload := range []string{"J", "B", "D", "C", "M", "F", "A", "G", "E", "H", "I", "L", "K"} {
		tree.Root().AppendChild(payload)
	}

	tree.Root().SortChildren(lexicalLess)

	assert.Equal(t,
		[]string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "X"},
		collect(tree.Iter(PostOrder)))
	assert.True(t, tree.Root().FirstChild().PrevSibling().IsNone())
	assert.True(t, tree.Root().LastChild().NextSibling().IsNone())
	assert.Equal(t, 13, tree.Root().ChildCount())
	require.NoError(t, tree.Validate())
}

func TestSortChildrenPreservesMembershipAndPayloads(t *testing.T) {
	t.Parallel()

	tree := buildSampleTree(t)
	d := findNode(t, tree, "D")
	size := tree.Len()

	d.SortChildren(func(a, b NodeRef[string]) bool {
		return *a.Data() > *b.Data()
	})

	assert.Equal(t, size, tree.Len())
	assert.Equal(t, []string{"E", "C"}, collect(d.FirstChild().Iter(SiblingOrder)))
	require.NoError(t, tree.Validate())
}

func TestSortChildrenDoesNotMovePayloads(t *testing.T) {
	t.Parallel()

	tree := NewWithRoot("root")
	c := tree.Root().AppendChild("c")
	a := tree.Root().AppendChild("a")
	b := tree.Root().AppendChild("b")

	tree.Root().SortChildren(lexicalLess)

	// Only the sibling chain is rewritten; every node keeps its slot.
	assert.Equal(t, "c", *tree.At(c.Index()).Data())
	assert.Equal(t, "a", *tree.At(a.Index()).Data())
	assert.Equal(t, "b", *tree.At(b.Index()).Data())
	assert.Equal(t, []string{"a", "b", "c"}, collect(tree.Root().FirstChild().Iter(SiblingOrder)))
}

func TestSortChildrenStability(t *testing.T) {
	t.Parallel()

	type keyed struct {
		key int
		tag string
	}

	tree := NewWithRoot(keyed{})
	for _, payload := range []keyed{
		{key: 2, tag: "first-2"}, {key: 1, tag: "first-1"}, {key: 2, tag: "second-2"},
		{key: 1, tag: "second-1"}, {key: 2, tag: "third-2"},
	} {
		tree.Root().AppendChild(payload)
	}

	tree.Root().SortChildren(func(a, b NodeRef[keyed]) bool {
		return a.Data().key < b.Data().key
	})

	var tags []string

	for it := tree.Root().FirstChild().Iter(SiblingOrder); it.Valid(); it = it.Next() {
		tags = append(tags, it.Node().Data().tag)
	}

	assert.Equal(t, []string{"first-1", "second-1", "first-2", "second-2", "third-2"}, tags)
	require.NoError(t, tree.Validate())
}

func TestSortChildrenOfLeafAndSingleChild(t *testing.T) {
	t.Parallel()

	tree := NewWithRoot("root")
	tree.Root().SortChildren(lexicalLess)
	require.NoError(t, tree.Validate())

	tree.Root().AppendChild("only")
	tree.Root().SortChildren(lexicalLess)

	assert.Equal(t, []string{"only"}, collect(tree.Root().FirstChild().Iter(SiblingOrder)))
	require.NoError(t, tree.Validate())
}

func TestSortChildrenReversedDescending(t *testing.T) {
	t.Parallel()

	tree := NewWithRoot("root")
	for _, payload := range []string{"e", "d", "c", "b", "a"} {
		tree.Root().AppendChild(payload)
	}

	tree.Root().SortChildren(lexicalLess)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, collect(tree.Root().FirstChild().Iter(SiblingOrder)))

	// The backward chain must mirror the forward one.
	var backward []string
	for node := tree.Root().LastChild(); !node.IsNone(); node = node.PrevSibling() {
		backward = append(backward, *node.Data())
	}

	assert.Equal(t, []string{"e", "d", "c", "b", "a"}, backward)
	require.NoError(t, tree.Validate())
}
