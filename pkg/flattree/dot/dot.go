// Package dot renders a flattree as a Graphviz digraph. It is a read-only
// consumer: a pre-order walk plus a caller-supplied node formatter.
package dot

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Sumatoshi-tech/flattree/pkg/flattree"
)

// Write emits the tree rooted at root as a digraph named name. Each node is
// labeled by format; node identity comes from the slot index, so the output
// is stable for a given layout.
func Write[T any](w io.Writer, root flattree.NodeRef[T], name string, format func(flattree.NodeRef[T]) string) error {
	if _, err := fmt.Fprintf(w, "digraph %s {\n", name); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for node := range root.Walk(flattree.PreOrder) {
		_, err := fmt.Fprintf(w, "  n%d [label=%q]\n", node.Index(), format(node))
		if err != nil {
			return fmt.Errorf("write node %d: %w", node.Index(), err)
		}

		if parent := node.Parent(); !parent.IsNone() && !node.Same(root) {
			_, err = fmt.Fprintf(w, "  n%d -> n%d\n", parent.Index(), node.Index())
			if err != nil {
				return fmt.Errorf("write edge to %d: %w", node.Index(), err)
			}
		}
	}

	if _, err := io.WriteString(w, "}\n"); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}

	return nil
}

// String renders the tree to a string, for tests and small dumps.
func String[T any](root flattree.NodeRef[T], name string, format func(flattree.NodeRef[T]) string) string {
	var buffer bytes.Buffer

	// Writes to a bytes.Buffer cannot fail.
	_ = Write(&buffer, root, name, format)

	return buffer.String()
}

// Stringer formats nodes whose payloads already know how to print
// themselves.
func Stringer[T fmt.Stringer](node flattree.NodeRef[T]) string {
	return (*node.Data()).String()
}
