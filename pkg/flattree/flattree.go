// Package flattree implements a data-oriented n-ary tree tuned for
// cache-friendly traversal of large hierarchies.
//
// Two parallel slices back every tree: one holds user payloads, the other
// holds one compact topology record per payload. Node relationships are
// expressed as indices into those slices, never as pointers, so a topology
// walk touches only the metadata slice. OptimizeLayout physically reorders
// both slices so that a chosen traversal visits storage in strictly
// ascending index order.
package flattree

import (
	"errors"
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/flattree/pkg/safeconv"
)

// NodeIndex names one slot of the tree's parallel storage. It is cheap to
// copy and survives slice reallocation; it does not survive OptimizeLayout,
// which renames slots.
type NodeIndex uint32

// None is the reserved NodeIndex meaning "no such relation".
const None NodeIndex = math.MaxUint32

// ErrCorrupt reports a violated topology invariant found by Validate.
var ErrCorrupt = errors.New("corrupted topology")

// topology is the per-node metadata record. Six links plus the child count
// make 28 bytes, well within a single 64-byte cache line; keeping it that
// small is a hard constraint, not an optimization.
//
// ownIndex is redundant with the record's position and exists so that a
// slot can be marked dead (ownIndex = None) without compacting storage.
type topology struct {
	ownIndex    NodeIndex
	parentIndex NodeIndex
	firstChild  NodeIndex
	lastChild   NodeIndex
	prevSibling NodeIndex
	nextSibling NodeIndex
	childCount  uint32
}

// Tree is an n-ary tree over parallel payload and topology slices.
//
// The tree owns its storage outright. It always contains at least the root
// node. Structural edits (append, prepend, detach, sort, optimize) bump an
// internal generation counter; iterators taken before an edit panic on use
// after it.
//
// A Tree must not be mutated concurrently. Read-only sharing between
// goroutines is safe only while no mutator call is in flight; the tree does
// not police this.
type Tree[T any] struct {
	data []T
	meta []topology

	root       NodeIndex
	count      int
	generation uint32
}

// New creates a tree whose root holds the zero value of T.
func New[T any]() *Tree[T] {
	var zero T

	return NewWithRoot(zero)
}

// NewWithRoot creates a tree whose root holds the given payload.
func NewWithRoot[T any](payload T) *Tree[T] {
	return &Tree[T]{
		data: []T{payload},
		meta: []topology{{
			ownIndex:    0,
			parentIndex: None,
			firstChild:  None,
			lastChild:   None,
			prevSibling: None,
			nextSibling: None,
			childCount:  0,
		}},
		root:       0,
		count:      1,
		generation: 0,
	}
}

// Len returns the number of live nodes. Slots orphaned by Detach are not
// counted.
func (t *Tree[T]) Len() int {
	return t.count
}

// Cap returns the number of storage slots, live and orphaned alike.
func (t *Tree[T]) Cap() int {
	return len(t.meta)
}

// Root returns a handle to the root node.
func (t *Tree[T]) Root() NodeRef[T] {
	return NodeRef[T]{tree: t, node: t.root}
}

// RootIndex returns the slot currently holding the root.
func (t *Tree[T]) RootIndex() NodeIndex {
	return t.root
}

// At returns a handle to the live node in the given slot. It panics if the
// slot is out of range or orphaned.
func (t *Tree[T]) At(idx NodeIndex) NodeRef[T] {
	t.mustLive(idx)

	return NodeRef[T]{tree: t, node: idx}
}

// newSlot grows both sequences and returns the fresh slot, fully
// initialized and not yet linked anywhere. Growing first means an
// allocation failure leaves the topology unmodified.
func (t *Tree[T]) newSlot(payload T, parent NodeIndex) NodeIndex {
	length := len(t.meta)
	if length == int(None) {
		panic("flattree: storage has reached the maximum index for uint32")
	}

	idx := NodeIndex(safeconv.MustIntToUint32(length))

	t.data = append(t.data, payload)
	t.meta = append(t.meta, topology{
		ownIndex:    idx,
		parentIndex: parent,
		firstChild:  None,
		lastChild:   None,
		prevSibling: None,
		nextSibling: None,
		childCount:  0,
	})
	t.count++

	return idx
}

// mustLive asserts that idx names a live slot of this tree.
func (t *Tree[T]) mustLive(idx NodeIndex) {
	doAssert(t != nil)
	doAssert(int(idx) < len(t.meta))

	if t.meta[idx].ownIndex != idx {
		panic("flattree: operation on a node that is not in the tree")
	}
}

func (t *Tree[T]) isLive(idx NodeIndex) bool {
	return int(idx) < len(t.meta) && t.meta[idx].ownIndex == idx
}

// leftmostLeaf descends first-child links from idx to the deepest leftmost
// descendant.
func (t *Tree[T]) leftmostLeaf(idx NodeIndex) NodeIndex {
	for t.meta[idx].firstChild != None {
		idx = t.meta[idx].firstChild
	}

	return idx
}

// subtreeEnd computes the first pre-order position past the subtree rooted
// at start: the start's next sibling, or the nearest ancestor's next
// sibling, or None.
func (t *Tree[T]) subtreeEnd(start NodeIndex) NodeIndex {
	for idx := start; idx != None; idx = t.meta[idx].parentIndex {
		if next := t.meta[idx].nextSibling; next != None {
			return next
		}
	}

	return None
}

// preOrderSuccessor returns the next node after idx in pre-order, with no
// subtree bound applied.
func (t *Tree[T]) preOrderSuccessor(idx NodeIndex) NodeIndex {
	if child := t.meta[idx].firstChild; child != None {
		return child
	}

	return t.subtreeEnd(idx)
}

// postOrderSuccessor returns the next node after idx in post-order, with no
// subtree bound applied. An ascent to the parent never re-descends.
func (t *Tree[T]) postOrderSuccessor(idx NodeIndex) NodeIndex {
	if next := t.meta[idx].nextSibling; next != None {
		return t.leftmostLeaf(next)
	}

	return t.meta[idx].parentIndex
}

// leafSuccessor returns the next childless node after the leaf idx in
// left-to-right order, or None once the bound end is reached.
func (t *Tree[T]) leafSuccessor(idx, end NodeIndex) NodeIndex {
	next := t.preOrderSuccessor(idx)
	if next == end || next == None {
		return None
	}

	return t.leftmostLeaf(next)
}

// Validate walks the tree and checks every structural invariant: parallel
// storage lengths, the unique parentless root, doubly linked sibling chains
// agreeing with child counts, ownIndex agreement, acyclicity, and that
// every slot is either reachable from the root or orphaned. It returns nil
// on a healthy tree. Intended for tests and debugging; it is O(n).
func (t *Tree[T]) Validate() error {
	if len(t.data) != len(t.meta) {
		return fmt.Errorf("%w: payload length %d != metadata length %d", ErrCorrupt, len(t.data), len(t.meta))
	}

	if !t.isLive(t.root) {
		return fmt.Errorf("%w: root slot %d is not live", ErrCorrupt, t.root)
	}

	if t.meta[t.root].parentIndex != None {
		return fmt.Errorf("%w: root slot %d has a parent", ErrCorrupt, t.root)
	}

	visited := make([]bool, len(t.meta))
	reachable := 0

	for idx := t.root; idx != None; idx = t.preOrderSuccessor(idx) {
		if visited[idx] {
			return fmt.Errorf("%w: slot %d visited twice, topology has a cycle", ErrCorrupt, idx)
		}

		visited[idx] = true

		reachable++
		if reachable > len(t.meta) {
			return fmt.Errorf("%w: traversal does not terminate", ErrCorrupt)
		}

		if err := t.validateNode(idx); err != nil {
			return err
		}
	}

	if reachable != t.count {
		return fmt.Errorf("%w: %d reachable nodes, tree counts %d", ErrCorrupt, reachable, t.count)
	}

	for idx := range t.meta {
		if !visited[idx] && t.meta[idx].ownIndex != None {
			return fmt.Errorf("%w: slot %d is live but unreachable", ErrCorrupt, idx)
		}
	}

	return nil
}

// validateNode checks one live node's record and its child chain.
func (t *Tree[T]) validateNode(idx NodeIndex) error {
	rec := t.meta[idx]

	if rec.ownIndex != idx {
		return fmt.Errorf("%w: slot %d carries ownIndex %d", ErrCorrupt, idx, rec.ownIndex)
	}

	if idx != t.root && rec.parentIndex == None {
		return fmt.Errorf("%w: non-root slot %d has no parent", ErrCorrupt, idx)
	}

	chainLen := uint32(0)
	prev := None

	for child := rec.firstChild; child != None; child = t.meta[child].nextSibling {
		chainLen++
		if chainLen > rec.childCount {
			return fmt.Errorf("%w: child chain of slot %d exceeds childCount %d", ErrCorrupt, idx, rec.childCount)
		}

		if t.meta[child].parentIndex != idx {
			return fmt.Errorf("%w: slot %d is in the child chain of %d but names parent %d",
				ErrCorrupt, child, idx, t.meta[child].parentIndex)
		}

		if t.meta[child].prevSibling != prev {
			return fmt.Errorf("%w: slot %d names previous sibling %d, chain says %d",
				ErrCorrupt, child, t.meta[child].prevSibling, prev)
		}

		prev = child
	}

	if chainLen != rec.childCount {
		return fmt.Errorf("%w: slot %d counts %d children, chain holds %d", ErrCorrupt, idx, rec.childCount, chainLen)
	}

	if rec.lastChild != prev {
		return fmt.Errorf("%w: slot %d names last child %d, chain ends at %d", ErrCorrupt, idx, rec.lastChild, prev)
	}

	return nil
}

func doAssert(condition bool) {
	if !condition {
		panic("flattree internal assertion failed")
	}
}
