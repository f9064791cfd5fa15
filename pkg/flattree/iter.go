package flattree

import "iter"

// Order names one of the four traversals. It parameterizes both iterators
// and OptimizeLayout.
type Order int

// Traversal orders.
const (
	// PreOrder visits each node before its children.
	PreOrder Order = iota
	// PostOrder visits each node after its children.
	PostOrder
	// LeafOrder visits only childless nodes, left to right.
	LeafOrder
	// SiblingOrder visits the starting node and its right siblings.
	SiblingOrder
)

func (o Order) String() string {
	switch o {
	case PreOrder:
		return "pre-order"
	case PostOrder:
		return "post-order"
	case LeafOrder:
		return "leaf"
	case SiblingOrder:
		return "sibling"
	default:
		return "unknown"
	}
}

// Iterator is a forward, single-pass traversal over one subtree. It is a
// value type: Next returns a new iterator, the receiver is never mutated.
//
// The iterator computes its past-the-end bound at construction, so a
// traversal started at an interior node yields exactly that node's subtree
// and never escapes through the start's right siblings.
//
// Any structural edit on the tree invalidates all outstanding iterators;
// using one afterwards panics.
type Iterator[T any] struct {
	tree  *Tree[T]
	order Order
	cur   NodeIndex
	start NodeIndex
	end   NodeIndex
	gen   uint32
}

// Iter starts a traversal of the given order over the whole tree.
func (t *Tree[T]) Iter(order Order) Iterator[T] {
	return t.Root().Iter(order)
}

// Iter starts a traversal of the given order over the subtree rooted at n.
// For SiblingOrder the sequence is n and its right siblings.
func (n NodeRef[T]) Iter(order Order) Iterator[T] {
	t := n.tree
	t.mustLive(n.node)

	it := Iterator[T]{
		tree:  t,
		order: order,
		cur:   n.node,
		start: n.node,
		end:   None,
		gen:   t.generation,
	}

	switch order {
	case PreOrder:
		it.end = t.subtreeEnd(n.node)
	case PostOrder:
		it.cur = t.leftmostLeaf(n.node)
		it.end = t.postOrderSuccessor(n.node)
	case LeafOrder:
		it.cur = t.leftmostLeaf(n.node)
		it.end = t.subtreeEnd(n.node)
	case SiblingOrder:
		// No bound: the chain ends at None on its own.
	default:
		panic("flattree: unknown traversal order")
	}

	return it
}

// Valid reports whether the iterator points at a node. A freshly
// constructed iterator is always valid: every subtree holds at least its
// own root.
func (it Iterator[T]) Valid() bool {
	return it.cur != None
}

// Node returns the current node.
//
// REQUIRES: it.Valid().
func (it Iterator[T]) Node() NodeRef[T] {
	it.check()
	doAssert(it.Valid())

	return NodeRef[T]{tree: it.tree, node: it.cur}
}

// Next returns an iterator advanced by one node. Advancing the last node of
// the subtree yields the past-the-end state; advancing past the end panics.
func (it Iterator[T]) Next() Iterator[T] {
	it.check()
	doAssert(it.Valid())

	var succ NodeIndex

	switch it.order {
	case PreOrder:
		succ = it.tree.preOrderSuccessor(it.cur)
	case PostOrder:
		succ = it.tree.postOrderSuccessor(it.cur)
	case LeafOrder:
		succ = it.tree.leafSuccessor(it.cur, it.end)
	case SiblingOrder:
		succ = it.tree.meta[it.cur].nextSibling
	default:
		panic("flattree: unknown traversal order")
	}

	// The bound is the first position outside the subtree, so reaching
	// it is reaching past-the-end.
	if succ == it.end {
		succ = None
	}

	next := it
	next.cur = succ

	return next
}

// Equal reports whether two iterators point at the same slot. All
// past-the-end iterators compare equal.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.cur == other.cur
}

// check panics if the tree was structurally edited after the iterator was
// constructed.
func (it Iterator[T]) check() {
	if it.gen != it.tree.generation {
		panic("flattree: iterator invalidated by a structural edit")
	}
}

// Walk returns a range-able sequence over the subtree rooted at n in the
// given order.
func (n NodeRef[T]) Walk(order Order) iter.Seq[NodeRef[T]] {
	return func(yield func(NodeRef[T]) bool) {
		for it := n.Iter(order); it.Valid(); it = it.Next() {
			if !yield(it.Node()) {
				return
			}
		}
	}
}

// All returns a range-able sequence over the whole tree in post-order, the
// default traversal.
func (t *Tree[T]) All() iter.Seq[NodeRef[T]] {
	return t.Root().Walk(PostOrder)
}
