package flattree

import "cmp"

// NodeRef is a lightweight handle naming one live slot of a tree. It is an
// index under the hood, so it survives storage reallocation; after
// OptimizeLayout it names a slot, not a node identity, and must be
// re-fetched. Using a handle to an orphaned slot panics.
type NodeRef[T any] struct {
	tree *Tree[T]
	node NodeIndex
}

// Index returns the slot this handle names.
func (n NodeRef[T]) Index() NodeIndex {
	return n.node
}

// IsNone reports whether the handle names no node, as returned by
// navigation past the edge of the tree.
func (n NodeRef[T]) IsNone() bool {
	return n.tree == nil || n.node == None
}

// Same reports whether two handles name the same slot of the same tree.
func (n NodeRef[T]) Same(other NodeRef[T]) bool {
	return n.tree == other.tree && n.node == other.node
}

// Data returns a pointer to the node's payload.
func (n NodeRef[T]) Data() *T {
	n.tree.mustLive(n.node)

	return &n.tree.data[n.node]
}

// Parent returns the node's parent, or a None handle for the root.
func (n NodeRef[T]) Parent() NodeRef[T] {
	n.tree.mustLive(n.node)

	return NodeRef[T]{tree: n.tree, node: n.tree.meta[n.node].parentIndex}
}

// FirstChild returns the leftmost child, or a None handle for a leaf.
func (n NodeRef[T]) FirstChild() NodeRef[T] {
	n.tree.mustLive(n.node)

	return NodeRef[T]{tree: n.tree, node: n.tree.meta[n.node].firstChild}
}

// LastChild returns the rightmost child, or a None handle for a leaf.
func (n NodeRef[T]) LastChild() NodeRef[T] {
	n.tree.mustLive(n.node)

	return NodeRef[T]{tree: n.tree, node: n.tree.meta[n.node].lastChild}
}

// PrevSibling returns the immediate left sibling, or a None handle for a
// first child.
func (n NodeRef[T]) PrevSibling() NodeRef[T] {
	n.tree.mustLive(n.node)

	return NodeRef[T]{tree: n.tree, node: n.tree.meta[n.node].prevSibling}
}

// NextSibling returns the immediate right sibling, or a None handle for a
// last child.
func (n NodeRef[T]) NextSibling() NodeRef[T] {
	n.tree.mustLive(n.node)

	return NodeRef[T]{tree: n.tree, node: n.tree.meta[n.node].nextSibling}
}

// IsRoot reports whether the node is the tree's root.
func (n NodeRef[T]) IsRoot() bool {
	n.tree.mustLive(n.node)

	return n.node == n.tree.root
}

// IsLeaf reports whether the node has no children.
func (n NodeRef[T]) IsLeaf() bool {
	n.tree.mustLive(n.node)

	return n.tree.meta[n.node].firstChild == None
}

// ChildCount returns the number of direct children.
func (n NodeRef[T]) ChildCount() int {
	n.tree.mustLive(n.node)

	return int(n.tree.meta[n.node].childCount)
}

// DescendantCount returns the number of nodes in the subtree rooted at n,
// excluding n itself.
func (n NodeRef[T]) DescendantCount() int {
	n.tree.mustLive(n.node)

	total := 0
	end := n.tree.subtreeEnd(n.node)

	for idx := n.node; idx != None && idx != end; idx = n.tree.preOrderSuccessor(idx) {
		total++
	}

	return total - 1
}

// Depth returns the length of the parent chain from n to the root. The
// root's depth is zero.
func (n NodeRef[T]) Depth() int {
	n.tree.mustLive(n.node)

	depth := 0
	for idx := n.tree.meta[n.node].parentIndex; idx != None; idx = n.tree.meta[idx].parentIndex {
		depth++
	}

	return depth
}

// AppendChild adds a new node holding payload as the rightmost child of n
// and returns its handle. Outstanding iterators are invalidated.
func (n NodeRef[T]) AppendChild(payload T) NodeRef[T] {
	t := n.tree
	t.mustLive(n.node)

	child := t.newSlot(payload, n.node)
	parent := &t.meta[n.node]

	if parent.lastChild == None {
		parent.firstChild = child
		parent.lastChild = child
	} else {
		t.meta[parent.lastChild].nextSibling = child
		t.meta[child].prevSibling = parent.lastChild
		parent.lastChild = child
	}

	parent.childCount++
	t.generation++

	return NodeRef[T]{tree: t, node: child}
}

// PrependChild adds a new node holding payload as the leftmost child of n
// and returns its handle. Outstanding iterators are invalidated.
func (n NodeRef[T]) PrependChild(payload T) NodeRef[T] {
	t := n.tree
	t.mustLive(n.node)

	child := t.newSlot(payload, n.node)
	parent := &t.meta[n.node]

	if parent.firstChild == None {
		parent.firstChild = child
		parent.lastChild = child
	} else {
		t.meta[parent.firstChild].prevSibling = child
		t.meta[child].nextSibling = parent.firstChild
		parent.firstChild = child
	}

	parent.childCount++
	t.generation++

	return NodeRef[T]{tree: t, node: child}
}

// Detach unlinks the subtree rooted at n from the live topology and returns
// the number of nodes detached, n included. The slots are orphaned, not
// reclaimed; they are reaped with the tree itself. Detaching the root
// panics. Outstanding iterators are invalidated.
func (n NodeRef[T]) Detach() int {
	t := n.tree
	t.mustLive(n.node)

	if n.node == t.root {
		panic("flattree: cannot detach the root of a live tree")
	}

	rec := t.meta[n.node]

	// Splice n out of its sibling chain, fixing the parent's endpoints
	// when n was first or last.
	if rec.prevSibling != None {
		t.meta[rec.prevSibling].nextSibling = rec.nextSibling
	} else {
		t.meta[rec.parentIndex].firstChild = rec.nextSibling
	}

	if rec.nextSibling != None {
		t.meta[rec.nextSibling].prevSibling = rec.prevSibling
	} else {
		t.meta[rec.parentIndex].lastChild = rec.prevSibling
	}

	t.meta[rec.parentIndex].childCount--

	// Orphan the subtree in post-order. The walk precomputes each
	// successor, so invalidating ownIndex as we go is safe.
	detached := 0
	cursor := t.leftmostLeaf(n.node)

	for {
		next := t.postOrderSuccessor(cursor)
		t.meta[cursor].ownIndex = None
		detached++

		if cursor == n.node {
			break
		}

		cursor = next
	}

	t.count -= detached
	t.generation++

	return detached
}

// Equal reports payload equality between two nodes.
func Equal[T comparable](a, b NodeRef[T]) bool {
	return *a.Data() == *b.Data()
}

// Compare orders two nodes by their payloads.
func Compare[T cmp.Ordered](a, b NodeRef[T]) int {
	return cmp.Compare(*a.Data(), *b.Data())
}
