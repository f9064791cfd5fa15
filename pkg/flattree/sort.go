package flattree

// SortChildren reorders the direct children of n according to less, which
// must be a strict weak order over nodes. Only the sibling chain is
// rewritten; payloads do not move and the child set is preserved. The sort
// is a stable merge sort: equal children keep their relative order.
// Outstanding iterators are invalidated.
func (n NodeRef[T]) SortChildren(less func(a, b NodeRef[T]) bool) {
	t := n.tree
	t.mustLive(n.node)

	t.generation++

	head := t.meta[n.node].firstChild
	if head == None || t.meta[head].nextSibling == None {
		return
	}

	head = t.sortChain(head, less)

	// Re-establish the backward links in one pass over the merged chain,
	// then point the parent at the new endpoints. The child count is
	// untouched: sorting moves no node in or out of the set.
	t.meta[head].prevSibling = None
	tail := head

	for cur := t.meta[head].nextSibling; cur != None; cur = t.meta[cur].nextSibling {
		t.meta[cur].prevSibling = tail
		tail = cur
	}

	t.meta[n.node].firstChild = head
	t.meta[n.node].lastChild = tail
}

// sortChain merge-sorts a forward sibling chain and returns its new head.
// Backward links are left stale; the caller repairs them once at the end.
func (t *Tree[T]) sortChain(head NodeIndex, less func(a, b NodeRef[T]) bool) NodeIndex {
	if head == None || t.meta[head].nextSibling == None {
		return head
	}

	// Tortoise-and-hare split: slow ends up at the last node of the left
	// half.
	slow, fast := head, t.meta[head].nextSibling

	for fast != None {
		fast = t.meta[fast].nextSibling
		if fast != None {
			slow = t.meta[slow].nextSibling
			fast = t.meta[fast].nextSibling
		}
	}

	mid := t.meta[slow].nextSibling
	t.meta[slow].nextSibling = None

	left := t.sortChain(head, less)
	right := t.sortChain(mid, less)

	return t.mergeChains(left, right, less)
}

// mergeChains splices two sorted forward chains into one. The merge is
// left-biased: on ties the left element wins, which is what makes the sort
// stable.
func (t *Tree[T]) mergeChains(left, right NodeIndex, less func(a, b NodeRef[T]) bool) NodeIndex {
	head := None
	tail := None

	appendNode := func(idx NodeIndex) {
		if head == None {
			head = idx
		} else {
			t.meta[tail].nextSibling = idx
		}

		tail = idx
	}

	for left != None && right != None {
		if less(NodeRef[T]{tree: t, node: right}, NodeRef[T]{tree: t, node: left}) {
			next := t.meta[right].nextSibling
			appendNode(right)
			right = next
		} else {
			next := t.meta[left].nextSibling
			appendNode(left)
			left = next
		}
	}

	rest := left
	if rest == None {
		rest = right
	}

	if head == None {
		return rest
	}

	t.meta[tail].nextSibling = rest

	return head
}
