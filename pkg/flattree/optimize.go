package flattree

// linkFixup is one pending rewrite of a topology field: after the swap, the
// field of the record then living in slot holds value.
type linkFixup struct {
	slot  NodeIndex
	field linkField
	value NodeIndex
}

type linkField uint8

const (
	fieldParent linkField = iota
	fieldFirstChild
	fieldLastChild
	fieldPrevSibling
	fieldNextSibling
)

// OptimizeLayout permutes the payload and metadata slices so that the given
// traversal visits storage in strictly ascending slot order, which is what
// the hardware prefetcher rewards on large read-mostly trees.
//
// The node set, the payloads, and every parent/child/sibling relationship
// are preserved; only physical positions change. Slots orphaned by Detach
// are pushed behind the live nodes the traversal reaches. All outstanding
// handles and iterators are invalidated.
func (t *Tree[T]) OptimizeLayout(order Order) {
	t.generation++

	if len(t.meta) < 2 {
		return
	}

	// Walk the traversal with a raw cursor rather than an Iterator: each
	// swap below has to relocate the cursor to the slot the current node
	// just moved to.
	cursor := t.root
	if order == PostOrder || order == LeafOrder {
		cursor = t.leftmostLeaf(t.root)
	}

	var scratch []linkFixup

	for sink := 0; cursor != None && sink < len(t.meta); sink++ {
		source := cursor

		if source != NodeIndex(sink) {
			scratch = t.swapSlots(source, NodeIndex(sink), scratch)
			cursor = NodeIndex(sink)
		}

		switch order {
		case PreOrder:
			cursor = t.preOrderSuccessor(cursor)
		case PostOrder:
			cursor = t.postOrderSuccessor(cursor)
		case LeafOrder:
			cursor = t.leafSuccessor(cursor, None)
		case SiblingOrder:
			cursor = t.meta[cursor].nextSibling
		default:
			panic("flattree: unknown traversal order")
		}
	}
}

// swapSlots exchanges the contents of two slots in both sequences and
// rewrites every topology link that referred to either slot. The scratch
// slice is reused across calls to keep the optimizer allocation-light.
//
// The degenerate cases fall out of the two-phase design instead of needing
// bespoke branches: all incoming links are collected while the topology is
// still consistent, the slots are swapped, then the fixups are applied with
// their target slots translated through the swap. A link between the two
// swapped nodes themselves (parent/child or adjacent siblings) is simply an
// incoming link whose owner also moved.
func (t *Tree[T]) swapSlots(a, b NodeIndex, scratch []linkFixup) []linkFixup {
	doAssert(a != b)

	fixups := scratch[:0]
	fixups = t.collectIncoming(fixups, a, b)
	fixups = t.collectIncoming(fixups, b, a)

	aLive := t.meta[a].ownIndex != None
	bLive := t.meta[b].ownIndex != None

	t.data[a], t.data[b] = t.data[b], t.data[a]
	t.meta[a], t.meta[b] = t.meta[b], t.meta[a]

	for _, fix := range fixups {
		slot := fix.slot
		if slot == a {
			slot = b
		} else if slot == b {
			slot = a
		}

		rec := &t.meta[slot]

		switch fix.field {
		case fieldParent:
			rec.parentIndex = fix.value
		case fieldFirstChild:
			rec.firstChild = fix.value
		case fieldLastChild:
			rec.lastChild = fix.value
		case fieldPrevSibling:
			rec.prevSibling = fix.value
		case fieldNextSibling:
			rec.nextSibling = fix.value
		}
	}

	// Restore ownIndex at the new positions. Orphaned records keep the
	// sentinel that marks them dead.
	if aLive {
		t.meta[b].ownIndex = b
	}

	if bLive {
		t.meta[a].ownIndex = a
	}

	if t.root == a {
		t.root = b
	} else if t.root == b {
		t.root = a
	}

	return fixups
}

// collectIncoming records every topology field that names slot from, to be
// rewritten to the value to once the node moves there: the children's
// parent links, the parent's child endpoints, and the sibling neighbors'
// cross links. Called before the swap, while every link is still
// consistent. An orphaned slot contributes nothing: its stale record is
// referenced by no live node.
func (t *Tree[T]) collectIncoming(fixups []linkFixup, from, to NodeIndex) []linkFixup {
	rec := t.meta[from]
	if rec.ownIndex == None {
		return fixups
	}

	for child := rec.firstChild; child != None; child = t.meta[child].nextSibling {
		fixups = append(fixups, linkFixup{slot: child, field: fieldParent, value: to})
	}

	if parent := rec.parentIndex; parent != None {
		if t.meta[parent].firstChild == from {
			fixups = append(fixups, linkFixup{slot: parent, field: fieldFirstChild, value: to})
		}

		if t.meta[parent].lastChild == from {
			fixups = append(fixups, linkFixup{slot: parent, field: fieldLastChild, value: to})
		}
	}

	if prev := rec.prevSibling; prev != None {
		fixups = append(fixups, linkFixup{slot: prev, field: fieldNextSibling, value: to})
	}

	if next := rec.nextSibling; next != None {
		fixups = append(fixups, linkFixup{slot: next, field: fieldPrevSibling, value: to})
	}

	return fixups
}
