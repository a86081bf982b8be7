package btree

// Delete removes key from the tree and returns the entry that held it.
// Deleting an absent key is a no-op reported by ok == false.
func (t *BTree[K, V]) Delete(key K) (removed Entry[K, V], ok bool) {
	removed, ok = t.delete(t.root, key)
	if ok {
		t.count--
	}
	return removed, ok
}

// delete removes key from the subtree rooted at n. Every node it is called
// on, other than the root, holds at least t entries: children are topped up
// before the descent, never after.
func (t *BTree[K, V]) delete(n *node[K, V], key K) (Entry[K, V], bool) {
	assertf(n == t.root || n.size() >= t.t,
		"delete descended into node with %d entries, want at least %d", n.size(), t.t)

	switch r := n.searchKey(key).(type) {
	case found[V]:
		if n.isLeaf() {
			return n.removeEntry(r.index), true
		}
		return t.deleteFromInternal(n, r.index, key)
	case notFound:
		if n.isLeaf() {
			return Entry[K, V]{}, false
		}
		return t.delete(t.fillChild(n, r.index), key)
	default:
		panic(unknownResult(r))
	}
}

// deleteFromInternal removes entries[index] of the internal node n.
func (t *BTree[K, V]) deleteFromInternal(n *node[K, V], index int, key K) (Entry[K, V], bool) {
	removed := n.entryAt(index)

	// left child can spare an entry: swap up the predecessor
	left := n.childAt(index)
	if left.size() >= t.t {
		pred := left.maxEntry()
		n.setEntry(index, pred)
		_, ok := t.delete(left, pred.Key)
		assertf(ok, "predecessor vanished from left subtree")
		return removed, true
	}

	// right child can spare an entry: swap up the successor
	right := n.childAt(index + 1)
	if right.size() >= t.t {
		succ := right.minEntry()
		n.setEntry(index, succ)
		_, ok := t.delete(right, succ.Key)
		assertf(ok, "successor vanished from right subtree")
		return removed, true
	}

	// both children hold t-1 entries: pull the entry down into a merged
	// left child and delete it there
	t.mergeChildren(n, index)
	if n == t.root && n.size() == 0 {
		t.root = left
	}
	return t.delete(left, key)
}

// fillChild makes sure n.children[index] holds at least t entries before
// the delete descends into it, and returns the node to descend into.
func (t *BTree[K, V]) fillChild(n *node[K, V], index int) *node[K, V] {
	child := n.childAt(index)
	if child.size() >= t.t {
		return child
	}

	// borrow from the right sibling first, then from the left
	if index < n.size() && n.childAt(index+1).size() >= t.t {
		t.rotateFromRight(n, index)
		return child
	}
	if index > 0 && n.childAt(index-1).size() >= t.t {
		t.rotateFromLeft(n, index)
		return child
	}

	// both neighbours are minimal: merge, preferring the right sibling
	if index < n.size() {
		t.mergeChildren(n, index)
	} else {
		t.mergeChildren(n, index-1)
		child = n.childAt(index - 1)
	}
	if n == t.root && n.size() == 0 {
		t.root = child
	}
	return child
}

// rotateFromRight moves the separator entries[index] down to the end of
// children[index] and the first entry of children[index+1] up in its place.
func (t *BTree[K, V]) rotateFromRight(n *node[K, V], index int) {
	child := n.childAt(index)
	sibling := n.childAt(index + 1)

	child.addEntry(n.entryAt(index))
	n.setEntry(index, sibling.removeEntry(0))
	if !sibling.isLeaf() {
		child.addChild(sibling.removeChild(0))
	}
}

// rotateFromLeft moves the separator entries[index-1] down to the front of
// children[index] and the last entry of children[index-1] up in its place.
func (t *BTree[K, V]) rotateFromLeft(n *node[K, V], index int) {
	child := n.childAt(index)
	sibling := n.childAt(index - 1)

	child.insertEntryAt(n.entryAt(index-1), 0)
	n.setEntry(index-1, sibling.removeEntry(sibling.size()-1))
	if !sibling.isLeaf() {
		child.insertChild(sibling.removeChild(len(sibling.children)-1), 0)
	}
}

// mergeChildren folds entries[index] and children[index+1] into
// children[index]. Both children must hold exactly t-1 entries.
func (t *BTree[K, V]) mergeChildren(n *node[K, V], index int) {
	left := n.childAt(index)
	right := n.childAt(index + 1)
	assertf(left.size() == t.minKeys && right.size() == t.minKeys,
		"merge of non-minimal nodes: %d and %d entries", left.size(), right.size())

	left.addEntry(n.removeEntry(index))
	n.removeChild(index + 1)
	left.entries = append(left.entries, right.entries...)
	if !right.isLeaf() {
		left.children = append(left.children, right.children...)
	}
}
