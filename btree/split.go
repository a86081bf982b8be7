package btree

import "slices"

// splitNode splits the full child found at parent.children[index]. The
// median entry (index t-1) moves up into parent at index, entries after it
// and the last t children move to a new sibling placed at index+1. child is
// left with exactly t-1 entries.
func (t *BTree[K, V]) splitNode(parent, child *node[K, V], index int) {
	assertf(child.size() == t.maxKeys, "split of non-full node: %d entries, want %d", child.size(), t.maxKeys)

	sibling := newNode[K, V](child.isLeaf(), t.cmp)
	sibling.entries = make([]Entry[K, V], 0, t.maxKeys)
	sibling.entries = append(sibling.entries, child.entries[t.t:]...)
	median := child.entries[t.t-1]
	child.entries = slices.Delete(child.entries, t.t-1, len(child.entries))

	if !child.isLeaf() {
		sibling.children = make([]*node[K, V], 0, t.maxKeys+1)
		sibling.children = append(sibling.children, child.children[t.t:]...)
		child.children = slices.Delete(child.children, t.t, len(child.children))
	}

	parent.insertEntryAt(median, index)
	parent.insertChild(sibling, index+1)
}

// splitChildFor splits parent.children[index] if it is full, ahead of a
// descent looking for key. It returns the child index to descend into and
// whether the entry promoted into parent carries key itself.
func (t *BTree[K, V]) splitChildFor(parent *node[K, V], index int, key K) (int, bool) {
	child := parent.childAt(index)
	if child.size() < t.maxKeys {
		return index, false
	}
	t.splitNode(parent, child, index)
	switch c := t.cmp(key, parent.entryAt(index).Key); {
	case c > 0:
		return index + 1, false
	case c == 0:
		return index, true
	}
	return index, false
}

// growRoot splits a full root under a new root, making the tree one level
// taller. The root handed to insertNotFull/putNotFull is then never full.
func (t *BTree[K, V]) growRoot() {
	if t.root.size() < t.maxKeys {
		return
	}
	newRoot := newNode[K, V](false, t.cmp)
	newRoot.addChild(t.root)
	t.splitNode(newRoot, t.root, 0)
	t.root = newRoot
}
