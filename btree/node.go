package btree

import "slices"

// searchKey binary searches the entries of n. On a miss the index is the
// lower bound: the first position whose key is greater than key.
func (n *node[K, V]) searchKey(key K) searchResult {
	low, high := 0, len(n.entries)-1
	for low <= high {
		mid := int(uint(low+high) >> 1)
		switch c := n.cmp(n.entries[mid].Key, key); {
		case c == 0:
			return found[V]{index: mid, value: n.entries[mid].Value}
		case c > 0:
			high = mid - 1
		default:
			low = mid + 1
		}
	}
	return notFound{index: low}
}

// insertEntry adds e at its sorted position. Returns false, leaving the
// node untouched, if the key is already present.
func (n *node[K, V]) insertEntry(e Entry[K, V]) bool {
	r, ok := n.searchKey(e.Key).(notFound)
	if !ok {
		return false
	}
	n.insertEntryAt(e, r.index)
	return true
}

// putEntry replaces the value of an existing key and returns the old one,
// or inserts e if the key is absent.
func (n *node[K, V]) putEntry(e Entry[K, V]) (old V, replaced bool) {
	switch r := n.searchKey(e.Key).(type) {
	case found[V]:
		n.entries[r.index].Value = e.Value
		return r.value, true
	case notFound:
		n.insertEntryAt(e, r.index)
	}
	return old, false
}

func (n *node[K, V]) insertEntryAt(e Entry[K, V], index int) {
	assertf(index >= 0 && index <= len(n.entries),
		"entry insert position %d out of range [0, %d]", index, len(n.entries))
	n.entries = slices.Insert(n.entries, index, e)
}

// addEntry appends e after the last entry.
func (n *node[K, V]) addEntry(e Entry[K, V]) {
	n.entries = append(n.entries, e)
}

func (n *node[K, V]) entryAt(index int) Entry[K, V] {
	assertf(index >= 0 && index < len(n.entries),
		"entry index %d out of range [0, %d)", index, len(n.entries))
	return n.entries[index]
}

func (n *node[K, V]) setEntry(index int, e Entry[K, V]) {
	assertf(index >= 0 && index < len(n.entries),
		"entry index %d out of range [0, %d)", index, len(n.entries))
	n.entries[index] = e
}

func (n *node[K, V]) removeEntry(index int) Entry[K, V] {
	assertf(index >= 0 && index < len(n.entries),
		"entry index %d out of range [0, %d)", index, len(n.entries))
	e := n.entries[index]
	n.entries = slices.Delete(n.entries, index, index+1)
	return e
}

func (n *node[K, V]) childAt(index int) *node[K, V] {
	assertf(!n.leaf, "leaf node doesn't have children")
	assertf(index >= 0 && index < len(n.children),
		"child index %d out of range [0, %d)", index, len(n.children))
	return n.children[index]
}

func (n *node[K, V]) addChild(child *node[K, V]) {
	n.children = append(n.children, child)
}

func (n *node[K, V]) insertChild(child *node[K, V], index int) {
	assertf(index >= 0 && index <= len(n.children),
		"child insert position %d out of range [0, %d]", index, len(n.children))
	n.children = slices.Insert(n.children, index, child)
}

func (n *node[K, V]) removeChild(index int) *node[K, V] {
	assertf(index >= 0 && index < len(n.children),
		"child index %d out of range [0, %d)", index, len(n.children))
	c := n.children[index]
	n.children = slices.Delete(n.children, index, index+1)
	return c
}

// maxEntry returns the largest entry of the subtree rooted at n.
func (n *node[K, V]) maxEntry() Entry[K, V] {
	for !n.leaf {
		n = n.children[len(n.children)-1]
	}
	return n.entryAt(len(n.entries) - 1)
}

// minEntry returns the smallest entry of the subtree rooted at n.
func (n *node[K, V]) minEntry() Entry[K, V] {
	for !n.leaf {
		n = n.children[0]
	}
	return n.entryAt(0)
}
