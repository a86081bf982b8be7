package btree

// Search returns the value stored under key. The boolean is false when the
// key is not in the tree.
func (t *BTree[K, V]) Search(key K) (V, bool) {
	return t.search(t.root, key)
}

func (t *BTree[K, V]) search(n *node[K, V], key K) (V, bool) {
	switch r := n.searchKey(key).(type) {
	case found[V]:
		return r.value, true
	case notFound:
		if n.isLeaf() {
			var zero V
			return zero, false
		}
		return t.search(n.childAt(r.index), key)
	default:
		panic(unknownResult(r))
	}
}

// Has reports whether key is in the tree.
func (t *BTree[K, V]) Has(key K) bool {
	_, ok := t.Search(key)
	return ok
}
