package btree

// Insert adds key with value. It returns false and leaves the tree
// unchanged if key is already present.
func (t *BTree[K, V]) Insert(key K, value V) bool {
	t.growRoot()
	if !t.insertNotFull(t.root, Entry[K, V]{Key: key, Value: value}) {
		return false
	}
	t.count++
	return true
}

func (t *BTree[K, V]) insertNotFull(n *node[K, V], e Entry[K, V]) bool {
	assertf(n.size() < t.maxKeys, "insert into full node: %d entries", n.size())

	if n.isLeaf() {
		return n.insertEntry(e)
	}

	r, ok := n.searchKey(e.Key).(notFound)
	if !ok {
		return false
	}
	index, promoted := t.splitChildFor(n, r.index, e.Key)
	if promoted {
		return false
	}
	return t.insertNotFull(n.childAt(index), e)
}

// Put stores value under key. If key was present its previous value is
// returned with replaced set to true.
func (t *BTree[K, V]) Put(key K, value V) (old V, replaced bool) {
	t.growRoot()
	old, replaced = t.putNotFull(t.root, Entry[K, V]{Key: key, Value: value})
	if !replaced {
		t.count++
	}
	return old, replaced
}

func (t *BTree[K, V]) putNotFull(n *node[K, V], e Entry[K, V]) (V, bool) {
	assertf(n.size() < t.maxKeys, "put into full node: %d entries", n.size())

	if n.isLeaf() {
		return n.putEntry(e)
	}

	r, ok := n.searchKey(e.Key).(notFound)
	if !ok {
		return n.putEntry(e)
	}
	index, promoted := t.splitChildFor(n, r.index, e.Key)
	if promoted {
		return n.putEntry(e)
	}
	return t.putNotFull(n.childAt(index), e)
}
