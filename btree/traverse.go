package btree

import "iter"

// Walk calls fn for every entry in ascending key order until fn returns
// false.
func (t *BTree[K, V]) Walk(fn func(key K, value V) bool) {
	t.root.walk(fn)
}

// All returns an iterator over every entry in ascending key order.
func (t *BTree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.Walk(yield)
	}
}

// Keys returns all keys in ascending order.
func (t *BTree[K, V]) Keys() []K {
	keys := make([]K, 0, t.count)
	t.Walk(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

func (n *node[K, V]) walk(fn func(key K, value V) bool) bool {
	for i, e := range n.entries {
		if !n.leaf && !n.children[i].walk(fn) {
			return false
		}
		if !fn(e.Key, e.Value) {
			return false
		}
	}
	if !n.leaf {
		return n.children[len(n.children)-1].walk(fn)
	}
	return true
}
