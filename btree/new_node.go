package btree

// newNode creates an empty node sharing the tree comparator.
func newNode[K, V any](leaf bool, cmp func(a, b K) int) *node[K, V] {
	n := &node[K, V]{
		leaf: leaf,
		cmp:  cmp,
	}
	return n
}

func (n *node[K, V]) size() int {
	return len(n.entries)
}

func (n *node[K, V]) isLeaf() bool {
	return n.leaf
}
